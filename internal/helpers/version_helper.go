package helpers

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// VersionDelimiter separates a base name from its version number:
// "<base>_v-<n>.<ext>".
const VersionDelimiter = "_v-"

// SplitExtension splits fileName at its last dot. ext keeps the dot and is
// empty when fileName has none.
func SplitExtension(fileName string) (stem string, ext string) {
	i := strings.LastIndex(fileName, ".")
	if i <= 0 {
		return fileName, ""
	}
	return fileName[:i], fileName[i:]
}

// ParseVersionedName extracts base name and version from a versioned file
// name such as "hero_v-12.ma". ok is false for active (unversioned) names and
// for suffixes that are not non-negative integers.
func ParseVersionedName(fileName string) (base string, version int, ok bool) {
	stem, _ := SplitExtension(fileName)
	i := strings.LastIndex(stem, VersionDelimiter)
	if i < 0 {
		return stem, 0, false
	}
	version, err := strconv.Atoi(stem[i+len(VersionDelimiter):])
	if err != nil || version < 0 {
		return stem, 0, false
	}
	return stem[:i], version, true
}

func VersionedName(base string, version int) string {
	return fmt.Sprintf("%s%s%d", base, VersionDelimiter, version)
}

// NextVersion scans the files of dir and returns max(existing versions)+1 for
// baseName, or 0 when no versioned file with that base name exists.
//
// baseName is taken literally: a base that already carries a version token
// ("test_v-19") is treated as a new base and gets its own "_v-0".
func NextVersion(dir string, baseName string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	next := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, version, ok := ParseVersionedName(entry.Name())
		if !ok || base != baseName {
			continue
		}
		if version+1 > next {
			next = version + 1
		}
	}
	return next, nil
}

// NextVersionName returns baseName with the next free version suffix, without
// extension.
// Example: dir holds test.ma, test_v-17.ma -> NextVersionName(dir, "test") = "test_v-18"
func NextVersionName(dir string, baseName string) (string, error) {
	version, err := NextVersion(dir, baseName)
	if err != nil {
		return "", err
	}
	return VersionedName(baseName, version), nil
}
