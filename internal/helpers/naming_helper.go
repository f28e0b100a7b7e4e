package helpers

import (
	"path/filepath"
	"strings"
)

// ReservedMarker prefixes asset-name folders, shot folders and the hidden
// backup/script folders. Category folders never carry it.
const ReservedMarker = "__"

const (
	BackupFolder = "___backup"
	ScriptFolder = "___script"
)

// Normalize converts a path to forward slashes and ensures exactly one
// trailing separator.
// Example: `Z:\Show\MODEL\\` -> "Z:/Show/MODEL/"
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimRight(path, "/") + "/"
}

// ToHostSeparators converts a normalized path to the separators of the host
// OS and strips the trailing separator, for handing paths to shell commands.
func ToHostSeparators(path string) string {
	path = filepath.FromSlash(strings.ReplaceAll(path, "\\", "/"))
	if len(path) > 1 {
		path = strings.TrimSuffix(path, string(filepath.Separator))
	}
	return path
}

// MarkReserved prefixes name with the reserved marker unless already present.
func MarkReserved(name string) string {
	if strings.HasPrefix(name, ReservedMarker) {
		return name
	}
	return ReservedMarker + name
}

// UnmarkReserved strips the reserved marker if present.
func UnmarkReserved(name string) string {
	return strings.TrimPrefix(name, ReservedMarker)
}

func IsReserved(name string) bool {
	return strings.HasPrefix(name, ReservedMarker)
}

// IsHiddenChild reports whether name is one of the two reserved hidden
// children of a leaf (or anything else using the triple marker).
func IsHiddenChild(name string) bool {
	return strings.HasPrefix(name, ReservedMarker+"_")
}

// RelativeSegments splits path below root into its directory names.
// Example: ("/p/Show", "/p/Show/MODEL/Props") -> ["MODEL", "Props"]
func RelativeSegments(root, path string) []string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}
