package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CopyFileAndComputeChecksum copies src to dst through a temporary file in
// the destination directory and renames it into place, so dst is either the
// complete copy or untouched. A missing src fails before anything is written.
func CopyFileAndComputeChecksum(src string, dst string) (sha256sum string, size int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".reelhouse-*")
	if err != nil {
		return "", 0, err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	hasher := sha256.New()
	writer := io.MultiWriter(tmp, hasher)
	if size, err = io.Copy(writer, in); err != nil {
		_ = tmp.Close()
		return "", 0, err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", 0, err
	}
	if err = tmp.Close(); err != nil {
		return "", 0, err
	}
	if err = os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return "", 0, err
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(hasher.Sum(nil)), size, nil
}

func CopyFile(src string, dst string) error {
	_, _, err := CopyFileAndComputeChecksum(src, dst)
	return err
}

// CopyFileIfMissing copies src to dst unless dst already exists.
func CopyFileIfMissing(src string, dst string) (bool, error) {
	if FileExists(dst) {
		return false, nil
	}
	if err := CopyFile(src, dst); err != nil {
		return false, err
	}
	return true, nil
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListDirNames returns the names of the child directories of dir, sorted.
func ListDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// WriteFileAtomic writes data to a temporary file next to dst and renames it
// over dst.
func WriteFileAtomic(dst string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".reelhouse-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// InsertLines inserts lines into the text file at path so that the first of
// them becomes line index (0-based). A file shorter than index gets them
// appended. Each inserted line must carry its own newline.
func InsertLines(path string, index int, lines ...string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	existing := strings.SplitAfter(string(data), "\n")
	if len(existing) > 0 && existing[len(existing)-1] == "" {
		existing = existing[:len(existing)-1]
	}
	if index > len(existing) {
		index = len(existing)
	}
	if index > 0 && !strings.HasSuffix(existing[index-1], "\n") {
		existing[index-1] += "\n"
	}
	out := make([]string, 0, len(existing)+len(lines))
	out = append(out, existing[:index]...)
	out = append(out, lines...)
	out = append(out, existing[index:]...)
	return WriteFileAtomic(path, []byte(strings.Join(out, "")), info.Mode().Perm())
}
