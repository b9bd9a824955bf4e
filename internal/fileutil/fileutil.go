package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnsureParentDir creates the parent directory of path, recursively, if it
// does not already exist.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// RemoveIfEmpty deletes path when it is a zero-byte regular file. Removal is
// best-effort; errors are ignored.
func RemoveIfEmpty(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() != 0 {
		return
	}
	_ = os.Remove(path)
}

// IsExecutable reports whether info describes a file the current user could
// execute. On Windows any regular file qualifies.
func IsExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
