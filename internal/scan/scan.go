// Package scan expands the input arguments of a run into the set of FLAC
// files to convert.
package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lacquer/internal/logging"
)

// InputExt is the recognized source extension, matched case-insensitively.
const InputExt = ".flac"

// Collect expands files and directories into a deduplicated, case-insensitively
// sorted list of FLAC files. Arguments that are neither an existing FLAC file
// nor a directory are logged and skipped.
func Collect(logger *slog.Logger, inputs []string) []string {
	if logger == nil {
		logger = logging.NewNop()
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		switch {
		case err == nil && info.IsDir():
			_ = filepath.WalkDir(input, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					logger.Warn("skipping unreadable path", logging.String("path", path), logging.Error(err))
					return nil
				}
				if !entry.IsDir() && hasInputExt(path) {
					add(path)
				}
				return nil
			})
		case err == nil && hasInputExt(input):
			add(input)
		default:
			logger.Warn("ignoring input", logging.String("path", input))
		}
	}

	SortPaths(files)
	return files
}

// InputRoot reports the directory to mirror output structure from: set only
// when the run was given exactly one input and it is a directory.
func InputRoot(inputs []string) (string, bool) {
	if len(inputs) != 1 {
		return "", false
	}
	info, err := os.Stat(inputs[0])
	if err != nil || !info.IsDir() {
		return "", false
	}
	return filepath.Clean(inputs[0]), true
}

// SortPaths orders paths case-insensitively and deterministically.
func SortPaths(paths []string) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(paths, func(i, j int) bool {
		if cmp := c.CompareString(paths[i], paths[j]); cmp != 0 {
			return cmp < 0
		}
		return paths[i] < paths[j]
	})
}

func hasInputExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), InputExt)
}
