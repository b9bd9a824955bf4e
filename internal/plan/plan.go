// Package plan maps source files onto destination paths. The mapping is pure
// so two jobs can never disagree about where a source lands.
package plan

import (
	"path/filepath"
	"strings"
)

// OutputExt is the container extension every destination carries.
const OutputExt = ".m4a"

// Planner computes destination paths for one run.
//
// Exactly one of OutputDir and InPlace is in effect. Root, when set, is the
// single input directory whose structure is mirrored under OutputDir; when
// empty, outputs land flat in OutputDir.
type Planner struct {
	OutputDir string
	InPlace   bool
	Root      string
}

// Destination returns the output path for src: always the source filename
// with its extension replaced, placed per the run's output mode.
func (p Planner) Destination(src string) string {
	if p.InPlace {
		return replaceExt(src)
	}
	if p.Root != "" {
		if rel, err := filepath.Rel(p.Root, src); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.Join(p.OutputDir, replaceExt(rel))
		}
	}
	return filepath.Join(p.OutputDir, replaceExt(filepath.Base(src)))
}

func replaceExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + OutputExt
}
