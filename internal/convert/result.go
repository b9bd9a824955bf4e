package convert

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Result is the outcome of one conversion job. It is created once by the job
// and never mutated afterwards.
type Result struct {
	Source  string
	Dest    string
	OK      bool
	Message string
}

// Class buckets results for reporting.
type Class string

const (
	ClassSkip Class = "SKIP"
	ClassDry  Class = "DRY"
	ClassOK   Class = "OK"
	ClassFail Class = "FAIL"
)

const (
	messageOK   = "ok"
	messageSkip = "skip: output already up to date"
	messageDry  = "dry-run: conversion planned"
)

// Class derives the report bucket from the result message.
func (r Result) Class() Class {
	switch {
	case strings.HasPrefix(r.Message, "skip"):
		return ClassSkip
	case strings.HasPrefix(r.Message, "dry-run"):
		return ClassDry
	case r.OK:
		return ClassOK
	default:
		return ClassFail
	}
}

// Sort orders results case-insensitively by source path so the report is
// deterministic regardless of completion order.
func Sort(results []Result) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(results, func(i, j int) bool {
		if cmp := c.CompareString(results[i].Source, results[j].Source); cmp != 0 {
			return cmp < 0
		}
		return results[i].Source < results[j].Source
	})
}
