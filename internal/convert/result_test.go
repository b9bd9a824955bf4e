package convert

import (
	"slices"
	"testing"
)

func TestResultClass(t *testing.T) {
	cases := []struct {
		result Result
		want   Class
	}{
		{Result{OK: true, Message: "skip: output already up to date"}, ClassSkip},
		{Result{OK: true, Message: "dry-run: conversion planned"}, ClassDry},
		{Result{OK: true, Message: "ok"}, ClassOK},
		{Result{Message: "verify mismatch: PCM digests differ"}, ClassFail},
		{Result{Message: "command not found: ffmpeg"}, ClassFail},
	}
	for _, tc := range cases {
		if got := tc.result.Class(); got != tc.want {
			t.Errorf("Class(%q) = %s, want %s", tc.result.Message, got, tc.want)
		}
	}
}

func TestSortOrdersBySourceCaseInsensitively(t *testing.T) {
	results := []Result{
		{Source: "Zoo/track.flac"},
		{Source: "ambient/track.flac"},
		{Source: "Beta/track.flac"},
	}
	Sort(results)
	got := []string{results[0].Source, results[1].Source, results[2].Source}
	want := []string{"ambient/track.flac", "Beta/track.flac", "Zoo/track.flac"}
	if !slices.Equal(got, want) {
		t.Fatalf("sorted %v, want %v", got, want)
	}
}
