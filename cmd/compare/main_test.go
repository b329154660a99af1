package main

import (
	"testing"

	godiff "github.com/sergi/go-diff/diffmatchpatch"
)

func TestAnalyzeGoDiff(t *testing.T) {
	diffs := []godiff.Diff{
		{Type: godiff.DiffEqual, Text: "a "},
		{Type: godiff.DiffDelete, Text: "b"},
		{Type: godiff.DiffInsert, Text: "c"},
		{Type: godiff.DiffEqual, Text: " d "},
		{Type: godiff.DiffInsert, Text: "e"},
	}

	got := analyzeGoDiff(diffs)
	want := alignStats{total: 5, same: 2, removed: 1, added: 2, changeRegions: 2}
	if got != want {
		t.Errorf("analyzeGoDiff() = %+v, want %+v", got, want)
	}
}

func TestWordDiff_Reconstructs(t *testing.T) {
	a := "The quick fox jumps"
	b := "The quick brown fox leaps"

	var gotA, gotB string
	for _, d := range wordDiff(godiff.New(), a, b) {
		switch d.Type {
		case godiff.DiffEqual:
			gotA += d.Text
			gotB += d.Text
		case godiff.DiffDelete:
			gotA += d.Text
		case godiff.DiffInsert:
			gotB += d.Text
		}
	}
	if gotA != a || gotB != b {
		t.Errorf("wordDiff reconstructed %q / %q, want %q / %q", gotA, gotB, a, b)
	}
}
