// Command compare checks wordiff alignments against go-diff's word-level
// diff on the same inputs, reporting segment counts, change regions and
// timing. Small cases are dumped in full.
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	godiff "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dacharyc/wordiff"
)

type testCase struct {
	name                 string
	original, humanized string
}

func main() {
	dump := flag.Bool("dump", false, "dump segments for small cases")
	flag.Parse()

	testCases := []testCase{
		{
			name:      "Single insertion",
			original:  "The quick fox",
			humanized: "The quick brown fox",
		},
		{
			name:      "Paraphrase with common words",
			original:  "The quick brown fox jumps over the lazy dog in the park",
			humanized: "A slow red fox leaps over the sleeping cat in the garden",
		},
		{
			name:      "Vocabulary swap",
			original:  "We will utilize the aforementioned methodology to facilitate outcomes.",
			humanized: "We will use this method to get results.",
		},
		{
			name:      "Reordered clause",
			original:  "After the meeting ended, everyone went home.",
			humanized: "Everyone went home after the meeting ended.",
		},
	}

	testCases = append(testCases, testCase{
		name:      "Long text (300 sentences, scattered edits)",
		original:  generateText(300, 0),
		humanized: generateText(300, 42),
	})

	for _, tc := range testCases {
		fmt.Printf("\n=== %s ===\n", tc.name)
		fmt.Printf("Original: %d tokens, humanized: %d tokens\n",
			len(wordiff.Tokenize(tc.original)), len(wordiff.Tokenize(tc.humanized)))

		start := time.Now()
		segments := wordiff.Align(tc.original, tc.humanized)
		alignTime := time.Since(start)

		dmp := godiff.New()
		start = time.Now()
		diffs := wordDiff(dmp, tc.original, tc.humanized)
		goDiffTime := time.Since(start)

		ours := analyzeSegments(segments)
		theirs := analyzeGoDiff(diffs)

		fmt.Printf("\nwordiff: %v\n", alignTime)
		fmt.Printf("  Segments: %d (Same: %d, Removed: %d, Added: %d)\n",
			ours.total, ours.same, ours.removed, ours.added)
		fmt.Printf("  Change regions: %d\n", ours.changeRegions)

		fmt.Printf("\ngo-diff: %v\n", goDiffTime)
		fmt.Printf("  Diffs: %d (Equal: %d, Delete: %d, Insert: %d)\n",
			theirs.total, theirs.same, theirs.removed, theirs.added)
		fmt.Printf("  Change regions: %d\n", theirs.changeRegions)

		if *dump && len(segments) <= 40 {
			fmt.Println("\nwordiff runs:")
			spew.Dump(wordiff.Runs(segments))
		}
	}
}

// wordDiff runs go-diff over whitespace-delimited tokens by mapping each
// token to a single rune.
func wordDiff(dmp *godiff.DiffMatchPatch, a, b string) []godiff.Diff {
	index := map[string]rune{}
	var tokens []string
	encode := func(s string) string {
		var sb strings.Builder
		for _, tok := range wordiff.Tokenize(s) {
			if tok == "" {
				continue
			}
			r, ok := index[tok]
			if !ok {
				tokens = append(tokens, tok)
				r = rune(len(tokens))
				index[tok] = r
			}
			sb.WriteRune(r)
		}
		return sb.String()
	}

	diffs := dmp.DiffMain(encode(a), encode(b), false)
	for i, d := range diffs {
		var sb strings.Builder
		for _, r := range d.Text {
			sb.WriteString(tokens[r-1])
		}
		diffs[i].Text = sb.String()
	}
	return diffs
}

type alignStats struct {
	total, same, removed, added int
	changeRegions               int
}

func analyzeSegments(segments []wordiff.Segment) alignStats {
	var s alignStats
	s.total = len(segments)
	for _, seg := range segments {
		switch seg.Kind {
		case wordiff.Same:
			s.same++
		case wordiff.Removed:
			s.removed++
		case wordiff.Added:
			s.added++
		}
	}
	s.changeRegions = wordiff.Stats(segments).ChangeRegions
	return s
}

// analyzeGoDiff counts go-diff output in the same terms as wordiff
// segments, one segment per diff.
func analyzeGoDiff(diffs []godiff.Diff) alignStats {
	kinds := map[godiff.Operation]wordiff.Kind{
		godiff.DiffEqual:  wordiff.Same,
		godiff.DiffDelete: wordiff.Removed,
		godiff.DiffInsert: wordiff.Added,
	}
	segments := make([]wordiff.Segment, len(diffs))
	for i, d := range diffs {
		segments[i] = wordiff.Segment{Kind: kinds[d.Type], Text: d.Text}
	}
	return analyzeSegments(segments)
}

func generateText(sentences int, seed int) string {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"writer", "draft", "sentence", "clear", "simple", "reader", "idea", "point",
		"however", "therefore", "also", "very", "really", "just", "quite", "often"}

	result := make([]string, sentences)
	for i := 0; i < sentences; i++ {
		sentence := make([]string, 6+i%4)
		for j := range sentence {
			sentence[j] = words[(i*7+j*13)%len(words)]
		}
		result[i] = strings.Join(sentence, " ") + "."
	}

	for i := seed % 10; i < sentences; i += 10 + seed%5 {
		result[i] = "This sentence was rewritten " + fmt.Sprint(i) + "."
	}

	return strings.Join(result, " ")
}
