package wordiff

import "unicode/utf8"

// TrimRuns splits leading and trailing whitespace off every changed run so
// highlight markers hug the words they mark. The whitespace stays in place
// as its own run of the same kind, so concatenating the result still
// reproduces the input runs:
//
//	Added "brown "  ->  Added "brown", Added " "
//
// Renderers draw blank changed runs without decoration. Same runs are
// returned untouched.
func TrimRuns(runs []Run) []Run {
	if len(runs) == 0 {
		return runs
	}

	result := make([]Run, 0, len(runs))
	for _, run := range runs {
		if run.Kind == Same || run.Blank() {
			result = append(result, run)
			continue
		}

		lead, core, trail := splitSpace(run.Text)
		if lead != "" {
			result = append(result, Run{Kind: run.Kind, Text: lead})
		}
		result = append(result, Run{Kind: run.Kind, Text: core, Tokens: run.Tokens})
		if trail != "" {
			result = append(result, Run{Kind: run.Kind, Text: trail})
		}
	}

	return result
}

// splitSpace cuts s into leading whitespace, body and trailing whitespace.
func splitSpace(s string) (lead, core, trail string) {
	start := 0
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !isSpace(r) {
			break
		}
		start += size
	}

	end := len(s)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !isSpace(r) {
			break
		}
		end -= size
	}

	return s[:start], s[start:end], s[end:]
}
