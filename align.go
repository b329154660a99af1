package wordiff

// AlignTokens aligns two token sequences and returns the classified segments.
//
// The scan keeps a cursor i into original and j into transformed, both
// starting at 0. At each step:
//  1. original exhausted: transformed[j] is Added
//  2. transformed exhausted: original[i] is Removed
//  3. tokens equal: Same, both cursors advance
//  4. original[i] found k tokens ahead in transformed: the k skipped tokens are Added
//  5. transformed[j] found k tokens ahead in original: the k skipped tokens are Removed
//  6. otherwise: Removed original[i] then Added transformed[j]
//
// Rule 4 is always tried before rule 5, so ambiguous mismatches are reported
// as insertions. Every step advances at least one cursor, so the scan runs in
// linear time.
func AlignTokens(original, transformed []string, opts ...Option) []Segment {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := len(original)
	n := len(transformed)
	if m == 0 && n == 0 {
		return nil
	}

	segments := make([]Segment, 0, max(m, n))
	i, j := 0, 0

	for i < m || j < n {
		if o.step != nil {
			o.step(i, j)
		}

		switch {
		case i == m:
			segments = append(segments, Segment{Kind: Added, Text: transformed[j]})
			j++

		case j == n:
			segments = append(segments, Segment{Kind: Removed, Text: original[i]})
			i++

		case original[i] == transformed[j]:
			segments = append(segments, Segment{Kind: Same, Text: original[i]})
			i++
			j++

		default:
			if k := scanAhead(transformed, j, original[i], o.lookahead); k > 0 {
				// The matching token is consumed as Same on the next step.
				for _, tok := range transformed[j : j+k] {
					segments = append(segments, Segment{Kind: Added, Text: tok})
				}
				j += k
				continue
			}

			if k := scanAhead(original, i, transformed[j], o.lookahead); k > 0 {
				for _, tok := range original[i : i+k] {
					segments = append(segments, Segment{Kind: Removed, Text: tok})
				}
				i += k
				continue
			}

			segments = append(segments,
				Segment{Kind: Removed, Text: original[i]},
				Segment{Kind: Added, Text: transformed[j]},
			)
			i++
			j++
		}
	}

	if o.step != nil {
		o.step(i, j)
	}

	return segments
}

// scanAhead returns the smallest k in [1, window] with seq[from+k] == target,
// or 0 if there is none.
func scanAhead(seq []string, from int, target string, window int) int {
	for k := 1; k <= window && from+k < len(seq); k++ {
		if seq[from+k] == target {
			return k
		}
	}
	return 0
}
