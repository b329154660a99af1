// Package wordiff aligns an original text with a rewritten version of it at
// word granularity and classifies every token as unchanged, added or removed.
//
// The engine is a single left-to-right scan with two cursors and a small,
// bounded lookahead. It is not a minimal diff:
//   - Tokenization: text is split into alternating word and whitespace runs
//   - Alignment: mismatches are recovered by searching a few tokens ahead,
//     first in the rewritten text, then in the original
//   - Fallback: anything not found within the window is a substitution
//
// The output favours readability of short-to-medium prose over optimality.
package wordiff

import "fmt"

// Kind identifies how a token changed between the two texts.
type Kind int

const (
	// Same means the token appears unchanged in both texts.
	Same Kind = iota
	// Added means the token appears only in the transformed text.
	Added
	// Removed means the token appears only in the original text.
	Removed
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Same:
		return "Same"
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind as its lower-case name.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Same:
		return []byte("same"), nil
	case Added:
		return []byte("added"), nil
	case Removed:
		return []byte("removed"), nil
	}
	return nil, fmt.Errorf("wordiff: invalid kind %d", int(k))
}

// UnmarshalText decodes a lower-case kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "same":
		*k = Same
	case "added":
		*k = Added
	case "removed":
		*k = Removed
	default:
		return fmt.Errorf("wordiff: unknown kind %q", text)
	}
	return nil
}

// Segment is one classified token. Segment order is presentation order.
type Segment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// DefaultLookahead is the number of tokens searched ahead when the tokens
// under both cursors disagree.
const DefaultLookahead = 3

// options holds configuration for the alignment engine.
type options struct {
	lookahead int
	// step, when set, observes every cursor position the scan visits.
	step func(i, j int)
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() *options {
	return &options{
		lookahead: DefaultLookahead,
	}
}

// Option configures alignment behavior.
type Option func(*options)

// WithLookahead sets how many tokens ahead the engine searches for a match
// before treating a mismatch as a substitution. Values below 1 disable the
// search entirely.
// Default: DefaultLookahead.
func WithLookahead(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.lookahead = n
	}
}

// Align tokenizes both texts and aligns them.
//
// An empty text tokenizes to an empty sequence, so Align("", "hello")
// yields a single Added segment and Align("", "") yields nothing.
func Align(original, transformed string, opts ...Option) []Segment {
	return AlignTokens(Tokenize(original), Tokenize(transformed), opts...)
}
