package wordiff

import "fmt"

// EmptyPolicy decides what a Comparer does when either text is empty.
type EmptyPolicy int

const (
	// SkipEmpty returns no segments when either text is empty. Nothing is
	// compared until both sides have content.
	SkipEmpty EmptyPolicy = iota
	// AlignEmpty passes empty texts to the engine, which reports the other
	// side as entirely Added or Removed.
	AlignEmpty
)

// String returns the policy name as used in configuration.
func (p EmptyPolicy) String() string {
	switch p {
	case SkipEmpty:
		return "skip"
	case AlignEmpty:
		return "align"
	default:
		return "unknown"
	}
}

// ParseEmptyPolicy parses "skip" or "align". An empty name means SkipEmpty.
func ParseEmptyPolicy(name string) (EmptyPolicy, error) {
	switch name {
	case "", "skip":
		return SkipEmpty, nil
	case "align":
		return AlignEmpty, nil
	}
	return SkipEmpty, fmt.Errorf("unknown empty-input policy %q (want skip or align)", name)
}

// Comparer is the calling layer around Align: it applies an empty-input
// policy and optionally memoizes results. The zero value skips empty input
// and does not cache.
type Comparer struct {
	EmptyInput EmptyPolicy
	Cache      *Cache
	Options    []Option
}

// Compare aligns original against transformed.
func (c *Comparer) Compare(original, transformed string) []Segment {
	if c.EmptyInput == SkipEmpty && (original == "" || transformed == "") {
		return nil
	}

	if c.Cache != nil {
		if segments, ok := c.Cache.Get(original, transformed); ok {
			return segments
		}
	}

	segments := Align(original, transformed, c.Options...)

	if c.Cache != nil {
		c.Cache.Put(original, transformed, segments)
	}
	return segments
}
