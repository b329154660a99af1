// Package transform talks to the service that rewrites ("humanizes") text.
//
// The service is a black box: it takes the text plus a handful of style
// settings and returns the rewritten text. Failures are returned to the
// caller, which must not compare texts for a failed request.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrEmptyText is returned for a request whose text is blank.
	ErrEmptyText = errors.New("no text to transform")
	// ErrInvalidSettings wraps every settings validation failure.
	ErrInvalidSettings = errors.New("invalid transformation settings")
)

// Mode selects what kind of rewrite the service performs.
type Mode string

const (
	Paraphrase Mode = "paraphrase"
	Style      Mode = "style"
	Tone       Mode = "tone"
	Vocabulary Mode = "vocabulary"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{Paraphrase, Style, Tone, Vocabulary}

var modeInfo = map[Mode]struct{ label, description string }{
	Paraphrase: {"Paraphrase", "Rephrase the text with different wording while maintaining meaning"},
	Style:      {"Style", "Adjust the writing style for better readability and flow"},
	Tone:       {"Tone", "Modify the emotional tone and voice of the text"},
	Vocabulary: {"Vocabulary", "Replace with more sophisticated or varied word choices"},
}

// Label returns the display name of the mode.
func (m Mode) Label() string { return modeInfo[m].label }

// Description explains what the mode does.
func (m Mode) Description() string { return modeInfo[m].description }

// Audience is the readership the rewrite targets.
type Audience string

const (
	General      Audience = "general"
	Academic     Audience = "academic"
	Professional Audience = "professional"
	Casual       Audience = "casual"
	Technical    Audience = "technical"
)

// Audiences lists every supported audience in display order.
var Audiences = []Audience{General, Academic, Professional, Casual, Technical}

var audienceLabels = map[Audience]string{
	General:      "General Audience",
	Academic:     "Academic",
	Professional: "Professional",
	Casual:       "Casual",
	Technical:    "Technical",
}

// Label returns the display name of the audience.
func (a Audience) Label() string { return audienceLabels[a] }

// Verbosity controls how much the rewrite may lengthen or shorten the text.
type Verbosity string

const (
	Concise  Verbosity = "concise"
	Balanced Verbosity = "balanced"
	Detailed Verbosity = "detailed"
)

// Verbosities lists every supported verbosity.
var Verbosities = []Verbosity{Concise, Balanced, Detailed}

// Settings are the knobs sent along with the text.
type Settings struct {
	Mode             Mode      `json:"mode" yaml:"mode"`
	Formality        int       `json:"formality" yaml:"formality"` // 0 (casual) to 100 (formal)
	Audience         Audience  `json:"targetAudience" yaml:"audience"`
	Verbosity        Verbosity `json:"verbosity" yaml:"verbosity"`
	DeepHumanization bool      `json:"deepHumanization" yaml:"deep_humanization"`
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		Mode:             Paraphrase,
		Formality:        50,
		Audience:         General,
		Verbosity:        Balanced,
		DeepHumanization: true,
	}
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return err
	}
	if s.Formality < 0 || s.Formality > 100 {
		return fmt.Errorf("%w: formality %d out of range 0-100", ErrInvalidSettings, s.Formality)
	}
	if _, err := ParseAudience(string(s.Audience)); err != nil {
		return err
	}
	if _, err := ParseVerbosity(string(s.Verbosity)); err != nil {
		return err
	}
	return nil
}

// Request is one transformation call.
type Request struct {
	Text string
	Settings
}

// Validate checks the text and settings.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return r.Settings.Validate()
}

// Response is the result of a successful transformation.
type Response struct {
	ID            string
	OriginalText  string
	HumanizedText string
	Settings
	Timestamp time.Time
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(name string) (Mode, error) {
	return parseChoice("mode", name, Modes)
}

// ParseAudience parses an audience name, case-insensitively.
func ParseAudience(name string) (Audience, error) {
	return parseChoice("audience", name, Audiences)
}

// ParseVerbosity parses a verbosity name, case-insensitively.
func ParseVerbosity(name string) (Verbosity, error) {
	return parseChoice("verbosity", name, Verbosities)
}

func parseChoice[T ~string](kind, name string, choices []T) (T, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	names := make([]string, len(choices))
	for i, c := range choices {
		if string(c) == want {
			return c, nil
		}
		names[i] = string(c)
	}

	err := fmt.Errorf("%w: unknown %s %q", ErrInvalidSettings, kind, name)
	if s := suggest(want, names); s != "" {
		err = fmt.Errorf("%w (did you mean %q?)", err, s)
	}
	return "", err
}

// maxSuggestDistance bounds how far a typo may be from a suggestion.
const maxSuggestDistance = 3

// suggest returns the closest candidate to an unknown name, or "".
// Abbreviations ("para") are matched first, then near-miss typos.
func suggest(name string, candidates []string) string {
	if name == "" {
		return ""
	}

	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
