package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Tone ")
	require.NoError(t, err)
	assert.Equal(t, Tone, m)

	_, err = ParseMode("parafrase")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
	assert.Contains(t, err.Error(), `did you mean "paraphrase"?`)

	_, err = ParseMode("voc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "vocabulary"?`)

	_, err = ParseMode("zzzzzzzzzz")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestParseAudienceAndVerbosity(t *testing.T) {
	a, err := ParseAudience("academic")
	require.NoError(t, err)
	assert.Equal(t, Academic, a)
	assert.Equal(t, "Academic", a.Label())

	_, err = ParseAudience("technicl")
	assert.ErrorContains(t, err, `did you mean "technical"?`)

	v, err := ParseVerbosity("DETAILED")
	require.NoError(t, err)
	assert.Equal(t, Detailed, v)

	_, err = ParseVerbosity("")
	assert.Error(t, err)
}

func TestModeInfo(t *testing.T) {
	for _, m := range Modes {
		assert.NotEmpty(t, m.Label(), m)
		assert.NotEmpty(t, m.Description(), m)
	}
	for _, a := range Audiences {
		assert.NotEmpty(t, a.Label(), a)
	}
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"bad mode", func(s *Settings) { s.Mode = "rewrite" }},
		{"formality low", func(s *Settings) { s.Formality = -1 }},
		{"formality high", func(s *Settings) { s.Formality = 101 }},
		{"bad audience", func(s *Settings) { s.Audience = "kids" }},
		{"bad verbosity", func(s *Settings) { s.Verbosity = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestRequestValidate(t *testing.T) {
	req := Request{Text: "  \n\t", Settings: DefaultSettings()}
	assert.ErrorIs(t, req.Validate(), ErrEmptyText)

	req.Text = "hello"
	assert.NoError(t, req.Validate())
}

func TestNew(t *testing.T) {
	p, err := New(Config{Name: "http", BaseURL: "http://localhost:5000"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPProvider{}, p)

	_, err = New(Config{Name: "http"})
	assert.Error(t, err)

	p, err = New(Config{Name: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &AnthropicProvider{}, p)

	p, err = New(Config{Name: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)

	_, err = New(Config{Name: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestSystemPrompt(t *testing.T) {
	s := DefaultSettings()
	s.Mode = Tone
	s.Formality = 90
	s.Audience = Technical
	s.Verbosity = Concise

	p := systemPrompt(s)
	assert.Contains(t, p, Tone.Description())
	assert.Contains(t, p, "Technical")
	assert.Contains(t, p, "formal (formality 90/100)")
	assert.Contains(t, p, "tighten")
	assert.Contains(t, p, "Vary sentence length")

	s.DeepHumanization = false
	s.Formality = 10
	p = systemPrompt(s)
	assert.Contains(t, p, "informal")
	assert.NotContains(t, p, "Vary sentence length")
}
