package transform

import (
	"fmt"
	"strings"
)

// systemPrompt turns settings into instructions for a language model.
func systemPrompt(s Settings) string {
	var b strings.Builder

	b.WriteString("You rewrite text so it reads naturally, as if written by a person.\n")
	fmt.Fprintf(&b, "Task: %s.\n", s.Mode.Description())
	fmt.Fprintf(&b, "Audience: %s.\n", s.Audience.Label())
	fmt.Fprintf(&b, "Register: %s (formality %d/100).\n", formalityLevel(s.Formality), s.Formality)

	switch s.Verbosity {
	case Concise:
		b.WriteString("Length: tighten the text; drop filler and redundancy.\n")
	case Detailed:
		b.WriteString("Length: expand where it helps clarity; add connective detail.\n")
	default:
		b.WriteString("Length: keep roughly the original length.\n")
	}

	if s.DeepHumanization {
		b.WriteString("Vary sentence length and structure, prefer concrete wording, and avoid stock phrases.\n")
	}

	b.WriteString("Keep the meaning, facts and any names unchanged. ")
	b.WriteString("Reply with the rewritten text only, without commentary or quotation marks.")
	return b.String()
}

func formalityLevel(f int) string {
	switch {
	case f < 34:
		return "informal"
	case f < 67:
		return "neutral"
	default:
		return "formal"
	}
}
