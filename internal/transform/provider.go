package transform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("wordiff.transform")

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown transformation provider")

// Provider rewrites text according to the request settings.
type Provider interface {
	Transform(ctx context.Context, req Request) (*Response, error)
}

// Provider names accepted by New.
const (
	ProviderHTTP      = "http"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config selects and configures a provider.
type Config struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// MaxTokens caps the length of model output. Ignored by the HTTP provider.
	MaxTokens int
}

// New creates the provider named in cfg.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Name) {
	case "", ProviderHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("http provider: base URL is required")
		}
		return NewHTTPProvider(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
}

// newResponse fills in a response for text produced locally rather than
// returned by a backend that assigns its own ID.
func newResponse(req Request, humanized string) *Response {
	return &Response{
		ID:            ksuid.New().String(),
		OriginalText:  req.Text,
		HumanizedText: humanized,
		Settings:      req.Settings,
		Timestamp:     time.Now(),
	}
}
