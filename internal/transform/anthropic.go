package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when the config names no model.
const DefaultAnthropicModel = "claude-sonnet-4-5"

// defaultMaxTokens caps model output when the config sets no limit.
const defaultMaxTokens = 4096

// AnthropicProvider rewrites text with a Claude model.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider creates a provider from cfg. Extra request options
// are applied after the ones derived from cfg.
func NewAnthropicProvider(cfg Config, opts ...anthropicopt.RequestOption) *AnthropicProvider {
	var reqOpts []anthropicopt.RequestOption
	if cfg.APIKey != "" {
		reqOpts = append(reqOpts, anthropicopt.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, anthropicopt.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, anthropicopt.WithRequestTimeout(cfg.Timeout))
	}
	reqOpts = append(reqOpts, opts...)

	model := cfg.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &AnthropicProvider{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Transform implements Provider.
func (p *AnthropicProvider) Transform(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log.Debugf("anthropic: %s, %d bytes", p.model, len(req.Text))
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt(req.Settings)}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Text)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, fmt.Errorf("anthropic: %w: empty completion", ErrMalformedResponse)
	}
	return newResponse(req, text), nil
}
