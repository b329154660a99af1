package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when the config names no model.
const DefaultOpenAIModel = "gpt-4o"

// OpenAIProvider rewrites text with an OpenAI chat model, or any server that
// speaks the same chat completions API.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIProvider creates a provider from cfg. Extra request options are
// applied after the ones derived from cfg.
func NewOpenAIProvider(cfg Config, opts ...openaiopt.RequestOption) *OpenAIProvider {
	var reqOpts []openaiopt.RequestOption
	if cfg.APIKey != "" {
		reqOpts = append(reqOpts, openaiopt.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, openaiopt.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, openaiopt.WithRequestTimeout(cfg.Timeout))
	}
	reqOpts = append(reqOpts, opts...)

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &OpenAIProvider{
		client:    openai.NewClient(reqOpts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Transform implements Provider.
func (p *OpenAIProvider) Transform(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log.Debugf("openai: %s, %d bytes", p.model, len(req.Text))
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(req.Settings)),
			openai.UserMessage(req.Text),
		},
		MaxCompletionTokens: openai.Int(p.maxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: %w: no choices", ErrMalformedResponse)
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("openai: %w: empty completion", ErrMalformedResponse)
	}
	return newResponse(req, text), nil
}
