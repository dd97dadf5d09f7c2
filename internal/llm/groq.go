package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// defaultGroqBaseURL is Groq's OpenAI-compatible endpoint.
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"

	// defaultGroqModel is the model used when no override is provided.
	defaultGroqModel = "llama-3.1-8b-instant"

	// defaultMaxTokens is the default maximum output tokens per request.
	defaultMaxTokens = 1024
)

// GroqProvider implements Provider against the Groq chat-completions API using
// the OpenAI-compatible client.
type GroqProvider struct {
	client *openai.Client
	model  string
}

// Compile-time check that GroqProvider satisfies the Provider interface.
var _ Provider = (*GroqProvider)(nil)

// GroqOption configures a GroqProvider.
type GroqOption func(*groqConfig)

type groqConfig struct {
	apiKey  string
	model   string
	baseURL string
}

// WithAPIKey sets the API key. If not provided, the provider reads
// GROQ_API_KEY from the environment.
func WithAPIKey(key string) GroqOption {
	return func(c *groqConfig) {
		c.apiKey = key
	}
}

// WithModel overrides the default model for all requests.
func WithModel(model string) GroqOption {
	return func(c *groqConfig) {
		c.model = model
	}
}

// WithBaseURL overrides the API endpoint. Used by tests to point the provider
// at a local server.
func WithBaseURL(url string) GroqOption {
	return func(c *groqConfig) {
		c.baseURL = url
	}
}

// NewGroqProvider creates a new Groq provider.
// It returns an error if no API key is available (neither via option nor env),
// so a misconfigured caller fails before any network traffic.
func NewGroqProvider(opts ...GroqOption) (*GroqProvider, error) {
	cfg := groqConfig{
		model:   defaultGroqModel,
		baseURL: defaultGroqBaseURL,
	}
	for _, o := range opts {
		o(&cfg)
	}

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: GROQ_API_KEY not set and no API key provided")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = cfg.baseURL

	return &GroqProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.model,
	}, nil
}

// Complete sends a completion request to the chat-completions endpoint.
func (p *GroqProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	maxTokens := defaultMaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	params := openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	if req.Temperature != nil {
		params.Temperature = float32(*req.Temperature)
	}

	if req.JSONOnly {
		params.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("groq: completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("groq: API returned no choices")
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// Model returns the default model configured for this provider.
func (p *GroqProvider) Model() string {
	return p.model
}
