package openai

import (
	"context"
	"errors"
	"fmt"

	"triage-assist-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to the OpenAI chat completions API or any endpoint that
// speaks the same protocol (the OCR AI gateway is configured this way).
type OpenAIProvider struct {
	client *goopenai.Client
	model  string
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a provider. An empty baseURL targets api.openai.com.
func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = goopenai.GPT3Dot5Turbo
	}

	var client *goopenai.Client
	if apiKey != "" {
		client = goopenai.NewClientWithConfig(cfg)
	}

	return &OpenAIProvider{
		client: client,
		model:  model,
	}
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	if p.client == nil {
		return nil, errors.New("openai client not initialized")
	}

	options := llm.Apply(llm.Options{Temperature: 0.7, Model: p.model}, opts...)

	msgs := make([]goopenai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := m.Role
		if role != goopenai.ChatMessageRoleSystem && role != goopenai.ChatMessageRoleUser && role != goopenai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = goopenai.ChatMessageRoleUser
		}

		if len(m.Images) == 0 {
			msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
			continue
		}

		parts := []goopenai.ChatMessagePart{{Type: goopenai.ChatMessagePartTypeText, Text: m.Content}}
		for _, img := range m.Images {
			parts = append(parts, goopenai.ChatMessagePart{
				Type: goopenai.ChatMessagePartTypeImageURL,
				ImageURL: &goopenai.ChatMessageImageURL{
					URL:    img.DataURI(),
					Detail: goopenai.ImageURLDetailAuto,
				},
			})
		}
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, MultiContent: parts})
	}

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       options.Model,
		Messages:    msgs,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty choices from openai api")
	}

	model := resp.Model
	if model == "" {
		model = options.Model
	}

	return &llm.Completion{
		Content:    resp.Choices[0].Message.Content,
		Model:      model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Completion, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
