package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"triage-assist-be/pkg/llm"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	client *resty.Client
	apiKey string
	model  string
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, baseURL, model string) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(60 * time.Second).
			SetHeader("Content-Type", "application/json"),
		apiKey: apiKey,
		model:  model,
	}
}

// --- Request/Response structs (Internal to this package) ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// --- Interface Implementation ---

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	if p.apiKey == "" {
		return nil, errors.New("gemini api key not configured")
	}

	options := llm.Apply(llm.Options{Temperature: 0.7, Model: p.model}, opts...)

	payload := generateRequest{
		Contents: make([]content, 0, len(history)),
		GenerationConfig: generationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}

	var system []string
	for _, msg := range history {
		if msg.Role == llm.RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}
		c := content{Role: role, Parts: []part{{Text: msg.Content}}}
		for _, img := range msg.Images {
			c.Parts = append(c.Parts, part{InlineData: &inlineData{MimeType: img.MIMEType, Data: img.Base64}})
		}
		payload.Contents = append(payload.Contents, c)
	}
	if len(system) > 0 {
		payload.SystemInstruction = &content{Parts: []part{{Text: strings.Join(system, "\n\n")}}}
	}

	var out generateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", p.apiKey).
		SetBody(payload).
		SetResult(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", options.Model))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini error: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty candidates from gemini api")
	}

	var text strings.Builder
	for _, pt := range out.Candidates[0].Content.Parts {
		text.WriteString(pt.Text)
	}

	model := out.ModelVersion
	if model == "" {
		model = options.Model
	}

	return &llm.Completion{
		Content:    text.String(),
		Model:      model,
		TokensUsed: out.UsageMetadata.TotalTokenCount,
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Completion, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}
