package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage-assist-be/pkg/llm"
)

func TestGeminiProvider_Chat(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"triage_level\":"}, {"text": "\"self-care\"}"}]}}],
			"usageMetadata": {"totalTokenCount": 321},
			"modelVersion": "gemini-test-001"
		}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("secret", srv.URL, "gemini-test")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "be careful"},
		{Role: llm.RoleUser, Content: "read this", Images: []llm.Image{{MIMEType: "image/png", Base64: "aGVsbG8="}}},
	}, llm.WithTemperature(0.3), llm.WithMaxTokens(100))

	require.NoError(t, err)
	assert.Equal(t, `{"triage_level":"self-care"}`, out.Content)
	assert.Equal(t, "gemini-test-001", out.Model)
	assert.Equal(t, 321, out.TokensUsed)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be careful", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "image/png", got.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, 0.3, got.GenerationConfig.Temperature)
	assert.Equal(t, 100, got.GenerationConfig.MaxOutputTokens)
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "quota", status: http.StatusTooManyRequests, body: `{"error":{"message":"quota"}}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGeminiProvider("secret", srv.URL, "").Generate(context.Background(), "hi")
			assert.Error(t, err)
		})
	}
}

func TestGeminiProvider_MissingKey(t *testing.T) {
	_, err := NewGeminiProvider("", "", "").Generate(context.Background(), "hi")
	assert.Error(t, err)
}
