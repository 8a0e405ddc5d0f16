package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"triage-assist-be/pkg/llm"
)

// DefaultModel is the multimodal model requested from the AI gateway.
const DefaultModel = "google/gemini-2.5-flash"

const ExtractionPrompt = `Extract all text and structured data from this medical report.

Return JSON with:
{
  "extracted_text": "Full OCR text",
  "structured_data": {
    "lab_values": [{"test": "", "value": "", "unit": "", "reference_range": "", "flag": ""}],
    "dates": [],
    "medications": [],
    "diagnoses": [],
    "vital_signs": {}
  }
}`

var ErrEmptyDocument = errors.New("document is empty")

// Result is what gets stored on the report file once OCR completes.
type Result struct {
	ExtractedText  string         `json:"extracted_text"`
	StructuredData map[string]any `json:"structured_data"`
}

// ParseResult decodes the model output. Output that is not a JSON object is kept
// verbatim as the extracted text with empty structured data.
func ParseResult(text string) Result {
	fallback := Result{ExtractedText: text, StructuredData: map[string]any{}}

	body := strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var raw struct {
		ExtractedText  *string        `json:"extracted_text"`
		StructuredData map[string]any `json:"structured_data"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &raw); err != nil {
		return fallback
	}

	res := Result{StructuredData: raw.StructuredData}
	if raw.ExtractedText != nil {
		res.ExtractedText = *raw.ExtractedText
	} else {
		res.ExtractedText = text
	}
	if res.StructuredData == nil {
		res.StructuredData = map[string]any{}
	}
	return res
}

// Extractor runs the extraction prompt against a multimodal provider.
type Extractor struct {
	provider llm.LLMProvider
	model    string
}

func NewExtractor(provider llm.LLMProvider, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{provider: provider, model: model}
}

// Extract sends the document inline and returns the parsed result and the raw reply.
func (e *Extractor) Extract(ctx context.Context, mimeType string, document []byte) (Result, string, error) {
	if e.provider == nil {
		return Result{}, "", errors.New("ocr provider not configured")
	}
	if len(document) == 0 {
		return Result{}, "", ErrEmptyDocument
	}

	completion, err := e.provider.Chat(ctx, []llm.Message{{
		Role:    llm.RoleUser,
		Content: ExtractionPrompt,
		Images: []llm.Image{{
			MIMEType: mimeType,
			Base64:   base64.StdEncoding.EncodeToString(document),
		}},
	}}, llm.WithModel(e.model))
	if err != nil {
		return Result{}, "", fmt.Errorf("ocr extraction: %w", err)
	}

	return ParseResult(completion.Content), completion.Content, nil
}
