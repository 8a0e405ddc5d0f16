package triage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/pkg/llm"
)

const (
	analysisTemperature = 0.3
	analysisMaxTokens   = 2048
	defaultCallTimeout  = 30 * time.Second
)

var ErrEmptyCompletion = errors.New("empty completion from provider")

// NamedProvider is one link of the fallback chain.
type NamedProvider struct {
	Name     string
	Provider llm.LLMProvider
}

// Attempt describes one provider call, successful or not.
type Attempt struct {
	Provider     string
	Model        string
	SystemPrompt string
	UserPrompt   string
	RawResponse  string
	Parsed       map[string]any
	TokensUsed   int
	Duration     time.Duration
	Err          error
}

// Request is a single analysis.
type Request struct {
	Input      SymptomInput
	ReportData map[string]any
	// OnAttempt, when set, observes every provider attempt (used for auditing).
	OnAttempt func(ctx context.Context, a Attempt)
}

type Analyzer struct {
	providers   []NamedProvider
	callTimeout time.Duration
	logger      logger.ILogger
}

func NewAnalyzer(log logger.ILogger, callTimeout time.Duration, providers ...NamedProvider) *Analyzer {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	chain := make([]NamedProvider, 0, len(providers))
	for _, p := range providers {
		if p.Provider != nil {
			chain = append(chain, p)
		}
	}
	return &Analyzer{
		providers:   chain,
		callTimeout: callTimeout,
		logger:      log,
	}
}

// Providers reports the configured chain in call order.
func (a *Analyzer) Providers() []string {
	names := make([]string, len(a.providers))
	for i, p := range a.providers {
		names[i] = p.Name
	}
	return names
}

// Analyze walks the provider chain and falls back to the heuristic. It never fails.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Result {
	userPrompt := BuildUserPrompt(req.Input, req.ReportData)

	for _, p := range a.providers {
		attempt := a.try(ctx, p, userPrompt)
		if req.OnAttempt != nil {
			req.OnAttempt(ctx, attempt)
		}

		if attempt.Err != nil {
			a.logger.Warn("TRIAGE", "Provider failed, falling through", map[string]interface{}{
				"provider":    p.Name,
				"error":       attempt.Err.Error(),
				"duration_ms": attempt.Duration.Milliseconds(),
			})
			continue
		}

		res := ApplySafetyFloor(Normalize(attempt.Parsed), req.Input)
		res.Source = p.Name
		a.logger.Info("TRIAGE", "Analysis completed", map[string]interface{}{
			"provider":     p.Name,
			"model":        attempt.Model,
			"triage_level": res.TriageLevel,
			"medicines":    len(res.Recommendations.Medicines),
			"remedies":     len(res.Recommendations.HomeRemedies),
		})
		return res
	}

	res := Heuristic(req.Input)
	a.logger.Warn("TRIAGE", "All providers failed, using heuristic", map[string]interface{}{
		"providers":    a.Providers(),
		"triage_level": res.TriageLevel,
	})
	return res
}

func (a *Analyzer) try(ctx context.Context, p NamedProvider, userPrompt string) Attempt {
	attempt := Attempt{
		Provider:     p.Name,
		SystemPrompt: SystemPrompt,
		UserPrompt:   userPrompt,
	}

	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	start := time.Now()
	completion, err := p.Provider.Chat(callCtx, []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: userPrompt + "\n\n" + JSONOnlySuffix},
	},
		llm.WithTemperature(analysisTemperature),
		llm.WithMaxTokens(analysisMaxTokens),
	)
	attempt.Duration = time.Since(start)

	if err != nil {
		attempt.Err = fmt.Errorf("%s call: %w", p.Name, err)
		return attempt
	}

	attempt.Model = completion.Model
	attempt.RawResponse = completion.Content
	attempt.TokensUsed = completion.TokensUsed

	if completion.Content == "" {
		attempt.Err = ErrEmptyCompletion
		return attempt
	}

	parsed, err := ExtractJSONObject(completion.Content)
	if err != nil {
		attempt.Err = err
		return attempt
	}
	attempt.Parsed = parsed
	return attempt
}
