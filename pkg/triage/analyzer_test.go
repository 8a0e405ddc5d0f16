package triage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage-assist-be/internal/pkg/logger"
	"triage-assist-be/pkg/llm"
)

type fakeProvider struct {
	content string
	err     error
	delay   time.Duration
	calls   int
	history []llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	f.calls++
	f.history = history
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Content: f.content, Model: "fake-model", TokensUsed: 42}, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Completion, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

var coldInput = SymptomInput{SymptomsText: "runny nose and sneezing for two days", Severity: SeverityMild, Age: 28}

func TestAnalyzer_PrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{content: "```json\n{\"triage_level\":\"self-care\",\"triage_reason\":\"Common cold.\",\"confidence_score\":0.8}\n```"}
	secondary := &fakeProvider{content: `{"triage_level":"see-doctor"}`}

	a := NewAnalyzer(logger.NewNopLogger(), time.Second,
		NamedProvider{Name: "gemini", Provider: primary},
		NamedProvider{Name: "openai", Provider: secondary},
	)

	res := a.Analyze(context.Background(), Request{Input: coldInput})

	assert.Equal(t, LevelSelfCare, res.TriageLevel)
	assert.Equal(t, "gemini", res.Source)
	assert.Equal(t, 0.8, res.ConfidenceScore)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls)

	require.Len(t, primary.history, 2)
	assert.Equal(t, llm.RoleSystem, primary.history[0].Role)
	assert.Equal(t, SystemPrompt, primary.history[0].Content)
	assert.Contains(t, primary.history[1].Content, "Symptoms: runny nose and sneezing for two days")
	assert.Contains(t, primary.history[1].Content, JSONOnlySuffix)
}

func TestAnalyzer_FallsThroughChain(t *testing.T) {
	primary := &fakeProvider{err: errors.New("429 quota exceeded")}
	secondary := &fakeProvider{content: `{"triage_level":"see-doctor","triage_reason":"Needs review."}`}

	var attempts []Attempt
	a := NewAnalyzer(logger.NewNopLogger(), time.Second,
		NamedProvider{Name: "gemini", Provider: primary},
		NamedProvider{Name: "openai", Provider: secondary},
	)

	res := a.Analyze(context.Background(), Request{
		Input: coldInput,
		OnAttempt: func(_ context.Context, at Attempt) {
			attempts = append(attempts, at)
		},
	})

	assert.Equal(t, LevelSeeDoctor, res.TriageLevel)
	assert.Equal(t, "openai", res.Source)

	require.Len(t, attempts, 2)
	assert.Equal(t, "gemini", attempts[0].Provider)
	assert.Error(t, attempts[0].Err)
	assert.Equal(t, "openai", attempts[1].Provider)
	assert.NoError(t, attempts[1].Err)
	assert.Equal(t, "fake-model", attempts[1].Model)
	assert.Equal(t, 42, attempts[1].TokensUsed)
	assert.Equal(t, "see-doctor", attempts[1].Parsed["triage_level"])
}

func TestAnalyzer_UnparseableResponseFallsThrough(t *testing.T) {
	primary := &fakeProvider{content: "Sorry, I can't help with medical questions."}
	secondary := &fakeProvider{content: ""}

	a := NewAnalyzer(logger.NewNopLogger(), time.Second,
		NamedProvider{Name: "gemini", Provider: primary},
		NamedProvider{Name: "openai", Provider: secondary},
	)

	var errs []error
	res := a.Analyze(context.Background(), Request{
		Input:     coldInput,
		OnAttempt: func(_ context.Context, at Attempt) { errs = append(errs, at.Err) },
	})

	assert.Equal(t, SourceHeuristic, res.Source)
	assert.Equal(t, LevelSelfCare, res.TriageLevel)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrNoJSONObject)
	assert.ErrorIs(t, errs[1], ErrEmptyCompletion)
}

func TestAnalyzer_TimeoutFallsBackToHeuristic(t *testing.T) {
	slow := &fakeProvider{content: `{"triage_level":"self-care"}`, delay: time.Second}

	a := NewAnalyzer(logger.NewNopLogger(), 20*time.Millisecond, NamedProvider{Name: "gemini", Provider: slow})

	res := a.Analyze(context.Background(), Request{Input: coldInput})

	assert.Equal(t, SourceHeuristic, res.Source)
}

func TestAnalyzer_NoProviders(t *testing.T) {
	a := NewAnalyzer(logger.NewNopLogger(), 0,
		NamedProvider{Name: "gemini", Provider: nil},
	)

	assert.Empty(t, a.Providers())
	res := a.Analyze(context.Background(), Request{Input: coldInput})
	assert.Equal(t, SourceHeuristic, res.Source)
	assert.NotNil(t, res.Recommendations.Medicines)
}

func TestAnalyzer_SafetyFloorOverridesModel(t *testing.T) {
	p := &fakeProvider{content: `{"triage_level":"self-care","recommendations":{"medicines":[{"name":"Antacid"}]}}`}
	a := NewAnalyzer(logger.NewNopLogger(), time.Second, NamedProvider{Name: "gemini", Provider: p})

	res := a.Analyze(context.Background(), Request{
		Input: SymptomInput{SymptomsText: "crushing chest pain and sweating", Severity: SeverityMild, Age: 58},
	})

	assert.Equal(t, LevelEmergency, res.TriageLevel)
	assert.Equal(t, "gemini", res.Source)
	assert.Empty(t, res.Recommendations.Medicines)
	assert.Equal(t, IndianEmergencyContacts, res.Recommendations.IndianEmergencyContacts)
}
