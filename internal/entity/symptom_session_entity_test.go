package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage-assist-be/pkg/triage"
)

func TestSymptomSession_ApplyResult(t *testing.T) {
	s := &SymptomSession{}
	assert.True(t, s.Pending())

	res := triage.Heuristic(triage.SymptomInput{SymptomsText: "mild headache", Severity: triage.SeverityMild, Age: 30})
	s.ApplyResult(res, time.Now())

	assert.False(t, s.Pending())
	require.NotNil(t, s.TriageLevel)
	assert.Equal(t, triage.LevelSelfCare, *s.TriageLevel)
	assert.Equal(t, triage.SourceHeuristic, *s.AnalysisSource)
	require.NotNil(t, s.Recommendations)
	assert.NotNil(t, s.Recommendations.WhatNotToDo)
}
