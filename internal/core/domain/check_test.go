package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckStatus_Transitions(t *testing.T) {
	assert.True(t, CheckStatusQueued.CanTransitionTo(CheckStatusProcessing))
	assert.True(t, CheckStatusQueued.CanTransitionTo(CheckStatusFailed))
	assert.True(t, CheckStatusProcessing.CanTransitionTo(CheckStatusDone))
	assert.True(t, CheckStatusProcessing.CanTransitionTo(CheckStatusFailed))

	assert.False(t, CheckStatusQueued.CanTransitionTo(CheckStatusDone))
	assert.False(t, CheckStatusDone.CanTransitionTo(CheckStatusFailed))
	assert.False(t, CheckStatusFailed.CanTransitionTo(CheckStatusProcessing))
}

func TestCheckStatus_Terminal(t *testing.T) {
	assert.True(t, CheckStatusDone.IsTerminal())
	assert.True(t, CheckStatusFailed.IsTerminal())
	assert.False(t, CheckStatusQueued.IsTerminal())
	assert.False(t, CheckStatusProcessing.IsTerminal())
}

func TestAlgorithmParams_ActiveAt(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 6, 0)

	open := AlgorithmParams{ActiveFrom: from}
	closed := AlgorithmParams{ActiveFrom: from, ActiveTo: &to}

	assert.False(t, open.ActiveAt(from.Add(-time.Second)))
	assert.True(t, open.ActiveAt(from))
	assert.True(t, open.ActiveAt(from.AddDate(10, 0, 0)))

	assert.True(t, closed.ActiveAt(from.AddDate(0, 3, 0)))
	assert.False(t, closed.ActiveAt(to))
}

func TestAlgorithmParams_Validate(t *testing.T) {
	valid := AlgorithmParams{K: 5, W: 4, Base: 257, Threshold: 0.8}
	assert.NoError(t, valid.Validate())

	tests := []AlgorithmParams{
		{K: 0, W: 4, Threshold: 0.8},
		{K: 5, W: 0, Threshold: 0.8},
		{K: 5, W: 4, Threshold: -0.1},
		{K: 5, W: 4, Threshold: 1.1},
	}
	for i, p := range tests {
		assert.ErrorIs(t, p.Validate(), ErrInvalidInput, "case %d", i)
	}
}

func TestKind_StableStrings(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{ErrInvalidInput, "InvalidInput"},
		{ErrNoActiveParams, "NoActiveParams"},
		{ErrEmptyOrTooShort, "EmptyOrTooShort"},
		{ErrCorpusRead, "CorpusRead"},
		{ErrPersistence, "Persistence"},
		{ErrDeadline, "Deadline"},
		{ErrNotFound, "NotFound"},
		{errors.New("boom"), "Internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, Kind(tt.err))
		// Wrapping preserves the kind.
		assert.Equal(t, tt.kind, Kind(fmt.Errorf("check 9: %w", tt.err)))
	}
}

func TestSourceType_IsValid(t *testing.T) {
	assert.True(t, SourceTypeUpload.IsValid())
	assert.True(t, SourceTypeURL.IsValid())
	assert.False(t, SourceType("ftp").IsValid())
}

func TestVerificationStatus_IsValid(t *testing.T) {
	assert.True(t, VerificationWajar.IsValid())
	assert.True(t, VerificationPerluRevisi.IsValid())
	assert.True(t, VerificationPlagiarisme.IsValid())
	assert.False(t, VerificationStatus("ok").IsValid())
}
