package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/storage/memory"
	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
)

func TestCorpusService_AddAndList(t *testing.T) {
	store := memory.NewCorpusStore()
	svc := NewCorpusService(store)

	id, err := svc.Add(context.Background(), domain.CorpusDocument{
		Title:      "reference thesis",
		SourceType: domain.SourceTypeUpload,
		PathText:   "/corpus/1.txt",
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "reference thesis", docs[0].Title)
}

func TestCorpusService_AddValidation(t *testing.T) {
	svc := NewCorpusService(memory.NewCorpusStore())

	tests := []domain.CorpusDocument{
		{SourceType: domain.SourceTypeUpload, PathText: "/p"},        // no title
		{Title: "t", SourceType: "ftp", PathText: "/p"},              // bad source type
		{Title: "t", SourceType: domain.SourceTypeURL, PathText: ""}, // no path
	}
	for i, doc := range tests {
		_, err := svc.Add(context.Background(), doc)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "case %d", i)
	}
}

func TestCorpusService_SetActive(t *testing.T) {
	store := memory.NewCorpusStore()
	svc := NewCorpusService(store)

	id, err := svc.Add(context.Background(), domain.CorpusDocument{
		Title: "r", SourceType: domain.SourceTypeUpload, PathText: "/p", IsActive: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(context.Background(), id, false))
	active, err := store.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, svc.SetActive(context.Background(), 0, true), domain.ErrInvalidInput)
}

func TestParamService_SetClosesPreviousRow(t *testing.T) {
	store := memory.NewParamStore()
	svc := NewParamService(store)

	first, err := svc.Set(context.Background(), domain.AlgorithmParams{
		K: 5, W: 4, Base: 257, Threshold: 0.8,
		ActiveFrom: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	second, err := svc.Set(context.Background(), domain.AlgorithmParams{
		K: 7, W: 5, Base: 257, Threshold: 0.6,
		ActiveFrom: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, active.ID)
	assert.Equal(t, 7, active.K)

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second, history[0].ID)
	assert.NotNil(t, history[1].ActiveTo)
}

func TestParamService_SetRejectsInvalidTuple(t *testing.T) {
	svc := NewParamService(memory.NewParamStore())
	_, err := svc.Set(context.Background(), domain.AlgorithmParams{K: 0, W: 4, Threshold: 0.8})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParamService_ActiveWhenEmpty(t *testing.T) {
	svc := NewParamService(memory.NewParamStore())
	_, err := svc.Active(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveParams)
}
