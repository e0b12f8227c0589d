package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/storage/memory"
	"github.com/jordannanyan/plagiarism-backend/internal/adapters/driven/textfile"
	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/minhash"
)

func corpusDoc(id int64, path string) domain.CorpusDocument {
	return domain.CorpusDocument{
		ID:         id,
		Title:      "doc",
		SourceType: domain.SourceTypeUpload,
		PathText:   path,
		IsActive:   true,
	}
}

func TestEntries_ComputesSignatureAndKeys(t *testing.T) {
	texts := memory.NewTextSource(map[string]string{
		"a.txt": "the quick brown fox jumps over the lazy dog",
	})
	idx := New(texts)

	entries, err := idx.Entries(context.Background(), []domain.CorpusDocument{corpusDoc(1, "a.txt")}, 5, 100, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	require.NoError(t, e.Err)
	assert.Len(t, e.Signature, 100)
	assert.Len(t, e.BucketKeys, 20)

	want := minhash.Signature("the quick brown fox jumps over the lazy dog", 5, 100)
	assert.Equal(t, want, e.Signature)
}

func TestEntries_UnreadableTextYieldsError(t *testing.T) {
	idx := New(memory.NewTextSource(nil))

	entries, err := idx.Entries(context.Background(), []domain.CorpusDocument{corpusDoc(1, "missing.txt")}, 5, 100, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.ErrorIs(t, entries[0].Err, domain.ErrCorpusRead)
	assert.Nil(t, entries[0].Signature)
}

func TestEntries_CachesAcrossCalls(t *testing.T) {
	texts := memory.NewTextSource(map[string]string{"a.txt": "cached corpus text body"})
	idx := New(texts)
	docs := []domain.CorpusDocument{corpusDoc(1, "a.txt")}

	first, err := idx.Entries(context.Background(), docs, 5, 100, 20)
	require.NoError(t, err)

	// Mutating the source without invalidation returns the cached entry.
	texts.Put("a.txt", "completely different body of text here")
	second, err := idx.Entries(context.Background(), docs, 5, 100, 20)
	require.NoError(t, err)
	assert.Equal(t, first[0].Signature, second[0].Signature)

	// Invalidation forces a recompute.
	idx.Invalidate(1)
	third, err := idx.Entries(context.Background(), docs, 5, 100, 20)
	require.NoError(t, err)
	assert.NotEqual(t, first[0].Signature, third[0].Signature)
}

func TestEntries_DistinctParamsCachedSeparately(t *testing.T) {
	texts := memory.NewTextSource(map[string]string{"a.txt": "some corpus body with words"})
	idx := New(texts)
	docs := []domain.CorpusDocument{corpusDoc(1, "a.txt")}

	k5, err := idx.Entries(context.Background(), docs, 5, 100, 20)
	require.NoError(t, err)
	k4, err := idx.Entries(context.Background(), docs, 4, 100, 20)
	require.NoError(t, err)
	assert.NotEqual(t, k5[0].Signature, k4[0].Signature)
}

func TestWatch_InvalidatesOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c1.txt")
	require.NoError(t, os.WriteFile(path, []byte("original corpus text body\n"), 0o644))

	idx := New(textfile.New())
	require.NoError(t, idx.Watch(dir))
	defer idx.Close()

	docs := []domain.CorpusDocument{corpusDoc(1, path)}
	first, err := idx.Entries(context.Background(), docs, 5, 100, 20)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("rewritten corpus text body that differs\n"), 0o644))

	// The watcher delivers asynchronously; poll until the recompute shows.
	deadline := time.Now().Add(5 * time.Second)
	for {
		entries, err := idx.Entries(context.Background(), docs, 5, 100, 20)
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(first[0].Signature, entries[0].Signature) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("index entry not invalidated after file change")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
