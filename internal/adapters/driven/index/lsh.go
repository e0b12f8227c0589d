// Package index caches MinHash signatures and LSH bucket keys for the
// reference corpus, so a check costs O(candidates) instead of re-hashing
// the whole corpus. Results are always equivalent to recomputing from the
// text: entries are invalidated when the underlying file changes.
package index

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jordannanyan/plagiarism-backend/internal/core/domain"
	"github.com/jordannanyan/plagiarism-backend/internal/core/ports/driven"
	"github.com/jordannanyan/plagiarism-backend/internal/logger"
	"github.com/jordannanyan/plagiarism-backend/internal/minhash"
	"github.com/jordannanyan/plagiarism-backend/internal/textnorm"
)

// Ensure LSH implements the interface.
var _ driven.CorpusIndex = (*LSH)(nil)

type cacheKey struct {
	docID   int64
	path    string
	k       int
	numPerm int
	bands   int
}

type cacheEntry struct {
	signature  []uint64
	bucketKeys []string
}

// LSH is the corpus index. Safe for concurrent use by parallel checks.
type LSH struct {
	texts driven.TextSource

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates an index over the given text source.
func New(texts driven.TextSource) *LSH {
	return &LSH{
		texts: texts,
		cache: make(map[cacheKey]cacheEntry),
	}
}

// Watch invalidates cached entries when files under dir change. Without a
// watcher the cache only grows; callers that mutate corpus text in place
// should watch the corpus directory.
func (l *LSH) Watch(dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	l.watcher = watcher
	l.done = make(chan struct{})
	go l.watchLoop()
	return nil
}

// Close stops the watcher, if any.
func (l *LSH) Close() error {
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	<-l.done
	return err
}

func (l *LSH) watchLoop() {
	defer close(l.done)
	for {
		select {
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				l.invalidatePath(event.Name)
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			// On watcher errors the cache cannot be trusted; drop it all.
			logger.Warn("corpus watcher: %v, dropping index cache", err)
			l.invalidateAll()
		}
	}
}

func (l *LSH) invalidatePath(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.cache {
		if key.path == path {
			delete(l.cache, key)
		}
	}
}

func (l *LSH) invalidateAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[cacheKey]cacheEntry)
}

// Invalidate drops every cached entry for a document, for callers that
// replace corpus text outside the watched directory.
func (l *LSH) Invalidate(docID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.cache {
		if key.docID == docID {
			delete(l.cache, key)
		}
	}
}

// Entries returns one entry per snapshot document, in input order. Cached
// signatures are reused; unreadable texts yield an entry with Err set
// (wrapping domain.ErrCorpusRead) and are not cached.
func (l *LSH) Entries(ctx context.Context, docs []domain.CorpusDocument, k, numPerm, bands int) ([]driven.IndexEntry, error) {
	entries := make([]driven.IndexEntry, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := cacheKey{docID: doc.ID, path: doc.PathText, k: k, numPerm: numPerm, bands: bands}

		l.mu.Lock()
		cached, ok := l.cache[key]
		l.mu.Unlock()
		if ok {
			entries = append(entries, driven.IndexEntry{Doc: doc, Signature: cached.signature, BucketKeys: cached.bucketKeys})
			continue
		}

		raw, err := l.texts.ReadNormalized(ctx, doc.PathText)
		if err != nil {
			entries = append(entries, driven.IndexEntry{Doc: doc, Err: err})
			continue
		}

		sig := minhash.Signature(textnorm.Normalize(raw), k, numPerm)
		keys := minhash.BucketKeys(sig, bands)

		l.mu.Lock()
		l.cache[key] = cacheEntry{signature: sig, bucketKeys: keys}
		l.mu.Unlock()

		entries = append(entries, driven.IndexEntry{Doc: doc, Signature: sig, BucketKeys: keys})
	}
	return entries, nil
}
