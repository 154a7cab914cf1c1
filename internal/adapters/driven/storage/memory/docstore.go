package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.SearchBackend = (*DocumentStore)(nil)
	_ driven.CategoryStore = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory search backend over a fixed corpus.
// Search keeps corpus order and only filters by literal token containment.
type DocumentStore struct {
	mu         sync.RWMutex
	documents  []domain.Document
	categories []domain.Category
	latency    time.Duration
}

// NewDocumentStore creates a store serving the given corpus.
// A nil corpus serves the built-in samples.
func NewDocumentStore(corpus *Corpus) *DocumentStore {
	if corpus == nil {
		corpus = SampleCorpus()
	}
	s := &DocumentStore{}
	s.Replace(corpus)
	return s
}

// WithLatency makes every search wait for d before answering,
// standing in for a remote search call.
func (s *DocumentStore) WithLatency(d time.Duration) *DocumentStore {
	s.mu.Lock()
	s.latency = d
	s.mu.Unlock()
	return s
}

// Replace swaps the served corpus.
func (s *DocumentStore) Replace(corpus *Corpus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append([]domain.Document(nil), corpus.Documents...)
	s.categories = append([]domain.Category(nil), corpus.Categories...)
}

// Search returns documents containing any query token in their title,
// snippet or category. This is looser than filtering on the whole query as
// one substring: "gpu telescope" keeps documents that mention either word,
// which suits refine-as-you-read where each token is highlighted on its own.
// limit <= 0 returns all matches.
func (s *DocumentStore) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	s.mu.RLock()
	latency := s.latency
	s.mu.RUnlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	tokens := strings.Fields(strings.ToLower(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, 0, len(s.documents))
	for _, d := range s.documents {
		if !containsAny(d, tokens) {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Get retrieves a document by id.
func (s *DocumentStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Categories lists the taxonomy.
func (s *DocumentStore) Categories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...), nil
}

// Documents returns every document in corpus order.
func (s *DocumentStore) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Document(nil), s.documents...)
}

func containsAny(d domain.Document, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	hay := strings.ToLower(d.Title + " " + d.Snippet + " " + d.Category)
	for _, t := range tokens {
		if strings.Contains(hay, t) {
			return true
		}
	}
	return false
}
