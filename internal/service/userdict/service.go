package userdict

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordStore interface {
	Load(ctx context.Context) (map[uuid.UUID]domain.Word, error)
	Save(ctx context.Context, words map[uuid.UUID]domain.Word) error
}

type dictionaryApplier interface {
	Apply(ctx context.Context, words map[uuid.UUID]domain.Word) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service owns the in-memory user dictionary. Every mutation is persisted
// before it becomes visible and then applied to the analyzer. Calls are
// serialized, so one Service is the single writer of its file.
type Service struct {
	log     *slog.Logger
	store   wordStore
	applier dictionaryApplier
	newID   func() uuid.UUID

	mu    sync.Mutex
	words map[uuid.UUID]domain.Word
}

// Open loads the dictionary from store. A load failure leaves no service.
func Open(ctx context.Context, logger *slog.Logger, store wordStore, applier dictionaryApplier) (*Service, error) {
	words, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load user dictionary: %w", err)
	}

	s := &Service{
		log:     logger.With("service", "userdict"),
		store:   store,
		applier: applier,
		newID:   uuid.New,
		words:   words,
	}
	s.log.InfoContext(ctx, "user dictionary loaded", slog.Int("words", len(words)))
	return s, nil
}

// GetAllWords returns a snapshot of every stored word.
func (s *Service) GetAllWords() map[uuid.UUID]domain.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneWords(s.words)
}

// GetWord returns one word. Unknown and malformed identifiers both yield
// domain.ErrWordNotFound.
func (s *Service) GetWord(id string) (domain.Word, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Word{}, domain.NotFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.words[uid]
	if !ok {
		return domain.Word{}, domain.NotFound(id)
	}
	return w.Clone(), nil
}

// commit persists next and makes it current. On failure the current words
// stay untouched. Callers hold s.mu.
func (s *Service) commit(ctx context.Context, next map[uuid.UUID]domain.Word) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save user dictionary: %w", err)
	}
	s.words = next
	return nil
}

func cloneWords(words map[uuid.UUID]domain.Word) map[uuid.UUID]domain.Word {
	out := make(map[uuid.UUID]domain.Word, len(words))
	for id, w := range words {
		out[id] = w.Clone()
	}
	return out
}
