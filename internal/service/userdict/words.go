package userdict

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
)

// AddWord validates p, stores it under a fresh identifier and applies the
// dictionary. The identifier is returned even when only the apply step
// fails, since the word is already persisted.
func (s *Service) AddWord(ctx context.Context, p domain.WordProperty) (uuid.UUID, error) {
	w, err := domain.NewWord(p)
	if err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for _, taken := s.words[id]; taken; _, taken = s.words[id] {
		id = s.newID()
	}

	next := cloneWords(s.words)
	next[id] = w
	if err := s.commit(ctx, next); err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "word added",
		slog.String("word_id", id.String()),
		slog.String("surface", w.Surface),
	)
	return id, s.applyLocked(ctx)
}

// UpdateWord replaces the word stored under id.
func (s *Service) UpdateWord(ctx context.Context, id string, p domain.WordProperty) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.NotFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[uid]; !ok {
		return domain.NotFound(id)
	}

	w, err := domain.NewWord(p)
	if err != nil {
		return err
	}

	next := cloneWords(s.words)
	next[uid] = w
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "word updated", slog.String("word_id", id))
	return s.applyLocked(ctx)
}

// DeleteWord removes the word stored under id.
func (s *Service) DeleteWord(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.NotFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[uid]; !ok {
		return domain.NotFound(id)
	}

	next := cloneWords(s.words)
	delete(next, uid)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "word deleted", slog.String("word_id", id))
	return s.applyLocked(ctx)
}
