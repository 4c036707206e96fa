package userdict

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
)

// ImportResult counts what an import did per identifier.
type ImportResult struct {
	Added    int `json:"added"`
	Replaced int `json:"replaced"`
	Skipped  int `json:"skipped"`
}

// ImportDictionary merges pre-built words into the dictionary. Every
// incoming word is validated first; a single invalid word aborts the whole
// import with domain.ErrImportInvariant and nothing changes. Existing
// identifiers are replaced only when override is set. The result is
// persisted once.
func (s *Service) ImportDictionary(ctx context.Context, entries map[uuid.UUID]domain.Word, override bool) (*ImportResult, error) {
	ids := make([]uuid.UUID, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		if err := entries[id].Validate(); err != nil {
			return nil, &domain.WordError{ID: id, Err: fmt.Errorf("%w: %w", domain.ErrImportInvariant, err)}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &ImportResult{}
	next := cloneWords(s.words)
	for _, id := range ids {
		_, exists := next[id]
		switch {
		case !exists:
			result.Added++
		case override:
			result.Replaced++
		default:
			result.Skipped++
			continue
		}
		next[id] = entries[id].Clone()
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "dictionary imported",
		slog.Int("added", result.Added),
		slog.Int("replaced", result.Replaced),
		slog.Int("skipped", result.Skipped),
		slog.Bool("override", override),
	)
	return result, s.applyLocked(ctx)
}
