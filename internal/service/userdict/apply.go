package userdict

import (
	"context"
	"fmt"
)

// ApplyJTalkDictionary renders the current dictionary, compiles it and
// reloads the analyzer. It is idempotent and safe to call at start-up.
// Failures wrap domain.ErrCompileFailed and leave the stored words as they
// are; calling it again retries.
func (s *Service) ApplyJTalkDictionary(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx)
}

func (s *Service) applyLocked(ctx context.Context) error {
	if err := s.applier.Apply(ctx, s.words); err != nil {
		s.log.ErrorContext(ctx, "apply user dictionary", "error", err)
		return fmt.Errorf("apply user dictionary: %w", err)
	}
	return nil
}
