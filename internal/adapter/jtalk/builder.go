package jtalk

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
)

// File names inside the work directory.
const (
	SourceFile   = "user.dic.csv"
	CompiledFile = "user.dic"
)

// Compiler is the external analyzer: it compiles a dictionary source file
// and makes the compiled dictionary active.
type Compiler interface {
	Compile(ctx context.Context, src, dst string) error
	Reload(ctx context.Context, compiled string) error
}

// Builder renders the dictionary into its work directory and hands it to
// the Compiler. It holds no dictionary state of its own.
type Builder struct {
	workDir  string
	compiler Compiler
	log      *slog.Logger
}

// NewBuilder creates a Builder writing into workDir.
func NewBuilder(workDir string, compiler Compiler, logger *slog.Logger) *Builder {
	return &Builder{
		workDir:  workDir,
		compiler: compiler,
		log:      logger.With("component", "jtalk_builder"),
	}
}

// SourcePath is where the rendered dictionary source is written.
func (b *Builder) SourcePath() string { return filepath.Join(b.workDir, SourceFile) }

// CompiledPath is where the compiled dictionary is written.
func (b *Builder) CompiledPath() string { return filepath.Join(b.workDir, CompiledFile) }

// Apply renders words, compiles them and reloads the analyzer. Compile and
// reload failures wrap domain.ErrCompileFailed.
func (b *Builder) Apply(ctx context.Context, words map[uuid.UUID]domain.Word) error {
	start := time.Now()

	if err := os.MkdirAll(b.workDir, 0o755); err != nil {
		return fmt.Errorf("%w: create work dir: %w", domain.ErrStorage, err)
	}

	src := b.SourcePath()
	if err := b.writeSource(src, words); err != nil {
		return err
	}

	dst := b.CompiledPath()
	if err := b.compiler.Compile(ctx, src, dst); err != nil {
		return fmt.Errorf("%w: compile: %w", domain.ErrCompileFailed, err)
	}
	if err := b.compiler.Reload(ctx, dst); err != nil {
		return fmt.Errorf("%w: reload: %w", domain.ErrCompileFailed, err)
	}

	b.log.InfoContext(ctx, "dictionary applied",
		slog.Int("words", len(words)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (b *Builder) writeSource(path string, words map[uuid.UUID]domain.Word) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create source: %w", domain.ErrStorage, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Render(bw, words); err != nil {
		return fmt.Errorf("%w: render source: %w", domain.ErrCompileFailed, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: write source: %w", domain.ErrStorage, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close source: %w", domain.ErrStorage, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace source: %w", domain.ErrStorage, err)
	}
	return nil
}
