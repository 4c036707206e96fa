package jtalk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/heartmarshall/userdict/internal/config"
)

// Placeholders substituted in configured command arguments.
const (
	PlaceholderSource   = "{src}"
	PlaceholderCompiled = "{dst}"
)

var defaultCompileArgs = []string{PlaceholderSource, PlaceholderCompiled}

// ExecCompiler runs the analyzer's dictionary tools as external commands.
type ExecCompiler struct {
	compileCmd  string
	compileArgs []string
	reloadCmd   []string
	timeout     time.Duration
	log         *slog.Logger
}

// NewExecCompiler creates an ExecCompiler from the analyzer config.
func NewExecCompiler(cfg config.AnalyzerConfig, logger *slog.Logger) (*ExecCompiler, error) {
	if cfg.CompileCommand == "" {
		return nil, errors.New("analyzer.compile_command is required for the exec backend")
	}
	args := cfg.CompileArgs
	if len(args) == 0 {
		args = defaultCompileArgs
	}
	return &ExecCompiler{
		compileCmd:  cfg.CompileCommand,
		compileArgs: args,
		reloadCmd:   cfg.ReloadCommand,
		timeout:     cfg.Timeout,
		log:         logger.With("component", "exec_compiler"),
	}, nil
}

// Compile runs the compile command with {src} and {dst} substituted.
func (c *ExecCompiler) Compile(ctx context.Context, src, dst string) error {
	return c.run(ctx, c.compileCmd, expand(c.compileArgs, src, dst))
}

// Reload runs the reload command, if one is configured, with {dst}
// substituted by the compiled dictionary path.
func (c *ExecCompiler) Reload(ctx context.Context, compiled string) error {
	if len(c.reloadCmd) == 0 {
		return nil
	}
	args := expand(c.reloadCmd, "", compiled)
	return c.run(ctx, args[0], args[1:])
}

func (c *ExecCompiler) run(ctx context.Context, name string, args []string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()
	c.log.DebugContext(ctx, "command finished",
		slog.String("command", name),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
	)
	if err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func expand(args []string, src, dst string) []string {
	out := make([]string, len(args))
	r := strings.NewReplacer(PlaceholderSource, src, PlaceholderCompiled, dst)
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}
