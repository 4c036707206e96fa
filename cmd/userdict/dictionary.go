package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/userdict/internal/adapter/jtalk"
	"github.com/heartmarshall/userdict/internal/auth"
	"github.com/heartmarshall/userdict/internal/domain"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var override bool
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge a dictionary file into the user dictionary",
		Long: `import reads a JSON object of word records keyed by identifier, the same
layout as the dictionary file itself. Existing identifiers are kept unless
--override is given. One invalid record aborts the whole import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readEntries(cmd, args[0])
			if err != nil {
				return err
			}
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			result, err := c.Service.ImportDictionary(cmd.Context(), entries, override)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, result)
		},
	}
	cmd.Flags().BoolVar(&override, "override", false, "replace words whose identifier already exists")
	return cmd
}

func readEntries(cmd *cobra.Command, name string) (map[uuid.UUID]domain.Word, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var entries map[uuid.UUID]domain.Word
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return entries, nil
}

func newApplyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Compile the stored dictionary and reload the analyzer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.Service.ApplyJTalkDictionary(cmd.Context()); err != nil {
				return err
			}
			cmd.PrintErrf("applied %s\n", c.Builder.CompiledPath())
			return nil
		},
	}
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the dictionary source CSV without compiling it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			return jtalk.Render(cmd.OutOrStdout(), c.Service.GetAllWords())
		},
	}
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the mutating HTTP routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Auth.Enabled() {
				return fmt.Errorf("auth.jwt_secret is not configured")
			}
			token, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer).GenerateToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject recorded in access logs")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
