package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/userdict/internal/domain"
)

type wordFlags struct {
	surface       []string
	pronunciation []string
	accentType    []int
	wordType      string
	priority      int
}

func (f *wordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.surface, "surface", nil, "surface text, one per segment (comma separated)")
	cmd.Flags().StringSliceVar(&f.pronunciation, "pronunciation", nil, "katakana pronunciation, one per segment")
	cmd.Flags().IntSliceVar(&f.accentType, "accent", nil, "accent nucleus position, one per segment")
	cmd.Flags().StringVar(&f.wordType, "type", string(domain.WordTypeProperNoun), "word type: PROPER_NOUN, COMMON_NOUN, VERB, ADJECTIVE or SUFFIX")
	cmd.Flags().IntVar(&f.priority, "priority", 5, "priority from 0 to 10")
	_ = cmd.MarkFlagRequired("surface")
	_ = cmd.MarkFlagRequired("pronunciation")
	_ = cmd.MarkFlagRequired("accent")
}

func (f *wordFlags) property() domain.WordProperty {
	return domain.WordProperty{
		Surface:       f.surface,
		Pronunciation: f.pronunciation,
		AccentType:    f.accentType,
		WordType:      domain.WordType(f.wordType),
		Priority:      f.priority,
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every word keyed by identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, c.Service.GetAllWords())
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var f wordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new word and print its identifier",
		Example: `  userdict add --surface test --pronunciation テスト --accent 1
  userdict add --surface 東京,タワー --pronunciation トーキョー,タワー --accent 0,1 --type COMMON_NOUN`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := c.Service.AddWord(cmd.Context(), f.property())
			if err != nil {
				if id != uuid.Nil {
					cmd.PrintErrf("word stored as %s but not applied\n", id)
				}
				return err
			}
			return printValue(cmd.OutOrStdout(), opts.output, map[string]string{"word_uuid": id.String()})
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var f wordFlags
	cmd := &cobra.Command{
		Use:   "update <word_uuid>",
		Short: "Replace an existing word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			return c.Service.UpdateWord(cmd.Context(), args[0], f.property())
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <word_uuid>",
		Short: "Remove a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			return c.Service.DeleteWord(cmd.Context(), args[0])
		},
	}
}
