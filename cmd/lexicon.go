package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/keywords"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect or scaffold the keyword dictionaries",
}

var lexiconShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the effective lexicon",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dicts, src, err := resolveLexicon(args)
		if err != nil {
			return err
		}
		fmt.Printf("Lexicon: %s\n", src)
		fmt.Printf("\nPositive (%d):\n", len(dicts.Positive))
		for _, e := range dicts.Positive {
			fmt.Printf("  %-14s -> %s\n", e.Match, e.Label)
		}
		fmt.Printf("\nNegative (%d):\n", len(dicts.Negative))
		for _, e := range dicts.Negative {
			fmt.Printf("  %-14s -> %s\n", e.Match, e.Label)
		}
		return nil
	},
}

var lexiconValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a lexicon file for empty lists and duplicate keywords",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dicts, err := keywords.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := dicts.Validate(); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Printf("✓ %s: %d positive, %d negative entries\n", args[0], len(dicts.Positive), len(dicts.Negative))
		return nil
	},
}

var lexiconInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the bundled dictionaries to a file as a starting point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keywords.SaveFile(keywords.Default(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote lexicon to %s\n", args[0])
		return nil
	},
}

func resolveLexicon(args []string) (keywords.Dictionaries, string, error) {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else if cfg != nil {
		path = cfg.LexiconPath
	}
	if path == "" {
		return keywords.Default(), "bundled", nil
	}
	dicts, err := keywords.LoadFile(path)
	if err != nil {
		return keywords.Dictionaries{}, "", err
	}
	return dicts, path, nil
}

func init() {
	lexiconCmd.AddCommand(lexiconShowCmd)
	lexiconCmd.AddCommand(lexiconValidateCmd)
	lexiconCmd.AddCommand(lexiconInitCmd)
	rootCmd.AddCommand(lexiconCmd)
}
