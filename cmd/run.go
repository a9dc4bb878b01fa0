package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/pipeline"
)

var (
	runOutputDir  string
	runChartsOnly bool
	runLexicon    string
	runFont       string
	runSheetName  string
	runSheetIndex int
	runDelimiter  string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Analyze a review spreadsheet and produce charts plus a report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		input := c.InputPath
		if len(args) == 1 {
			input = args[0]
		}
		if input == "" {
			return fmt.Errorf("no input file: pass a file argument or set input_path in the config")
		}
		// Flag overrides on top of config/env
		f := cmd.Flags()
		if f.Changed("output-dir") {
			c.OutputDir = runOutputDir
		}
		if f.Changed("lexicon") {
			c.LexiconPath = runLexicon
		}
		if f.Changed("font") {
			c.FontPath = runFont
		}
		if f.Changed("sheet-name") {
			c.SheetName = runSheetName
		}
		if f.Changed("sheet-index") {
			c.SheetIndex = runSheetIndex
		}
		if f.Changed("delimiter") {
			c.Delimiter = runDelimiter
		}

		res, err := pipeline.Run(c, input, pipeline.Options{ChartsOnly: runChartsOnly})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Done: %d reviews, %d products, %d regions (run %s)\n",
			res.Records, res.Products, res.Regions, res.RunID)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "directory for charts and report (default from config)")
	runCmd.Flags().BoolVar(&runChartsOnly, "charts-only", false, "render charts, skip report composition")
	runCmd.Flags().StringVar(&runLexicon, "lexicon", "", "YAML keyword lexicon (default: bundled dictionaries)")
	runCmd.Flags().StringVar(&runFont, "font", "", "TTF font for chart labels")
	runCmd.Flags().StringVar(&runSheetName, "sheet-name", "", "XLSX sheet to read by name")
	runCmd.Flags().IntVar(&runSheetIndex, "sheet-index", 0, "XLSX sheet to read by 1-based index")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'")
	rootCmd.AddCommand(runCmd)
}
