package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/reviewlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ReviewLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		if cfg.InputPath != "" {
			fmt.Printf("input_path: %s\n", cfg.InputPath)
		}
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		if cfg.LexiconPath != "" {
			fmt.Printf("lexicon_path: %s\n", cfg.LexiconPath)
		}
		if cfg.FontPath != "" {
			fmt.Printf("font_path: %s\n", cfg.FontPath)
		}
		if cfg.SheetName != "" {
			fmt.Printf("sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Printf("sheet_index: %d\n", cfg.SheetIndex)
		if cfg.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", cfg.Delimiter)
		}
		fmt.Printf("chart_width: %d\n", cfg.ChartWidth)
		fmt.Printf("chart_height: %d\n", cfg.ChartHeight)
		fmt.Printf("chart_dpi: %d\n", cfg.ChartDPI)
		fmt.Printf("top_regions: %d\n", cfg.TopRegions)
		fmt.Printf("top_pros: %d\n", cfg.TopPros)
		fmt.Printf("top_cons: %d\n", cfg.TopCons)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "input_path":
			cfg.InputPath = val
		case "output_dir":
			cfg.OutputDir = val
		case "lexicon_path":
			cfg.LexiconPath = val
		case "font_path":
			cfg.FontPath = val
		case "sheet_name":
			cfg.SheetName = val
		case "delimiter":
			switch val {
			case ",", ";", "tab", "\t":
				cfg.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %s (use ','|';'|'tab')", val)
			}
		case "sheet_index", "chart_width", "chart_height", "chart_dpi",
			"top_regions", "top_pros", "top_cons":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "sheet_index":
				cfg.SheetIndex = i
			case "chart_width":
				cfg.ChartWidth = i
			case "chart_height":
				cfg.ChartHeight = i
			case "chart_dpi":
				cfg.ChartDPI = i
			case "top_regions":
				cfg.TopRegions = i
			case "top_pros":
				cfg.TopPros = i
			case "top_cons":
				cfg.TopCons = i
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
