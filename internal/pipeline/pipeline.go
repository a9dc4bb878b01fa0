// Package pipeline runs the full analysis in a fixed order: load the
// review table, aggregate ratings, extract keyword insights, render the
// chart artifacts, compose the report. Any stage error aborts the run.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/reviewlens/internal/charts"
	"github.com/KaramelBytes/reviewlens/internal/config"
	"github.com/KaramelBytes/reviewlens/internal/dataset"
	"github.com/KaramelBytes/reviewlens/internal/keywords"
	"github.com/KaramelBytes/reviewlens/internal/report"
	"github.com/KaramelBytes/reviewlens/internal/stats"
)

// Options control a single run.
type Options struct {
	// ChartsOnly renders the PNG artifacts and skips report composition.
	ChartsOnly bool
	// Progress receives the per-stage status lines. Defaults to stdout.
	Progress io.Writer
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	OutputDir string
	Records   int
	Products  int
	Regions   int
	Artifacts []string
}

// Run executes the pipeline for the spreadsheet at input.
func Run(cfg *config.Global, input string, opts Options) (*Result, error) {
	out := opts.Progress
	if out == nil {
		out = os.Stdout
	}
	runID := uuid.NewString()

	loadOpt, err := loadOptions(cfg)
	if err != nil {
		return nil, err
	}
	records, duplicates, err := dataset.Load(input, loadOpt)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	fmt.Fprintf(out, "✓ Loaded %d reviews from %s\n", len(records), input)
	if duplicates > 0 {
		fmt.Fprintf(out, "⚠ Dropped %d duplicate rows\n", duplicates)
	}

	hist, err := stats.RatingHistogram(records)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	products := stats.GroupBy(records, stats.ByProduct)
	regions := stats.GroupBy(records, stats.ByRegion)
	fmt.Fprintf(out, "✓ Aggregated %d products across %d regions\n", len(products), len(regions))

	dicts, err := dictionaries(cfg)
	if err != nil {
		return nil, err
	}
	insights := keywords.Analyze(records, dicts, keywordOptions(cfg))
	fmt.Fprintf(out, "✓ Extracted pros/cons for %d products\n", len(insights))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	renderer, err := charts.New(chartStyle(cfg))
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	if err := renderer.CheckGlyphs(chartLabels(products, regions, insights, dicts)...); err != nil {
		return nil, err
	}
	artifacts, err := renderCharts(renderer, hist, regions, insights, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "✓ Rendered %d charts to %s\n", len(artifacts), cfg.OutputDir)

	if !opts.ChartsOnly {
		data := report.Data{
			RunID:            runID,
			GeneratedAt:      time.Now(),
			Source:           input,
			DuplicateRows:    duplicates,
			Histogram:        hist,
			ProductsByRating: stats.RankByRating(products),
			ProductsByCount:  stats.RankByCount(products),
			RegionsByRating:  stats.RankByRating(regions),
			RegionsByCount:   stats.RankByCount(regions),
			Insights:         insights,
			Charts:           chartRefs(artifacts),
		}
		htmlPath, err := report.WriteHTML(data, cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("compose report: %w", err)
		}
		mdPaths, err := report.WriteMarkdown(data, cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("compose report: %w", err)
		}
		artifacts = append(artifacts, htmlPath)
		artifacts = append(artifacts, mdPaths...)
		fmt.Fprintf(out, "✓ Composed report at %s\n", htmlPath)
	}

	return &Result{
		RunID:     runID,
		OutputDir: cfg.OutputDir,
		Records:   len(records),
		Products:  len(products),
		Regions:   len(regions),
		Artifacts: artifacts,
	}, nil
}

func loadOptions(cfg *config.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.SheetName = cfg.SheetName
	if cfg.SheetIndex > 0 {
		opt.SheetIndex = cfg.SheetIndex
	}
	switch cfg.Delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported delimiter: %q", cfg.Delimiter)
	}
	return opt, nil
}

func keywordOptions(cfg *config.Global) keywords.Options {
	opt := keywords.DefaultOptions()
	if cfg.TopPros > 0 {
		opt.TopPros = cfg.TopPros
	}
	if cfg.TopCons > 0 {
		opt.TopCons = cfg.TopCons
	}
	return opt
}

func chartStyle(cfg *config.Global) charts.Style {
	style := charts.DefaultStyle()
	if cfg.ChartWidth > 0 {
		style.Width = cfg.ChartWidth
	}
	if cfg.ChartHeight > 0 {
		style.Height = cfg.ChartHeight
	}
	if cfg.ChartDPI > 0 {
		style.DPI = float64(cfg.ChartDPI)
	}
	if cfg.TopRegions > 0 {
		style.TopRegions = cfg.TopRegions
	}
	style.FontPath = cfg.FontPath
	return style
}

func dictionaries(cfg *config.Global) (keywords.Dictionaries, error) {
	if cfg.LexiconPath == "" {
		return keywords.Default(), nil
	}
	// LoadFile validates on read.
	dicts, err := keywords.LoadFile(cfg.LexiconPath)
	if err != nil {
		return keywords.Dictionaries{}, fmt.Errorf("load lexicon: %w", err)
	}
	return dicts, nil
}

// chartLabels collects every string the renderer will draw so glyph
// coverage is checked once, up front.
func chartLabels(products, regions []stats.Summary, insights []keywords.ProductInsight, dicts keywords.Dictionaries) []string {
	var labels []string
	for _, g := range products {
		labels = append(labels, g.Name)
	}
	for _, g := range regions {
		labels = append(labels, g.Name)
	}
	for _, ins := range insights {
		for _, h := range append(append([]keywords.Hit{}, ins.Pros...), ins.Cons...) {
			labels = append(labels, h.Label)
		}
	}
	return labels
}

func renderCharts(r *charts.Renderer, hist stats.Histogram, regions []stats.Summary, insights []keywords.ProductInsight, outDir string) ([]string, error) {
	var paths []string
	p, err := r.RatingDistribution(hist, outDir)
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)

	byCount := stats.RankByCount(regions)
	byRating := stats.RankByRating(regions)
	p, err = r.RegionAnalysis(byCount, byRating, outDir)
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)

	p, err = r.ProductRanking(insights, outDir)
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)

	p, err = r.ProductDetails(insights, outDir)
	if err != nil {
		return nil, err
	}
	paths = append(paths, p)
	return paths, nil
}

var chartTitles = map[string]string{
	charts.RatingDistributionPNG: "Rating Distribution",
	charts.RegionAnalysisPNG:     "Region Analysis",
	charts.ProductRankingPNG:     "Product Ranking Summary",
	charts.ProductDetailsPNG:     "Product Details",
}

func chartRefs(paths []string) []report.ChartRef {
	refs := make([]report.ChartRef, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		title, ok := chartTitles[name]
		if !ok {
			title = name
		}
		refs = append(refs, report.ChartRef{Title: title, Path: name})
	}
	return refs
}
