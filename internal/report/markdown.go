package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteMarkdown writes the Markdown companions: the full analysis report and
// the per-product insight briefs. Returns the written paths.
func WriteMarkdown(d Data, outDir string) ([]string, error) {
	reportPath := filepath.Join(outDir, MarkdownName)
	if err := os.WriteFile(reportPath, []byte(d.Markdown()), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", MarkdownName, err)
	}
	insightsPath := filepath.Join(outDir, InsightsName)
	if err := os.WriteFile(insightsPath, []byte(d.InsightsMarkdown()), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", InsightsName, err)
	}
	return []string{reportPath, insightsPath}, nil
}

// Markdown renders the full analysis report.
func (d Data) Markdown() string {
	var b strings.Builder
	b.WriteString("# Review Analysis Report\n\n")
	fmt.Fprintf(&b, "- Source: %s\n", d.Source)
	fmt.Fprintf(&b, "- Generated: %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Reviews: %d\n", d.Histogram.Total())
	fmt.Fprintf(&b, "- Run: %s\n\n", d.RunID)

	b.WriteString("## Key Findings\n\n")
	for _, f := range d.KeyFindings() {
		fmt.Fprintf(&b, "- %s\n", f)
	}

	b.WriteString("\n## Rating Statistics\n\n")
	fmt.Fprintf(&b, "- Mean: %.2f\n", d.Histogram.Mean())
	fmt.Fprintf(&b, "- Median: %.2f\n", d.Histogram.Median())
	fmt.Fprintf(&b, "- Std dev: %.2f\n", d.Histogram.Std())
	fmt.Fprintf(&b, "- Good review rate (4+): %.1f%%\n\n", d.Histogram.GoodRate()*100)

	b.WriteString("| Rating | Reviews | Share |\n|---|---:|---:|\n")
	for _, row := range d.HistogramRows() {
		fmt.Fprintf(&b, "| %d star | %d | %.1f%% |\n", row.Rating, row.Count, row.Share*100)
	}

	b.WriteString("\n## Product Ranking (by mean rating)\n\n")
	b.WriteString("| # | Product | Mean | Reviews |\n|---|---|---:|---:|\n")
	for i, g := range d.ProductsByRating {
		fmt.Fprintf(&b, "| %d | %s | %.2f | %d |\n", i+1, g.Name, g.MeanRating, g.Count)
	}

	b.WriteString("\n## Product Volume (by review count)\n\n")
	b.WriteString("| # | Product | Reviews | Mean |\n|---|---|---:|---:|\n")
	for i, g := range d.ProductsByCount {
		fmt.Fprintf(&b, "| %d | %s | %d | %.2f |\n", i+1, g.Name, g.Count, g.MeanRating)
	}

	b.WriteString("\n## Region Analysis (by review count)\n\n")
	b.WriteString("| # | Region | Reviews | Mean |\n|---|---|---:|---:|\n")
	for i, g := range d.RegionsByCount {
		fmt.Fprintf(&b, "| %d | %s | %d | %.2f |\n", i+1, g.Name, g.Count, g.MeanRating)
	}

	b.WriteString("\n## Region Ratings (by mean rating)\n\n")
	b.WriteString("| # | Region | Mean | Reviews |\n|---|---|---:|---:|\n")
	for i, g := range d.RegionsByRating {
		fmt.Fprintf(&b, "| %d | %s | %.2f | %d |\n", i+1, g.Name, g.MeanRating, g.Count)
	}

	b.WriteString("\n## Recommendations\n\n")
	for i, rec := range d.Recommendations() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	if len(d.Charts) > 0 {
		b.WriteString("\n## Charts\n\n")
		for _, c := range d.Charts {
			fmt.Fprintf(&b, "![%s](%s)\n\n", c.Title, c.Path)
		}
	}
	return b.String()
}

// InsightsMarkdown renders the per-product pros/cons briefs.
func (d Data) InsightsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Product Insights\n")
	for _, ins := range d.Insights {
		fmt.Fprintf(&b, "\n## %s\n\n", ins.Product)
		fmt.Fprintf(&b, "- Mean rating: %.2f\n", ins.MeanRating)
		fmt.Fprintf(&b, "- Reviews: %d (good %d / bad %d)\n", ins.ReviewCount, ins.GoodCount, ins.BadCount)
		if rate, ok := ins.GoodRate(); ok {
			fmt.Fprintf(&b, "- Good review rate: %.1f%%\n", rate*100)
		} else {
			b.WriteString("- Good review rate: n/a (no rated bands)\n")
		}
		b.WriteString("\n### Pros\n\n")
		if len(ins.Pros) == 0 {
			b.WriteString("no keyword matches\n")
		}
		for i, h := range ins.Pros {
			fmt.Fprintf(&b, "%d. %s (%d mentions, keyword %q)\n", i+1, h.Label, h.Count, h.Keyword)
		}
		b.WriteString("\n### Cons\n\n")
		if len(ins.Cons) == 0 {
			b.WriteString("no notable issues\n")
		}
		for i, h := range ins.Cons {
			fmt.Fprintf(&b, "%d. %s (%d mentions, keyword %q)\n", i+1, h.Label, h.Count, h.Keyword)
		}
	}
	return b.String()
}
