// Package report assembles the final HTML document and its Markdown
// companions from the aggregate outputs. Composition is write-once: every
// run rebuilds the documents from scratch.
package report

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/reviewlens/internal/keywords"
	"github.com/KaramelBytes/reviewlens/internal/stats"
)

// Output filenames inside the report directory.
const (
	HTMLName     = "report.html"
	MarkdownName = "analysis_report.md"
	InsightsName = "product_insights.md"
)

// ChartRef points the document at a rendered artifact by relative path.
type ChartRef struct {
	Title string
	Path  string
}

// Data is everything the composer consumes, read-only.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Source      string
	// DuplicateRows is how many exact-duplicate rows the loader dropped.
	DuplicateRows int

	Histogram        stats.Histogram
	ProductsByRating []stats.Summary
	ProductsByCount  []stats.Summary
	RegionsByRating  []stats.Summary
	RegionsByCount   []stats.Summary
	Insights         []keywords.ProductInsight
	Charts           []ChartRef
}

// HistogramRow is one star's slice of the distribution, shaped for the
// templates.
type HistogramRow struct {
	Rating int
	Count  int
	Share  float64
}

// HistogramRows returns the distribution highest star first, the order the
// report tables use.
func (d Data) HistogramRows() []HistogramRow {
	rows := make([]HistogramRow, 0, 5)
	for rating := 5; rating >= 1; rating-- {
		rows = append(rows, HistogramRow{
			Rating: rating,
			Count:  d.Histogram[rating],
			Share:  d.Histogram.Share(rating),
		})
	}
	return rows
}

// KeyFindings derives the headline observations from the rating profile,
// mirroring the thresholds of the original analysis.
func (d Data) KeyFindings() []string {
	var out []string
	mean := d.Histogram.Mean()
	switch {
	case mean >= 4.5:
		out = append(out, fmt.Sprintf("Overall satisfaction is excellent: mean rating %.2f", mean))
	case mean >= 4.0:
		out = append(out, fmt.Sprintf("Overall satisfaction is good at %.2f mean rating, with room to improve", mean))
	case mean >= 3.0:
		out = append(out, fmt.Sprintf("Overall satisfaction is moderate at %.2f mean rating and needs attention", mean))
	default:
		out = append(out, fmt.Sprintf("Overall satisfaction is low at %.2f mean rating and needs urgent work", mean))
	}
	if d.Histogram.Share(1) > 0.15 && d.Histogram.Share(5) > 0.15 {
		out = append(out, "Ratings are polarized: both 1-star and 5-star shares exceed 15%, review both extremes")
	}
	for rating := 5; rating >= 1; rating-- {
		if share := d.Histogram.Share(rating); share > 0.70 {
			out = append(out, fmt.Sprintf("Ratings concentrate abnormally: %.1f%% of reviews give %d stars", share*100, rating))
		}
	}
	if d.DuplicateRows > 0 {
		total := d.Histogram.Total() + d.DuplicateRows
		out = append(out, fmt.Sprintf("Found %d duplicate reviews (%.1f%% of source rows), dropped before analysis", d.DuplicateRows, float64(d.DuplicateRows)/float64(total)*100))
	}
	return out
}

// Recommendations derives threshold-driven action items.
func (d Data) Recommendations() []string {
	var out []string
	if low := d.Histogram.Share(1) + d.Histogram.Share(2); low > 0.20 {
		out = append(out, fmt.Sprintf("Urgent: low ratings are %.1f%% of reviews; triage the top negative keywords first", low*100))
	}
	if high := d.Histogram.Share(4) + d.Histogram.Share(5); high > 0.60 {
		out = append(out, fmt.Sprintf("Strength: %.1f%% of reviews rate 4 stars or higher; surface the top positive keywords as selling points", high*100))
	}
	out = append(out, "Re-run this analysis on each export to track movement in rankings and keyword counts")
	return out
}
