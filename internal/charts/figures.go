package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/reviewlens/internal/keywords"
	"github.com/KaramelBytes/reviewlens/internal/stats"
)

const titleStrip = 60

// RatingDistribution renders the star histogram as a bar panel and a share
// pie side by side. Returns the artifact path.
func (r *Renderer) RatingDistribution(h stats.Histogram, outDir string) (string, error) {
	out := filepath.Join(outDir, RatingDistributionPNG)
	if h.Total() == 0 {
		return "", fmt.Errorf("%s: %w", RatingDistributionPNG, ErrNoData)
	}

	colors := ramp(5, bluesFrom, bluesTo)
	var bars []chart.Value
	var pie []chart.Value
	var labels []string
	for rating := 1; rating <= 5; rating++ {
		count := h[rating]
		barLabel := fmt.Sprintf("%d (%d)", rating, count)
		bars = append(bars, chart.Value{
			Value: float64(count),
			Label: barLabel,
			Style: chart.Style{FillColor: colors[rating-1], StrokeColor: colors[rating-1]},
		})
		labels = append(labels, barLabel)
		if count > 0 {
			pieLabel := fmt.Sprintf("%d star %.1f%%", rating, h.Share(rating)*100)
			pie = append(pie, chart.Value{
				Value: float64(count),
				Label: pieLabel,
				Style: chart.Style{FillColor: pieColors[rating-1]},
			})
			labels = append(labels, pieLabel)
		}
	}
	if err := r.CheckGlyphs(labels...); err != nil {
		return "", fmt.Errorf("%s: %w", RatingDistributionPNG, err)
	}

	barImg, err := r.barChart("Reviews per Star", bars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", RatingDistributionPNG, err)
	}
	pieImg, err := r.pieChart("Share by Star", pie)
	if err != nil {
		return "", fmt.Errorf("%s: %w", RatingDistributionPNG, err)
	}

	dc := r.newCanvas(2*r.style.Width, r.style.Height+titleStrip, "Rating Distribution")
	dc.DrawImage(barImg, 0, titleStrip)
	dc.DrawImage(pieImg, r.style.Width, titleStrip)
	return out, r.writePNG(dc, out)
}

// RegionAnalysis renders the top regions by review volume and by mean
// rating side by side.
func (r *Renderer) RegionAnalysis(byCount, byRating []stats.Summary, outDir string) (string, error) {
	out := filepath.Join(outDir, RegionAnalysisPNG)
	if len(byCount) == 0 || len(byRating) == 0 {
		return "", fmt.Errorf("%s: %w", RegionAnalysisPNG, ErrNoData)
	}
	byCount = truncate(byCount, r.style.TopRegions)
	byRating = truncate(byRating, r.style.TopRegions)

	countBars := summaryBars(byCount, ramp(len(byCount), bluesFrom, bluesTo), func(s stats.Summary) (float64, string) {
		return float64(s.Count), fmt.Sprintf("%s (%d)", s.Name, s.Count)
	})
	ratingBars := summaryBars(byRating, ramp(len(byRating), rdylgnFrom, rdylgnTo), func(s stats.Summary) (float64, string) {
		return s.MeanRating, fmt.Sprintf("%s %.2f", s.Name, s.MeanRating)
	})
	if err := r.CheckGlyphs(barLabels(countBars, ratingBars)...); err != nil {
		return "", fmt.Errorf("%s: %w", RegionAnalysisPNG, err)
	}

	countImg, err := r.barChart(fmt.Sprintf("Reviews by Region (top %d)", len(byCount)), countBars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", RegionAnalysisPNG, err)
	}
	ratingImg, err := r.barChart(fmt.Sprintf("Mean Rating by Region (top %d)", len(byRating)), ratingBars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", RegionAnalysisPNG, err)
	}

	dc := r.newCanvas(2*r.style.Width, r.style.Height+titleStrip, "Region Analysis")
	dc.DrawImage(countImg, 0, titleStrip)
	dc.DrawImage(ratingImg, r.style.Width, titleStrip)
	return out, r.writePNG(dc, out)
}

// ProductRanking renders the 2x2 performance grid: mean ratings, review
// volumes, good-review rates, and a text summary with each product's top
// pro and con.
func (r *Renderer) ProductRanking(insights []keywords.ProductInsight, outDir string) (string, error) {
	out := filepath.Join(outDir, ProductRankingPNG)
	if len(insights) == 0 {
		return "", fmt.Errorf("%s: %w", ProductRankingPNG, ErrNoData)
	}

	// insights arrive ordered by mean rating descending already.
	ratingBars := make([]chart.Value, 0, len(insights))
	ratingColors := ramp(len(insights), rdylgnTo, rdylgnFrom)
	for i, ins := range insights {
		ratingBars = append(ratingBars, chart.Value{
			Value: ins.MeanRating,
			Label: fmt.Sprintf("%s %.2f", ins.Product, ins.MeanRating),
			Style: chart.Style{FillColor: ratingColors[i], StrokeColor: ratingColors[i]},
		})
	}

	byCount := append([]keywords.ProductInsight(nil), insights...)
	sortInsightsByCount(byCount)
	countColors := ramp(len(byCount), bluesTo, bluesFrom)
	countBars := make([]chart.Value, 0, len(byCount))
	for i, ins := range byCount {
		countBars = append(countBars, chart.Value{
			Value: float64(ins.ReviewCount),
			Label: fmt.Sprintf("%s (%d)", ins.Product, ins.ReviewCount),
			Style: chart.Style{FillColor: countColors[i], StrokeColor: countColors[i]},
		})
	}

	var rateBars []chart.Value
	for _, ins := range insights {
		if rate, ok := ins.GoodRate(); ok {
			rateBars = append(rateBars, chart.Value{
				Value: rate * 100,
				Label: fmt.Sprintf("%s %.1f%%", ins.Product, rate*100),
			})
		}
	}
	rateColors := ramp(len(rateBars), greensTo, greensFrom)
	for i := range rateBars {
		rateBars[i].Style = chart.Style{FillColor: rateColors[i], StrokeColor: rateColors[i]}
	}

	summary := rankingSummaryLines(insights)
	checkLabels := append(barLabels(ratingBars, countBars, rateBars), summary...)
	if err := r.CheckGlyphs(checkLabels...); err != nil {
		return "", fmt.Errorf("%s: %w", ProductRankingPNG, err)
	}

	ratingImg, err := r.barChart("Mean Rating Ranking", ratingBars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ProductRankingPNG, err)
	}
	countImg, err := r.barChart("Review Volume Ranking", countBars)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ProductRankingPNG, err)
	}

	dc := r.newCanvas(2*r.style.Width, 2*r.style.Height+titleStrip, "Product Performance")
	dc.DrawImage(ratingImg, 0, titleStrip)
	dc.DrawImage(countImg, r.style.Width, titleStrip)

	if len(rateBars) > 0 {
		rateImg, err := r.barChart("Good Review Rate (rating >= 4)", rateBars)
		if err != nil {
			return "", fmt.Errorf("%s: %w", ProductRankingPNG, err)
		}
		dc.DrawImage(rateImg, 0, titleStrip+r.style.Height)
	} else {
		r.drawTextPanel(dc, 0, titleStrip+r.style.Height, "Good Review Rate", []string{"no products with rated bands"})
	}
	r.drawTextPanel(dc, r.style.Width, titleStrip+r.style.Height, "Summary", summary)
	return out, r.writePNG(dc, out)
}

// ProductDetails renders one pros/cons card row per product.
func (r *Renderer) ProductDetails(insights []keywords.ProductInsight, outDir string) (string, error) {
	out := filepath.Join(outDir, ProductDetailsPNG)
	if len(insights) == 0 {
		return "", fmt.Errorf("%s: %w", ProductDetailsPNG, ErrNoData)
	}

	var labels []string
	for _, ins := range insights {
		labels = append(labels, detailLines(ins)...)
	}
	if err := r.CheckGlyphs(labels...); err != nil {
		return "", fmt.Errorf("%s: %w", ProductDetailsPNG, err)
	}

	rowH := r.style.Height / 2
	width := 2 * r.style.Width
	dc := r.newCanvas(width, len(insights)*rowH+titleStrip, "Product Pros and Cons")

	headerFace := r.face(16)
	bodyFace := r.face(12)
	for i, ins := range insights {
		top := float64(titleStrip + i*rowH)
		bg := pastel(i)
		dc.SetRGB255(bg[0], bg[1], bg[2])
		dc.DrawRectangle(0, top, float64(width), float64(rowH))
		dc.Fill()

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.SetFontFace(headerFace)
		dc.DrawStringAnchored(ins.Product, float64(width)/2, top+24, 0.5, 0.5)

		dc.SetFontFace(bodyFace)
		dc.DrawStringAnchored(statsLine(ins), float64(width)/2, top+50, 0.5, 0.5)

		leftX := 0.05 * float64(width)
		rightX := 0.55 * float64(width)
		y := top + 84

		dc.SetRGB255(0x1a, 0x7a, 0x34)
		dc.DrawString("Pros", leftX, y)
		dc.SetRGB255(0xb3, 0x2d, 0x2d)
		dc.DrawString("Cons", rightX, y)

		dc.SetRGB(0.15, 0.15, 0.15)
		drawHitList(dc, hitLines(ins.Pros, "no keyword matches"), leftX, y+22)
		drawHitList(dc, hitLines(ins.Cons, "no notable issues"), rightX, y+22)

		dc.SetRGB255(0x88, 0x88, 0x88)
		dc.SetLineWidth(1)
		dc.DrawLine(0, top+float64(rowH)-1, float64(width), top+float64(rowH)-1)
		dc.Stroke()
	}
	return out, r.writePNG(dc, out)
}

// --- helpers ---

func (r *Renderer) barChart(title string, bars []chart.Value) (image.Image, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	barWidth := (r.style.Width - 160) / len(bars)
	if barWidth > 80 {
		barWidth = 80
	}
	if barWidth < 12 {
		barWidth = 12
	}
	bc := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{Font: r.font, FontSize: 13},
		Font:       r.font,
		Width:      r.style.Width,
		Height:     r.style.Height,
		DPI:        r.style.DPI,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{Font: r.font, FontSize: 9},
		YAxis:      chart.YAxis{Style: chart.Style{Font: r.font, FontSize: 10}},
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart %q: %w", title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode bar chart %q: %w", title, err)
	}
	return img, nil
}

func (r *Renderer) pieChart(title string, values []chart.Value) (image.Image, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	pc := chart.PieChart{
		Title:      title,
		TitleStyle: chart.Style{Font: r.font, FontSize: 13},
		Font:       r.font,
		Width:      r.style.Width,
		Height:     r.style.Height,
		DPI:        r.style.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
	}
	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart %q: %w", title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode pie chart %q: %w", title, err)
	}
	return img, nil
}

// newCanvas allocates a white canvas with a centered figure title.
func (r *Renderer) newCanvas(w, h int, title string) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.05, 0.05, 0.05)
	dc.SetFontFace(r.face(20))
	dc.DrawStringAnchored(title, float64(w)/2, titleStrip/2, 0.5, 0.5)
	return dc
}

func (r *Renderer) drawTextPanel(dc *gg.Context, x, y int, title string, lines []string) {
	dc.SetRGB255(0xe9, 0xf1, 0xf8)
	dc.DrawRoundedRectangle(float64(x)+12, float64(y)+12, float64(r.style.Width)-24, float64(r.style.Height)-24, 10)
	dc.Fill()
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(r.face(14))
	dc.DrawString(title, float64(x)+32, float64(y)+44)
	dc.SetFontFace(r.face(11))
	lineY := float64(y) + 72
	for _, line := range lines {
		if lineY > float64(y+r.style.Height)-24 {
			break
		}
		dc.DrawString(line, float64(x)+32, lineY)
		lineY += 20
	}
}

func (r *Renderer) writePNG(dc *gg.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := dc.EncodePNG(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func summaryBars(groups []stats.Summary, colors []drawing.Color, pick func(stats.Summary) (float64, string)) []chart.Value {
	out := make([]chart.Value, 0, len(groups))
	for i, g := range groups {
		v, label := pick(g)
		out = append(out, chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{FillColor: colors[i], StrokeColor: colors[i]},
		})
	}
	return out
}

func barLabels(sets ...[]chart.Value) []string {
	var out []string
	for _, set := range sets {
		for _, v := range set {
			out = append(out, v.Label)
		}
	}
	return out
}

func truncate(groups []stats.Summary, n int) []stats.Summary {
	if n > 0 && len(groups) > n {
		return groups[:n]
	}
	return groups
}

func sortInsightsByCount(insights []keywords.ProductInsight) {
	sort.Slice(insights, func(i, j int) bool {
		if insights[i].ReviewCount == insights[j].ReviewCount {
			return insights[i].Product < insights[j].Product
		}
		return insights[i].ReviewCount > insights[j].ReviewCount
	})
}

func rankingSummaryLines(insights []keywords.ProductInsight) []string {
	var lines []string
	for i, ins := range insights {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, statsLine(ins)))
		if len(ins.Pros) > 0 {
			lines = append(lines, fmt.Sprintf("   + %s", ins.Pros[0].Label))
		}
		if len(ins.Cons) > 0 {
			lines = append(lines, fmt.Sprintf("   - %s", ins.Cons[0].Label))
		}
	}
	return lines
}

func statsLine(ins keywords.ProductInsight) string {
	line := fmt.Sprintf("%s: %.2f mean, %d reviews", ins.Product, ins.MeanRating, ins.ReviewCount)
	if rate, ok := ins.GoodRate(); ok {
		line += fmt.Sprintf(", %.1f%% positive", rate*100)
	}
	return line
}

func hitLines(hits []keywords.Hit, empty string) []string {
	if len(hits) == 0 {
		return []string{empty}
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = fmt.Sprintf("%d. %s (x%d)", i+1, h.Label, h.Count)
	}
	return out
}

func detailLines(ins keywords.ProductInsight) []string {
	lines := []string{ins.Product, statsLine(ins)}
	lines = append(lines, hitLines(ins.Pros, "no keyword matches")...)
	lines = append(lines, hitLines(ins.Cons, "no notable issues")...)
	return lines
}

func drawHitList(dc *gg.Context, lines []string, x, y float64) {
	for i, line := range lines {
		dc.DrawString(line, x, y+float64(i)*20)
	}
}

// pastel backgrounds for alternating product rows.
var pastels = [][3]int{
	{0xfb, 0xe3, 0xe4},
	{0xe3, 0xee, 0xfb},
	{0xe6, 0xf6, 0xe3},
	{0xfd, 0xf3, 0xdc},
	{0xf0, 0xe6, 0xf6},
}

func pastel(i int) [3]int {
	return pastels[i%len(pastels)]
}
