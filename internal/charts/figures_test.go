package charts

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/reviewlens/internal/keywords"
	"github.com/KaramelBytes/reviewlens/internal/stats"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	style := DefaultStyle()
	style.Width = 400
	style.Height = 300
	style.TopRegions = 3
	r, err := New(style)
	require.NoError(t, err)
	return r
}

func testInsights() []keywords.ProductInsight {
	return []keywords.ProductInsight{
		{
			Product:     "Laptop",
			MeanRating:  4.5,
			ReviewCount: 10,
			GoodCount:   8,
			BadCount:    1,
			Pros:        []keywords.Hit{{Label: "fast", Count: 6, Keyword: "fast"}},
			Cons:        []keywords.Hit{{Label: "heavy", Count: 1, Keyword: "heavy"}},
		},
		{
			Product:     "Phone",
			MeanRating:  3.0,
			ReviewCount: 4,
			// No good/bad band reviews: excluded from the rate chart.
		},
	}
}

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestNewRejectsInvalidSize(t *testing.T) {
	_, err := New(Style{Width: 0, Height: 100})
	require.Error(t, err)
}

func TestCheckGlyphsDefaultFontLacksCJK(t *testing.T) {
	r := testRenderer(t)
	require.NoError(t, r.CheckGlyphs("plain ascii labels 123%"))

	err := r.CheckGlyphs("停止工作")
	require.ErrorIs(t, err, ErrMissingGlyphs)
	require.Contains(t, err.Error(), "font_path")
}

func TestRatingDistribution(t *testing.T) {
	r := testRenderer(t)
	dir := t.TempDir()
	h := stats.Histogram{1: 30, 2: 40, 3: 30, 4: 100, 5: 300}

	path, err := r.RatingDistribution(h, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, RatingDistributionPNG), path)

	w, hgt := decodePNG(t, path)
	require.Equal(t, 800, w)
	require.Equal(t, 360, hgt)
}

func TestRatingDistributionNoData(t *testing.T) {
	r := testRenderer(t)
	_, err := r.RatingDistribution(stats.Histogram{}, t.TempDir())
	require.ErrorIs(t, err, ErrNoData)
}

func TestRatingDistributionOverwrites(t *testing.T) {
	r := testRenderer(t)
	dir := t.TempDir()
	stale := filepath.Join(dir, RatingDistributionPNG)
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	_, err := r.RatingDistribution(stats.Histogram{5: 1}, dir)
	require.NoError(t, err)
	w, _ := decodePNG(t, stale)
	require.Equal(t, 800, w)
}

func TestRegionAnalysisTruncatesToTopN(t *testing.T) {
	r := testRenderer(t)
	groups := []stats.Summary{
		{Name: "US", MeanRating: 4.2, Count: 50},
		{Name: "DE", MeanRating: 4.6, Count: 30},
		{Name: "JP", MeanRating: 3.9, Count: 20},
		{Name: "FR", MeanRating: 4.0, Count: 10},
		{Name: "CN", MeanRating: 3.5, Count: 5},
	}
	path, err := r.RegionAnalysis(stats.RankByCount(groups), stats.RankByRating(groups), t.TempDir())
	require.NoError(t, err)
	w, hgt := decodePNG(t, path)
	require.Equal(t, 800, w)
	require.Equal(t, 360, hgt)
}

func TestRegionAnalysisNoData(t *testing.T) {
	r := testRenderer(t)
	_, err := r.RegionAnalysis(nil, nil, t.TempDir())
	require.ErrorIs(t, err, ErrNoData)
}

func TestProductRanking(t *testing.T) {
	r := testRenderer(t)
	path, err := r.ProductRanking(testInsights(), t.TempDir())
	require.NoError(t, err)
	w, hgt := decodePNG(t, path)
	require.Equal(t, 800, w)
	require.Equal(t, 660, hgt)
}

func TestProductRankingNoRateBands(t *testing.T) {
	// Every product lacks banded reviews: the rate panel falls back to a
	// text placeholder instead of erroring.
	r := testRenderer(t)
	insights := []keywords.ProductInsight{{Product: "Tablet", MeanRating: 3, ReviewCount: 2}}
	_, err := r.ProductRanking(insights, t.TempDir())
	require.NoError(t, err)
}

func TestProductDetails(t *testing.T) {
	r := testRenderer(t)
	path, err := r.ProductDetails(testInsights(), t.TempDir())
	require.NoError(t, err)
	w, hgt := decodePNG(t, path)
	require.Equal(t, 800, w)
	require.Equal(t, 2*150+60, hgt)
}

func TestProductDetailsRejectsUncoveredScript(t *testing.T) {
	r := testRenderer(t)
	insights := []keywords.ProductInsight{{
		Product:     "Charger",
		MeanRating:  1.5,
		ReviewCount: 2,
		BadCount:    2,
		Cons:        []keywords.Hit{{Label: "停止工作", Count: 2, Keyword: "stopped"}},
	}}
	_, err := r.ProductDetails(insights, t.TempDir())
	require.ErrorIs(t, err, ErrMissingGlyphs)
}
