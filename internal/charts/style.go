// Package charts renders the report's PNG artifacts. Axis charts (bars,
// pies) come from go-chart; multi-panel figures and text cards are drawn
// with gg and composited from the individual chart images.
package charts

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
)

var (
	// ErrNoData indicates a chart had nothing to draw.
	ErrNoData = errors.New("no data to render")
	// ErrMissingGlyphs indicates the configured font cannot shape a label.
	ErrMissingGlyphs = errors.New("font is missing glyphs")
)

// Fixed artifact filenames inside the output directory, overwritten on
// every run.
const (
	RatingDistributionPNG = "rating_distribution.png"
	ProductRankingPNG     = "product_ranking_summary.png"
	ProductDetailsPNG     = "all_products_details.png"
	RegionAnalysisPNG     = "region_analysis.png"
)

// Style is the explicit rendering configuration; no package-level state so
// rendering stays deterministic and testable in isolation.
type Style struct {
	// Width and Height size the single-panel unit; composite figures are
	// multiples of it.
	Width  int
	Height int
	DPI    float64
	// FontPath points at a TTF able to shape every label script in the
	// input (the review labels are mixed-script). Empty selects the
	// go-chart default font, which covers Latin only.
	FontPath string
	// TopRegions bounds the region ranking charts.
	TopRegions int
}

// DefaultStyle mirrors the proportions of the reference figures.
func DefaultStyle() Style {
	return Style{Width: 800, Height: 600, DPI: 100, TopRegions: 10}
}

// Renderer draws all chart artifacts with one loaded font.
type Renderer struct {
	style Style
	font  *truetype.Font
}

// New loads the style's font and returns a ready renderer.
func New(style Style) (*Renderer, error) {
	if style.Width <= 0 || style.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", style.Width, style.Height)
	}
	if style.DPI <= 0 {
		style.DPI = 100
	}
	if style.TopRegions <= 0 {
		style.TopRegions = 10
	}
	var f *truetype.Font
	if style.FontPath != "" {
		b, err := os.ReadFile(style.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		f, err = truetype.Parse(b)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", style.FontPath, err)
		}
	} else {
		var err error
		f, err = chart.GetDefaultFont()
		if err != nil {
			return nil, fmt.Errorf("load default font: %w", err)
		}
	}
	return &Renderer{style: style, font: f}, nil
}

// face returns a rasterized face at the given point size for gg drawing.
func (r *Renderer) face(points float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: points, DPI: r.style.DPI * 72 / 100})
}

// CheckGlyphs verifies the loaded font has a glyph for every rune of every
// label. Missing glyphs would render as tofu boxes, which the report treats
// as a hard error rather than a cosmetic one.
func (r *Renderer) CheckGlyphs(labels ...string) error {
	missing := map[rune]struct{}{}
	for _, label := range labels {
		for _, ch := range label {
			if ch == '\n' || ch == ' ' {
				continue
			}
			if r.font.Index(ch) == 0 {
				missing[ch] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	runes := make([]string, 0, len(missing))
	for ch := range missing {
		runes = append(runes, fmt.Sprintf("%q", ch))
	}
	sort.Strings(runes)
	return fmt.Errorf("%w: %s (configure font_path with a font covering the review script)",
		ErrMissingGlyphs, strings.Join(runes, " "))
}

// ramp interpolates n colors between two endpoints, approximating the
// sequential colormaps of the reference figures.
func ramp(n int, from, to drawing.Color) []drawing.Color {
	if n <= 0 {
		return nil
	}
	out := make([]drawing.Color, n)
	if n == 1 {
		out[0] = from
		return out
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = drawing.Color{
			R: lerp(from.R, to.R, t),
			G: lerp(from.G, to.G, t),
			B: lerp(from.B, to.B, t),
			A: 255,
		}
	}
	return out
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Color ramps: blues for volumes, red-to-green for ratings, greens for good
// rates. Endpoints sampled from the reference palettes.
var (
	bluesFrom = drawing.Color{R: 0x9e, G: 0xc9, B: 0xe2, A: 255}
	bluesTo   = drawing.Color{R: 0x1c, G: 0x5a, B: 0x99, A: 255}

	rdylgnFrom = drawing.Color{R: 0xe0, G: 0x60, B: 0x4a, A: 255}
	rdylgnTo   = drawing.Color{R: 0x42, G: 0xa6, B: 0x4f, A: 255}

	greensFrom = drawing.Color{R: 0xa8, G: 0xdd, B: 0xb0, A: 255}
	greensTo   = drawing.Color{R: 0x1a, G: 0x7a, B: 0x34, A: 255}
)

// pieColors are the fixed star-share slice colors, 1 star through 5 stars.
var pieColors = []drawing.Color{
	{R: 0xff, G: 0x44, B: 0x44, A: 255},
	{R: 0xff, G: 0x99, B: 0x44, A: 255},
	{R: 0xff, G: 0xdd, B: 0x44, A: 255},
	{R: 0x88, G: 0xdd, B: 0x44, A: 255},
	{R: 0x44, G: 0xdd, B: 0x44, A: 255},
}
