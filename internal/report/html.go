package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/reviewlens/internal/keywords"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// minInsideLabelPct is the bar width below which the percentage label moves
// outside the bar. Inside a narrower bar the text would be clipped.
const minInsideLabelPct = 12.0

// LabelInside reports whether a percentage label fits inside its bar.
func LabelInside(pct float64) bool {
	return pct >= minInsideLabelPct
}

var htmlFuncs = template.FuncMap{
	"pct":         func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"pct100":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"rating":      func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"labelInside": func(v float64) bool { return LabelInside(v * 100) },
	"mul100":      func(v float64) float64 { return v * 100 },
	"add1":        func(i int) int { return i + 1 },
	"goodRate": func(p keywords.ProductInsight) float64 {
		rate, _ := p.GoodRate()
		return rate
	},
	"hasGoodRate": func(p keywords.ProductInsight) bool {
		_, ok := p.GoodRate()
		return ok
	},
}

// WriteHTML renders report.html into outDir.
func WriteHTML(d Data, outDir string) (string, error) {
	tmpl, err := template.New("report.html.tmpl").Funcs(htmlFuncs).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}
	path := filepath.Join(outDir, HTMLName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, d); err != nil {
		return "", fmt.Errorf("render %s: %w", HTMLName, err)
	}
	return path, nil
}
