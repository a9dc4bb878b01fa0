package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "review_analysis" {
		t.Fatalf("OutputDir = %q, want review_analysis", c.OutputDir)
	}
	if c.SheetIndex != 1 || c.TopPros != 5 || c.TopCons != 3 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.ChartWidth != 800 || c.ChartHeight != 600 || c.ChartDPI != 100 {
		t.Fatalf("unexpected chart defaults: %+v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		InputPath:   "reviews.xlsx",
		OutputDir:   "out",
		LexiconPath: "lexicon.yaml",
		FontPath:    "/fonts/NotoSansSC.ttf",
		SheetName:   "Reviews",
		SheetIndex:  2,
		ChartWidth:  1024,
		ChartHeight: 768,
		ChartDPI:    120,
		TopRegions:  5,
		TopPros:     4,
		TopCons:     2,
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REVIEWLENS_OUTPUT_DIR", "env_out")
	t.Setenv("REVIEWLENS_TOP_REGIONS", "3")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "env_out" {
		t.Fatalf("OutputDir = %q, want env_out", c.OutputDir)
	}
	if c.TopRegions != 3 {
		t.Fatalf("TopRegions = %d, want 3", c.TopRegions)
	}
}
