package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Options controls how a tabular source is read.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects by file extension (',' or '\t').
	Delimiter rune
	// SheetName selects an XLSX worksheet by name; empty means use SheetIndex.
	SheetName string
	// SheetIndex is the 1-based worksheet index used when SheetName is empty.
	SheetIndex int
}

// DefaultOptions returns reasonable defaults for review ingestion.
func DefaultOptions() Options {
	return Options{SheetIndex: 1}
}

var (
	// ErrUnsupported indicates the file extension is not a known table format.
	ErrUnsupported = errors.New("unsupported table format")
	// ErrMissingColumn indicates a required column could not be resolved.
	ErrMissingColumn = errors.New("required column not found")
	// ErrNoRecords indicates the source contained no usable review rows.
	ErrNoRecords = errors.New("no usable records")
	// ErrBadRating indicates a rating value outside 1..5.
	ErrBadRating = errors.New("rating out of range")
)

// Load reads review records from a CSV, TSV, or XLSX file.
// Exact-duplicate rows and rows missing product, region, or rating are
// dropped; a present but unparsable or out-of-range rating is an error.
// The second return is the number of duplicate rows dropped, reported so
// the analysis can flag suspicious exports.
func Load(path string, opt Options) ([]Record, int, error) {
	lower := strings.ToLower(path)
	var rows [][]string
	var err error
	switch {
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"):
		rows, err = readCSV(path, opt)
	case strings.HasSuffix(lower, ".xlsx"):
		rows, err = readXLSX(path, opt)
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return nil, 0, err
	}
	return buildRecords(rows)
}

// Column roles are resolved by fuzzy header matching so exports from
// different storefronts load without renaming. First match wins.
var columnAliases = []struct {
	role    string
	needles []string
}{
	{"rating", []string{"rating", "star", "score"}},
	{"product", []string{"product", "item", "sku"}},
	{"region", []string{"region", "country", "location"}},
	{"text", []string{"review", "text", "comment"}},
}

type columns struct {
	rating  int
	product int
	region  int
	text    int // -1 when absent; text is optional
}

func resolveColumns(header []string) (columns, error) {
	cols := columns{rating: -1, product: -1, region: -1, text: -1}
	used := make(map[int]bool, len(header))
	for _, alias := range columnAliases {
		idx := -1
	scan:
		for _, needle := range alias.needles {
			for i, h := range header {
				if used[i] {
					continue
				}
				if strings.Contains(strings.ToLower(strings.TrimSpace(h)), needle) {
					idx = i
					break scan
				}
			}
		}
		if idx >= 0 {
			used[idx] = true
		}
		switch alias.role {
		case "rating":
			cols.rating = idx
		case "product":
			cols.product = idx
		case "region":
			cols.region = idx
		case "text":
			cols.text = idx
		}
	}
	for _, req := range []struct {
		role string
		idx  int
	}{{"rating", cols.rating}, {"product", cols.product}, {"region", cols.region}} {
		if req.idx < 0 {
			return cols, fmt.Errorf("%w: %s (headers: %s)", ErrMissingColumn, req.role, strings.Join(header, ", "))
		}
	}
	return cols, nil
}

func buildRecords(rows [][]string) ([]Record, int, error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: empty table", ErrNoRecords)
	}
	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, 0, err
	}
	records := make([]Record, 0, len(rows)-1)
	seen := make(map[string]struct{}, len(rows)-1)
	duplicates := 0
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, counting the header
		product := cell(row, cols.product)
		region := cell(row, cols.region)
		rawRating := cell(row, cols.rating)
		if product == "" || region == "" || rawRating == "" {
			continue
		}
		rating, err := parseRating(rawRating)
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", rowNum, err)
		}
		rec := Record{
			Product: product,
			Region:  region,
			Rating:  rating,
			Text:    cell(row, cols.text),
		}
		key := rec.Product + "\x1f" + rec.Region + "\x1f" + rawRating + "\x1f" + rec.Text
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, 0, ErrNoRecords
	}
	return records, duplicates, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRating accepts integers and integral floats ("4", "4.0"); XLSX cell
// values frequently round-trip as floats.
func parseRating(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrBadRating, s)
	}
	r := int(f)
	if r < 1 || r > 5 {
		return 0, fmt.Errorf("%w: %d", ErrBadRating, r)
	}
	return r, nil
}
