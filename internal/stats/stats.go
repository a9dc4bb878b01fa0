// Package stats computes the descriptive statistics the report is built
// from: the star-rating histogram and per-product / per-region summaries.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// ErrBadRating indicates a rating outside 1..5 reached aggregation.
var ErrBadRating = errors.New("rating out of range")

// Histogram maps a star rating (1..5) to its review count.
type Histogram map[int]int

// RatingHistogram counts reviews per star. The loader validates ratings, but
// the histogram re-checks so it stays safe on hand-built record sets.
func RatingHistogram(records []dataset.Record) (Histogram, error) {
	h := Histogram{}
	for i, r := range records {
		if r.Rating < 1 || r.Rating > 5 {
			return nil, fmt.Errorf("record %d (%s): %w: %d", i, r.Product, ErrBadRating, r.Rating)
		}
		h[r.Rating]++
	}
	return h, nil
}

// Total returns the number of counted reviews.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Share returns the fraction of reviews with the given rating.
func (h Histogram) Share(rating int) float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	return float64(h[rating]) / float64(total)
}

// GoodRate returns the fraction of reviews rated 4 stars or higher.
func (h Histogram) GoodRate() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	return float64(h[4]+h[5]) / float64(total)
}

// Mean returns the arithmetic mean rating.
func (h Histogram) Mean() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for rating, count := range h {
		sum += rating * count
	}
	return float64(sum) / float64(total)
}

// Median returns the median rating using the standard midpoint convention
// for even counts.
func (h Histogram) Median() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	lo := (total + 1) / 2
	hi := total/2 + 1
	var loVal, hiVal int
	seen := 0
	for rating := 1; rating <= 5; rating++ {
		seen += h[rating]
		if loVal == 0 && seen >= lo {
			loVal = rating
		}
		if hiVal == 0 && seen >= hi {
			hiVal = rating
		}
	}
	return float64(loVal+hiVal) / 2
}

// Std returns the sample standard deviation of ratings.
func (h Histogram) Std() float64 {
	total := h.Total()
	if total < 2 {
		return 0
	}
	mean := h.Mean()
	var m2 float64
	for rating, count := range h {
		d := float64(rating) - mean
		m2 += d * d * float64(count)
	}
	return math.Sqrt(m2 / float64(total-1))
}

// Summary is the aggregate for one group (a product or a region).
type Summary struct {
	Name       string
	MeanRating float64
	Count      int
}

// GroupKey selects the grouping column.
type GroupKey func(dataset.Record) string

// ByProduct groups records by product name.
func ByProduct(r dataset.Record) string { return r.Product }

// ByRegion groups records by region code.
func ByRegion(r dataset.Record) string { return r.Region }

// GroupBy computes mean rating and review count per group. The result is
// unordered; use RankByRating or RankByCount for the report views.
func GroupBy(records []dataset.Record, key GroupKey) []Summary {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, r := range records {
		k := key(r)
		sums[k] += r.Rating
		counts[k]++
	}
	out := make([]Summary, 0, len(counts))
	for name, count := range counts {
		out = append(out, Summary{
			Name:       name,
			MeanRating: float64(sums[name]) / float64(count),
			Count:      count,
		})
	}
	return out
}

// RankByRating orders summaries by mean rating descending, ties broken by
// name ascending so reruns are deterministic.
func RankByRating(groups []Summary) []Summary {
	out := append([]Summary(nil), groups...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanRating == out[j].MeanRating {
			return out[i].Name < out[j].Name
		}
		return out[i].MeanRating > out[j].MeanRating
	})
	return out
}

// RankByCount orders summaries by review count descending, ties broken by
// name ascending.
func RankByCount(groups []Summary) []Summary {
	out := append([]Summary(nil), groups...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	return out
}
