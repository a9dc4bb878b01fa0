package keywords

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/reviewlens/internal/dataset"
)

// Options bounds the pros/cons lists.
type Options struct {
	TopPros int
	TopCons int
}

// DefaultOptions mirrors the report layout: five pros, three cons.
func DefaultOptions() Options {
	return Options{TopPros: 5, TopCons: 3}
}

// Hit is one ranked keyword match within a rating band.
type Hit struct {
	Label   string
	Count   int
	Keyword string
}

// ProductInsight aggregates one product's rating profile and its ranked
// pros/cons.
type ProductInsight struct {
	Product     string
	MeanRating  float64
	ReviewCount int
	GoodCount   int // reviews rated >= 4
	BadCount    int // reviews rated <= 2
	Pros        []Hit
	Cons        []Hit
}

// GoodRate returns good/(good+bad) and false when the product has no review
// in either band, so callers exclude it instead of dividing by zero.
func (p ProductInsight) GoodRate() (float64, bool) {
	denom := p.GoodCount + p.BadCount
	if denom == 0 {
		return 0, false
	}
	return float64(p.GoodCount) / float64(denom), true
}

// Analyze computes per-product insights. Pros count keyword occurrences in
// good reviews (rating >= 4), cons in bad reviews (rating <= 2). A review
// containing several keyword substrings counts once per matching entry.
// Reviews without text are excluded from keyword scanning but still count
// toward the rating bands. Products are ordered by mean rating descending,
// name ascending on ties.
func Analyze(records []dataset.Record, dicts Dictionaries, opt Options) []ProductInsight {
	byProduct := map[string][]dataset.Record{}
	var order []string
	for _, r := range records {
		if _, ok := byProduct[r.Product]; !ok {
			order = append(order, r.Product)
		}
		byProduct[r.Product] = append(byProduct[r.Product], r)
	}

	insights := make([]ProductInsight, 0, len(order))
	for _, product := range order {
		recs := byProduct[product]
		ins := ProductInsight{Product: product, ReviewCount: len(recs)}

		sum := 0
		var goodText, badText []string
		for _, r := range recs {
			sum += r.Rating
			switch {
			case r.Rating >= 4:
				ins.GoodCount++
				if r.Text != "" {
					goodText = append(goodText, strings.ToLower(r.Text))
				}
			case r.Rating <= 2:
				ins.BadCount++
				if r.Text != "" {
					badText = append(badText, strings.ToLower(r.Text))
				}
			}
		}
		ins.MeanRating = float64(sum) / float64(len(recs))
		ins.Pros = rankHits(goodText, dicts.Positive, opt.TopPros)
		ins.Cons = rankHits(badText, dicts.Negative, opt.TopCons)
		insights = append(insights, ins)
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].MeanRating == insights[j].MeanRating {
			return insights[i].Product < insights[j].Product
		}
		return insights[i].MeanRating > insights[j].MeanRating
	})
	return insights
}

// rankHits counts reviews containing each lexicon entry, drops zero counts,
// sorts by count descending, and truncates to topN. The sort is stable so
// equal counts keep dictionary insertion order.
func rankHits(lowered []string, lex Lexicon, topN int) []Hit {
	var hits []Hit
	for _, e := range lex {
		match := strings.ToLower(e.Match)
		count := 0
		for _, text := range lowered {
			if strings.Contains(text, match) {
				count++
			}
		}
		if count > 0 {
			hits = append(hits, Hit{Label: e.Label, Count: count, Keyword: e.Match})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Count > hits[j].Count })
	if topN > 0 && len(hits) > topN {
		hits = hits[:topN]
	}
	return hits
}
