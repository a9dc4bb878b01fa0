// Package keywords implements the heuristic pros/cons extraction: fixed,
// ordered dictionaries of lowercase substrings mapped to display labels,
// counted over rating-filtered review text. This is substring containment,
// not NLP.
package keywords

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyLexicon indicates a dictionary with no entries.
	ErrEmptyLexicon = errors.New("lexicon has no entries")
	// ErrDuplicateKeyword indicates the same match substring appears twice,
	// within one lexicon or across the positive/negative pair.
	ErrDuplicateKeyword = errors.New("duplicate keyword")
)

// Entry maps a lowercase match substring to a human-readable label.
type Entry struct {
	Match string `yaml:"match"`
	Label string `yaml:"label"`
}

// Lexicon is an ordered keyword dictionary. Order matters: it breaks ranking
// ties, so entries are kept as a slice rather than a map.
type Lexicon []Entry

// Dictionaries holds the positive and negative lexicons used for pros and
// cons respectively.
type Dictionaries struct {
	Positive Lexicon `yaml:"positive"`
	Negative Lexicon `yaml:"negative"`
}

// Default returns the built-in dictionaries. Labels are the Chinese display
// strings the report renders; matches are lowercase English substrings.
func Default() Dictionaries {
	return Dictionaries{
		Positive: Lexicon{
			{"quality", "质量优秀"}, {"great", "表现优异"}, {"excellent", "卓越性能"},
			{"perfect", "完美体验"}, {"fast", "速度快"}, {"amazing", "令人惊艳"},
			{"love", "用户喜爱"}, {"best", "最佳选择"}, {"good", "良好"},
			{"worth", "物有所值"}, {"value", "高性价比"}, {"recommend", "推荐"},
			{"powerful", "功能强大"}, {"compact", "小巧便携"}, {"durable", "耐用"},
			{"comfortable", "舒适"}, {"clear", "清晰"}, {"easy", "易用"},
		},
		Negative: Lexicon{
			{"bad", "质量差"}, {"poor", "表现不佳"}, {"disappointed", "令人失望"},
			{"waste", "浪费"}, {"broke", "损坏"}, {"stopped", "停止工作"},
			{"problem", "存在问题"}, {"issue", "有缺陷"}, {"weak", "性能弱"},
			{"lost", "迷失/丢失"}, {"fail", "失败"}, {"not work", "不工作"},
			{"stuck", "卡住"}, {"slow", "速度慢"}, {"complaint", "投诉"},
			{"difficult", "困难"}, {"complicated", "复杂"}, {"delay", "延迟"},
		},
	}
}

// LoadFile reads dictionaries from a YAML file. Entry order in the file is
// preserved.
func LoadFile(path string) (Dictionaries, error) {
	var d Dictionaries
	b, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read lexicon: %w", err)
	}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := d.Validate(); err != nil {
		return d, err
	}
	return d, nil
}

// SaveFile writes dictionaries as YAML, used to scaffold a starter lexicon.
func SaveFile(d Dictionaries, path string) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal lexicon: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write lexicon: %w", err)
	}
	return nil
}

// Validate rejects empty lexicons, blank entries, and duplicate match
// substrings. A substring in both the positive and the negative lexicon is a
// configuration error, not a guess to be made at extraction time.
func (d Dictionaries) Validate() error {
	seen := map[string]string{}
	check := func(side string, lex Lexicon) error {
		if len(lex) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyLexicon, side)
		}
		for _, e := range lex {
			match := strings.ToLower(strings.TrimSpace(e.Match))
			if match == "" || strings.TrimSpace(e.Label) == "" {
				return fmt.Errorf("%s lexicon: entry %+v has an empty match or label", side, e)
			}
			if prev, dup := seen[match]; dup {
				return fmt.Errorf("%w: %q in %s and %s", ErrDuplicateKeyword, match, prev, side)
			}
			seen[match] = side
		}
		return nil
	}
	if err := check("positive", d.Positive); err != nil {
		return err
	}
	return check("negative", d.Negative)
}
