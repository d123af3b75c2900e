// Package rules implements ordered keyword/regex category rules for
// bank-statement transactions. Rules come from a JSON object of
// {category: [pattern, ...]}; patterns are case-insensitive substrings
// unless prefixed with "re:", and the first matching category wins.
package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
)

// Rule is one category with its raw patterns, in file order.
type Rule struct {
	Category string
	Patterns []string
}

// CategoryRules holds compiled patterns in rule order.
type CategoryRules struct {
	compiled []compiledRule
}

type compiledRule struct {
	category string
	patterns []*regexp.Regexp
}

// New compiles an ordered rule list.
func New(list []Rule) (*CategoryRules, error) {
	cr := &CategoryRules{}
	for _, r := range list {
		bucket := make([]*regexp.Regexp, 0, len(r.Patterns))
		for _, p := range r.Patterns {
			var (
				re  *regexp.Regexp
				err error
			)
			if strings.HasPrefix(p, "re:") {
				re, err = regexp.Compile("(?i)" + strings.TrimPrefix(p, "re:"))
			} else {
				re, err = regexp.Compile("(?i)" + regexp.QuoteMeta(p))
			}
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q in category %q: %w", p, r.Category, err)
			}
			bucket = append(bucket, re)
		}
		cr.compiled = append(cr.compiled, compiledRule{category: r.Category, patterns: bucket})
	}
	return cr, nil
}

// FromJSON loads rules from a JSON file. Key order in the file is the
// rule order, so the object is walked with the token stream rather than
// decoded into a map.
func FromJSON(path string) (*CategoryRules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads ordered rules from JSON.
func Parse(r io.Reader) (*CategoryRules, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("rules must be an object of {category: [patterns...]}")
	}

	var list []Rule
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read rules: %w", err)
		}
		category, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in rules", keyTok)
		}
		var patterns []string
		if err := dec.Decode(&patterns); err != nil {
			return nil, fmt.Errorf("category %q must map to a list of string patterns: %w", category, err)
		}
		list = append(list, Rule{Category: category, Patterns: patterns})
	}
	return New(list)
}

// Suggest returns the first matching category for a description, or ""
// when no rule matches.
func (cr *CategoryRules) Suggest(description string) string {
	text := NormalizeDescription(description)
	for _, rule := range cr.compiled {
		for _, pat := range rule.patterns {
			if pat.MatchString(text) {
				return rule.category
			}
		}
	}
	return ""
}

// Apply auto-categorizes transactions in place. Unless overwrite is set,
// user overrides and existing non-default categories are left alone.
func (cr *CategoryRules) Apply(txns []model.Transaction, overwrite bool) {
	for i := range txns {
		t := &txns[i]
		if !overwrite && t.UserOverride {
			continue
		}
		if !overwrite && t.Category != "" && t.Category != model.CategoryUncategorized {
			continue
		}
		if suggestion := cr.Suggest(t.Description); suggestion != "" {
			t.Category = suggestion
		}
	}
}

var (
	refNumRe = regexp.MustCompile(`\b[0-9]{5,}\b`)    // card/reference numbers
	spaceRe  = regexp.MustCompile(`\s+`)
	punctRe  = regexp.MustCompile(`[^a-z0-9&' ]+`)
)

// NormalizeDescription cleans a bank description so substring rules hit
// more often: lowercase, strip long digit runs and punctuation, collapse
// whitespace.
func NormalizeDescription(s string) string {
	s = strings.ToLower(s)
	s = refNumRe.ReplaceAllString(s, " ")
	s = punctRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
