package sih

import (
	"regexp"
	"strconv"
	"strings"

	"sih-ps-scraper/config"
	"sih-ps-scraper/models"
)

// countRegexp matches a "submitted/capacity" cell such as "150/500".
// Keep in sync with countRegexp in services/cleaner.go.
var countRegexp = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

// Verdict explains why a row was kept or dropped.
type Verdict int

const (
	Match Verdict = iota
	Malformed
	NoCount
	OverThreshold
	OtherCategory
)

func (v Verdict) String() string {
	switch v {
	case Match:
		return "match"
	case Malformed:
		return "malformed"
	case NoCount:
		return "no submission count"
	case OverThreshold:
		return "over threshold"
	case OtherCategory:
		return "other category"
	}
	return "unknown"
}

// Filter is the selection predicate applied to every scanned row.
type Filter struct {
	Threshold      int
	Category       string
	CategoryColumn int
	Totals         []int
}

// NewFilter builds the Filter from configuration.
func NewFilter(cfg *config.Config) Filter {
	return Filter{
		Threshold:      cfg.SubmissionThreshold,
		Category:       cfg.FilterCategory,
		CategoryColumn: cfg.CategoryColumn,
		Totals:         cfg.SubmissionTotals,
	}
}

// SubmittedCount returns the numerator and denominator of the first cell of
// the form "<n>/<total>" whose total is a known capacity.
func (f Filter) SubmittedCount(row models.Row) (n, total int, ok bool) {
	for _, cell := range row {
		m := countRegexp.FindStringSubmatch(strings.TrimSpace(cell))
		if m == nil {
			continue
		}
		num, err1 := strconv.Atoi(m[1])
		den, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil || !f.knownTotal(den) {
			continue
		}
		return num, den, true
	}
	return 0, 0, false
}

func (f Filter) knownTotal(den int) bool {
	for _, t := range f.Totals {
		if t == den {
			return true
		}
	}
	return false
}

// Evaluate classifies row against the predicate.
func (f Filter) Evaluate(row models.Row) Verdict {
	if len(row) < minCells {
		return Malformed
	}
	n, _, ok := f.SubmittedCount(row)
	if !ok {
		return NoCount
	}
	if n >= f.Threshold {
		return OverThreshold
	}
	if !strings.EqualFold(strings.TrimSpace(row.Field(f.CategoryColumn)), strings.TrimSpace(f.Category)) {
		return OtherCategory
	}
	return Match
}

// Matches reports whether row belongs in the result set.
func (f Filter) Matches(row models.Row) bool {
	return f.Evaluate(row) == Match
}
