package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"sih-ps-scraper/models"
	"sih-ps-scraper/utils"
)

// Column layout of a collected row, matching the CSV header.
const (
	colSerialNo = iota
	colOrganization
	colTitle
	colCategory
	colPSNumber
	colCount
	colTheme
	colDeadline
)

// countRegexp captures "submitted/capacity", e.g. "150 / 500".
// Keep in sync with countRegexp in scraper/sih/filter.go.
var countRegexp = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)

// Cleaner turns collected rows into typed ProblemStatements.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts rows to statements, dropping rows without a PS number and
// repeats of one already seen.
func (c *Cleaner) Clean(rows []models.Row) []*models.ProblemStatement {
	seen := make(map[string]struct{})
	result := make([]*models.ProblemStatement, 0, len(rows))

	for _, r := range rows {
		ps := normaliseText(r.Field(colPSNumber))
		if ps == "" {
			c.logger.Warn("[cleaner] Dropping row with empty PS number: %s", r.Field(colTitle))
			continue
		}

		if _, dup := seen[ps]; dup {
			c.logger.Debug("[cleaner] Duplicate PS number skipped: %s", ps)
			continue
		}
		seen[ps] = struct{}{}

		submitted, capacity := parseCount(r)
		result = append(result, &models.ProblemStatement{
			SerialNo:     normaliseText(r.Field(colSerialNo)),
			Organization: normaliseText(r.Field(colOrganization)),
			Title:        normaliseText(r.Field(colTitle)),
			Category:     normaliseText(r.Field(colCategory)),
			PSNumber:     ps,
			Submitted:    submitted,
			Capacity:     capacity,
			Theme:        normaliseText(r.Field(colTheme)),
			Deadline:     normaliseText(r.Field(colDeadline)),
			CreatedAt:    time.Now(),
		})
	}

	c.logger.Info("[cleaner] Cleaned %d → %d statements (dropped %d)",
		len(rows), len(result), len(rows)-len(result))
	return result
}

// parseCount reads the submission cell. The expected column is tried first,
// then any other cell in the "n/total" form.
func parseCount(r models.Row) (submitted, capacity int) {
	if n, total, ok := splitCount(r.Field(colCount)); ok {
		return n, total
	}
	for _, cell := range r {
		if n, total, ok := splitCount(cell); ok {
			return n, total
		}
	}
	return 0, 0
}

func splitCount(cell string) (n, total int, ok bool) {
	m := countRegexp.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	total, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return n, total, true
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
