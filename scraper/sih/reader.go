package sih

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sih-ps-scraper/models"
	"sih-ps-scraper/utils"
)

var (
	// showingRegexp captures "Showing 1 to 100 of 612 entries".
	showingRegexp = regexp.MustCompile(`Showing\s+([\d,]+)\s+to\s+([\d,]+)\s+of\s+([\d,]+)\s+entries`)
	// totalRegexp captures the total alone when the range part is missing.
	totalRegexp = regexp.MustCompile(`of\s+([\d,]+)\s+entries`)
)

// Reader extracts matching rows from a rendered page snapshot.
type Reader struct {
	filter Filter
	logger *utils.Logger
}

// NewReader creates a Reader applying filter to every row.
func NewReader(filter Filter, logger *utils.Logger) *Reader {
	return &Reader{filter: filter, logger: logger}
}

// Scan parses an HTML snapshot and returns the rows passing the filter.
func (r *Reader) Scan(html string) []models.Row {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		r.logger.Warn("[reader] Could not parse page snapshot: %v", err)
		return nil
	}
	return r.ScanDocument(doc)
}

// ScanDocument returns the rows of the data table that pass the filter, in
// table order. A missing table yields an empty result.
func (r *Reader) ScanDocument(doc *goquery.Document) []models.Row {
	table, via, ok := firstMatch(tableSelectors, func(sel string) (*goquery.Selection, bool) {
		s := doc.Find(sel).First()
		return s, s.Length() > 0
	})
	if !ok {
		r.logger.Warn("[reader] Could not find data table")
		return nil
	}
	r.logger.Debug("[reader] Found table via %s", via)

	rows, _, _ := firstMatch(rowSelectors, func(sel string) (*goquery.Selection, bool) {
		s := table.Find(sel)
		return s, s.Length() > 0
	})
	if rows == nil {
		r.logger.Info("[reader] Table has no rows on this page")
		return nil
	}
	r.logger.Info("[reader] Found %d rows on this page", rows.Length())

	var matches []models.Row
	rows.Each(func(i int, tr *goquery.Selection) {
		row := rowCells(tr)
		verdict := r.filter.Evaluate(row)
		if verdict != Match {
			r.logger.Debug("[reader] Row %d skipped: %s", i+1, verdict)
			return
		}
		n, _, _ := r.filter.SubmittedCount(row)
		r.logger.Info("[reader] Found %s PS with %d submissions (below %d): %s",
			row.Field(r.filter.CategoryColumn), n, r.filter.Threshold, row.Field(psNumberColumn))
		matches = append(matches, row)
	})
	return matches
}

// rowCells returns the trimmed cell texts of tr, without empty or
// ellipsis placeholder cells.
func rowCells(tr *goquery.Selection) models.Row {
	var row models.Row
	tr.Find(cellSelector).Each(func(_ int, td *goquery.Selection) {
		text := strings.TrimSpace(td.Text())
		if text == "" {
			return
		}
		if _, placeholder := ellipsisMarkers[text]; placeholder {
			return
		}
		row = append(row, text)
	})
	return row
}

// ParsePosition reads the pagination status text under the table.
// Missing or unrecognised text yields a zero Position.
func ParsePosition(doc *goquery.Document) models.Position {
	return parsePositionText(doc.Find(infoSelector).First().Text())
}

func parsePositionText(text string) models.Position {
	if m := showingRegexp.FindStringSubmatch(text); m != nil {
		return models.Position{Start: atoi(m[1]), End: atoi(m[2]), Total: atoi(m[3])}
	}
	if m := totalRegexp.FindStringSubmatch(text); m != nil {
		return models.Position{Total: atoi(m[1])}
	}
	return models.Position{}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}
