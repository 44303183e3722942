package models

import "time"

// Row holds the non-empty cell texts of one table row, in column order.
// It is written to CSV as-is, padded to the output width.
type Row []string

// Field returns the cell at idx, or "" when the row is shorter.
func (r Row) Field(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Position is the pagination status shown under the table,
// e.g. "Showing 101 to 200 of 612 entries".
type Position struct {
	Start int
	End   int
	Total int
}

// Complete reports whether the visible range reaches the last entry.
func (p Position) Complete() bool {
	return p.Total > 0 && p.End >= p.Total
}

// ProblemStatement is the typed form of a collected Row, ready for PostgreSQL.
type ProblemStatement struct {
	ID           int64
	SerialNo     string
	Organization string
	Title        string
	Category     string
	PSNumber     string
	Submitted    int
	Capacity     int
	Theme        string
	Deadline     string
	CreatedAt    time.Time
}

// Summary holds the end-of-run report over the collected statements.
type Summary struct {
	TotalStatements  int
	AverageSubmitted float64
	MinSubmitted     int
	MaxSubmitted     int
	LeastContested   []*ProblemStatement
	ByTheme          map[string]int
	ByOrganization   map[string]int
}
