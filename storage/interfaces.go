package storage

import "sih-ps-scraper/models"

// StatementWriter is the interface any typed storage backend must satisfy.
type StatementWriter interface {
	Write(statements []*models.ProblemStatement) error
	Close() error
}

// RowWriter is the interface for persisting collected rows as scraped.
type RowWriter interface {
	WriteRows(rows []models.Row) error
	Close() error
}

var (
	_ StatementWriter = (*PostgresWriter)(nil)
	_ RowWriter       = (*CSVWriter)(nil)
)
