package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"sih-ps-scraper/models"
)

const statementColumns = 9

// PostgresWriter persists matched problem statements to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS problem_statements (
			id            SERIAL PRIMARY KEY,
			serial_no     TEXT        NOT NULL DEFAULT '',
			organization  TEXT        NOT NULL DEFAULT '',
			title         TEXT        NOT NULL DEFAULT '',
			category      TEXT        NOT NULL DEFAULT '',
			ps_number     TEXT        UNIQUE NOT NULL,
			submitted     INTEGER     NOT NULL DEFAULT 0,
			capacity      INTEGER     NOT NULL DEFAULT 0,
			theme         TEXT        NOT NULL DEFAULT '',
			deadline      TEXT        NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_ps_submitted ON problem_statements(submitted);
		CREATE INDEX IF NOT EXISTS idx_ps_theme     ON problem_statements(theme);
		CREATE INDEX IF NOT EXISTS idx_ps_category  ON problem_statements(category);
	`)
	return err
}

// Write upserts statements in batches. A statement already stored under the
// same PS number gets its submission count and deadline refreshed.
func (pw *PostgresWriter) Write(statements []*models.ProblemStatement) error {
	const batchSize = 50
	for i := 0; i < len(statements); i += batchSize {
		end := i + batchSize
		if end > len(statements) {
			end = len(statements)
		}
		query, args := upsertQuery(statements[i:end])
		if _, err := pw.db.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: upsert batch %d: %w", i/batchSize+1, err)
		}
	}
	return nil
}

// upsertQuery builds one multi-row INSERT ... ON CONFLICT for batch.
// Statements without a PS number are skipped, since it is the conflict key.
func upsertQuery(batch []*models.ProblemStatement) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*statementColumns)

	seen := make(map[string]struct{}, len(batch))
	for _, s := range batch {
		if s.PSNumber == "" {
			continue
		}
		// Postgres rejects a single INSERT touching the same conflict key twice.
		if _, dup := seen[s.PSNumber]; dup {
			continue
		}
		seen[s.PSNumber] = struct{}{}

		base := len(valueStrings) * statementColumns
		placeholders := make([]string, statementColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			s.SerialNo, s.Organization, s.Title, s.Category, s.PSNumber,
			s.Submitted, s.Capacity, s.Theme, s.Deadline)
	}

	if len(valueStrings) == 0 {
		return "SELECT 1", nil
	}

	query := fmt.Sprintf(`
		INSERT INTO problem_statements
			(serial_no, organization, title, category, ps_number, submitted, capacity, theme, deadline)
		VALUES %s
		ON CONFLICT (ps_number) DO UPDATE SET
			submitted = EXCLUDED.submitted,
			capacity  = EXCLUDED.capacity,
			deadline  = EXCLUDED.deadline
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored statements, used by the summary report.
func (pw *PostgresWriter) FetchAll() ([]*models.ProblemStatement, error) {
	rows, err := pw.db.Query(`
		SELECT id, serial_no, organization, title, category, ps_number,
		       submitted, capacity, theme, deadline, created_at
		FROM problem_statements
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var statements []*models.ProblemStatement
	for rows.Next() {
		s := &models.ProblemStatement{}
		if err := rows.Scan(
			&s.ID, &s.SerialNo, &s.Organization, &s.Title, &s.Category, &s.PSNumber,
			&s.Submitted, &s.Capacity, &s.Theme, &s.Deadline, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		statements = append(statements, s)
	}
	return statements, rows.Err()
}
