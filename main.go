package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"sih-ps-scraper/config"
	"sih-ps-scraper/models"
	"sih-ps-scraper/scraper/sih"
	"sih-ps-scraper/services"
	"sih-ps-scraper/storage"
	"sih-ps-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogDebug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run(ctx, cfg, logger, openChrome)
}

// sessionOpener starts the browser session a run works on.
type sessionOpener func(ctx context.Context, cfg *config.Config, logger *utils.Logger) (sih.Session, error)

func openChrome(ctx context.Context, cfg *config.Config, logger *utils.Logger) (sih.Session, error) {
	return sih.NewChromeSession(ctx, cfg, logger)
}

// run performs one scrape. The session is released exactly once on every
// path after it has started.
func run(ctx context.Context, cfg *config.Config, logger *utils.Logger, open sessionOpener) {
	logger.Info("=== SIH Problem Statement Scraper starting ===")
	logger.Info("Config: url: %s | threshold: %d | category: %s | max pages: %d",
		cfg.TargetURL, cfg.SubmissionThreshold, cfg.FilterCategory, cfg.MaxPages)

	session, err := open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to start browser: %v", err)
		return
	}
	defer func() {
		if cfg.PauseBeforeExit {
			utils.Confirm(os.Stdin, os.Stdout, "\nPress Enter to close the browser...")
		}
		if err := session.Close(); err != nil {
			logger.Warn("Driver close: %v", err)
		}
		logger.Info("Driver closed")
	}()

	rows, err := sih.New(cfg, session, logger).Scrape(ctx)
	if err != nil {
		logger.Error("Scrape failed: %v", err)
	}

	if len(rows) == 0 {
		logger.Warn("No matching problem statements found")
		return
	}

	logger.Info("Collected %d matching rows, writing to CSV...", len(rows))
	csvErr := writeCSV(cfg.CSVOutputPath, rows)
	if csvErr != nil {
		logger.Error("CSV write failed: %v", csvErr)
	} else {
		logger.Info("Saved %d problem statements to %s", len(rows), cfg.CSVOutputPath)
	}

	cleaner := services.NewCleaner(logger)
	statements := cleaner.Clean(rows)

	if cfg.PostgresEnabled {
		statements = persist(cfg, logger, statements)
	}

	summary := services.NewSummaryService(logger)
	summary.Print(summary.Generate(statements))

	if csvErr == nil {
		fmt.Printf("  Done. CSV → %s\n\n", cfg.CSVOutputPath)
	}
}

func writeCSV(path string, rows []models.Row) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	return writeRows(w, rows)
}

func writeRows(w storage.RowWriter, rows []models.Row) error {
	if err := w.WriteRows(rows); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// persist upserts statements into PostgreSQL and returns their stored form
// for the summary. On any failure the in-memory statements are returned instead.
func persist(cfg *config.Config, logger *utils.Logger, statements []*models.ProblemStatement) []*models.ProblemStatement {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return statements
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(statements); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return statements
	}
	logger.Info("Problem statements stored in PostgreSQL (table: problem_statements)")

	stored, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch statements from DB for summary: %v", err)
		return statements
	}
	return fromThisRun(stored, statements)
}

// fromThisRun keeps the stored statements whose PS number was collected in
// this run. Rows left over from earlier runs may no longer match the filter.
func fromThisRun(stored, current []*models.ProblemStatement) []*models.ProblemStatement {
	keep := utils.NewKeySet()
	for _, st := range current {
		keep.Add(st.PSNumber)
	}

	result := make([]*models.ProblemStatement, 0, len(current))
	for _, st := range stored {
		if keep.Contains(st.PSNumber) {
			result = append(result, st)
		}
	}
	return result
}
