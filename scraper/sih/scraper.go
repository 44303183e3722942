package sih

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sih-ps-scraper/config"
	"sih-ps-scraper/models"
	"sih-ps-scraper/utils"
)

// Scraper drives one run over the paginated problem statement table.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	session  Session
	reader   *Reader
	pager    *Pager
	retry    *utils.RetryConfig
	throttle *utils.Throttle
}

// New creates a Scraper on top of an open Session. The Scraper does not
// close the session.
func New(cfg *config.Config, session Session, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		session: session,
		reader:  NewReader(NewFilter(cfg), logger),
		pager:   NewPager(session, logger),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		throttle: utils.NewThrottle(cfg.RateLimit()),
	}
}

// runState is everything the loop carries between iterations.
type runState struct {
	results   []models.Row
	seen      *utils.KeySet
	iteration int
	page      int
	stalls    int
	lastEnd   int
}

func newRunState() *runState {
	return &runState{seen: utils.NewKeySet(), page: 1}
}

// Scrape loads the table, walks its pages and returns every matching row in
// encounter order. On error the rows collected so far are still returned.
func (s *Scraper) Scrape(ctx context.Context) (rows []models.Row, err error) {
	st := newRunState()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("[sih] Unexpected failure on page %d: %v\n%s", st.page, r, debug.Stack())
			rows, err = st.results, fmt.Errorf("sih: scrape aborted: %v", r)
		}
	}()

	s.logger.Info("[sih] Looking for %s problem statements with < %d submissions",
		s.cfg.FilterCategory, s.cfg.SubmissionThreshold)

	if err := s.init(ctx); err != nil {
		return nil, err
	}

	for st.iteration = 1; st.iteration <= s.cfg.MaxPages; st.iteration++ {
		more, err := s.step(ctx, st)
		if err != nil {
			return st.results, err
		}
		if !more {
			s.logger.Info("[sih] Scrape complete, %d matching problem statements", len(st.results))
			return st.results, nil
		}
	}

	s.logger.Warn("[sih] Iteration cap of %d reached, stopping", s.cfg.MaxPages)
	return st.results, nil
}

// init opens the target page and tries to enlarge the page size.
func (s *Scraper) init(ctx context.Context) error {
	err := s.retry.Do(ctx, "navigate", func(ctx context.Context) error {
		return s.session.Navigate(ctx, s.cfg.TargetURL)
	})
	if err != nil {
		return fmt.Errorf("sih: open %s: %w", s.cfg.TargetURL, err)
	}

	if s.cfg.PageSize <= 0 {
		return nil
	}
	if err := s.session.SetPageSize(ctx, s.cfg.PageSize); err != nil {
		s.logger.Warn("[sih] Could not change entries per page setting: %v", err)
		return nil
	}
	s.logger.Info("[sih] Set to show %d entries per page", s.cfg.PageSize)
	return s.session.WaitSettled(ctx)
}

// step runs one scan-then-paginate round and reports whether the loop
// should continue.
func (s *Scraper) step(ctx context.Context, st *runState) (bool, error) {
	s.logger.Info("[sih] Scraping page %d (iteration %d)", st.page, st.iteration)

	doc, err := s.snapshot(ctx)
	if err != nil {
		return false, err
	}

	pos := ParsePosition(doc)
	s.logger.Debug("[sih] Entries %d-%d of %d", pos.Start, pos.End, pos.Total)

	if pos.Complete() {
		s.logger.Info("[sih] Reached all %d entries", pos.Total)
		s.collect(st, s.reader.ScanDocument(doc))
		return false, nil
	}

	// A stall below the limit scans and clicks again; collect drops the
	// repeated rows.
	if pos.End > 0 && pos.End == st.lastEnd {
		st.stalls++
		if st.stalls >= s.cfg.MaxStalls {
			s.logger.Warn("[sih] Failed to progress after %d attempts, stopping", st.stalls)
			return false, nil
		}
		s.logger.Warn("[sih] No progress in pagination (attempt %d/%d), trying once more",
			st.stalls, s.cfg.MaxStalls)
	} else {
		st.stalls = 0
		st.lastEnd = pos.End
	}

	s.collect(st, s.reader.ScanDocument(doc))

	if !s.pager.HasMore(ctx) || !s.pager.Advance(ctx) {
		s.logger.Info("[sih] Reached the last page or unable to navigate further")
		return false, nil
	}
	if err := s.session.WaitSettled(ctx); err != nil {
		return false, err
	}
	if err := s.throttle.Wait(ctx); err != nil {
		return false, err
	}
	st.page++
	return true, nil
}

func (s *Scraper) snapshot(ctx context.Context) (*goquery.Document, error) {
	html, err := s.session.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("sih: read page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("sih: parse snapshot: %w", err)
	}
	return doc, nil
}

// collect appends rows not already seen in this run.
func (s *Scraper) collect(st *runState, rows []models.Row) {
	added := 0
	for _, row := range rows {
		if !st.seen.Add(rowKey(row)) {
			s.logger.Debug("[sih] Skipping duplicate: %s", row.Field(psNumberColumn))
			continue
		}
		st.results = append(st.results, row)
		added++
	}

	if added == 0 {
		s.logger.Info("[sih] No problem statements with < %d submissions on this page", s.cfg.SubmissionThreshold)
		return
	}
	s.logger.Info("[sih] Found %d problem statements with < %d submissions on this page (total so far: %d)",
		added, s.cfg.SubmissionThreshold, len(st.results))
}

// rowKey identifies a row by its PS number, or by its full content when the
// number is missing.
func rowKey(row models.Row) string {
	if ps := row.Field(psNumberColumn); ps != "" {
		return ps
	}
	return strings.Join(row, "\x1f")
}
