package sih

import "context"

// Session is the rendered-page provider the scraper drives. Implementations
// hold one browser tab for the whole run.
type Session interface {
	ControlDriver

	// Navigate loads url and waits for the initial render.
	Navigate(ctx context.Context, url string) error
	// SetPageSize selects size in the "entries per page" control.
	SetPageSize(ctx context.Context, size int) error
	// Snapshot returns the current document HTML once the table has rows,
	// or after a bounded wait.
	Snapshot(ctx context.Context) (string, error)
	// WaitSettled waits for the processing indicator to go away plus a
	// fixed delay.
	WaitSettled(ctx context.Context) error
	// Close releases the browser. It is safe to call more than once.
	Close() error
}
