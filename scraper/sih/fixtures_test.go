package sih

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"sih-ps-scraper/config"
)

// tableOpts shapes a fixture page.
type tableOpts struct {
	id      string
	class   string
	noRole  bool
	info    string
	noTable bool
}

func pageHTML(opts tableOpts, rows ...[]string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>SIH 2025</title></head><body>")
	if !opts.noTable {
		class := opts.class
		if class == "" {
			class = "table table-bordered dataTable"
		}
		fmt.Fprintf(&b, `<table id="%s" class="%s"><thead><tr><th>S.No.</th><th>Organization</th></tr></thead><tbody>`,
			opts.id, class)
		for _, row := range rows {
			if opts.noRole {
				b.WriteString("<tr>")
			} else {
				b.WriteString(`<tr role="row" class="odd">`)
			}
			for _, cell := range row {
				fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
	}
	if opts.info != "" {
		fmt.Fprintf(&b, `<div class="dataTables_info" id="dataTable_info" role="status">%s</div>`, opts.info)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func psRow(n int, category string, count string) []string {
	return []string{
		fmt.Sprint(n), fmt.Sprintf("Org %d", n), fmt.Sprintf("Build %d", n), category,
		fmt.Sprintf("SIH%d", 1000+n), count, "Theme1", "2025-01-01",
	}
}

func testConfig() *config.Config {
	return &config.Config{
		TargetURL:           "https://sih.example/ps",
		SubmissionThreshold: 200,
		FilterCategory:      "software",
		CategoryColumn:      3,
		SubmissionTotals:    []int{500, 1000},
		MaxPages:            20,
		MaxStalls:           3,
		PageSize:            100,
		MaxRetries:          2,
	}
}

// fakeSession serves generated pages and a "Next" control driven by index.
type fakeSession struct {
	page     func(i int) string
	lastPage int // index where Next becomes disabled; negative means never
	stuck    bool
	panicAt  int // index whose snapshot panics; negative means never

	// droppedClicks is how many leading activations have no effect
	droppedClicks int

	navErr      error
	pageSizeErr error

	index       int
	navigations int
	activations int
	snapshots   int
	closed      bool
}

func newFakeSession(page func(i int) string, lastPage int) *fakeSession {
	return &fakeSession{page: page, lastPage: lastPage, panicAt: -1}
}

func (f *fakeSession) Navigate(ctx context.Context, url string) error {
	f.navigations++
	return f.navErr
}

func (f *fakeSession) SetPageSize(ctx context.Context, size int) error { return f.pageSizeErr }

func (f *fakeSession) Snapshot(ctx context.Context) (string, error) {
	f.snapshots++
	if f.index == f.panicAt {
		panic("renderer crashed")
	}
	return f.page(f.index), nil
}

func (f *fakeSession) WaitSettled(ctx context.Context) error { return ctx.Err() }

func (f *fakeSession) Locate(ctx context.Context, loc Locator) (Control, bool, error) {
	if loc.Name != "direct" {
		return Control{}, false, nil
	}
	ctrl := Control{Class: "paginate_button page-item next"}
	if f.lastPage >= 0 && f.index >= f.lastPage {
		ctrl.Class += " disabled"
	}
	return ctrl, true, nil
}

func (f *fakeSession) Activate(ctx context.Context, loc Locator) error {
	f.activations++
	if f.droppedClicks > 0 {
		f.droppedClicks--
		return nil
	}
	if !f.stuck {
		f.index++
	}
	return nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

// fakeDriver answers Locate per locator name.
type fakeDriver struct {
	controls    map[string]Control
	errs        map[string]error
	activateErr error

	located   []string
	activated []string
}

func (d *fakeDriver) Locate(ctx context.Context, loc Locator) (Control, bool, error) {
	d.located = append(d.located, loc.Name)
	if err, ok := d.errs[loc.Name]; ok {
		return Control{}, false, err
	}
	ctrl, ok := d.controls[loc.Name]
	return ctrl, ok, nil
}

func (d *fakeDriver) Activate(ctx context.Context, loc Locator) error {
	d.activated = append(d.activated, loc.Name)
	return d.activateErr
}

var errLookup = errors.New("node lookup failed")
