package sih

import (
	"testing"

	"sih-ps-scraper/models"
)

func TestFilterEvaluate(t *testing.T) {
	f := NewFilter(testConfig())

	tests := []struct {
		name string
		row  models.Row
		want Verdict
	}{
		{"scenario included", models.Row{"1", "Org A", "Build X", "Software", "SIH123", "150/500", "Theme1", "2025-01-01"}, Match},
		{"scenario category mismatch", models.Row{"2", "Org B", "Build Y", "Hardware", "SIH124", "50/500", "Theme1", "2025-01-01"}, OtherCategory},
		{"scenario over threshold", models.Row{"3", "Org C", "Build Z", "Software", "SIH125", "250/500", "Theme1", "2025-01-01"}, OverThreshold},
		{"five cells", models.Row{"1", "Org", "Software", "SIH1", "1/500"}, Malformed},
		{"six cells", models.Row{"1", "Org", "Title", "Software", "SIH1", "1/500"}, Match},
		{"nine cells", models.Row{"1", "Org", "Title", "Software", "SIH1", "1/1000", "Theme", "Deadline", "Extra"}, Match},
		{"no count", models.Row{"1", "Org", "Title", "Software", "SIH1", "open", "Theme", "Deadline"}, NoCount},
		{"unknown total", models.Row{"1", "Org", "Title", "Software", "SIH1", "1/750", "Theme", "Deadline"}, NoCount},
		{"category case and spaces", models.Row{"1", "Org", "Title", "  sOfTwArE ", "SIH1", "199/500", "Theme", "Deadline"}, Match},
		{"category in wrong column", models.Row{"1", "Software", "Title", "Hardware", "SIH1", "1/500", "Theme", "Deadline"}, OtherCategory},
	}

	for _, tt := range tests {
		got := f.Evaluate(tt.row)
		if got != tt.want {
			t.Errorf("%s: Evaluate(%q) = %s; want %s", tt.name, tt.row, got, tt.want)
		}
		if f.Matches(tt.row) != (tt.want == Match) {
			t.Errorf("%s: Matches disagrees with Evaluate", tt.name)
		}
	}
}

func TestFilterConfigurableCategory(t *testing.T) {
	cfg := testConfig()
	cfg.FilterCategory = "Hardware"
	cfg.SubmissionThreshold = 100
	f := NewFilter(cfg)

	if !f.Matches(models.Row{"2", "Org B", "Build Y", "Hardware", "SIH124", "50/500", "Theme1", "2025-01-01"}) {
		t.Error("hardware row under threshold should match a hardware filter")
	}
	if f.Matches(models.Row{"1", "Org A", "Build X", "Software", "SIH123", "50/500", "Theme1", "2025-01-01"}) {
		t.Error("software row should not match a hardware filter")
	}
	if f.Matches(models.Row{"2", "Org B", "Build Y", "Hardware", "SIH124", "150/500", "Theme1", "2025-01-01"}) {
		t.Error("150 should not pass a threshold of 100")
	}
}

func TestSubmittedCountUsesFirstKnownTotal(t *testing.T) {
	f := NewFilter(testConfig())

	n, total, ok := f.SubmittedCount(models.Row{"1/2", "3/750", "42/1000", "7/500"})
	if !ok || n != 42 || total != 1000 {
		t.Errorf("SubmittedCount = (%d, %d, %v); want (42, 1000, true)", n, total, ok)
	}
}
