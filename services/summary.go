package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"sih-ps-scraper/models"
	"sih-ps-scraper/utils"
)

const leastContestedCount = 5

type SummaryService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger, out: os.Stdout}
}

// Generate computes the end-of-run report. Statements without a parsed
// capacity are counted but left out of the submission statistics.
func (s *SummaryService) Generate(statements []*models.ProblemStatement) *models.Summary {
	report := &models.Summary{
		ByTheme:        make(map[string]int),
		ByOrganization: make(map[string]int),
	}

	if len(statements) == 0 {
		return report
	}

	report.TotalStatements = len(statements)

	var counted []*models.ProblemStatement
	for _, st := range statements {
		if st.Theme != "" {
			report.ByTheme[st.Theme]++
		}
		if st.Organization != "" {
			report.ByOrganization[st.Organization]++
		}
		if st.Capacity > 0 {
			counted = append(counted, st)
		}
	}

	if len(counted) > 0 {
		report.MinSubmitted = counted[0].Submitted
		report.MaxSubmitted = counted[0].Submitted
		total := 0
		for _, st := range counted {
			total += st.Submitted
			if st.Submitted < report.MinSubmitted {
				report.MinSubmitted = st.Submitted
			}
			if st.Submitted > report.MaxSubmitted {
				report.MaxSubmitted = st.Submitted
			}
		}
		report.AverageSubmitted = round2(float64(total) / float64(len(counted)))
	}

	sort.SliceStable(counted, func(i, j int) bool {
		return counted[i].Submitted < counted[j].Submitted
	})
	if len(counted) > leastContestedCount {
		counted = counted[:leastContestedCount]
	}
	report.LeastContested = counted

	s.logger.Debug("[summary] %d statements, %d themes, %d organizations",
		report.TotalStatements, len(report.ByTheme), len(report.ByOrganization))
	return report
}

func (s *SummaryService) Print(r *models.Summary) {
	w := s.out
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 SIH PROBLEM STATEMENT SUMMARY\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Matching statements : \033[1m%d\033[0m\n", r.TotalStatements)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Submission Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.LeastContested) > 0 {
		fmt.Fprintf(w, "  Average submitted : \033[1;32m%.2f\033[0m\n", r.AverageSubmitted)
		fmt.Fprintf(w, "  Fewest submitted  : \033[1;32m%d\033[0m\n", r.MinSubmitted)
		fmt.Fprintf(w, "  Most submitted    : \033[1;32m%d\033[0m\n", r.MaxSubmitted)
	} else {
		fmt.Fprintf(w, "  No submission data available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  %d Least Contested Statements\033[0m\n", leastContestedCount)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.LeastContested) == 0 {
		fmt.Fprintf(w, "  None\n")
	} else {
		for i, st := range r.LeastContested {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-10s %-32s \033[1;32m%d/%d\033[0m\n",
				i+1, st.PSNumber, truncate(st.Title, 30), st.Submitted, st.Capacity)
		}
	}
	fmt.Fprintln(w)

	printCounts(w, "Statements by Theme", r.ByTheme, thin)
	printCounts(w, "Statements by Organization", r.ByOrganization, thin)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func printCounts(w io.Writer, title string, counts map[string]int, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(counts) == 0 {
		fmt.Fprintf(w, "  No data\n\n")
		return
	}

	type keyCount struct {
		key   string
		count int
	}
	entries := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, keyCount{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for _, e := range entries {
		bar := strings.Repeat("█", e.count)
		fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(e.key, 28), bar, e.count)
	}
	fmt.Fprintln(w)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
