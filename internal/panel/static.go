package panel

import (
	"fmt"
	"io"
	"strings"

	"github.com/lakshaymaurya-felt/syscleaner/internal/clean"
	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
)

// resultGroup is the results of one category in first-seen order.
type resultGroup struct {
	category string
	icon     string
	results  []clean.CleanResult
}

func groupResults(results []clean.CleanResult) []resultGroup {
	var groups []resultGroup
	index := make(map[string]int)
	for _, r := range results {
		i, ok := index[r.Category]
		if !ok {
			i = len(groups)
			index[r.Category] = i
			groups = append(groups, resultGroup{category: r.Category, icon: r.Icon})
		}
		groups[i].results = append(groups[i].results, r)
	}
	return groups
}

// PrintSummary writes a plain-text summary for non-interactive output.
// ASCII only so legacy consoles render it.
func PrintSummary(w io.Writer, s clean.Summary) {
	head, verb := "Analysis", "Reclaimable"
	if s.Kind == clean.SummaryCleaning {
		head, verb = "Cleaning", "Freed"
	}

	fmt.Fprintf(w, "  %s summary\n", head)
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))

	if len(s.Results) == 0 {
		fmt.Fprintln(w, "  No targets selected.")
	}
	for _, g := range groupResults(s.Results) {
		fmt.Fprintf(w, "  %s\n", g.category)
		for _, r := range g.results {
			fmt.Fprintf(w, "    %-26s %10s files  %10s\n",
				r.Option, core.FormatCount(r.Files), core.FormatSize(int64(r.Bytes)))
		}
	}

	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  %s: %s in %s files (%s)\n",
		verb, core.FormatSize(int64(s.TotalBytes)), core.FormatCount(s.TotalFiles), core.FormatElapsed(s.Elapsed))
}
