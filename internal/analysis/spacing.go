package analysis

import (
	"fmt"

	"github.com/wyawin/docaudit/internal/textrun"
)

// Normal inter-run gap range in position units. Gaps below the minimum
// indicate overlapping or squeezed-in runs; gaps above the maximum indicate
// abnormal jumps.
const (
	minRunSpacing = 0.1
	maxRunSpacing = 20.0
)

// DetectSpacingIssues scans the run sequence in input order, comparing each
// run to its immediate predecessor only. The first run has no predecessor
// and is skipped.
//
// Because only adjacent pairs are compared, multi-column and multi-page
// layouts produce large jumps at their boundaries. That is a documented
// limitation of the adjacency scan, not something to repair by reordering
// the input.
func DetectSpacingIssues(runs []textrun.TextRun) []Inconsistency {
	var issues []Inconsistency
	for i := 1; i < len(runs); i++ {
		gap := textrun.Gap(runs[i-1], runs[i])
		if gap >= minRunSpacing && gap <= maxRunSpacing {
			continue
		}

		pos := runs[i].Position
		issues = append(issues, Inconsistency{
			Type:        IssueSpacing,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("abnormal spacing of %.2f units before %q", gap, runs[i].Text),
			Position:    &pos,
			Details: map[string]any{
				"spacing": gap,
			},
		})
	}
	return issues
}
