package analysis

import (
	"fmt"

	"github.com/wyawin/docaudit/internal/textrun"
)

// maxSizeVariance is the population-variance threshold per context, in
// squared font-size units. A context with a single run has variance 0 and
// never triggers.
const maxSizeVariance = 2.0

// DetectSizeIssues flags contexts whose font-size variance exceeds the
// threshold. One medium-severity issue is emitted per offending context
// with the mean and variance in its details.
func DetectSizeIssues(runs []textrun.TextRun) []Inconsistency {
	groups := textrun.GroupByContext(runs)

	var issues []Inconsistency
	for _, ctx := range textrun.Contexts() {
		group, ok := groups[ctx]
		if !ok || len(group) == 0 {
			continue
		}

		mean, variance := sizeStats(group)
		if variance <= maxSizeVariance {
			continue
		}

		issues = append(issues, Inconsistency{
			Type:     IssueFontSize,
			Severity: SeverityMedium,
			Description: fmt.Sprintf("inconsistent font sizes in %s context (variance %.2f, mean %.2f)",
				ctx, variance, mean),
			Context: ctx,
			Details: map[string]any{
				"mean":     mean,
				"variance": variance,
			},
		})
	}
	return issues
}

// sizeStats returns the population mean and population variance of the
// group's font sizes. Callers guarantee len(group) > 0.
func sizeStats(group []textrun.TextRun) (mean, variance float64) {
	n := float64(len(group))
	for _, r := range group {
		mean += r.FontSize
	}
	mean /= n

	for _, r := range group {
		d := r.FontSize - mean
		variance += d * d
	}
	variance /= n
	return mean, variance
}
