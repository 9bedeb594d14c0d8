package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wyawin/docaudit/internal/textrun"
)

// maxFamiliesPerContext is the allowance for legitimate style variation
// within one context, e.g. a regular face plus its bold or italic sibling.
const maxFamiliesPerContext = 2

// DetectFamilyIssues flags contexts that mix more distinct font families
// than the allowance. One high-severity issue is emitted per offending
// context, carrying the full set of family names observed there.
func DetectFamilyIssues(runs []textrun.TextRun) []Inconsistency {
	groups := textrun.GroupByContext(runs)

	var issues []Inconsistency
	for _, ctx := range textrun.Contexts() {
		group, ok := groups[ctx]
		if !ok {
			continue
		}

		families := make(map[string]struct{})
		for _, r := range group {
			families[r.FontFamily] = struct{}{}
		}
		if len(families) <= maxFamiliesPerContext {
			continue
		}

		names := make([]string, 0, len(families))
		for name := range families {
			names = append(names, name)
		}
		sort.Strings(names)

		issues = append(issues, Inconsistency{
			Type:     IssueFontFamily,
			Severity: SeverityHigh,
			Description: fmt.Sprintf("%d different font families in %s context: %s",
				len(names), ctx, strings.Join(names, ", ")),
			Context: ctx,
			Details: map[string]any{
				"detectedFonts": names,
			},
		})
	}
	return issues
}
