package analysis

import "time"

// Per-type weights and per-severity multipliers for the severity score.
// The score is unbounded above; it grows with both issue count and severity.
var (
	typeWeights = map[IssueType]float64{
		IssueFontFamily: 0.4,
		IssueFontSize:   0.3,
		IssueSpacing:    0.3,
	}
	severityMultipliers = map[Severity]float64{
		SeverityHigh:   1.0,
		SeverityMedium: 0.6,
		SeverityLow:    0.3,
	}
)

// Summary holds the per-type issue counts and the document's font inventory.
type Summary struct {
	TotalIssues      int         `json:"totalIssues"`
	FontFamilyIssues int         `json:"fontFamilyIssues"`
	FontSizeIssues   int         `json:"fontSizeIssues"`
	SpacingIssues    int         `json:"spacingIssues"`
	FontsUsed        []FontUsage `json:"fontsUsed"`
}

// FontUsage counts how often one distinct font family occurs.
type FontUsage struct {
	Name        string `json:"name"`
	Occurrences int    `json:"occurrences"`
}

// Report is the terminal analysis artifact. It is built once per analysis
// and never mutated after construction.
type Report struct {
	Timestamp     time.Time `json:"timestamp"`
	Suspicious    bool      `json:"suspicious"`
	SeverityScore float64   `json:"severityScore"`
	Confidence    float64   `json:"confidence"`
	Summary       Summary   `json:"summary"`
	Details       IssueSet  `json:"details"`
}

// Score aggregates detector outputs into the final report. It is a pure
// aggregation with no I/O and never fails on well-formed issue lists; the
// font inventory is carried through untouched from the caller.
func Score(issues IssueSet, fonts []FontUsage) Report {
	severity := weightedSeverity(IssueFontFamily, issues.FontFamily) +
		weightedSeverity(IssueFontSize, issues.FontSize) +
		weightedSeverity(IssueSpacing, issues.Spacing)

	total := issues.Total()

	return Report{
		Timestamp:     time.Now().UTC(),
		Suspicious:    total > 0,
		SeverityScore: severity,
		Confidence:    confidence(severity, total),
		Summary: Summary{
			TotalIssues:      total,
			FontFamilyIssues: len(issues.FontFamily),
			FontSizeIssues:   len(issues.FontSize),
			SpacingIssues:    len(issues.Spacing),
			FontsUsed:        fonts,
		},
		Details: issues,
	}
}

func weightedSeverity(t IssueType, issues []Inconsistency) float64 {
	var sum float64
	for _, issue := range issues {
		sum += severityMultipliers[issue.Severity]
	}
	return typeWeights[t] * sum
}

// confidence derives the inverse cleanliness signal in [0, 1]: more and
// worse issues monotonically lower it. This is confidence that the document
// is untampered, not confidence in the detectors.
func confidence(severity float64, totalIssues int) float64 {
	base := 1 - severity/10
	if base < 0 {
		base = 0
	}
	if base > 1 {
		base = 1
	}

	penalty := float64(totalIssues) * 0.1
	if penalty > 0.5 {
		penalty = 0.5
	}

	c := base - penalty
	if c < 0 {
		c = 0
	}
	return c
}
