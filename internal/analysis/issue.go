// Package analysis implements the tampering detectors and the scoring engine
// that turn raw text-run measurements into a forensic report.
package analysis

import "github.com/wyawin/docaudit/internal/textrun"

// IssueType identifies which detector produced an inconsistency.
type IssueType string

const (
	IssueFontFamily IssueType = "fontFamily"
	IssueFontSize   IssueType = "fontSize"
	IssueSpacing    IssueType = "spacing"
)

// Severity grades an inconsistency.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Inconsistency is one detected issue. Detectors are the only producers;
// an Inconsistency is never mutated after creation.
type Inconsistency struct {
	Type        IssueType         `json:"type"`
	Severity    Severity          `json:"severity"`
	Description string            `json:"description"`
	Context     textrun.Context   `json:"context,omitempty"`
	Position    *textrun.Position `json:"position,omitempty"`
	Details     map[string]any    `json:"details,omitempty"`
}

// IssueSet groups the three detectors' outputs. The scoring engine and the
// overlay planner both consume an IssueSet but produce independent artifacts.
type IssueSet struct {
	FontFamily []Inconsistency `json:"fontFamily"`
	FontSize   []Inconsistency `json:"fontSize"`
	Spacing    []Inconsistency `json:"spacing"`
}

// Total returns the combined issue count across all three types.
func (s IssueSet) Total() int {
	return len(s.FontFamily) + len(s.FontSize) + len(s.Spacing)
}

// Detect runs all three detectors over the same run list.
func Detect(runs []textrun.TextRun) IssueSet {
	return IssueSet{
		FontFamily: DetectFamilyIssues(runs),
		FontSize:   DetectSizeIssues(runs),
		Spacing:    DetectSpacingIssues(runs),
	}
}
