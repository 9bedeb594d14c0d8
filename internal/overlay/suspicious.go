package overlay

import (
	"github.com/wyawin/docaudit/internal/analysis"
	"github.com/wyawin/docaudit/internal/textrun"
)

// Highlight colors by issue type.
var (
	colorFontFamily = Color{R: 1, G: 0, B: 0}    // red
	colorFontSize   = Color{R: 1, G: 0.65, B: 0} // orange
	colorSpacing    = Color{R: 1, G: 1, B: 0}    // yellow
)

const suspiciousOpacity = 0.3

// PlanSuspicious builds the annotation plan highlighting suspicious regions
// by issue type. Family and size issues re-select the runs belonging to the
// issue's context (family issues restrict further to runs whose family is
// in the offending set); spacing issues use their stored position.
func PlanSuspicious(runs []textrun.TextRun, issues analysis.IssueSet, pageHeight float64) Plan {
	var plan Plan

	for _, issue := range issues.FontFamily {
		offending := offendingFonts(issue)
		for _, r := range runs {
			if textrun.Classify(r) != issue.Context {
				continue
			}
			if _, ok := offending[r.FontFamily]; !ok {
				continue
			}
			plan.Annotations = append(plan.Annotations, runAnnotation(r, colorFontFamily, pageHeight))
		}
	}

	for _, issue := range issues.FontSize {
		for _, r := range runs {
			if textrun.Classify(r) != issue.Context {
				continue
			}
			plan.Annotations = append(plan.Annotations, runAnnotation(r, colorFontSize, pageHeight))
		}
	}

	for _, issue := range issues.Spacing {
		if issue.Position == nil {
			continue
		}
		plan.Annotations = append(plan.Annotations, Annotation{
			PageIndex: pageIndexFor(issue.Position.Y, pageHeight),
			Rect:      rectFor(issue.Position.X, issue.Position.Y, 0, 0),
			Color:     colorSpacing,
			Opacity:   suspiciousOpacity,
		})
	}

	plan.Legend = Legend{
		X: 10,
		Y: 10,
		Entries: []LegendEntry{
			{Label: "Font family mismatch", Color: colorFontFamily},
			{Label: "Font size variance", Color: colorFontSize},
			{Label: "Abnormal spacing", Color: colorSpacing},
		},
	}
	return plan
}

func runAnnotation(r textrun.TextRun, col Color, pageHeight float64) Annotation {
	return Annotation{
		PageIndex: pageIndexFor(r.Position.Y, pageHeight),
		Rect:      rectFor(r.Position.X, r.Position.Y, r.Width, r.Height),
		Color:     col,
		Opacity:   suspiciousOpacity,
	}
}

// offendingFonts extracts the detected font set from a family issue's
// details. Issues built by the family detector always carry it; an empty
// set matches nothing.
func offendingFonts(issue analysis.Inconsistency) map[string]struct{} {
	set := make(map[string]struct{})
	names, _ := issue.Details["detectedFonts"].([]string)
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
