package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/wyawin/docaudit/internal/textrun"
)

func bodyRun(text, family string, size, x, y, w float64) textrun.TextRun {
	return textrun.TextRun{
		Text:       text,
		FontFamily: family,
		FontSize:   size,
		Position:   textrun.Position{X: x, Y: y},
		Width:      w,
		Height:     size,
	}
}

func TestDetectFamilyIssues(t *testing.T) {
	t.Run("two families allowed", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 0, 10),
			bodyRun("b", "Helvetica-Bold", 12, 12, 0, 10),
		}
		if issues := DetectFamilyIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})

	t.Run("three families flagged", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 0, 10),
			bodyRun("b", "Times-Roman", 12, 12, 0, 10),
			bodyRun("c", "Courier", 12, 24, 0, 10),
		}
		issues := DetectFamilyIssues(runs)
		if len(issues) != 1 {
			t.Fatalf("issues = %d, want 1", len(issues))
		}
		issue := issues[0]
		if issue.Type != IssueFontFamily {
			t.Errorf("type = %v, want %v", issue.Type, IssueFontFamily)
		}
		if issue.Severity != SeverityHigh {
			t.Errorf("severity = %v, want %v", issue.Severity, SeverityHigh)
		}
		if issue.Context != textrun.ContextBody {
			t.Errorf("context = %v, want %v", issue.Context, textrun.ContextBody)
		}
		wantFonts := []string{"Courier", "Helvetica", "Times-Roman"}
		if got, _ := issue.Details["detectedFonts"].([]string); !reflect.DeepEqual(got, wantFonts) {
			t.Errorf("detectedFonts = %v, want %v", got, wantFonts)
		}
	})

	t.Run("contexts counted independently", func(t *testing.T) {
		// Three families spread across contexts: no single context exceeds two
		runs := []textrun.TextRun{
			bodyRun("h", "Helvetica", 24, 0, 0, 10),
			bodyRun("s", "Times-Roman", 16, 0, 20, 10),
			bodyRun("b", "Courier", 12, 0, 40, 10),
		}
		if issues := DetectFamilyIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})
}

func TestDetectSizeIssues(t *testing.T) {
	t.Run("small variance allowed", func(t *testing.T) {
		// Population variance of [12, 12.5, 13] is 0.1667
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 0, 10),
			bodyRun("b", "Helvetica", 12.5, 12, 0, 10),
			bodyRun("c", "Helvetica", 13, 24, 0, 10),
		}
		if issues := DetectSizeIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})

	t.Run("identical sizes never flag", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 0, 10),
			bodyRun("b", "Helvetica", 12, 12, 0, 10),
		}
		if issues := DetectSizeIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})

	t.Run("large variance flagged", func(t *testing.T) {
		// Population variance of [8, 12] is 4.0
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 8, 0, 0, 10),
			bodyRun("b", "Helvetica", 12, 12, 0, 10),
		}
		issues := DetectSizeIssues(runs)
		if len(issues) != 1 {
			t.Fatalf("issues = %d, want 1", len(issues))
		}
		issue := issues[0]
		if issue.Severity != SeverityMedium {
			t.Errorf("severity = %v, want %v", issue.Severity, SeverityMedium)
		}
		if mean, _ := issue.Details["mean"].(float64); math.Abs(mean-10) > 1e-9 {
			t.Errorf("mean = %v, want 10", mean)
		}
		if variance, _ := issue.Details["variance"].(float64); math.Abs(variance-4) > 1e-9 {
			t.Errorf("variance = %v, want 4", variance)
		}
	})

	t.Run("single run has zero variance", func(t *testing.T) {
		runs := []textrun.TextRun{bodyRun("a", "Helvetica", 12, 0, 0, 10)}
		if issues := DetectSizeIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})
}

func TestDetectSpacingIssues(t *testing.T) {
	t.Run("normal gaps allowed", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 100, 50),
			bodyRun("b", "Helvetica", 12, 55, 100, 50), // gap 5
			bodyRun("c", "Helvetica", 12, 110, 100, 50), // gap 5
		}
		if issues := DetectSpacingIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})

	t.Run("excessive gap flagged", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 100, 50),
			bodyRun("b", "Helvetica", 12, 100, 100, 50), // gap 50
		}
		issues := DetectSpacingIssues(runs)
		if len(issues) != 1 {
			t.Fatalf("issues = %d, want 1", len(issues))
		}
		issue := issues[0]
		if issue.Type != IssueSpacing {
			t.Errorf("type = %v, want %v", issue.Type, IssueSpacing)
		}
		if issue.Position == nil || issue.Position.X != 100 {
			t.Errorf("position = %v, want x=100", issue.Position)
		}
		if gap, _ := issue.Details["spacing"].(float64); math.Abs(gap-50) > 1e-9 {
			t.Errorf("spacing = %v, want 50", gap)
		}
	})

	t.Run("overlap flagged", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 100, 50),
			bodyRun("b", "Helvetica", 12, 50, 100, 50), // gap 0
		}
		if issues := DetectSpacingIssues(runs); len(issues) != 1 {
			t.Errorf("issues = %d, want 1", len(issues))
		}
	})

	t.Run("max boundary gap allowed", func(t *testing.T) {
		runs := []textrun.TextRun{
			bodyRun("a", "Helvetica", 12, 0, 100, 50),
			bodyRun("b", "Helvetica", 12, 70, 100, 50), // gap exactly 20
		}
		if issues := DetectSpacingIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})

	t.Run("single run has no predecessor", func(t *testing.T) {
		runs := []textrun.TextRun{bodyRun("a", "Helvetica", 12, 0, 100, 50)}
		if issues := DetectSpacingIssues(runs); len(issues) != 0 {
			t.Errorf("issues = %d, want 0", len(issues))
		}
	})
}

func TestFontInventory(t *testing.T) {
	runs := []textrun.TextRun{
		bodyRun("a", "Helvetica", 12, 0, 0, 10),
		bodyRun("b", "Times-Roman", 12, 12, 0, 10),
		bodyRun("c", "Helvetica", 12, 24, 0, 10),
		bodyRun("d", "Helvetica", 12, 36, 0, 10),
	}

	got := FontInventory(runs)
	want := []FontUsage{
		{Name: "Helvetica", Occurrences: 3},
		{Name: "Times-Roman", Occurrences: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FontInventory() = %v, want %v", got, want)
	}
}
