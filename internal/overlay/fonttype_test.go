package overlay

import (
	"strings"
	"testing"

	"github.com/wyawin/docaudit/internal/textrun"
)

func TestPlanFontTypes_ColorsPerFamily(t *testing.T) {
	runs := []textrun.TextRun{
		run("a", "Helvetica", 12, 0, 100, 30),
		run("b", "Times-Roman", 12, 35, 100, 30),
		run("c", "Helvetica", 12, 70, 100, 30),
	}

	plan := PlanFontTypes(runs, 792)

	if len(plan.Annotations) != 3 {
		t.Fatalf("annotations = %d, want 3", len(plan.Annotations))
	}
	if plan.Annotations[0].Color != plan.Annotations[2].Color {
		t.Error("same family got different colors")
	}
	if plan.Annotations[0].Color == plan.Annotations[1].Color {
		t.Error("different families got the same color")
	}
}

func TestPlanFontTypes_ColorsDistinct(t *testing.T) {
	families := []string{
		"F0", "F1", "F2", "F3", "F4", "F5",
		"F6", "F7", "F8", "F9", "F10", "F11",
	}
	var runs []textrun.TextRun
	for i, f := range families {
		runs = append(runs, run("r", f, 12, float64(i*40), 100, 30))
	}

	plan := PlanFontTypes(runs, 792)

	seen := make(map[Color]string)
	for i, a := range plan.Annotations {
		if prev, ok := seen[a.Color]; ok {
			t.Errorf("families %s and %s share color %+v", prev, families[i], a.Color)
		}
		seen[a.Color] = families[i]
	}
}

func TestPlanFontTypes_Legend(t *testing.T) {
	runs := []textrun.TextRun{
		run("a", "Helvetica", 12, 0, 100, 30),
		run("b", "Times-Roman", 12, 35, 100, 30),
		run("c", "Helvetica", 12, 70, 100, 30),
	}

	plan := PlanFontTypes(runs, 792)

	if len(plan.Legend.Entries) != 2 {
		t.Fatalf("legend entries = %d, want 2", len(plan.Legend.Entries))
	}
	// Legend stacks above the swatches: origin moves up with family count
	wantY := 10 + 2*legendLineHeight
	if plan.Legend.Y != wantY {
		t.Errorf("legend Y = %v, want %v", plan.Legend.Y, wantY)
	}
	// Discovery order with occurrence counts
	if got := plan.Legend.Entries[0].Label; !strings.HasPrefix(got, "Helvetica (2") {
		t.Errorf("entry 0 label = %q, want Helvetica with 2 runs", got)
	}
	if got := plan.Legend.Entries[1].Label; !strings.HasPrefix(got, "Times-Roman (1") {
		t.Errorf("entry 1 label = %q, want Times-Roman with 1 run", got)
	}
}

func TestPlanFontTypes_EmptyRuns(t *testing.T) {
	plan := PlanFontTypes(nil, 792)

	if len(plan.Annotations) != 0 {
		t.Errorf("annotations = %d, want 0", len(plan.Annotations))
	}
	if len(plan.Legend.Entries) != 0 {
		t.Errorf("legend entries = %d, want 0", len(plan.Legend.Entries))
	}
}
