package overlay

import (
	"fmt"
	"math"

	"github.com/wyawin/docaudit/internal/analysis"
	"github.com/wyawin/docaudit/internal/textrun"
)

const fontTypeOpacity = 0.3

// PlanFontTypes builds the annotation plan color-coding every distinct font
// family in the document. Each family gets a deterministic color from its
// position in discovery order; the legend lists every family with its
// occurrence count and is stacked above the swatches so it never overlaps
// them.
func PlanFontTypes(runs []textrun.TextRun, pageHeight float64) Plan {
	fonts := analysis.FontInventory(runs)

	colors := make(map[string]Color, len(fonts))
	for i, f := range fonts {
		colors[f.Name] = hueColor(i, len(fonts))
	}

	var plan Plan
	for _, r := range runs {
		plan.Annotations = append(plan.Annotations, Annotation{
			PageIndex: pageIndexFor(r.Position.Y, pageHeight),
			Rect:      rectFor(r.Position.X, r.Position.Y, r.Width, r.Height),
			Color:     colors[r.FontFamily],
			Opacity:   fontTypeOpacity,
		})
	}

	legend := Legend{
		X: 10,
		// Stack the legend block above the swatch rows; its origin moves up
		// with the number of families so entries never overlap content.
		Y:       10 + float64(len(fonts))*legendLineHeight,
		Entries: make([]LegendEntry, 0, len(fonts)),
	}
	for _, f := range fonts {
		legend.Entries = append(legend.Entries, LegendEntry{
			Label: fontLabel(f),
			Color: colors[f.Name],
		})
	}
	plan.Legend = legend
	return plan
}

// hueColor sweeps the hue evenly around the color wheel and converts it to
// RGB with three phase-shifted sine waves. Exact channel values are not a
// contract; distinctness and determinism per discovery order are.
func hueColor(index, count int) Color {
	if count <= 0 {
		count = 1
	}
	hue := float64(index) / float64(count)
	return Color{
		R: 0.5 + 0.5*math.Sin(2*math.Pi*hue),
		G: 0.5 + 0.5*math.Sin(2*math.Pi*hue+2*math.Pi/3),
		B: 0.5 + 0.5*math.Sin(2*math.Pi*hue+4*math.Pi/3),
	}
}

func fontLabel(f analysis.FontUsage) string {
	if f.Occurrences == 1 {
		return f.Name + " (1 run)"
	}
	return fmt.Sprintf("%s (%d runs)", f.Name, f.Occurrences)
}
