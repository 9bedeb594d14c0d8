// Package overlay converts detected inconsistencies and per-run font
// identity into annotation plans for the PDF writer. Planners are pure
// functions of their inputs: identical runs and issues always yield
// identical rectangles.
package overlay

import "math"

// Rect is an axis-aligned rectangle in the parser's coordinate space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Annotation is one highlight rectangle to burn into the output document.
type Annotation struct {
	PageIndex int     `json:"pageIndex"`
	Rect      Rect    `json:"rect"`
	Color     Color   `json:"color"`
	Opacity   float64 `json:"opacity"`
}

// LegendEntry is one swatch plus label in a plan's legend.
type LegendEntry struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

// Legend places the legend block on page 0 of the output document.
type Legend struct {
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Entries []LegendEntry `json:"entries"`
}

// Plan is an ordered set of annotations plus a legend, handed to the
// external writer. The planner never touches page or byte content.
type Plan struct {
	Annotations []Annotation `json:"annotations"`
	Legend      Legend       `json:"legend"`
}

// Rectangles default to this square when a run reports zero width or height.
const defaultRectSize = 10.0

// legendLineHeight is the vertical step between stacked legend entries.
const legendLineHeight = 14.0

// pageIndexFor buckets a y coordinate into a page by dividing by the first
// page's height. This assumes uniform page height and a document-wide y
// origin; documents violating that place rectangles on the wrong page, a
// known approximation inherited from the coordinate contract with the
// parser.
func pageIndexFor(y, pageHeight float64) int {
	if pageHeight <= 0 {
		return 0
	}
	idx := int(math.Floor(y / pageHeight))
	if idx < 0 {
		return 0
	}
	return idx
}

// rectFor sizes a rectangle to the run's reported dimensions, substituting
// the default square for zero width or height.
func rectFor(x, y, w, h float64) Rect {
	if w == 0 {
		w = defaultRectSize
	}
	if h == 0 {
		h = defaultRectSize
	}
	return Rect{X: x, Y: y, W: w, H: h}
}
