// Package textrun defines the extracted text-run model shared by the
// detectors and overlay planners.
package textrun

// Position is a run origin in the parser's native coordinate space.
// The analysis core never flips or rescales coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TextRun is one glyph run as segmented by the upstream parser: a contiguous
// sequence of glyphs sharing one font and baseline.
//
// Runs are presented in document reading order. The spacing detector compares
// each run against its immediate predecessor, so order is part of the
// contract, not an implementation detail.
type TextRun struct {
	Text       string   `json:"text"`
	FontFamily string   `json:"fontFamily"` // opaque identifier from the source document, not normalized
	FontSize   float64  `json:"fontSize"`
	Position   Position `json:"position"`
	Width      float64  `json:"width"`  // may be 0 for zero-width glyphs
	Height     float64  `json:"height"` // may be 0
}

// RightEdge returns the x coordinate of the run's right edge.
func (r TextRun) RightEdge() float64 {
	return r.Position.X + r.Width
}
