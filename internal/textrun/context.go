package textrun

// Context is the coarse semantic bucket a run belongs to, derived from font
// size alone. Runs anywhere in the document with the same size collapse into
// the same context; this is deliberately not a layout-aware grouping.
type Context string

const (
	ContextHeader    Context = "header"
	ContextSubheader Context = "subheader"
	ContextBody      Context = "body"
)

// Classification thresholds in the same units as TextRun.FontSize.
// Fixed constants: two runs with equal size always classify identically,
// which is the property the detectors rely on to group correctly.
const (
	headerMinSize    = 20.0
	subheaderMinSize = 14.0
)

// Classify maps a run to its context from its font size alone.
func Classify(r TextRun) Context {
	switch {
	case r.FontSize > headerMinSize:
		return ContextHeader
	case r.FontSize > subheaderMinSize:
		return ContextSubheader
	default:
		return ContextBody
	}
}

// Contexts lists all context labels in a fixed order, used wherever grouped
// results must come out deterministically.
func Contexts() []Context {
	return []Context{ContextHeader, ContextSubheader, ContextBody}
}
