package textrun

import "math"

// Gap returns the Euclidean distance between the predecessor's right edge
// (x+width, at the predecessor's y) and the current run's origin.
func Gap(prev, cur TextRun) float64 {
	dx := cur.Position.X - prev.RightEdge()
	dy := cur.Position.Y - prev.Position.Y
	return math.Hypot(dx, dy)
}

// GroupByContext folds runs into per-context groups. Insertion order within
// a group follows input order; the family and size detectors ignore it, the
// grouping itself is what they depend on.
func GroupByContext(runs []TextRun) map[Context][]TextRun {
	groups := make(map[Context][]TextRun)
	for _, r := range runs {
		c := Classify(r)
		groups[c] = append(groups[c], r)
	}
	return groups
}
