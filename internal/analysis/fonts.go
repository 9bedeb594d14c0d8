package analysis

import "github.com/wyawin/docaudit/internal/textrun"

// FontInventory counts occurrences of each distinct font family in
// family-discovery order. The overlay planner relies on the same discovery
// order to assign stable colors.
func FontInventory(runs []textrun.TextRun) []FontUsage {
	index := make(map[string]int)
	var fonts []FontUsage
	for _, r := range runs {
		if i, ok := index[r.FontFamily]; ok {
			fonts[i].Occurrences++
			continue
		}
		index[r.FontFamily] = len(fonts)
		fonts = append(fonts, FontUsage{Name: r.FontFamily, Occurrences: 1})
	}
	return fonts
}
