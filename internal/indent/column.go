package indent

import "strings"

// Column returns the effective column reached after prefix.
func Column(prefix string, tabSize int) int {
	col := 0
	for _, r := range prefix {
		if r == '\t' {
			col += tabSize
		} else {
			col++
		}
	}
	return col
}

// FirstNonBlank returns the byte index of the first rune in line that is
// neither a space nor a tab, or -1 if there is none.
func FirstNonBlank(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return -1
}

// SpacesToNextStop returns how many columns lead from column to the next
// multiple of indentSize. An aligned column gets a full step.
func SpacesToNextStop(column, indentSize int) int {
	return indentSize - column%indentSize
}

// Leading returns width columns of leading whitespace: tabs then spaces
// with mixed tabs, spaces only otherwise.
func Leading(width int, opts Options) string {
	if width <= 0 {
		return ""
	}
	if !opts.MixedTabs {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/opts.TabSize) + strings.Repeat(" ", width%opts.TabSize)
}
