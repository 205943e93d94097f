package dirview

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

func renderRows(screen tcell.Screen, x, y, width, height int, frame Frame) {
	for row := 0; row < height-frame.Offset; row++ {
		i := frame.WindowStart + row
		entry, ok := frame.Listing.At(i)
		if !ok {
			break
		}
		style := entry.Color.Regular
		if i == frame.Focus {
			style = entry.Color.Highlight
		}
		printCells(screen, x, y+frame.Offset+row, width, formatRow(entry.Name, entry.Size, width), style)
	}
}

// formatRow lays out name on the left and size flush right within width
// cells. The size is dropped when there is no room for it and a gap.
func formatRow(name, size string, width int) string {
	sizeWidth := runewidth.StringWidth(size)
	if size == "" || sizeWidth+1 >= width {
		return runewidth.Truncate(name, width, ellipsis)
	}
	name = runewidth.Truncate(name, width-sizeWidth-1, ellipsis)
	gap := width - runewidth.StringWidth(name) - sizeWidth
	return name + strings.Repeat(" ", gap) + size
}

// printCells writes text into one row, then pads it with styled blanks.
func printCells(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	lastCol := -1
	var lastMain rune
	var combining []rune
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if lastCol >= 0 {
				combining = append(combining, r)
				screen.SetContent(x+lastCol, y, lastMain, combining, style)
			}
			continue
		}
		if col+w > width {
			break
		}
		combining = nil
		lastCol, lastMain = col, r
		screen.SetContent(x+col, y, r, nil, style)
		col += w
	}
	for ; col < width; col++ {
		screen.SetContent(x+col, y, ' ', nil, style)
	}
}
