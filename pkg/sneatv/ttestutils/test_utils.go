package ttestutils

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TB is the part of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

var NewSimulationScreen = tcell.NewSimulationScreen

// ReadLine reads a full line from the screen
func ReadLine(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		str, _, _ := screen.Get(x, y)
		if str == "" {
			// nothing drawn at this cell
			b.WriteRune(' ')
			continue
		}
		b.WriteString(str)
	}
	return b.String()
}

// CellStyle returns the style drawn at x, y.
func CellStyle(screen tcell.Screen, x, y int) tcell.Style {
	_, style, _ := screen.Get(x, y)
	return style
}

// NewSimScreen creates a new simulation screen for testing
func NewSimScreen(t TB, charset string, width, height int) tcell.Screen {
	t.Helper()
	s := NewSimulationScreen(charset)
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(width, height)
	return s
}
