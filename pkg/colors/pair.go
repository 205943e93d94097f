package colors

import "github.com/gdamore/tcell/v2"

// Pair holds the style of an entry row when it is not focused (Regular)
// and when it is (Highlight).
type Pair struct {
	Regular   tcell.Style
	Highlight tcell.Style
}

// NewPair builds a pair drawn in fg on black, inverted when highlighted.
func NewPair(fg tcell.Color) Pair {
	return Pair{
		Regular:   tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack),
		Highlight: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(fg),
	}
}

var (
	Default = Pair{
		Regular:   tcell.StyleDefault,
		Highlight: tcell.StyleDefault.Reverse(true),
	}
	Directory  = NewPair(tcell.ColorNavy)
	Executable = NewPair(tcell.ColorGreen)
	Symlink    = NewPair(tcell.ColorTeal)
)
