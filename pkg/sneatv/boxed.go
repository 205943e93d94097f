package sneatv

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	focusedStyle = tcell.StyleDefault.Foreground(tcell.ColorCornflowerBlue).Background(tcell.ColorBlack)
	blurredStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	titleColor   = tcell.ColorGhostWhite
)

type BoxedContent interface {
	tview.Primitive
	GetTitle() string
	SetTitle(title string) *tview.Box
	SetBorderPadding(top, bottom, left, right int) *tview.Box
}

// Boxed draws a frame around its content: the title is centered in the
// top line and the footer text in the bottom line.
type Boxed struct {
	BoxedContent
	options boxOptions
	footer  string
}

type boxOptions struct {
	leftBorder   bool
	leftPadding  int
	rightBorder  bool
	rightPadding int
}

type BoxOption func(*boxOptions)

func WithLeftBorder(padding int) BoxOption {
	return func(opts *boxOptions) {
		opts.leftBorder = true
		opts.leftPadding = padding
	}
}

func WithRightBorder(padding int) BoxOption {
	return func(opts *boxOptions) {
		opts.rightBorder = true
		opts.rightPadding = padding
	}
}

func NewBoxed(inner BoxedContent, o ...BoxOption) *Boxed {
	b := Boxed{
		BoxedContent: inner,
	}
	for _, option := range o {
		option(&b.options)
	}
	left, right := b.options.leftPadding, b.options.rightPadding
	if b.options.leftBorder {
		left++
	}
	if b.options.rightBorder {
		right++
	}
	inner.SetBorderPadding(1, 1, left, right)
	return &b
}

// SetFooter sets the plain text shown in the bottom line.
func (b *Boxed) SetFooter(text string) *Boxed {
	if newline := strings.IndexByte(text, '\n'); newline >= 0 {
		text = text[:newline]
	}
	b.footer = text
	return b
}

func (b *Boxed) GetFooter() string {
	return b.footer
}

func (b *Boxed) Draw(screen tcell.Screen) {
	b.BoxedContent.Draw(screen)
	b.drawBorders(screen)
}

func (b *Boxed) drawBorders(screen tcell.Screen) {
	x, y, width, height := b.GetRect()
	if width <= 0 || height <= 0 {
		return
	}
	hasFocus := b.HasFocus()
	lineStyle := blurredStyle
	lineChar, openChar, closeChar := '─', '┤', '├'
	if hasFocus {
		lineStyle = focusedStyle
		lineChar, openChar, closeChar = '═', '╡', '╞'
	}

	horizontalStart, horizontalLen := x, width
	if b.options.leftBorder {
		horizontalStart++
		horizontalLen--
	}
	if b.options.rightBorder {
		horizontalLen--
	}

	horizontalBorder := func(y int, text string) {
		for i := 0; i < horizontalLen; i++ {
			screen.SetContent(horizontalStart+i, y, lineChar, nil, lineStyle)
		}
		if text == "" {
			return
		}
		text = tview.Escape(text)
		textWidth := min(tview.TaggedStringWidth(text), horizontalLen-2)
		if textWidth <= 0 {
			return
		}
		textStart := horizontalStart + (horizontalLen-textWidth)/2
		screen.SetContent(textStart-1, y, openChar, nil, lineStyle)
		tview.Print(screen, text, textStart, y, textWidth, tview.AlignLeft, titleColor)
		screen.SetContent(textStart+textWidth, y, closeChar, nil, lineStyle)
	}

	horizontalBorder(y, b.GetTitle())
	if height > 1 {
		horizontalBorder(y+height-1, b.footer)
	}

	verticalBorder := func(x int, top, bottom rune) {
		screen.SetContent(x, y, top, nil, lineStyle)
		for i := 1; i < height-1; i++ {
			screen.SetContent(x, y+i, '│', nil, lineStyle)
		}
		if height > 1 {
			screen.SetContent(x, y+height-1, bottom, nil, lineStyle)
		}
	}

	if b.options.leftBorder {
		if hasFocus {
			verticalBorder(x, '╒', '╘')
		} else {
			verticalBorder(x, '┌', '└')
		}
	}
	if b.options.rightBorder {
		if hasFocus {
			verticalBorder(x+width-1, '╕', '╛')
		} else {
			verticalBorder(x+width-1, '┐', '┘')
		}
	}
}
