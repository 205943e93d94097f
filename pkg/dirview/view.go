package dirview

import (
	"github.com/filetug/dirtug/pkg/files"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// VerticalAlign places a listing shorter than the viewport.
type VerticalAlign int

const (
	AlignTop VerticalAlign = iota
	AlignCenter
	AlignBottom
)

const defaultPageSize = 10

var _ tview.Primitive = (*View)(nil)

// View is a tview primitive showing one loaded directory with a focus cursor.
// A View is built for a single directory and replaced on navigation.
type View struct {
	*tview.Box
	listing *files.Listing
	cursor  *Cursor
	o       viewOptions

	lastHeight  int
	changedFunc func(entry files.Entry, index int)
}

type viewOptions struct {
	align    VerticalAlign
	pageSize int
}

type ViewOption func(o *viewOptions)

func WithAlign(align VerticalAlign) ViewOption {
	return func(o *viewOptions) {
		o.align = align
	}
}

// WithPageSize sets the PgUp/PgDn step; 0 uses the last drawn height.
func WithPageSize(rows int) ViewOption {
	return func(o *viewOptions) {
		o.pageSize = rows
	}
}

func NewView(listing *files.Listing, options ...ViewOption) *View {
	v := &View{
		Box:     tview.NewBox(),
		listing: listing,
		cursor:  NewCursor(listing.Len()),
	}
	for _, option := range options {
		option(&v.o)
	}
	return v
}

func (v *View) Listing() *files.Listing { return v.listing }
func (v *View) FocusIndex() int         { return v.cursor.Focus() }
func (v *View) WindowStart() int        { return v.cursor.WindowStart() }

// SetChangedFunc registers f to be called after the focused entry changes.
func (v *View) SetChangedFunc(f func(entry files.Entry, index int)) *View {
	v.changedFunc = f
	return v
}

// Current returns the focused entry.
func (v *View) Current() (files.Entry, bool) {
	return v.listing.At(v.cursor.Focus())
}

func (v *View) MoveBy(delta int) {
	v.move(func() { v.cursor.MoveBy(delta) })
}

func (v *View) MoveToStart() {
	v.move(v.cursor.MoveToStart)
}

func (v *View) MoveToEnd() {
	v.move(v.cursor.MoveToEnd)
}

func (v *View) PageUp() {
	v.MoveBy(-v.pageSize())
}

func (v *View) PageDown() {
	v.MoveBy(v.pageSize())
}

// MoveToPath focuses the entry with the given path, searching directories
// before files. It reports whether such an entry exists.
func (v *View) MoveToPath(path string) bool {
	i := v.listing.IndexOf(path)
	if i < 0 {
		return false
	}
	v.move(func() { v.cursor.SetFocus(i) })
	return true
}

func (v *View) move(f func()) {
	before := v.cursor.Focus()
	f()
	if after := v.cursor.Focus(); after != before && v.changedFunc != nil {
		if entry, ok := v.listing.At(after); ok {
			v.changedFunc(entry, after)
		}
	}
}

func (v *View) pageSize() int {
	switch {
	case v.o.pageSize > 0:
		return v.o.pageSize
	case v.lastHeight > 0:
		return v.lastHeight
	default:
		return defaultPageSize
	}
}

// RequiredSize is the natural size of the listing: the widest name by the
// number of entries, never less than 1x1.
func (v *View) RequiredSize() (width, height int) {
	width, height = 1, max(v.listing.Len(), 1)
	if v.listing == nil {
		return
	}
	for _, entries := range [][]files.Entry{v.listing.Dirs, v.listing.Files} {
		for _, entry := range entries {
			width = max(width, runewidth.StringWidth(entry.Name))
		}
	}
	return
}

// Frame is the read-only snapshot a draw renders.
type Frame struct {
	Listing     *files.Listing
	Focus       int
	WindowStart int
	// Offset is the number of blank rows above the content when the
	// listing is shorter than the viewport.
	Offset int
}

// Frame computes what a viewport of height rows shows now.
func (v *View) Frame(height int) Frame {
	frame := Frame{
		Listing:     v.listing,
		Focus:       v.cursor.Focus(),
		WindowStart: v.cursor.Window(height),
	}
	if total := v.listing.Len(); total < height {
		switch v.o.align {
		case AlignCenter:
			frame.Offset = (height - total) / 2
		case AlignBottom:
			frame.Offset = height - total
		}
	}
	return frame
}

func (v *View) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	frame := v.Frame(height)
	renderRows(screen, x, y, width, height, frame)
	v.cursor.CommitWindow(frame.WindowStart)
	v.lastHeight = height
}

func (v *View) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, _ func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			v.MoveBy(-1)
		case tcell.KeyDown:
			v.MoveBy(1)
		case tcell.KeyPgUp:
			v.PageUp()
		case tcell.KeyPgDn:
			v.PageDown()
		case tcell.KeyHome:
			v.MoveToStart()
		case tcell.KeyEnd:
			v.MoveToEnd()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'k':
				v.MoveBy(-1)
			case 'j':
				v.MoveBy(1)
			case 'g':
				v.MoveToStart()
			case 'G':
				v.MoveToEnd()
			}
		}
	})
}
