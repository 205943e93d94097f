package dirtug

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/filetug/dirtug/pkg/colors"
	"github.com/filetug/dirtug/pkg/config"
	"github.com/filetug/dirtug/pkg/dirview"
	"github.com/filetug/dirtug/pkg/files"
	"github.com/filetug/dirtug/pkg/fsutils"
	"github.com/filetug/dirtug/pkg/sneatv"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type appUI interface {
	QueueUpdateDraw(f func()) *tview.Application
	Stop()
}

var _ tview.Primitive = (*Navigator)(nil)

// Navigator shows one directory at a time and moves between directories.
type Navigator struct {
	*sneatv.Boxed

	app   appUI
	store files.Store
	cfg   config.Config
	table colors.ExtensionColors

	view    *dirview.View
	watcher io.Closer
}

func NewNavigator(app appUI, store files.Store, cfg config.Config) *Navigator {
	nav := &Navigator{
		app:   app,
		store: store,
		cfg:   cfg,
		table: cfg.ExtensionColors(),
	}
	nav.setListing(&files.Listing{})
	return nav
}

// CurrentDir is the absolute path of the directory on screen.
func (nav *Navigator) CurrentDir() string {
	return nav.view.Listing().Path
}

func (nav *Navigator) View() *dirview.View {
	return nav.view
}

// GoDir loads dir and shows it. On failure the previous listing stays and
// the error goes to the footer.
func (nav *Navigator) GoDir(dir string) error {
	listing, err := files.Load(context.Background(), nav.store, fsutils.ExpandHome(dir), nav.table)
	if err != nil {
		slog.Warn("failed to load directory", "dir", dir, "err", err)
		nav.SetFooter(err.Error())
		return err
	}
	changed := listing.Path != nav.CurrentDir()
	nav.setListing(listing)
	nav.SetFooter(statusText(listing))
	if changed && nav.cfg.Watch {
		nav.watch(listing.Path)
	}
	return nil
}

// GoParent shows the parent directory with the child we came from focused.
func (nav *Navigator) GoParent() error {
	current := nav.CurrentDir()
	parent := filepath.Dir(current)
	if current == "" || parent == current {
		return nil
	}
	if err := nav.GoDir(parent); err != nil {
		return err
	}
	nav.view.MoveToPath(current)
	return nil
}

var errNotADirectory = errors.New("not a directory")

// Enter descends into the focused entry when it is a directory or a
// symlink resolving to one.
func (nav *Navigator) Enter() error {
	entry, ok := nav.view.Current()
	if !ok {
		return nil
	}
	if !entry.Mode.IsDir() {
		if entry.Mode&fs.ModeSymlink == 0 {
			return nil
		}
		info, err := nav.store.Stat(entry.Path)
		if err != nil || !info.IsDir() {
			slog.Debug("symlink does not resolve to a directory", "path", entry.Path, "err", err)
			err = fmt.Errorf("%s: %w", fsutils.ShortenHome(entry.Path), errNotADirectory)
			nav.SetFooter(err.Error())
			return err
		}
	}
	return nav.GoDir(entry.Path)
}

// Reload reads the current directory again, keeping focus on the same path
// or, when that entry is gone, on the same position.
func (nav *Navigator) Reload() error {
	if nav.CurrentDir() == "" {
		return nil
	}
	focus := nav.view.FocusIndex()
	current, hasCurrent := nav.view.Current()
	if err := nav.GoDir(nav.CurrentDir()); err != nil {
		return err
	}
	if !hasCurrent || !nav.view.MoveToPath(current.Path) {
		nav.view.MoveBy(focus)
	}
	return nil
}

func (nav *Navigator) Close() error {
	if nav.watcher == nil {
		return nil
	}
	err := nav.watcher.Close()
	nav.watcher = nil
	return err
}

func (nav *Navigator) setListing(listing *files.Listing) {
	view := dirview.NewView(listing, nav.cfg.ViewOptions()...)
	view.SetTitle(fsutils.ShortenHome(listing.Path))
	view.SetChangedFunc(func(entry files.Entry, index int) {
		slog.Debug("focus changed", "path", entry.Path, "index", index)
	})
	var footer string
	if nav.Boxed != nil {
		view.SetRect(nav.GetRect())
		if nav.HasFocus() {
			view.Focus(func(p tview.Primitive) {})
		}
		footer = nav.GetFooter()
	}
	nav.view = view
	nav.Boxed = sneatv.NewBoxed(view, sneatv.WithLeftBorder(0), sneatv.WithRightBorder(0))
	nav.SetFooter(footer)
}

func (nav *Navigator) watch(dir string) {
	if err := nav.Close(); err != nil {
		slog.Warn("failed to close directory watcher", "err", err)
	}
	w, err := watchDir(dir, func() {
		nav.app.QueueUpdateDraw(func() {
			if err := nav.Reload(); err != nil {
				slog.Debug("reload after change failed", "dir", dir, "err", err)
			}
		})
	})
	if err != nil {
		slog.Warn("failed to watch directory", "dir", dir, "err", err)
		return
	}
	nav.watcher = w
}

func (nav *Navigator) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if nav.handleKey(event) {
			return
		}
		if handler := nav.view.InputHandler(); handler != nil {
			handler(event, setFocus)
		}
	}
}

func (nav *Navigator) handleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyEnter, tcell.KeyRight:
		_ = nav.Enter()
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft:
		_ = nav.GoParent()
	case tcell.KeyEscape:
		nav.app.Stop()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'l':
			_ = nav.Enter()
		case 'h':
			_ = nav.GoParent()
		case 'r':
			_ = nav.Reload()
		case 'q':
			nav.app.Stop()
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func statusText(listing *files.Listing) string {
	return fmt.Sprintf("%d dirs, %d files", len(listing.Dirs), len(listing.Files))
}
