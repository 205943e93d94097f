package dirtug

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filetug/dirtug/pkg/config"
	"github.com/filetug/dirtug/pkg/files"
	"github.com/filetug/dirtug/pkg/files/osfile"
	"github.com/filetug/dirtug/pkg/fsutils"
	"github.com/filetug/dirtug/pkg/sneatv/ttestutils"
	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeApp struct {
	stopped bool
	updates chan func()
}

func newFakeApp() *fakeApp {
	return &fakeApp{updates: make(chan func(), 16)}
}

func (f *fakeApp) QueueUpdateDraw(fn func()) *tview.Application {
	f.updates <- fn
	return nil
}

func (f *fakeApp) Stop() {
	f.stopped = true
}

// newTestTree creates:
//
//	a/
//	sub/inner.txt
//	b.txt
//	flink -> b.txt
//	link -> sub
func newTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "inner.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("0123456789"), 0o644))
	require.NoError(t, os.Symlink("b.txt", filepath.Join(root, "flink")))
	require.NoError(t, os.Symlink("sub", filepath.Join(root, "link")))
	return root
}

func newTestNavigator(t *testing.T, cfg config.Config) (*Navigator, *fakeApp, string) {
	t.Helper()
	root := newTestTree(t)
	app := newFakeApp()
	nav := NewNavigator(app, osfile.NewStore(), cfg)
	t.Cleanup(func() { _ = nav.Close() })
	require.NoError(t, nav.GoDir(root))
	return nav, app, root
}

func names(listing *files.Listing) []string {
	var result []string
	for i := 0; i < listing.Len(); i++ {
		entry, _ := listing.At(i)
		result = append(result, entry.Name)
	}
	return result
}

func TestNavigator_GoDir(t *testing.T) {
	nav, _, root := newTestNavigator(t, config.Config{})

	assert.Equal(t, root, nav.CurrentDir())
	assert.Equal(t, []string{"a", "sub", "b.txt", "flink", "link"}, names(nav.View().Listing()))
	assert.Equal(t, "2 dirs, 3 files", nav.GetFooter())
	assert.Equal(t, fsutils.ShortenHome(root), nav.GetTitle())
	assert.Equal(t, 0, nav.View().FocusIndex())
}

func TestNavigator_GoDir_Error(t *testing.T) {
	nav, _, root := newTestNavigator(t, config.Config{})
	nav.View().MoveBy(2)

	err := nav.GoDir(filepath.Join(root, "missing"))
	var loadErr *files.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, root, nav.CurrentDir())
	assert.Equal(t, 2, nav.View().FocusIndex())
	assert.True(t, strings.HasPrefix(nav.GetFooter(), "failed to read "), nav.GetFooter())
}

func TestNavigator_EnterAndGoParent(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		nav, _, root := newTestNavigator(t, config.Config{})
		nav.View().MoveBy(1)

		require.NoError(t, nav.Enter())
		assert.Equal(t, filepath.Join(root, "sub"), nav.CurrentDir())
		assert.Equal(t, []string{"inner.txt"}, names(nav.View().Listing()))
		assert.Equal(t, "0 dirs, 1 files", nav.GetFooter())

		require.NoError(t, nav.GoParent())
		assert.Equal(t, root, nav.CurrentDir())
		assert.Equal(t, 1, nav.View().FocusIndex())
	})

	t.Run("symlink_to_directory", func(t *testing.T) {
		nav, _, root := newTestNavigator(t, config.Config{})
		require.True(t, nav.View().MoveToPath(filepath.Join(root, "link")))

		require.NoError(t, nav.Enter())
		assert.Equal(t, filepath.Join(root, "link"), nav.CurrentDir())
		assert.Equal(t, []string{"inner.txt"}, names(nav.View().Listing()))

		require.NoError(t, nav.GoParent())
		assert.Equal(t, root, nav.CurrentDir())
		assert.Equal(t, 4, nav.View().FocusIndex())
	})

	t.Run("symlink_to_file", func(t *testing.T) {
		nav, _, root := newTestNavigator(t, config.Config{})
		require.True(t, nav.View().MoveToPath(filepath.Join(root, "flink")))

		err := nav.Enter()
		assert.ErrorIs(t, err, errNotADirectory)
		assert.Equal(t, root, nav.CurrentDir())
		assert.Equal(t, fsutils.ShortenHome(filepath.Join(root, "flink"))+": not a directory", nav.GetFooter())

		handler := nav.InputHandler()
		nav.SetFooter("")
		require.True(t, nav.View().MoveToPath(filepath.Join(root, "flink")))
		handler(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(p tview.Primitive) {})
		assert.Contains(t, nav.GetFooter(), "not a directory")
	})

	t.Run("regular_file", func(t *testing.T) {
		nav, _, root := newTestNavigator(t, config.Config{})
		require.True(t, nav.View().MoveToPath(filepath.Join(root, "b.txt")))

		assert.NoError(t, nav.Enter())
		assert.Equal(t, root, nav.CurrentDir())
	})

	t.Run("empty_listing", func(t *testing.T) {
		nav := NewNavigator(newFakeApp(), osfile.NewStore(), config.Config{})
		assert.NoError(t, nav.Enter())
		assert.NoError(t, nav.GoParent())
		assert.NoError(t, nav.Reload())
		assert.Equal(t, "", nav.CurrentDir())
	})
}

func TestNavigator_Reload(t *testing.T) {
	nav, _, root := newTestNavigator(t, config.Config{})
	require.True(t, nav.View().MoveToPath(filepath.Join(root, "b.txt")))
	assert.Equal(t, 2, nav.View().FocusIndex())

	require.NoError(t, os.WriteFile(filepath.Join(root, "0.txt"), nil, 0o644))
	require.NoError(t, nav.Reload())
	assert.Equal(t, 3, nav.View().FocusIndex())
	assert.Equal(t, "2 dirs, 4 files", nav.GetFooter())

	require.NoError(t, os.Remove(filepath.Join(root, "b.txt")))
	require.NoError(t, nav.Reload())
	assert.Equal(t, 3, nav.View().FocusIndex())
	entry, ok := nav.View().Current()
	require.True(t, ok)
	assert.Equal(t, "flink", entry.Name)
}

func TestNavigator_InputHandler(t *testing.T) {
	nav, app, root := newTestNavigator(t, config.Config{})
	handler := nav.InputHandler()
	press := func(event *tcell.EventKey) {
		handler(event, func(p tview.Primitive) {})
	}

	press(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	assert.Equal(t, 1, nav.View().FocusIndex())

	press(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, filepath.Join(root, "sub"), nav.CurrentDir())

	press(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	assert.Equal(t, root, nav.CurrentDir())
	assert.Equal(t, 1, nav.View().FocusIndex())

	press(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone))
	assert.Equal(t, filepath.Join(root, "sub"), nav.CurrentDir())

	press(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, root, nav.CurrentDir())

	press(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	assert.Equal(t, 4, nav.View().FocusIndex())

	press(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	assert.Equal(t, filepath.Join(root, "link"), nav.CurrentDir())

	press(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, root, nav.CurrentDir())
	assert.Equal(t, 4, nav.View().FocusIndex())

	press(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	assert.Equal(t, 4, nav.View().FocusIndex())

	press(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.False(t, app.stopped)

	press(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	assert.True(t, app.stopped)

	app.stopped = false
	press(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.True(t, app.stopped)
}

func TestNavigator_Draw(t *testing.T) {
	nav, _, root := newTestNavigator(t, config.Config{})
	const width, height = 40, 8
	screen := ttestutils.NewSimScreen(t, "UTF-8", width, height)
	nav.SetRect(0, 0, width, height)
	nav.Draw(screen)

	assert.Contains(t, ttestutils.ReadLine(screen, 0, width), fsutils.ShortenHome(root)[:10])
	assert.True(t, strings.HasPrefix(ttestutils.ReadLine(screen, 1, width), "│a "))
	assert.True(t, strings.HasPrefix(ttestutils.ReadLine(screen, 2, width), "│sub "))
	assert.True(t, strings.HasPrefix(ttestutils.ReadLine(screen, 0, width), "┌"))
	assert.Contains(t, ttestutils.ReadLine(screen, 3, width), "10 B")
	assert.Contains(t, ttestutils.ReadLine(screen, height-1, width), "2 dirs, 3 files")

	// The rect carries over to the next directory.
	require.NoError(t, nav.GoDir(filepath.Join(root, "sub")))
	x, y, w, h := nav.GetRect()
	assert.Equal(t, []int{0, 0, width, height}, []int{x, y, w, h})
}

func TestNavigator_Focus(t *testing.T) {
	nav, _, root := newTestNavigator(t, config.Config{})
	nav.Focus(func(p tview.Primitive) {})
	require.True(t, nav.HasFocus())

	require.NoError(t, nav.GoDir(filepath.Join(root, "sub")))
	assert.True(t, nav.HasFocus())
}

func TestNavigator_Watch(t *testing.T) {
	oldWatchDir := watchDir
	t.Cleanup(func() { watchDir = oldWatchDir })
	var watched []string
	watchDir = func(dir string, onChange func()) (*dirWatcher, error) {
		watched = append(watched, dir)
		return startDirWatcher(dir, 10*time.Millisecond, onChange)
	}

	nav, app, root := newTestNavigator(t, config.Config{Watch: true})
	assert.Equal(t, []string{root}, watched)

	require.NoError(t, nav.Reload())
	assert.Equal(t, []string{root}, watched)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), []byte("1"), 0o644))
	select {
	case update := <-app.updates:
		update()
	case <-time.After(5 * time.Second):
		t.Fatal("expected a queued reload after the directory changed")
	}
	assert.Contains(t, names(nav.View().Listing()), "new.txt")

	require.NoError(t, nav.GoDir(filepath.Join(root, "sub")))
	assert.Equal(t, []string{root, filepath.Join(root, "sub")}, watched)
	assert.NoError(t, nav.Close())
	assert.NoError(t, nav.Close())
}

func TestNavigator_WatchError(t *testing.T) {
	oldNewFSWatcher := newFSWatcher
	t.Cleanup(func() { newFSWatcher = oldNewFSWatcher })
	newFSWatcher = func() (*fsnotify.Watcher, error) {
		return nil, errors.New("inotify unavailable")
	}

	nav, _, root := newTestNavigator(t, config.Config{Watch: true})
	assert.Nil(t, nav.watcher)
	assert.Equal(t, root, nav.CurrentDir())

	newFSWatcher = oldNewFSWatcher
	_, err := startDirWatcher(filepath.Join(root, "missing"), time.Millisecond, func() {})
	assert.Error(t, err)
}

func TestSetupApp(t *testing.T) {
	root := newTestTree(t)

	app := tview.NewApplication()
	nav, err := SetupApp(app, root, config.Config{})
	require.NoError(t, err)
	require.NotNil(t, nav)
	assert.Equal(t, root, nav.CurrentDir())
	assert.NoError(t, nav.Close())

	nav, err = SetupApp(tview.NewApplication(), filepath.Join(root, "missing"), config.Config{})
	assert.Error(t, err)
	assert.Nil(t, nav)
}

func TestNavigator_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := files.NewMockStore(ctrl)
	const dir = "/virtual"
	link := files.NewDirEntry("link", os.ModeSymlink)
	store.EXPECT().ReadDir(gomock.Any(), dir).Return([]os.DirEntry{link}, nil)
	store.EXPECT().Lstat("/virtual/link").Return(link, nil)
	store.EXPECT().Readlink("/virtual/link").Return("", fs.ErrNotExist)

	nav := NewNavigator(newFakeApp(), store, config.Config{})
	require.NoError(t, nav.GoDir(dir))
	entry, ok := nav.View().Current()
	require.True(t, ok)
	assert.Equal(t, "-> "+files.SizeBrokenLink, entry.Size)
	assert.Equal(t, "0 dirs, 1 files", nav.GetFooter())

	store.EXPECT().Stat("/virtual/link").Return(nil, fs.ErrNotExist)
	assert.ErrorIs(t, nav.Enter(), errNotADirectory)
	assert.Equal(t, dir, nav.CurrentDir())

	store.EXPECT().ReadDir(gomock.Any(), "/virtual/locked").Return(nil, fs.ErrPermission)
	err := nav.GoDir("/virtual/locked")
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, dir, nav.CurrentDir())
	assert.Equal(t, "failed to read /virtual/locked: "+fs.ErrPermission.Error(), nav.GetFooter())
}
