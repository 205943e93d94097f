package dirtug

import (
	"github.com/filetug/dirtug/pkg/config"
	"github.com/filetug/dirtug/pkg/files/osfile"
	"github.com/rivo/tview"
)

// SetupApp opens dir on the local filesystem and makes the navigator the
// application root. The caller closes the returned navigator after Run.
func SetupApp(app *tview.Application, dir string, cfg config.Config) (*Navigator, error) {
	nav := NewNavigator(app, osfile.NewStore(), cfg)
	if err := nav.GoDir(dir); err != nil {
		_ = nav.Close()
		return nil, err
	}
	app.SetRoot(nav, true)
	return nav, nil
}
