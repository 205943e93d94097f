package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/filetug/dirtug/pkg/config"
	"github.com/filetug/dirtug/pkg/dirtug"
	"github.com/filetug/dirtug/pkg/dtstate"
	"github.com/filetug/dirtug/pkg/logging"
	"github.com/filetug/dirtug/pkg/profiling"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	configPath string
	logFile    string
	debug      bool
	cpuProfile string
	memProfile string
	resume     bool
}

var osExit = os.Exit

func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		osExit(1)
	}
}

func newRootCommand() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "dirtug [dir]",
		Short:         "Browse a directory in the terminal",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			}
			return runDirtug(dir, o)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&o.configPath, "config", "", "settings `file` (default "+config.UserDir+"/settings.yaml)")
	flags.StringVar(&o.logFile, "log-file", "", "write logs to `file`")
	flags.BoolVar(&o.debug, "debug", false, "enable debug logging")
	flags.StringVar(&o.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&o.memProfile, "memprofile", "", "write memory profile to `file`")
	flags.BoolVar(&o.resume, "resume", false, "reopen the directory of the last session when no dir is given")
	return cmd
}

var (
	setupApp  = dirtug.SetupApp
	getState  = dtstate.GetState
	saveState = dtstate.Save
)

type application interface{ Run() error }

var run = func(app application) error {
	return app.Run()
}

// runDirtug opens dir, or "." when dir is empty.
func runDirtug(dir string, o options) error {
	if err := logging.Init(o.logFile, o.debug); err != nil {
		return err
	}
	defer logging.Close()

	if o.cpuProfile != "" {
		stopCPUProfiling := profiling.DoCPUProfiling(o.cpuProfile)
		defer stopCPUProfiling()
	}
	if o.memProfile != "" {
		writeMemProfile := profiling.DoMemProfiling(o.memProfile)
		defer writeMemProfile()
	}

	configPath := o.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("using default settings", "err", err)
		cfg = config.Config{}
	}

	var focusPath string
	if dir == "" {
		dir = "."
		if o.resume {
			dir, focusPath = resumeFrom(dir)
		}
	}

	app := tview.NewApplication()
	nav, err := setupApp(app, dir, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := nav.Close(); err != nil {
			slog.Warn("failed to close navigator", "err", err)
		}
	}()
	if focusPath != "" {
		nav.View().MoveToPath(focusPath)
	}

	if err = run(app); err != nil {
		return err
	}
	var entryPath string
	if entry, ok := nav.View().Current(); ok {
		entryPath = entry.Path
	}
	if err = saveState(nav.CurrentDir(), entryPath); err != nil {
		slog.Warn("failed to save state", "err", err)
	}
	return nil
}

func resumeFrom(dir string) (string, string) {
	state, err := getState()
	if err != nil {
		slog.Warn("failed to read state", "err", err)
		return dir, ""
	}
	if state.CurrentDir == "" {
		return dir, ""
	}
	if info, err := os.Stat(state.CurrentDir); err != nil || !info.IsDir() {
		slog.Warn("saved directory is gone", "dir", state.CurrentDir, "err", err)
		return dir, ""
	}
	return state.CurrentDir, state.CurrentDirEntry
}
