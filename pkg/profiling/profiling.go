// Package profiling writes pprof CPU and heap profiles for a single run.
package profiling

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	osCreate              = os.Create
	pprofStartCPUProfile  = pprof.StartCPUProfile
	pprofStopCPUProfile   = pprof.StopCPUProfile
	pprofWriteHeapProfile = func(w io.Writer) error { return pprof.WriteHeapProfile(w) }
)

// DoCPUProfiling starts CPU profiling into path and returns the function
// that stops it. Failures are logged and yield a no-op stop function.
func DoCPUProfiling(path string) (stop func()) {
	f, err := osCreate(path)
	if err != nil {
		slog.Error("could not create CPU profile", "path", path, "err", err)
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		slog.Error("could not start CPU profile", "path", path, "err", err)
		closeFile(f)
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		closeFile(f)
	}
}

// DoMemProfiling returns a function that writes the heap profile to path.
// Call it when the run is over.
func DoMemProfiling(path string) (write func()) {
	return func() {
		f, err := osCreate(path)
		if err != nil {
			slog.Error("could not create memory profile", "path", path, "err", err)
			return
		}
		defer closeFile(f)
		runtime.GC()
		if err = pprofWriteHeapProfile(f); err != nil {
			slog.Error("could not write memory profile", "path", path, "err", err)
		}
	}
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Warn("failed to close profile", "path", f.Name(), "err", err)
	}
}
