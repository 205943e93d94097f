package files

import (
	"os"
	"path/filepath"
	"time"
)

var (
	_ os.DirEntry = DirEntry{}
	_ os.FileInfo = DirEntry{}
)

// DirEntry is an in-memory child of a directory for stores that do not read
// the local disk. It serves as its own os.FileInfo.
type DirEntry struct {
	name string
	mode os.FileMode
	size int64
}

type DirEntryOption func(*DirEntry)

func WithSize(size int64) DirEntryOption {
	return func(d *DirEntry) {
		d.size = size
	}
}

func NewDirEntry(name string, mode os.FileMode, o ...DirEntryOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		panic("dir entry name can not have path: " + name)
	}
	d := DirEntry{name: name, mode: mode}
	for _, option := range o {
		option(&d)
	}
	return d
}

func (d DirEntry) Name() string      { return d.name }
func (d DirEntry) IsDir() bool       { return d.mode.IsDir() }
func (d DirEntry) Type() os.FileMode { return d.mode.Type() }
func (d DirEntry) Mode() os.FileMode { return d.mode }
func (d DirEntry) Size() int64       { return d.size }

// ModTime is always the zero time; listings never show it.
func (d DirEntry) ModTime() time.Time { return time.Time{} }
func (d DirEntry) Sys() any           { return nil }

func (d DirEntry) Info() (os.FileInfo, error) {
	return d, nil
}
