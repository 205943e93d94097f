package osfile

import (
	"context"
	"os"

	"github.com/filetug/dirtug/pkg/files"
)

var osReadDir = os.ReadDir
var osLstat = os.Lstat
var osStat = os.Stat
var osReadlink = os.Readlink

var _ files.Store = (*Store)(nil)

// Store reads the local filesystem.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func (s Store) Lstat(name string) (os.FileInfo, error) {
	return osLstat(name)
}

func (s Store) Stat(name string) (os.FileInfo, error) {
	return osStat(name)
}

func (s Store) Readlink(name string) (string, error) {
	return osReadlink(name)
}
