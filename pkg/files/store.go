package files

import (
	"context"
	"os"
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=files

// Store is the read-only filesystem surface the loader needs.
type Store interface {
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	Lstat(name string) (os.FileInfo, error)
	Stat(name string) (os.FileInfo, error)
	Readlink(name string) (string, error)
}
