package files

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/filetug/dirtug/pkg/colors"
	"github.com/filetug/dirtug/pkg/fsutils"
	"golang.org/x/text/unicode/norm"
)

const (
	SizeUnknown    = "?"
	SizeBrokenLink = "Broken Link"
	SizeError      = "Error"
	linkPrefix     = "-> "

	// maxLinkDepth matches the kernel's MAXSYMLINKS.
	maxLinkDepth = 40
)

// Load enumerates dir and builds its Listing. Only a failure to read dir
// itself is returned, as a *LoadError; children that cannot be decoded or
// stat'ed are left out.
func Load(ctx context.Context, store Store, dir string, table colors.ExtensionColors) (*Listing, error) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	children, err := store.ReadDir(ctx, dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}

	listing := &Listing{Path: dir}
	for _, child := range children {
		name := child.Name()
		if !utf8.ValidString(name) {
			slog.Debug("skipping entry with undecodable name", "dir", dir, "name", strconv.Quote(name))
			continue
		}
		fullPath := filepath.Join(dir, name)
		info, err := store.Lstat(fullPath)
		if err != nil {
			slog.Debug("skipping entry without metadata", "path", fullPath, "err", err)
			continue
		}
		entry := Entry{
			Path:  fullPath,
			Name:  norm.NFC.String(name),
			Size:  sizeText(ctx, store, fullPath, info),
			Mode:  info.Mode(),
			Color: colors.Resolve(info, nil, name, table),
		}
		if info.IsDir() {
			listing.Dirs = append(listing.Dirs, entry)
		} else {
			listing.Files = append(listing.Files, entry)
		}
	}

	sortEntries(listing.Dirs)
	sortEntries(listing.Files)
	return listing, nil
}

func sizeText(ctx context.Context, store Store, path string, info os.FileInfo) string {
	return sizeTextVisited(ctx, store, path, info, nil)
}

func sizeTextVisited(ctx context.Context, store Store, path string, info os.FileInfo, visited []string) string {
	mode := info.Mode()
	switch {
	case mode.IsDir():
		children, err := store.ReadDir(ctx, path)
		if err != nil {
			return SizeUnknown
		}
		return strconv.Itoa(len(children))
	case mode.IsRegular():
		return fsutils.GetSizeShortText(info.Size())
	case mode&os.ModeSymlink != 0:
		return linkPrefix + linkTargetSize(ctx, store, path, append(visited, path))
	default:
		return SizeError
	}
}

func linkTargetSize(ctx context.Context, store Store, link string, visited []string) string {
	if len(visited) > maxLinkDepth {
		return SizeBrokenLink
	}
	target, err := store.Readlink(link)
	if err != nil {
		return SizeBrokenLink
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	for _, seen := range visited {
		if seen == target {
			return SizeBrokenLink
		}
	}
	info, err := store.Lstat(target)
	if err != nil {
		return SizeBrokenLink
	}
	return sizeTextVisited(ctx, store, target, info, visited)
}
