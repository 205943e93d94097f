package files

import (
	"os"
	"sort"

	"github.com/filetug/dirtug/pkg/colors"
)

// Entry is one child of a loaded directory.
type Entry struct {
	Path  string
	Name  string
	Size  string
	Mode  os.FileMode
	Color colors.Pair
}

// Less orders entries by case-sensitive name, then by path.
func (e Entry) Less(other Entry) bool {
	if e.Name != other.Name {
		return e.Name < other.Name
	}
	return e.Path < other.Path
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Less(entries[j])
	})
}

// Listing is a loaded directory: directories and files kept in two
// separately sorted slices, presented as Dirs followed by Files.
type Listing struct {
	Path  string
	Dirs  []Entry
	Files []Entry
}

func (l *Listing) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Dirs) + len(l.Files)
}

// At returns the entry at index i of the combined Dirs ++ Files order.
func (l *Listing) At(i int) (Entry, bool) {
	if l == nil || i < 0 {
		return Entry{}, false
	}
	if i < len(l.Dirs) {
		return l.Dirs[i], true
	}
	i -= len(l.Dirs)
	if i < len(l.Files) {
		return l.Files[i], true
	}
	return Entry{}, false
}

// IndexOf returns the combined index of the entry with the given path, or -1.
func (l *Listing) IndexOf(path string) int {
	if l == nil {
		return -1
	}
	for i, entry := range l.Dirs {
		if entry.Path == path {
			return i
		}
	}
	for i, entry := range l.Files {
		if entry.Path == path {
			return len(l.Dirs) + i
		}
	}
	return -1
}
