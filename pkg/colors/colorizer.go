package colors

import (
	"io/fs"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ExtensionColors maps a file extension (without the dot) to a colour.
type ExtensionColors map[string]tcell.Color

// ParseExtensionColors converts colour names ("aqua", "#ff8800") keyed by
// extension. Names tcell cannot parse are dropped.
func ParseExtensionColors(names map[string]string) ExtensionColors {
	table := make(ExtensionColors, len(names))
	for ext, name := range names {
		ext = strings.TrimPrefix(ext, ".")
		color := tcell.GetColor(strings.TrimSpace(name))
		if ext == "" || color == tcell.ColorDefault {
			slog.Debug("ignoring extension colour", "ext", ext, "color", name)
			continue
		}
		table[ext] = color
	}
	return table
}

// Merge returns a new table with other's entries taking precedence.
func (t ExtensionColors) Merge(other ExtensionColors) ExtensionColors {
	merged := make(ExtensionColors, len(t)+len(other))
	for ext, color := range t {
		merged[ext] = color
	}
	for ext, color := range other {
		merged[ext] = color
	}
	return merged
}

// Lookup returns the colour configured for name's extension.
func (t ExtensionColors) Lookup(name string) (tcell.Color, bool) {
	ext, ok := Extension(name)
	if !ok {
		return tcell.ColorDefault, false
	}
	color, ok := t[ext]
	return color, ok
}

// Extension returns the text after the last dot of name.
// A leading dot does not start an extension, so ".bashrc" has none.
func Extension(name string) (string, bool) {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return name[i+1:], true
		}
	}
	return "", false
}

// Resolve picks the pair for an entry from its own (lstat) metadata.
// It never fails: a metadata error or an unknown type yields Default.
func Resolve(info fs.FileInfo, err error, name string, table ExtensionColors) Pair {
	if err != nil || info == nil {
		return Default
	}
	mode := info.Mode()
	switch {
	case mode.IsDir():
		return Directory
	case mode.IsRegular():
		if mode.Perm()&0o111 != 0 {
			return Executable
		}
		if color, ok := table.Lookup(name); ok {
			return NewPair(color)
		}
		return Default
	case mode&fs.ModeSymlink != 0:
		return Symlink
	default:
		return Default
	}
}
