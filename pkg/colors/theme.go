package colors

import (
	"slices"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

var getStyle = func(name string) *chroma.Style {
	if !slices.Contains(styles.Names(), name) {
		return nil
	}
	return styles.Get(name)
}

var getLexers = func() chroma.Lexers {
	return lexers.GlobalLexerRegistry.Lexers
}

var paletteTokens = []chroma.TokenType{
	chroma.Keyword,
	chroma.NameFunction,
	chroma.LiteralString,
	chroma.NameBuiltin,
	chroma.LiteralNumber,
	chroma.NameClass,
	chroma.Comment,
}

// ThemeExtensionColors colours every extension a chroma lexer claims
// ("*.go", "*.rs", ...) using the token palette of the named chroma style.
// An unknown style yields an empty table.
func ThemeExtensionColors(styleName string) ExtensionColors {
	table := make(ExtensionColors)
	style := getStyle(styleName)
	if style == nil {
		return table
	}
	palette := stylePalette(style)
	if len(palette) == 0 {
		return table
	}

	all := getLexers()
	configs := make([]*chroma.Config, 0, len(all))
	for _, lexer := range all {
		if config := lexer.Config(); config != nil {
			configs = append(configs, config)
		}
	}
	sort.SliceStable(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})

	for i, config := range configs {
		color := palette[i%len(palette)]
		for _, glob := range config.Filenames {
			ext, ok := globExtension(glob)
			if !ok {
				continue
			}
			if _, taken := table[ext]; !taken {
				table[ext] = color
			}
		}
	}
	return table
}

func stylePalette(style *chroma.Style) []tcell.Color {
	palette := make([]tcell.Color, 0, len(paletteTokens))
	for _, tokenType := range paletteTokens {
		entry := style.Get(tokenType)
		if !entry.Colour.IsSet() {
			continue
		}
		color := tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue()))
		if !slices.Contains(palette, color) {
			palette = append(palette, color)
		}
	}
	return palette
}

// globExtension accepts only plain "*.ext" globs.
func globExtension(glob string) (string, bool) {
	ext, ok := strings.CutPrefix(glob, "*.")
	if !ok || ext == "" || strings.ContainsAny(ext, "*?[]{}.") {
		return "", false
	}
	return ext, true
}
