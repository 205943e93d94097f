package fsutils

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decoder decodes
type Decoder interface {
	Decode(o interface{}) error
}

func ReadJSONFile(filePath string, required bool, o interface{}) (err error) {
	jsonDecoderFactory := func(r io.Reader) Decoder {
		return json.NewDecoder(r)
	}
	return ReadFile(filePath, required, o, jsonDecoderFactory)
}

func ReadYAMLFile(filePath string, required bool, o interface{}) (err error) {
	yamlDecoderFactory := func(r io.Reader) Decoder {
		return yaml.NewDecoder(r)
	}
	return ReadFile(filePath, required, o, yamlDecoderFactory)
}

// ReadFile decodes filePath into o. A missing file is not an error unless required.
// An empty file leaves o untouched.
func ReadFile(filePath string, required bool, o interface{}, newDecoder func(r io.Reader) Decoder) (err error) {
	var file *os.File
	if file, err = os.Open(filePath); err != nil {
		if os.IsNotExist(err) && !required {
			err = nil
		}
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("failed to close file", "path", filePath, "err", err)
		}
	}()
	decoder := newDecoder(file)
	if err = decoder.Decode(o); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return err
}

// ExpandHome expands leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, strings.TrimPrefix(p, "~/"))
		}
	}
	return p
}

// ShortenHome replaces the user's home directory prefix with ~.
func ShortenHome(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(filepath.Separator)) {
		return "~" + p[len(home):]
	}
	return p
}

// WriteJSONFile writes o as indented JSON, creating parent directories.
func WriteJSONFile(filePath string, o interface{}) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filePath, append(data, '\n'), 0o644)
}
