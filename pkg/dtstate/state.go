// Package dtstate remembers where the last session ended.
package dtstate

import (
	"path/filepath"

	"github.com/filetug/dirtug/pkg/fsutils"
)

const stateFileName = "dirtug-state.json"

var settingsDirPath = fsutils.ExpandHome("~/.dirtug")

type State struct {
	CurrentDir      string `json:"current_dir,omitempty"`
	CurrentDirEntry string `json:"current_dir_entry,omitempty"`
}

func getStateFilePath() string {
	return filepath.Join(settingsDirPath, stateFileName)
}

var (
	readJSON  = fsutils.ReadJSONFile
	writeJSON = fsutils.WriteJSONFile
)

// GetState returns the saved state. A missing state file is not an error.
func GetState() (*State, error) {
	var state State
	return &state, readJSON(getStateFilePath(), false, &state)
}

// Save records the directory on screen and the path of its focused entry.
func Save(currentDir, currentDirEntry string) error {
	return writeJSON(getStateFilePath(), State{
		CurrentDir:      currentDir,
		CurrentDirEntry: currentDirEntry,
	})
}
