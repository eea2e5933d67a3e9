package configs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/clbridge/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Schema constrains every config file.
//
//go:embed schema.cue
var Schema string

var fileNames = []string{
	"clbridge.cue",
	".clbridge.cue",
}

// Loader reads config files from the working directory, the user config
// directory and /etc, in that order of precedence.
func (Module) Loader(
	logger logs.Logger,
) Loader {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	var paths []string
	for _, dir := range dirs {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		logger.Info("config file", "paths", paths)
	}

	return NewLoader(paths, Schema)
}
