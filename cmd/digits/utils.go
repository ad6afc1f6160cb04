package main

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// mapPath expands "~/" to the home directory. A "./" path is looked up next to
// the executable first and falls back to the working directory, so data files
// are found both for an installed binary and under "go run".
func mapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		curUser, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(curUser.HomeDir, strings.TrimPrefix(path, "~/"))
	}
	if strings.HasPrefix(path, "./") {
		var exePath, err = os.Executable()
		if err != nil {
			return path
		}
		return resolveRelative(filepath.Dir(exePath), path)
	}
	return path
}

// resolveRelative returns path joined to baseDir when that file exists,
// otherwise path itself, relative to the working directory.
func resolveRelative(baseDir, path string) string {
	var candidate = filepath.Join(baseDir, strings.TrimPrefix(path, "./"))
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}
