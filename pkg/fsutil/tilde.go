package fsutil

import (
	"os"
	"runtime"
	"strings"
)

// TildeAbbr abbreviates the user's home directory in path to ~.
func TildeAbbr(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || home == "/" {
		// An abbreviated "/" would make every path longer.
		return path
	}
	home = strings.TrimRight(home, `/\`)
	switch {
	case path == home:
		return "~"
	case strings.HasPrefix(path, home+"/"),
		runtime.GOOS == "windows" && strings.HasPrefix(path, home+`\`):
		return "~" + path[len(home):]
	}
	return path
}
