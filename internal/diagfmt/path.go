package diagfmt

import "tileman/internal/source"

func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return "<input>"
	}
	return source.FormatPath(path, mode.String(), baseDir)
}
