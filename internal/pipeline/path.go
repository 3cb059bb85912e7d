package pipeline

import (
	"path/filepath"
	"strings"
)

// DefaultResultSuffix is inserted before the extension of derived output
// paths.
const DefaultResultSuffix = "_result"

// ResultPath derives the output path for a tabular file:
// "dir/form.01" becomes "dir/form_result.01". The extension starts at the
// last dot of the file name; leading dots do not start an extension.
func ResultPath(tabularPath, suffix string) string {
	if suffix == "" {
		suffix = DefaultResultSuffix
	}
	base, ext := splitExt(tabularPath)
	return base + suffix + ext
}

func splitExt(path string) (string, string) {
	dir, name := filepath.Split(path)
	trimmed := strings.TrimLeft(name, ".")

	i := strings.LastIndex(trimmed, ".")
	if i < 0 {
		return path, ""
	}
	i += len(name) - len(trimmed)
	return dir + name[:i], name[i:]
}
