package utils

import (
	"path/filepath"
	"strings"
)

// SafeFilename keeps a name usable in Content-Disposition headers and on
// disk. Path separators and quotes become underscores.
func SafeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	r := strings.NewReplacer("/", "_", `\`, "_", `"`, "_", "\n", "_", "\r", "_")
	name = r.Replace(name)
	if name == "" || name == "." {
		return "file"
	}
	return name
}
