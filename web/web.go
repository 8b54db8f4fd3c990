// Package web embeds the marketing site and admin view served at /.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed index.html admin.html assets
var embedded embed.FS

// Assets returns the site files: dir on disk when set, the embedded copy otherwise.
func Assets(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return embedded
}
