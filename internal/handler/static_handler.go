package handler

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// rootDocument is served for GET /.
const rootDocument = "index.html"

// StaticHandler serves the site's asset tree verbatim. Directories are only
// served when they contain an index.html; there is no directory listing.
type StaticHandler struct {
	fsys  fs.FS
	files http.Handler
}

// NewStaticHandler serves files from fsys.
func NewStaticHandler(fsys fs.FS) *StaticHandler {
	return &StaticHandler{fsys: fsys, files: http.FileServerFS(fsys)}
}

// Root serves the root document.
func (h *StaticHandler) Root(w http.ResponseWriter, r *http.Request) {
	if _, err := fs.Stat(h.fsys, rootDocument); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.fsys, rootDocument)
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		h.Root(w, r)
		return
	}

	info, err := fs.Stat(h.fsys, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		if _, err := fs.Stat(h.fsys, path.Join(name, "index.html")); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	h.files.ServeHTTP(w, r)
}
