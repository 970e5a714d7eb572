package handlers

import (
	"net/http"
	"path"
)

// DefaultDocument answers with root/name regardless of the request path.
// The file is opened on every request so edits show up without a restart.
func DefaultDocument(root, name string) http.HandlerFunc {
	dir := http.Dir(root)
	file := path.Clean("/" + name)
	return func(w http.ResponseWriter, r *http.Request) {
		if !isReadMethod(r.Method) {
			http.NotFound(w, r)
			return
		}
		serveFile(w, r, dir, file)
	}
}
