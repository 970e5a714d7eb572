package handlers

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

// StaticFiles serves any file under root. Missing files, dotfiles, files
// addressed with a trailing slash and directories without an index document
// answer 404; there are no listings.
func StaticFiles(root, indexName string) http.HandlerFunc {
	dir := http.Dir(root)
	return func(w http.ResponseWriter, r *http.Request) {
		if !isReadMethod(r.Method) {
			http.NotFound(w, r)
			return
		}

		// http.Dir cleans the name again, so ".." can never leave root.
		name := path.Clean("/" + r.URL.Path)
		if hasDotSegment(name) {
			http.NotFound(w, r)
			return
		}

		f, err := dir.Open(name)
		if err != nil {
			requestLogger(r.Context()).Debug("static miss", "name", name, "error", err)
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}

		trailingSlash := strings.HasSuffix(r.URL.Path, "/")
		if !info.IsDir() {
			if trailingSlash {
				http.NotFound(w, r)
				return
			}
			http.ServeContent(w, r, info.Name(), info.ModTime(), f)
			return
		}

		if !trailingSlash {
			target := (&url.URL{Path: strings.TrimSuffix(name, "/") + "/"}).EscapedPath()
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}

		serveFile(w, r, dir, path.Join(name, indexName))
	}
}

// serveFile answers with the named file from fsys, or 404 when it is
// missing or a directory.
func serveFile(w http.ResponseWriter, r *http.Request, fsys http.FileSystem, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		requestLogger(r.Context()).Debug("static miss", "name", name, "error", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func isReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// hasDotSegment reports whether any element of a cleaned, rooted path
// starts with a dot, e.g. "/.env" or "/.git/config".
func hasDotSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
