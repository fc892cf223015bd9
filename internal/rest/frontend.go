package rest

import (
	"net/http"
	"os"
	"path/filepath"
)

// FrontendHandler serves static frontend assets, falling back to the index
// file for client-side routed paths.
type FrontendHandler struct {
	root      string
	indexFile string
}

func NewFrontendHandler(root string, indexFile string) *FrontendHandler {
	return &FrontendHandler{root: root, indexFile: indexFile}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, h.indexFile))
		return
	}
	http.FileServer(http.Dir(h.root)).ServeHTTP(w, r)
}
