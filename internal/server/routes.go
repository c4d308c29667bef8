// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/pdiddy/pdf-toolkit/internal/httputil"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI
	mux.HandleFunc("/", only(http.MethodGet, s.handleIndex))
	mux.HandleFunc("/healthz", only(http.MethodGet, s.handleHealth))

	// Operations; each takes a multipart form and answers with a download.
	mux.HandleFunc("/api/merge", only(http.MethodPost, s.handleMerge))
	mux.HandleFunc("/api/convert", only(http.MethodPost, s.handleConvert))
	mux.HandleFunc("/api/split", only(http.MethodPost, s.handleSplit))
	mux.HandleFunc("/api/rotate", only(http.MethodPost, s.handleRotate))

	return mux
}

// only rejects every method but method with a JSON 405.
func only(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorBody{
				Status: "error",
				Error:  "method " + r.Method + " not allowed",
			})
			return
		}
		h(w, r)
	}
}
