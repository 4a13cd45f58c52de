// Package httpserver holds the http.Server construction so timeouts live in
// one place.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the server for the inspection API. Requests are small JSON
// bodies, so the read and write timeouts can stay tight; the handler chain
// carries its own 30s timeout, which the write timeout must outlast.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
