package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
)

// Router builds the HTTP surface. The public-path allowlist is expressed in
// routing: only the episode subrouter carries the gate middleware, so
// /api/* (and anything mounted beside this router) never hits the gate.
func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.withRequestID)

	// public JSON endpoints; responses are small and compress well
	pub := r.PathPrefix("/api/").
		Methods("POST").
		Subrouter()
	pub.Use(func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	})
	pub.HandleFunc("/subscribe", a.Subscribe())
	pub.HandleFunc("/send-otp", a.SendPasscode())
	pub.HandleFunc("/verify-otp", a.VerifyPasscode())

	// gated media delivery; never gzip-wrapped, ranged bytes must pass
	// through untouched
	gated := r.PathPrefix("/episodes/").
		Methods("GET").
		Subrouter()
	gated.Use(a.requireGate)
	gated.HandleFunc("/{id}/download", a.Download())

	return r
}
