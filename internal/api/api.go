// Package api exposes the HTTP surface of the media gate: subscription and
// passcode endpoints, and the gated, Range-aware episode download handler.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ForkAboutandFindOut/FAFO/internal/catalog"
	"github.com/ForkAboutandFindOut/FAFO/internal/service"
	"github.com/ForkAboutandFindOut/FAFO/internal/store"
	"github.com/ForkAboutandFindOut/FAFO/pkg/gatetoken"
)

// API wires handlers to their dependencies. All fields are read-only after
// construction; requests share no mutable state.
type API struct {
	service *service.Service
	catalog *catalog.Catalog
	objects store.ObjectStore
	signer  *gatetoken.Signer
	now     func() time.Time
}

func New(
	svc *service.Service,
	cat *catalog.Catalog,
	objects store.ObjectStore,
	signer *gatetoken.Signer,
	now func() time.Time,
) *API {
	if now == nil {
		now = time.Now
	}
	return &API{
		service: svc,
		catalog: cat,
		objects: objects,
		signer:  signer,
		now:     now,
	}
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logApiErr(r, "bad json request")
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func logApiErr(r *http.Request, msg string) {
	log.Printf("%s %s [%s]: %s\n", r.Method, r.RequestURI, requestID(r), msg)
}

// serviceErr maps service-layer failures onto status codes. Responses carry
// no detail beyond the status; specifics go to the log.
func serviceErr(w http.ResponseWriter, r *http.Request, err error) {
	logApiErr(r, err.Error())

	switch {
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidName):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidPasscode):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, service.ErrRateLimited):
		w.WriteHeader(http.StatusTooManyRequests)
	case errors.Is(err, service.ErrUpstream):
		w.WriteHeader(http.StatusBadGateway)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
