package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ForkAboutandFindOut/FAFO/internal/httprange"
	"github.com/ForkAboutandFindOut/FAFO/internal/store"
	"github.com/gorilla/mux"
)

const episodeContentType = "audio/mpeg"

// Download serves one episode, whole or as a single byte range. The request
// has already passed the gate middleware. Per request: resolve the id against
// the catalog, fetch the object size, then stream either the full body (200)
// or exactly the requested window (206). The body is never buffered; the
// store reader is copied straight to the response.
func (a *API) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		episode := a.catalog.Get(mux.Vars(r)["id"])
		if episode == nil {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		info, err := a.objects.Stat(r.Context(), episode.StorageKey)
		if err != nil {
			objectErr(w, r, err)
			return
		}

		h := w.Header()
		h.Set("Content-Type", episodeContentType)
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", episode.Filename))
		h.Set("Accept-Ranges", "bytes")
		h.Set("Cache-Control", "private, no-store")

		rangeHeader := r.Header.Get("Range")
		if rangeHeader == "" {
			a.sendFull(w, r, episode.StorageKey, info.Size)
			return
		}
		a.sendRange(w, r, episode.StorageKey, info.Size, rangeHeader)
	}
}

func (a *API) sendFull(
	w http.ResponseWriter,
	r *http.Request,
	key string,
	size int64,
) {
	body, err := a.objects.Get(r.Context(), key)
	if err != nil {
		objectErr(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
	stream(w, r, body)
}

func (a *API) sendRange(
	w http.ResponseWriter,
	r *http.Request,
	key string,
	size int64,
	rangeHeader string,
) {
	byteRange, err := httprange.Parse(rangeHeader, size)
	if err != nil {
		logApiErr(r, fmt.Sprintf("unsatisfiable range %q: %v", rangeHeader, err))
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		http.Error(w, "Range Not Satisfiable", http.StatusRequestedRangeNotSatisfiable)
		return
	}

	body, err := a.objects.GetRange(r.Context(), key, byteRange.Start, byteRange.Length())
	if err != nil {
		objectErr(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Range", byteRange.ContentRange(size))
	w.Header().Set("Content-Length", strconv.FormatInt(byteRange.Length(), 10))
	w.WriteHeader(http.StatusPartialContent)
	stream(w, r, body)
}

// stream copies the store reader to the client. A failed copy mid-body can't
// change the status anymore; a client disconnect cancels the request context
// and the copy stops with it.
func stream(w http.ResponseWriter, r *http.Request, body io.Reader) {
	if _, err := io.Copy(w, body); err != nil {
		logApiErr(r, fmt.Sprintf("body stream aborted: %v", err))
	}
}

// objectErr distinguishes "object absent" (404) from a failing store (502)
// so operators can tell the two apart.
func objectErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrObjectNotFound) {
		logApiErr(r, err.Error())
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	logApiErr(r, fmt.Sprintf("object store failure: %v", err))
	http.Error(w, "Upstream failure", http.StatusBadGateway)
}
