package api

import (
	"fmt"
	"net/http"
)

type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SubscribeResponse struct {
	Ok bool `json:"ok"`
}

// Subscribe upserts the caller into the mailing list and, on success, sets
// the gate cookie that unlocks episode downloads.
func (a *API) Subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := SubscribeRequest{}
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		token, err := a.service.Subscribe(r.Context(), req.Email, req.Name)
		if err != nil {
			serviceErr(w, r, fmt.Errorf("subscribe failed: %w", err))
			return
		}

		setGateCookie(w, token, a.service.TokenLifetime())
		returnJson(&SubscribeResponse{Ok: true}, w)
	}
}
