package api

import (
	"fmt"
	"net"
	"net/http"
)

type SendPasscodeRequest struct {
	Email string `json:"email"`
}

type VerifyPasscodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type PasscodeResponse struct {
	Ok bool `json:"ok"`
}

// SendPasscode dispatches a one-time passcode to the given address. The
// success response is identical whether or not the address was already
// known, so the endpoint can't be used to enumerate subscribers.
func (a *API) SendPasscode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := SendPasscodeRequest{}
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		err := a.service.RequestPasscode(r.Context(), req.Email, clientIP(r))
		if err != nil {
			serviceErr(w, r, fmt.Errorf("send-otp failed: %w", err))
			return
		}

		returnJson(&PasscodeResponse{Ok: true}, w)
	}
}

// VerifyPasscode exchanges a valid passcode for the gate cookie.
func (a *API) VerifyPasscode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := VerifyPasscodeRequest{}
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		token, err := a.service.RedeemPasscode(r.Context(), req.Email, req.Code)
		if err != nil {
			serviceErr(w, r, fmt.Errorf("verify-otp failed: %w", err))
			return
		}

		setGateCookie(w, token, a.service.TokenLifetime())
		returnJson(&PasscodeResponse{Ok: true}, w)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
