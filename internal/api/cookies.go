package api

import (
	"net/http"
	"time"
)

// GateCookieName is the cookie carrying the gate token.
const GateCookieName = "fafo_gate"

func setGateCookie(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     GateCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
