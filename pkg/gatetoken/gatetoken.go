// Package gatetoken implements the self-contained capability token that gates
// access to episode downloads. A token is the base64url-encoded JSON payload
// joined by a "." to the base64url-encoded HMAC-SHA256 of that payload
// fragment, keyed by a shared secret. Verification needs no storage lookup:
// trust is re-derived from the signature and the expiry on every request.
package gatetoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrPayloadMalformed = errors.New("token payload malformed")
	ErrBadSignature     = errors.New("token bad signature")
	ErrTokenExpired     = errors.New("token expired")
)

// Payload is the signed content of a gate token. It is immutable once minted;
// equality is by content, never by reference.
type Payload struct {
	Email      string `json:"email"`
	IssuedAt   int64  `json:"iat"`
	Expiration int64  `json:"exp"`
}

func encodePayload(payload *Payload) (string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("json marshal failure: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(payloadJSON), nil
}

func decodePayload(fragment string) (*Payload, error) {
	bytes, err := base64.RawURLEncoding.DecodeString(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 encoding: %v", ErrPayloadMalformed, err)
	}

	payload := &Payload{}
	if err := json.Unmarshal(bytes, payload); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrPayloadMalformed, err)
	}

	// A payload without a positive expiry can never be valid; treat it as
	// malformed rather than expired so the failure is distinguishable.
	if payload.Expiration <= 0 {
		return nil, fmt.Errorf("%w: missing expiration", ErrPayloadMalformed)
	}

	return payload, nil
}
