package gatetoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLifetime is how long a freshly minted gate token stays valid.
const DefaultLifetime = time.Hour * 24 * 180

// ErrEmptySecret is returned by NewSigner when no signing secret is
// configured. Callers are expected to treat this as fatal at startup.
var ErrEmptySecret = errors.New("signing secret is empty")

// Signer mints and verifies gate tokens with a shared HMAC-SHA256 secret.
// The secret is a credential: it is never logged and never leaves the signer.
//
// The current time is always an explicit argument so that expiry behavior is
// deterministic under test. A Signer is immutable after construction and safe
// for concurrent use.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Mint issues a token for subject with issuedAt = now and
// expiration = now + lifetime.
func (s *Signer) Mint(
	subject string,
	lifetime time.Duration,
	now time.Time,
) (
	string,
	error,
) {
	payload := &Payload{
		Email:      subject,
		IssuedAt:   now.Unix(),
		Expiration: now.Add(lifetime).Unix(),
	}

	fragment, err := encodePayload(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %v", err)
	}

	return fmt.Sprintf("%s.%s", fragment, s.sign(fragment)), nil
}

// Verify checks the token against the shared secret and the supplied clock.
// Failure branches, in order: structure, signature, payload, expiry. A token
// is valid through the exact second of its expiration.
func (s *Signer) Verify(
	token string,
	now time.Time,
) (
	*Payload,
	error,
) {
	fragment, signature, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	// Constant-time comparison; a mismatch reveals nothing about how close
	// the supplied signature was.
	if !hmac.Equal([]byte(s.sign(fragment)), []byte(signature)) {
		return nil, ErrBadSignature
	}

	payload, err := decodePayload(fragment)
	if err != nil {
		return nil, err
	}

	if now.Unix() > payload.Expiration {
		return nil, ErrTokenExpired
	}

	return payload, nil
}

func (s *Signer) sign(fragment string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(fragment))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func splitToken(token string) (fragment string, signature string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: expected two parts, found %d", ErrTokenMalformed, len(parts))
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: empty part", ErrTokenMalformed)
	}
	return parts[0], parts[1], nil
}
