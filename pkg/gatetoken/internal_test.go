package gatetoken

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

// Tests for payload encoding/decoding

func TestEncodeDecodePayload_RoundTrip(t *testing.T) {
	t.Parallel()

	original := &Payload{
		Email:      "alice@example.com",
		IssuedAt:   1700000000,
		Expiration: 1700003600,
	}

	encoded, err := encodePayload(original)
	if err != nil {
		t.Fatalf("encodePayload failed: %v", err)
	}

	decoded, err := decodePayload(encoded)
	if err != nil {
		t.Fatalf("decodePayload failed: %v", err)
	}

	if *decoded != *original {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestDecodePayload_Malformed(t *testing.T) {
	t.Parallel()

	encode := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name     string
		fragment string
	}{
		{"not base64", "not!valid!base64!"},
		{"padded base64", "eyJmb28iOiJiYXIifQ=="},
		{"not json", encode("not json at all")},
		{"non-numeric expiry", encode(`{"email":"a@b.c","iat":1,"exp":"soon"}`)},
		{"missing expiry", encode(`{"email":"a@b.c","iat":1}`)},
		{"zero expiry", encode(`{"email":"a@b.c","iat":1,"exp":0}`)},
		{"negative expiry", encode(`{"email":"a@b.c","iat":1,"exp":-5}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePayload(tt.fragment)
			if !errors.Is(err, ErrPayloadMalformed) {
				t.Errorf("expected ErrPayloadMalformed, got %v", err)
			}
		})
	}
}

func TestSplitToken(t *testing.T) {
	t.Parallel()

	fragment, signature, err := splitToken("payload.signature")
	if err != nil {
		t.Fatalf("splitToken failed: %v", err)
	}
	if fragment != "payload" || signature != "signature" {
		t.Errorf("got (%q, %q)", fragment, signature)
	}
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	signer := &Signer{secret: []byte("secret")}
	a := signer.sign("fragment")
	b := signer.sign("fragment")
	if a != b {
		t.Errorf("sign not deterministic: %q != %q", a, b)
	}

	// signature must be unpadded url-safe base64 of a 32-byte MAC
	raw, err := base64.RawURLEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("signature not raw url base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("mac length = %d, want 32", len(raw))
	}
}

func TestVerify_SignatureCheckedBeforePayload(t *testing.T) {
	t.Parallel()

	signer := &Signer{secret: []byte("secret")}

	// garbage payload with a correctly computed signature fails on the
	// payload step, not the signature step
	garbage := base64.RawURLEncoding.EncodeToString([]byte("garbage"))
	token := garbage + "." + signer.sign(garbage)

	_, err := signer.Verify(token, time.Unix(0, 0))
	if !errors.Is(err, ErrPayloadMalformed) {
		t.Errorf("expected ErrPayloadMalformed, got %v", err)
	}

	// garbage payload with a bad signature fails on the signature step
	_, err = signer.Verify(garbage+".AAAA", time.Unix(0, 0))
	if !errors.Is(err, ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}
