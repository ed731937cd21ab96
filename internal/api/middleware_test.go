package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ForkAboutandFindOut/FAFO/internal/testutil"
)

func TestRequestID_Echoed(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/subscribe", `{"email": "a@b.c"}`, nil)
	if result.Headers.Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header not set")
	}
}

func TestPublicEndpointsBypassGate(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	// the API routes never see the gate middleware, so they work with no
	// cookie at all
	result := testutil.PostJSON(env.Router, "/api/subscribe", `{"email": "a@b.c"}`, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)

	result = testutil.PostJSON(env.Router, "/api/send-otp", `{"email": "a@b.c"}`, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)
}

func TestJSONRoutesAreGzipWrapped(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/subscribe", `{"email": "a@b.c"}`, nil,
		testutil.Header{Key: "Accept-Encoding", Value: "gzip"})
	testutil.ExpectStatus(t, http.StatusOK, result)

	// the compression wrapper marks everything it passes through
	if !strings.Contains(result.Headers.Get("Vary"), "Accept-Encoding") {
		t.Errorf("Vary = %q, want Accept-Encoding", result.Headers.Get("Vary"))
	}
}

func TestDownloadsAreNeverGzipWrapped(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.SeedObject("episodes/ep001.mp3", []byte("audio"))
	cookie := env.GateCookie(t, "alice@example.com")

	// ranged byte delivery must pass through untouched even when the
	// client advertises gzip support
	result := testutil.Get(env.Router, "/episodes/ep001/download", nil, cookie,
		testutil.Header{Key: "Accept-Encoding", Value: "gzip"})
	testutil.ExpectStatus(t, http.StatusOK, result)

	if enc := result.Headers.Get("Content-Encoding"); enc != "" {
		t.Errorf("Content-Encoding = %q, want none", enc)
	}
	if string(result.Body) != "audio" {
		t.Errorf("body = %q, want raw object bytes", result.Body)
	}
}

func TestGate_Deterministic(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	env.SeedObject("episodes/ep001.mp3", []byte("audio"))
	cookie := env.GateCookie(t, "alice@example.com")

	// the same token at the same clock always evaluates the same way
	for i := 0; i < 3; i++ {
		result := testutil.Get(env.Router, "/episodes/ep001/download", nil, cookie)
		testutil.ExpectStatus(t, http.StatusOK, result)
	}
}
