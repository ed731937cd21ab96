package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ForkAboutandFindOut/FAFO/internal/api"
	"github.com/ForkAboutandFindOut/FAFO/internal/testutil"
)

func TestSendPasscode_Dispatches(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	var resp api.PasscodeResponse
	result := testutil.PostJSON(env.Router, "/api/send-otp", `{"email": "alice@example.com"}`, &resp)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if !resp.Ok {
		t.Error("response ok = false")
	}
	if env.Mailer.Email != "alice@example.com" {
		t.Errorf("passcode dispatched to %q", env.Mailer.Email)
	}
	if len(env.Mailer.Code) != 6 {
		t.Errorf("passcode %q, want 6 digits", env.Mailer.Code)
	}
}

func TestSendPasscode_InvalidEmail(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/send-otp", `{"email": "not-an-email"}`, nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}

func TestVerifyPasscode_SetsGateCookie(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/send-otp", `{"email": "alice@example.com"}`, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)

	body := fmt.Sprintf(`{"email": "alice@example.com", "code": %q}`, env.Mailer.Code)
	result = testutil.PostJSON(env.Router, "/api/verify-otp", body, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)

	token := testutil.GateCookieValue(result, api.GateCookieName)
	if token == "" {
		t.Fatal("gate cookie not set")
	}
	if _, err := env.Signer.Verify(token, env.Now); err != nil {
		t.Errorf("cookie token doesn't verify: %v", err)
	}
}

func TestVerifyPasscode_WrongCode(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/send-otp", `{"email": "alice@example.com"}`, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)

	body := `{"email": "alice@example.com", "code": "000000"}`
	result = testutil.PostJSON(env.Router, "/api/verify-otp", body, nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)

	if testutil.GateCookieValue(result, api.GateCookieName) != "" {
		t.Error("no cookie may be set on failure")
	}
}

func TestVerifyPasscode_UnknownAddress(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	body := `{"email": "nobody@example.com", "code": "123456"}`
	result := testutil.PostJSON(env.Router, "/api/verify-otp", body, nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
}

func TestVerifyPasscode_SingleUse(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	result := testutil.PostJSON(env.Router, "/api/send-otp", `{"email": "alice@example.com"}`, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)

	body := fmt.Sprintf(`{"email": "alice@example.com", "code": %q}`, env.Mailer.Code)
	result = testutil.PostJSON(env.Router, "/api/verify-otp", body, nil)
	testutil.ExpectStatus(t, http.StatusOK, result)

	// reusing the consumed passcode fails
	result = testutil.PostJSON(env.Router, "/api/verify-otp", body, nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
}
