package app_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ForkAboutandFindOut/FAFO/internal/app"
	"github.com/ForkAboutandFindOut/FAFO/internal/catalog"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatalf("couldn't write template %s: %v", name, err)
	}
}

func newTestApp(t *testing.T, dir string) *app.App {
	t.Helper()
	cat, err := catalog.New([]*catalog.Episode{
		{ID: "ep001", Title: "Pilot", StorageKey: "ep001.mp3", Filename: "pilot.mp3"},
	})
	if err != nil {
		t.Fatalf("couldn't build catalog: %v", err)
	}
	a, err := app.New(dir, cat)
	if err != nil {
		t.Fatalf("couldn't create app: %v", err)
	}
	return a
}

func TestHomeRendersEpisodeList(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.html", `<ul>{{range .}}<li>{{.Title}}</li>{{end}}</ul>`)
	writeTemplate(t, dir, "login.html", `<form></form>`)
	a := newTestApp(t, dir)

	rec := httptest.NewRecorder()
	a.Home(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<li>Pilot</li>") {
		t.Errorf("expected episode title in body, got %q", rec.Body.String())
	}
}

func TestLoginRenders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.html", `<ul></ul>`)
	writeTemplate(t, dir, "login.html", `<form id="login"></form>`)
	a := newTestApp(t, dir)

	rec := httptest.NewRecorder()
	a.Login(rec, httptest.NewRequest("GET", "/login", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `id="login"`) {
		t.Errorf("expected login form in body, got %q", rec.Body.String())
	}
}

func TestInvalidTemplatesReturnServerError(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.html", `{{range`)
	a := newTestApp(t, dir)

	rec := httptest.NewRecorder()
	a.Home(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestTemplatesReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "home.html", `before`)
	writeTemplate(t, dir, "login.html", `login`)
	a := newTestApp(t, dir)

	writeTemplate(t, dir, "home.html", `after`)

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := httptest.NewRecorder()
		a.Home(rec, httptest.NewRequest("GET", "/", nil))
		if strings.Contains(rec.Body.String(), "after") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("template change never picked up, last body %q", rec.Body.String())
		}
		time.Sleep(100 * time.Millisecond)
	}
}
