// Package app serves the public HTML pages (home and login) around the gate
// API. Pages are optional: a server without a template directory runs API-only.
package app

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/ForkAboutandFindOut/FAFO/internal/catalog"
)

const serverErrorHTML = `<!doctype html><title>Error</title><p>Something went wrong.</p>`

// App renders the public pages from a template directory that is re-parsed
// on change while the process runs.
type App struct {
	templateDir string
	catalog     *catalog.Catalog

	mu        sync.RWMutex
	templates *template.Template
}

func New(templateDir string, cat *catalog.Catalog) (*App, error) {
	a := &App{
		templateDir: templateDir,
		catalog:     cat,
	}
	a.loadTemplates()

	if err := a.watchTemplates(); err != nil {
		return nil, fmt.Errorf("failed to start template watcher: %v", err)
	}
	return a, nil
}

// Home renders the landing page with the episode list.
func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "home.html", a.catalog.Episodes())
}

// Login renders the passcode login page.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "login.html", nil)
}

func (a *App) render(w http.ResponseWriter, r *http.Request, name string, model any) {
	a.mu.RLock()
	templates := a.templates
	a.mu.RUnlock()

	if templates == nil {
		logAppErr(r, "templates are invalid")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(serverErrorHTML))
		return
	}

	if err := templates.ExecuteTemplate(w, name, model); err != nil {
		logAppErr(r, fmt.Sprintf("couldn't render template: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(serverErrorHTML))
		return
	}
}

func logAppErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s\n", r.Method, r.RequestURI, msg)
}
