package app

import (
	"html/template"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

func (a *App) loadTemplates() {
	templates, err := template.ParseGlob(filepath.Join(a.templateDir, "*.html"))
	if err != nil {
		templates = nil
		log.Printf("Failed to parse templates from '%s': %v", a.templateDir, err)
	} else {
		log.Printf("Loaded templates from %v\n", a.templateDir)
	}

	a.mu.Lock()
	a.templates = templates
	a.mu.Unlock()
}

func (a *App) watchTemplates() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = watcher.Add(a.templateDir)
	if err != nil {
		return err
	}

	reload := make(chan struct{})
	go a.scheduleTemplateReload(reload)
	go handleWatcher(watcher, reload)

	return nil
}

func handleWatcher(watcher *fsnotify.Watcher, reload chan<- struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write | fsnotify.Remove | fsnotify.Create) {
				reload <- struct{}{}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("template watcher error: %v\n", err)
		}
	}
}

func (a *App) scheduleTemplateReload(reload <-chan struct{}) {
	var timer *time.Timer = nil
	var c <-chan time.Time = nil
	duration := time.Millisecond * 500
	for {
		select {
		case <-reload:
			if timer != nil {
				timer.Reset(duration)
			} else {
				timer = time.NewTimer(duration)
				c = timer.C
			}

		case <-c:
			c = nil
			timer = nil
			a.loadTemplates()
		}
	}
}
