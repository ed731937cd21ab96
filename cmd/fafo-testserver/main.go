// fafo-testserver runs a self-contained instance for local development and
// integration testing: in-memory media objects, a throwaway sqlite database,
// and a well-known signing secret. Never deploy this.
package main

import (
	"bytes"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ForkAboutandFindOut/FAFO/internal/api"
	"github.com/ForkAboutandFindOut/FAFO/internal/catalog"
	"github.com/ForkAboutandFindOut/FAFO/internal/database"
	"github.com/ForkAboutandFindOut/FAFO/internal/service"
	"github.com/ForkAboutandFindOut/FAFO/internal/store"
	"github.com/ForkAboutandFindOut/FAFO/pkg/gatetoken"
)

const devSecret = "fafo-testserver-secret"

func main() {
	listenAddr := flag.String("listen", "127.0.0.1:8080", "address to listen on")
	keep := flag.Bool("keep", false, "keep the data directory on exit")
	flag.Parse()

	dataDir, err := os.MkdirTemp("", "fafo-testserver-*")
	if err != nil {
		log.Fatalf("couldn't create data directory: %v\n", err)
	}
	if !*keep {
		defer os.RemoveAll(dataDir)
	}
	log.Printf("data directory: %s\n", dataDir)

	signer, err := gatetoken.NewSigner(devSecret)
	if err != nil {
		log.Fatalf("couldn't create signer: %v\n", err)
	}

	episodes := []*catalog.Episode{
		{ID: "ep001", Title: "Episode One", StorageKey: "ep001.mp3", Filename: "episode-one.mp3"},
		{ID: "ep002", Title: "Episode Two", StorageKey: "ep002.mp3", Filename: "episode-two.mp3"},
	}
	cat, err := catalog.New(episodes)
	if err != nil {
		log.Fatalf("couldn't build catalog: %v\n", err)
	}

	objects := store.NewMemStore()
	for i, ep := range episodes {
		objects.Put(ep.StorageKey, bytes.Repeat([]byte{byte('a' + i)}, 1<<20))
	}

	db := database.NewSQLiteStore(filepath.Join(dataDir, "fafo.db"))

	svc := service.New(
		db.SubscriberStore(),
		db.PasscodeStore(),
		signer,
		service.LogMailer{},
		nil,
		gatetoken.DefaultLifetime,
		service.PasscodeModeTesting,
		nil,
	)

	r := api.New(svc, cat, objects, signer, nil).Router()

	log.Printf("listening on http://%s\n", *listenAddr)
	log.Printf("signing secret: %q\n", devSecret)
	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
