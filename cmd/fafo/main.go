package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ForkAboutandFindOut/FAFO/internal/api"
	"github.com/ForkAboutandFindOut/FAFO/internal/app"
	"github.com/ForkAboutandFindOut/FAFO/internal/catalog"
	"github.com/ForkAboutandFindOut/FAFO/internal/database"
	"github.com/ForkAboutandFindOut/FAFO/internal/limiter"
	"github.com/ForkAboutandFindOut/FAFO/internal/service"
	"github.com/ForkAboutandFindOut/FAFO/internal/store"
	"github.com/ForkAboutandFindOut/FAFO/pkg/gatetoken"
	"github.com/redis/go-redis/v9"
)

const (
	otpLimitMax    = 5
	otpLimitWindow = 10 * time.Minute
)

func main() {
	port := fmt.Sprintf(":%s", readEnvVar("PORT"))
	dbPath := readEnvVar("DB_PATH")
	secret := readEnvVar("GATE_COOKIE_SECRET")
	catalogPath := readEnvVar("CATALOG_PATH")
	mediaRoot := readEnvVar("MEDIA_ROOT")

	signer, err := gatetoken.NewSigner(secret)
	if err != nil {
		log.Fatalf("invalid GATE_COOKIE_SECRET: %v\n", err)
	}

	tokenLifetime := gatetoken.DefaultLifetime
	if days, ok := readOptionalEnvInt("GATE_TTL_DAYS"); ok {
		if days <= 0 {
			log.Fatalf("GATE_TTL_DAYS must be positive, got %d\n", days)
		}
		tokenLifetime = time.Duration(days) * 24 * time.Hour
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		log.Fatalf("couldn't load episode catalog: %v\n", err)
	}
	log.Printf("loaded %d episodes from %s\n", cat.Len(), catalogPath)

	// media stays private to the service user and group
	objects, err := store.NewFileStore(mediaRoot, store.WithDirMode(0750))
	if err != nil {
		log.Fatalf("couldn't open media root '%s': %v\n", mediaRoot, err)
	}

	db := database.NewSQLiteStore(dbPath)

	var otpLimiter *limiter.Limiter
	if addr, ok := os.LookupEnv("REDIS_ADDR"); ok {
		client := redis.NewClient(&redis.Options{Addr: addr})
		otpLimiter = limiter.New(client, "otp", otpLimitMax, otpLimitWindow)
		log.Printf("passcode rate limiting via redis at %s\n", addr)
	} else {
		log.Println("REDIS_ADDR not set, passcode rate limiting disabled")
	}

	svc := service.New(
		db.SubscriberStore(),
		db.PasscodeStore(),
		signer,
		service.LogMailer{},
		otpLimiter,
		tokenLifetime,
		service.PasscodeModeProduction,
		nil,
	)

	r := api.New(svc, cat, objects, signer, nil).Router()

	if dir, ok := os.LookupEnv("TEMPLATES_DIR"); ok {
		pages, err := app.New(dir, cat)
		if err != nil {
			log.Fatalf("couldn't set up app pages: %v\n", err)
		}
		r.HandleFunc("/", pages.Home).Methods("GET")
		r.HandleFunc("/login", pages.Login).Methods("GET")
	} else {
		log.Println("TEMPLATES_DIR not set, serving API only")
	}

	log.Printf("listening on %s\n", port)
	log.Fatal(http.ListenAndServe(port, r))
}

func readEnvVar(name string) string {
	var present bool
	str, present := os.LookupEnv(name)
	if !present {
		log.Fatalf("missing required env var '%s'\n", name)
	}
	return str
}

func readOptionalEnvInt(name string) (int, bool) {
	v, present := os.LookupEnv(name)
	if !present {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env var '%s' could not be parsed as integer (\"%v\")\n", name, v)
	}
	return i, true
}
