// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ForkAboutandFindOut/FAFO/internal/api"
	"github.com/ForkAboutandFindOut/FAFO/internal/catalog"
	"github.com/ForkAboutandFindOut/FAFO/internal/database"
	"github.com/ForkAboutandFindOut/FAFO/internal/service"
	"github.com/ForkAboutandFindOut/FAFO/internal/store"
	"github.com/ForkAboutandFindOut/FAFO/pkg/gatetoken"
)

// TestSecret is the fixed signing secret used across tests.
const TestSecret = "test-signing-secret"

// TestClock is the fixed wall-clock instant tests start at.
var TestClock = time.Unix(1700000000, 0)

// CaptureMailer records the last passcode handed to it instead of sending
// email.
type CaptureMailer struct {
	Email string
	Code  string
}

func (m *CaptureMailer) SendPasscode(_ context.Context, email string, code string) error {
	m.Email = email
	m.Code = code
	return nil
}

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	DB      *database.SQLiteStore
	Objects *store.MemStore
	Catalog *catalog.Catalog
	Signer  *gatetoken.Signer
	Service *service.Service
	Mailer  *CaptureMailer
	Router  http.Handler

	// Now is the injected clock; tests advance it to exercise expiry.
	Now time.Time
}

// SetupTestEnv creates an isolated test environment with in-memory SQLite,
// an in-memory object store, a fixed signing secret, and a fixed clock.
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()

	db := database.NewSQLiteStore(":memory:")
	t.Cleanup(func() {
		_ = db.Close()
	})

	signer, err := gatetoken.NewSigner(TestSecret)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	cat, err := catalog.New([]*catalog.Episode{
		{ID: "ep001", Title: "Leon Kuessner", StorageKey: "episodes/ep001.mp3", Filename: "FAFO_ep001_LeonKuessner.mp3"},
		{ID: "ep002", Title: "Gabriel Szeto", StorageKey: "episodes/ep002.mp3", Filename: "FAFO_ep002_GabrielSzeto.mp3"},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	env := &TestEnv{
		DB:      db,
		Objects: store.NewMemStore(),
		Catalog: cat,
		Signer:  signer,
		Mailer:  &CaptureMailer{},
		Now:     TestClock,
	}
	clock := func() time.Time { return env.Now }

	env.Service = service.New(
		db.SubscriberStore(),
		db.PasscodeStore(),
		signer,
		env.Mailer,
		nil,
		gatetoken.DefaultLifetime,
		service.PasscodeModeTesting,
		clock,
	)

	a := api.New(env.Service, cat, env.Objects, signer, clock)
	env.Router = a.Router()

	return env
}

// SeedObject stores media bytes under a storage key.
func (env *TestEnv) SeedObject(key string, data []byte) {
	env.Objects.Put(key, data)
}

// GateCookie mints a valid gate token for subject and returns it as a Cookie
// request header.
func (env *TestEnv) GateCookie(
	t *testing.T,
	subject string,
) Header {
	t.Helper()
	token, err := env.Signer.Mint(subject, gatetoken.DefaultLifetime, env.Now)
	if err != nil {
		t.Fatalf("failed to mint test token: %v", err)
	}
	return Header{
		Key:   "Cookie",
		Value: api.GateCookieName + "=" + token,
	}
}
