// Package service implements the business logic for the FAFO media gate:
// mailing-list subscription, one-time-passcode login, and gate token minting.
// Persistence and dispatch are behind small interfaces so the logic is
// deterministic under test.
package service

import (
	"errors"
	"time"

	"github.com/ForkAboutandFindOut/FAFO/internal/limiter"
	"github.com/ForkAboutandFindOut/FAFO/pkg/gatetoken"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstream        = errors.New("upstream failure")
	ErrInternal        = errors.New("internal error")
)

// PasscodeMode controls bcrypt cost for passcode hashing.
// Use PasscodeModeProduction for real deployments and PasscodeModeTesting
// only in tests.
type PasscodeMode int

const (
	// PasscodeModeProduction uses bcrypt.DefaultCost (10).
	PasscodeModeProduction PasscodeMode = iota
	// PasscodeModeTesting uses bcrypt.MinCost (4) for fast test execution.
	PasscodeModeTesting
)

// Cost returns the bcrypt cost for this mode.
func (m PasscodeMode) Cost() int {
	if m == PasscodeModeTesting {
		return bcrypt.MinCost
	}
	return bcrypt.DefaultCost
}

// Service coordinates subscription, passcode login, and token minting.
// It depends on storage interfaces (SubscriberStore, PasscodeStore) and
// delegates to them for persistence. The clock is injected so expiry
// behavior is deterministic in tests.
type Service struct {
	subscribers   SubscriberStore
	passcodes     PasscodeStore
	signer        *gatetoken.Signer
	mailer        Mailer
	otpLimiter    *limiter.Limiter
	tokenLifetime time.Duration
	passcodeMode  PasscodeMode
	now           func() time.Time
}

func New(
	subscribers SubscriberStore,
	passcodes PasscodeStore,
	signer *gatetoken.Signer,
	mailer Mailer,
	otpLimiter *limiter.Limiter,
	tokenLifetime time.Duration,
	passcodeMode PasscodeMode,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		subscribers:   subscribers,
		passcodes:     passcodes,
		signer:        signer,
		mailer:        mailer,
		otpLimiter:    otpLimiter,
		tokenLifetime: tokenLifetime,
		passcodeMode:  passcodeMode,
		now:           now,
	}
}

// TokenLifetime returns how long minted tokens stay valid; the cookie
// Max-Age mirrors it.
func (s *Service) TokenLifetime() time.Duration {
	return s.tokenLifetime
}
