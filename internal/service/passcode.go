package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ForkAboutandFindOut/FAFO/internal/limiter"
	"golang.org/x/crypto/bcrypt"
)

const (
	passcodeDigits   = 6
	passcodeLifetime = time.Minute * 10
)

// RequestPasscode generates a one-time passcode for the address, stores its
// bcrypt hash with a short expiry, and hands the plaintext to the mailer.
// clientIP participates in rate limiting and may be empty.
func (s *Service) RequestPasscode(
	ctx context.Context,
	email string,
	clientIP string,
) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	if err := s.checkOTPLimit(ctx, email, clientIP); err != nil {
		return err
	}

	code, err := generatePasscode()
	if err != nil {
		return fmt.Errorf("%w: couldn't generate passcode: %v", ErrInternal, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.passcodeMode.Cost())
	if err != nil {
		return fmt.Errorf("%w: couldn't hash passcode: %v", ErrInternal, err)
	}

	expiration := s.now().Add(passcodeLifetime).Unix()
	if err := s.passcodes.SavePasscode(email, hash, expiration); err != nil {
		return fmt.Errorf("%w: passcode insert failed: %v", ErrUpstream, err)
	}

	if err := s.mailer.SendPasscode(ctx, email, code); err != nil {
		return fmt.Errorf("%w: passcode dispatch failed: %v", ErrUpstream, err)
	}

	return nil
}

// RedeemPasscode exchanges a valid passcode for a gate token. Any failure
// (unknown address, wrong code, expired code, reuse) yields
// ErrInvalidPasscode so responses don't reveal which check failed.
func (s *Service) RedeemPasscode(
	ctx context.Context,
	email string,
	code string,
) (
	string,
	error,
) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	hash, expiration, found, err := s.passcodes.ConsumePasscode(email)
	if err != nil {
		return "", fmt.Errorf("%w: passcode lookup failed: %v", ErrUpstream, err)
	}
	if !found {
		return "", ErrInvalidPasscode
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return "", ErrInvalidPasscode
	}

	if s.now().Unix() > expiration {
		return "", ErrInvalidPasscode
	}

	token, err := s.signer.Mint(email, s.tokenLifetime, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: couldn't mint gate token: %v", ErrInternal, err)
	}

	return token, nil
}

// checkOTPLimit throttles passcode dispatch per address and per client IP.
// A limiter backend failure fails open: the endpoint stays available and the
// failure is logged.
func (s *Service) checkOTPLimit(ctx context.Context, email string, clientIP string) error {
	keys := []string{"email:" + email}
	if clientIP != "" {
		keys = append(keys, "ip:"+clientIP)
	}

	for _, key := range keys {
		err := s.otpLimiter.Allow(ctx, key)
		if errors.Is(err, limiter.ErrRateLimited) {
			return fmt.Errorf("%w: passcode requests", ErrRateLimited)
		}
		if err != nil {
			log.Printf("otp limiter unavailable, allowing request: %v\n", err)
			return nil
		}
	}
	return nil
}

func generatePasscode() (string, error) {
	code := make([]byte, passcodeDigits)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
