package service

import (
	"context"
	"log"
)

// Mailer dispatches a one-time passcode to an address. The actual email
// transport is an external collaborator; this interface is all the core
// needs from it.
type Mailer interface {
	SendPasscode(ctx context.Context, email string, code string) error
}

// LogMailer writes passcodes to the process log instead of sending email.
// For local development only.
type LogMailer struct{}

func (LogMailer) SendPasscode(_ context.Context, email string, code string) error {
	log.Printf("passcode for %s: %s\n", email, code)
	return nil
}
