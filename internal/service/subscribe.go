package service

import (
	"context"
	"fmt"
	"strings"
)

const maxNameLength = 120

// Subscribe upserts the subscriber into the mailing list and, only on
// success, mints a gate token for the address. Persistence failure gates
// minting: no token without a stored subscriber.
func (s *Service) Subscribe(
	ctx context.Context,
	email string,
	name string,
) (
	string,
	error,
) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if len(name) > maxNameLength {
		return "", fmt.Errorf("%w: name too long", ErrInvalidName)
	}

	if err := s.subscribers.UpsertSubscriber(email, name, s.now().Unix()); err != nil {
		return "", fmt.Errorf("%w: subscriber insert failed: %v", ErrUpstream, err)
	}

	token, err := s.signer.Mint(email, s.tokenLifetime, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: couldn't mint gate token: %v", ErrInternal, err)
	}

	return token, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(email) > 254 {
		return "", ErrInvalidEmail
	}
	return email, nil
}
