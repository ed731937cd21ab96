package service

// SubscriberStore handles persistence of the mailing list. createdAt is the
// caller's clock; the store keeps the first-seen value on update.
type SubscriberStore interface {
	UpsertSubscriber(email string, name string, createdAt int64) error
}

// PasscodeStore handles persistence of one-time passcode hashes.
// Passcodes are single-use: Consume removes the record it returns.
type PasscodeStore interface {
	SavePasscode(email string, hash []byte, expiration int64) error
	ConsumePasscode(email string) (hash []byte, expiration int64, found bool, err error)
}
