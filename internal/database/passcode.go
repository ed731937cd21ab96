package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ForkAboutandFindOut/FAFO/internal/service"
)

func (s *SQLiteStore) PasscodeStore() service.PasscodeStore {
	return s
}

// SavePasscode stores a bcrypt passcode hash for an email, replacing any
// outstanding passcode for that address.
func (s *SQLiteStore) SavePasscode(
	email string,
	hash []byte,
	expiration int64,
) error {
	_, err := s.db.Exec(`
		INSERT INTO passcode (email, hash, expiration)
		VALUES (?1, ?2, ?3)
		ON CONFLICT (email) DO UPDATE SET hash=excluded.hash, expiration=excluded.expiration;`,
		email,
		hash,
		expiration,
	)
	if err != nil {
		return fmt.Errorf("couldn't upsert into passcode: %v", err)
	}
	return nil
}

// ConsumePasscode removes and returns the stored passcode hash for an email.
// Passcodes are single-use: a second consume for the same email finds nothing.
func (s *SQLiteStore) ConsumePasscode(
	email string,
) (
	[]byte,
	int64,
	bool,
	error,
) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, false, fmt.Errorf("couldn't begin passcode tx: %v", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT hash, expiration
		FROM passcode
		WHERE email=?1;`,
		email,
	)

	var hash []byte
	var expiration int64
	if err := row.Scan(&hash, &expiration); err != nil {
		if resultEmpty(err) {
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("couldn't scan passcode: %v", err)
	}

	if _, err := tx.Exec(`DELETE FROM passcode WHERE email=?1;`, email); err != nil {
		return nil, 0, false, fmt.Errorf("couldn't delete from passcode: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, false, fmt.Errorf("couldn't commit passcode tx: %v", err)
	}

	return hash, expiration, true, nil
}

func resultEmpty(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
