package database

import (
	"fmt"

	"github.com/ForkAboutandFindOut/FAFO/internal/service"
)

func (s *SQLiteStore) SubscriberStore() service.SubscriberStore {
	return s
}

// UpsertSubscriber inserts or updates a mailing-list entry. The first-seen
// timestamp is preserved on update.
func (s *SQLiteStore) UpsertSubscriber(
	email string,
	name string,
	createdAt int64,
) error {
	_, err := s.db.Exec(`
		INSERT INTO subscriber (email, name, created_at)
		VALUES (?1, ?2, ?3)
		ON CONFLICT (email) DO UPDATE SET name=excluded.name;`,
		email,
		name,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("couldn't upsert into subscriber: %v", err)
	}
	return nil
}

// GetSubscriberName returns the stored name for an email, and whether the
// subscriber exists.
func (s *SQLiteStore) GetSubscriberName(
	email string,
) (
	string,
	bool,
	error,
) {
	row := s.db.QueryRow(`
		SELECT name
		FROM subscriber
		WHERE email=?1;`,
		email,
	)

	var name string
	if err := row.Scan(&name); err != nil {
		if resultEmpty(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("couldn't scan subscriber name: %v", err)
	}
	return name, true, nil
}
