package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/nw3q/toshin-chieria-calender-api/internal/ports/cache"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT body, content_type
		FROM calendar_cache
		WHERE key = $1 AND expires_at > now()
	`, key)

	var e cache.Entry
	if err := row.Scan(&e.Body, &e.ContentType); err != nil {
		if err == sql.ErrNoRows {
			return cache.Entry{}, false, nil
		}
		return cache.Entry{}, false, err
	}
	return e, true, nil
}

func (s *Store) Set(ctx context.Context, key string, e cache.Entry, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendar_cache (key, body, content_type, expires_at)
		VALUES ($1, $2, $3, now() + ($4 * interval '1 second'))
		ON CONFLICT (key) DO UPDATE SET
			body = EXCLUDED.body,
			content_type = EXCLUDED.content_type,
			expires_at = EXCLUDED.expires_at
	`, key, e.Body, e.ContentType, int64(ttl.Seconds()))
	return err
}
