package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsers, downCreateUsers)
}

func upCreateUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(64) NOT NULL DEFAULT '',
		first_name    VARCHAR(128) NOT NULL DEFAULT '',
		last_name     VARCHAR(128) NOT NULL DEFAULT '',
		profile_photo VARCHAR(512),
		cover_photo   VARCHAR(512),
		unique_id     VARCHAR(10) UNIQUE,
		created_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX ix_users_username_lower ON users (lower(username));
	`)
	return err
}

func downCreateUsers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE users;
	`)
	return err
}
