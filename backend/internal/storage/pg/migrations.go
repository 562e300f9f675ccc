package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itchan-dev/boards/shared/logger"
	sharedpg "github.com/itchan-dev/boards/shared/storage/pg"
)

type migration struct {
	name string
	sql  string
}

// migrations are applied in order and never edited once released;
// append a new entry instead.
var migrations = []migration{
	{
		name: "create boards table",
		sql: `
			CREATE TABLE IF NOT EXISTS boards (
				id          BIGSERIAL PRIMARY KEY,
				name        VARCHAR(30) NOT NULL,
				description VARCHAR(100) NOT NULL DEFAULT '',
				created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
				CONSTRAINT boards_name_key UNIQUE (name),
				CONSTRAINT boards_name_not_blank CHECK (length(btrim(name)) > 0)
			)
		`,
	},
	{
		name: "create topics table",
		sql: `
			CREATE TABLE IF NOT EXISTS topics (
				id            BIGSERIAL PRIMARY KEY,
				board_id      BIGINT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
				subject       VARCHAR(255) NOT NULL,
				starter_id    BIGINT NOT NULL,
				starter_name  TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
				last_activity TIMESTAMPTZ NOT NULL,
				posts_count   INT NOT NULL DEFAULT 0,
				views         INT NOT NULL DEFAULT 0,
				CONSTRAINT topics_subject_not_blank CHECK (length(btrim(subject)) > 0)
			);
			CREATE INDEX IF NOT EXISTS topics_board_activity_idx ON topics (board_id, last_activity DESC, id DESC);
		`,
	},
	{
		name: "create posts table",
		sql: `
			CREATE TABLE IF NOT EXISTS posts (
				id              BIGSERIAL PRIMARY KEY,
				topic_id        BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
				message         VARCHAR(4000) NOT NULL,
				created_by_id   BIGINT NOT NULL,
				created_by_name TEXT NOT NULL,
				created_at      TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
				updated_by_id   BIGINT,
				updated_by_name TEXT,
				updated_at      TIMESTAMPTZ,
				CONSTRAINT posts_message_not_blank CHECK (length(btrim(message)) > 0),
				CONSTRAINT posts_edit_marker_complete CHECK ((updated_at IS NULL) = (updated_by_id IS NULL))
			);
			CREATE INDEX IF NOT EXISTS posts_topic_created_idx ON posts (topic_id, created_at, id);
		`,
	},
}

// arbitrary key shared by every instance so concurrent startups migrate once
const migrationLockKey = 7_262_001

func (s *Storage) migrate(ctx context.Context) error {
	return sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version    INT PRIMARY KEY,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`); err != nil {
			return fmt.Errorf("create migrations table: %w", err)
		}

		for i, m := range migrations {
			version := i + 1
			var applied bool
			if err := tx.QueryRowContext(ctx,
				"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version,
			).Scan(&applied); err != nil {
				return fmt.Errorf("check migration %d: %w", version, err)
			}
			if applied {
				continue
			}

			logger.Log.Info("running migration", "version", version, "name", m.name)
			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("migration %d (%s): %w", version, m.name, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
				return fmt.Errorf("record migration %d: %w", version, err)
			}
		}
		return nil
	})
}
