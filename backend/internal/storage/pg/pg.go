package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/boards/shared/config"
	internal_errors "github.com/itchan-dev/boards/shared/errors"
	"github.com/itchan-dev/boards/shared/logger"
	sharedpg "github.com/itchan-dev/boards/shared/storage/pg"

	_ "github.com/lib/pq"
)

type querier = sharedpg.Querier

// Storage is the domain store for boards, topics and posts.
// Every multi-row write runs inside a single transaction.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	s := &Storage{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Log.Info("successfully connected to db")
	return s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// classify turns constraint violations into domain errors; anything else is
// wrapped as an internal error.
func classify(err error, action string) error {
	if err == nil {
		return nil
	}
	var domainErr *internal_errors.ErrorWithStatusCode
	if errors.As(err, &domainErr) {
		return err
	}
	switch sharedpg.ErrorCode(err) {
	case sharedpg.CodeCheckViolation, sharedpg.CodeNotNullViolation:
		return internal_errors.Validation(fmt.Sprintf("Invalid input: %s", sharedpg.Constraint(err)))
	case sharedpg.CodeStringTooLong:
		return internal_errors.Validation("Input is too long")
	case sharedpg.CodeUniqueViolation:
		return internal_errors.Validation(fmt.Sprintf("Already exists: %s", sharedpg.Constraint(err)))
	case sharedpg.CodeForeignKeyViolation:
		return internal_errors.NotFound("Referenced object not found")
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
