package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/boards/shared/domain"
	internal_errors "github.com/itchan-dev/boards/shared/errors"
	"github.com/itchan-dev/boards/shared/pagination"
	sharedpg "github.com/itchan-dev/boards/shared/storage/pg"
)

const topicColumns = `
	t.id, t.board_id, t.subject, t.starter_id, t.starter_name,
	t.created_at, t.last_activity, t.posts_count, t.views`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner) (domain.Topic, error) {
	var t domain.Topic
	err := row.Scan(
		&t.Id, &t.Board, &t.Subject, &t.Starter.Id, &t.Starter.Name,
		&t.CreatedAt, &t.LastActivity, &t.PostsCount, &t.Views,
	)
	return t, err
}

// CreateTopic inserts the topic and its opening post in one transaction.
// Both rows share the same timestamp, which also seeds last_activity.
func (s *Storage) CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error) {
	var topic domain.Topic
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// FOR SHARE keeps the board from being deleted under us
		if _, err := getBoard(ctx, tx, data.Board, "FOR SHARE"); err != nil {
			return err
		}

		row := tx.QueryRowContext(ctx, `
			WITH ts AS (SELECT clock_timestamp() AS now)
			INSERT INTO topics AS t (board_id, subject, starter_id, starter_name, created_at, last_activity, posts_count)
			SELECT $1, $2, $3, $4, ts.now, ts.now, 1 FROM ts
			RETURNING `+topicColumns,
			data.Board, data.Subject, data.Starter.Id, data.Starter.Name,
		)
		var err error
		if topic, err = scanTopic(row); err != nil {
			return classify(err, "insert topic")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO posts (topic_id, message, created_by_id, created_by_name, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			topic.Id, data.Message, data.Starter.Id, data.Starter.Name, topic.CreatedAt,
		)
		return classify(err, "insert opening post")
	})
	if err != nil {
		return domain.Topic{}, err
	}
	return topic, nil
}

// GetTopic returns the topic only if it belongs to board.
func (s *Storage) GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error) {
	topic, err := scanTopic(s.db.QueryRowContext(ctx,
		"SELECT "+topicColumns+" FROM topics t WHERE t.id = $1 AND t.board_id = $2", id, board,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Topic{}, internal_errors.NotFound("Topic not found")
		}
		return domain.Topic{}, fmt.Errorf("failed to fetch topic: %w", err)
	}
	return topic, nil
}

func (s *Storage) CountTopics(ctx context.Context, board domain.BoardId) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM topics WHERE board_id = $1", board).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count topics: %w", err)
	}
	return count, nil
}

// ListTopics returns one page of a board's topics, most recently active first.
func (s *Storage) ListTopics(ctx context.Context, board domain.BoardId, w pagination.Window) ([]domain.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+topicColumns+`
		FROM topics t
		WHERE t.board_id = $1
		ORDER BY t.last_activity DESC, t.id DESC
		LIMIT $2 OFFSET $3`,
		board, w.Limit(), w.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return topics, nil
}

// IncrementViews is best-effort and runs outside any transaction.
func (s *Storage) IncrementViews(ctx context.Context, id domain.TopicId) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE topics SET views = views + 1 WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
