package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/boards/shared/domain"
	internal_errors "github.com/itchan-dev/boards/shared/errors"
	"github.com/itchan-dev/boards/shared/pagination"
	sharedpg "github.com/itchan-dev/boards/shared/storage/pg"
)

const postColumns = `
	p.id, t.board_id, p.topic_id, p.message,
	p.created_by_id, p.created_by_name, p.created_at,
	p.updated_by_id, p.updated_by_name, p.updated_at`

// nullablePost receives a post row that may be entirely NULL (LEFT JOIN)
// or carry NULL edit fields.
type nullablePost struct {
	id            sql.NullInt64
	topic         sql.NullInt64
	message       sql.NullString
	createdById   sql.NullInt64
	createdByName sql.NullString
	createdAt     sql.NullTime
	updatedById   sql.NullInt64
	updatedByName sql.NullString
	updatedAt     sql.NullTime
}

func (n *nullablePost) post(board domain.BoardId) *domain.Post {
	if !n.id.Valid {
		return nil
	}
	p := &domain.Post{
		Id:        n.id.Int64,
		Board:     board,
		Topic:     n.topic.Int64,
		Message:   n.message.String,
		CreatedBy: domain.User{Id: n.createdById.Int64, Name: n.createdByName.String},
		CreatedAt: n.createdAt.Time,
	}
	if n.updatedAt.Valid {
		updatedAt := n.updatedAt.Time
		p.UpdatedAt = &updatedAt
		p.UpdatedBy = &domain.User{Id: n.updatedById.Int64, Name: n.updatedByName.String}
	}
	return p
}

func scanPost(row rowScanner) (domain.Post, error) {
	var n nullablePost
	var board domain.BoardId
	if err := row.Scan(
		&n.id, &board, &n.topic, &n.message,
		&n.createdById, &n.createdByName, &n.createdAt,
		&n.updatedById, &n.updatedByName, &n.updatedAt,
	); err != nil {
		return domain.Post{}, err
	}
	return *n.post(board), nil
}

// CreateReply appends a post to a topic and moves the topic's last-activity
// key forward in the same transaction. The topic row is locked so concurrent
// replies to one topic serialize on the counter update.
func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Post, error) {
	post := domain.Post{Board: data.Board, Topic: data.Topic, Message: data.Message, CreatedBy: data.Author}
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var board domain.BoardId
		err := tx.QueryRowContext(ctx, "SELECT board_id FROM topics WHERE id = $1 FOR UPDATE", data.Topic).Scan(&board)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && board != data.Board) {
			return internal_errors.NotFound("Topic not found")
		}
		if err != nil {
			return fmt.Errorf("failed to lock topic: %w", err)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO posts (topic_id, message, created_by_id, created_by_name)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			data.Topic, data.Message, data.Author.Id, data.Author.Name,
		).Scan(&post.Id, &post.CreatedAt)
		if err != nil {
			return classify(err, "insert reply")
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE topics
			SET posts_count = posts_count + 1,
			    last_activity = GREATEST(last_activity, $2)
			WHERE id = $1`,
			data.Topic, post.CreatedAt,
		)
		return classify(err, "update topic activity")
	})
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func getPost(ctx context.Context, q querier, board domain.BoardId, topic domain.TopicId, id domain.PostId, lock string) (domain.Post, error) {
	post, err := scanPost(q.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		WHERE p.id = $1 AND p.topic_id = $2 AND t.board_id = $3 `+lock,
		id, topic, board,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

func (s *Storage) GetPost(ctx context.Context, board domain.BoardId, topic domain.TopicId, id domain.PostId) (domain.Post, error) {
	return getPost(ctx, s.db, board, topic, id, "")
}

// UpdatePost locks the post, lets authorize inspect the locked row and only
// then writes the new message. authorize sees the same snapshot the write
// applies to, so an ownership decision cannot go stale in between.
func (s *Storage) UpdatePost(ctx context.Context, data domain.PostEditData, authorize func(domain.Post) error) (domain.Post, error) {
	var post domain.Post
	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if post, err = getPost(ctx, tx, data.Board, data.Topic, data.Post, "FOR UPDATE OF p"); err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(post); err != nil {
				return err
			}
		}

		var updatedAt time.Time
		err = tx.QueryRowContext(ctx, `
			UPDATE posts
			SET message = $2, updated_by_id = $3, updated_by_name = $4, updated_at = clock_timestamp()
			WHERE id = $1
			RETURNING updated_at`,
			data.Post, data.Message, data.Editor.Id, data.Editor.Name,
		).Scan(&updatedAt)
		if err != nil {
			return classify(err, "update post")
		}

		editor := data.Editor
		post.Message = data.Message
		post.UpdatedBy = &editor
		post.UpdatedAt = &updatedAt
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (s *Storage) CountPosts(ctx context.Context, topic domain.TopicId) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE topic_id = $1", topic).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns one page of a topic's posts in reading order.
func (s *Storage) ListPosts(ctx context.Context, topic domain.TopicId, w pagination.Window) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		WHERE p.topic_id = $1
		ORDER BY p.created_at ASC, p.id ASC
		LIMIT $2 OFFSET $3`,
		topic, w.Limit(), w.Offset(),
	)
}

// RecentPosts returns the newest posts of a topic, newest first.
func (s *Storage) RecentPosts(ctx context.Context, topic domain.TopicId, limit int) ([]domain.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		WHERE p.topic_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2`,
		topic, limit,
	)
}

func (s *Storage) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}
