package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/boards/shared/domain"
	internal_errors "github.com/itchan-dev/boards/shared/errors"
)

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	board := domain.Board{Name: data.Name, Description: data.Description}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO boards (name, description) VALUES ($1, $2) RETURNING id, created_at",
		data.Name, data.Description,
	).Scan(&board.Id, &board.CreatedAt)
	if err != nil {
		return domain.Board{}, classify(err, "insert board")
	}
	return board, nil
}

func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	return getBoard(ctx, s.db, id, "")
}

// getBoard reads a board row; lock is appended verbatim (e.g. "FOR SHARE").
func getBoard(ctx context.Context, q querier, id domain.BoardId, lock string) (domain.Board, error) {
	var board domain.Board
	err := q.QueryRowContext(ctx,
		"SELECT id, name, description, created_at FROM boards WHERE id = $1 "+lock, id,
	).Scan(&board.Id, &board.Name, &board.Description, &board.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, fmt.Errorf("failed to fetch board: %w", err)
	}
	return board, nil
}

// DeleteBoard removes the board; topics and posts go with it via ON DELETE CASCADE.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if deleted == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}

// ListBoards returns every board ordered by name with its counters and newest post.
func (s *Storage) ListBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			b.id, b.name, b.description, b.created_at,
			stats.topics_count, stats.posts_count,
			lp.id, lp.topic_id, lp.message,
			lp.created_by_id, lp.created_by_name, lp.created_at,
			lp.updated_by_id, lp.updated_by_name, lp.updated_at
		FROM boards b
		CROSS JOIN LATERAL (
			SELECT COUNT(*)::int AS topics_count, COALESCE(SUM(t.posts_count), 0)::int AS posts_count
			FROM topics t
			WHERE t.board_id = b.id
		) stats
		LEFT JOIN LATERAL (
			SELECT p.*
			FROM posts p
			JOIN topics t ON t.id = p.topic_id
			WHERE t.board_id = b.id
			ORDER BY p.created_at DESC, p.id DESC
			LIMIT 1
		) lp ON true
		ORDER BY b.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.BoardSummary{}
	for rows.Next() {
		var b domain.BoardSummary
		var last nullablePost
		if err := rows.Scan(
			&b.Id, &b.Name, &b.Description, &b.CreatedAt,
			&b.TopicsCount, &b.PostsCount,
			&last.id, &last.topic, &last.message,
			&last.createdById, &last.createdByName, &last.createdAt,
			&last.updatedById, &last.updatedByName, &last.updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		b.LastPost = last.post(b.Id)
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}
