package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/boards/shared/domain"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, name domain.BoardName, description domain.BoardDescription) (domain.Board, error)
	Get(ctx context.Context, id domain.BoardId) (domain.Board, error)
	Delete(ctx context.Context, id domain.BoardId) error
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
	boards    BoardCache
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) error
}

type BoardValidator interface {
	Name(name domain.BoardName) error
	Description(description domain.BoardDescription) error
}

func NewBoard(storage BoardStorage, validator BoardValidator, boards BoardCache) BoardService {
	if boards == nil {
		boards = noopBoardCache{}
	}
	return &Board{storage: storage, validator: validator, boards: boards}
}

func (b *Board) Create(ctx context.Context, name domain.BoardName, description domain.BoardDescription) (domain.Board, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := b.validator.Name(name); err != nil {
		return domain.Board{}, err
	}
	if err := b.validator.Description(description); err != nil {
		return domain.Board{}, err
	}

	board, err := b.storage.CreateBoard(ctx, domain.BoardCreationData{Name: name, Description: description})
	if err != nil {
		return domain.Board{}, err
	}
	b.boards.Invalidate(ctx)
	return board, nil
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	return b.storage.GetBoard(ctx, id)
}

func (b *Board) Delete(ctx context.Context, id domain.BoardId) error {
	if err := b.storage.DeleteBoard(ctx, id); err != nil {
		return err
	}
	b.boards.Invalidate(ctx)
	return nil
}
