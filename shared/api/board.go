package api

import (
	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/pagination"
)

// Request DTOs

type CreateBoardRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Response DTOs

type BoardSummaryResponse struct {
	domain.Board
	TopicsCount int           `json:"topics_count"`
	PostsCount  int           `json:"posts_count"`
	LastPost    *PostResponse `json:"last_post,omitempty"`
}

type BoardListResponse struct {
	Boards []BoardSummaryResponse `json:"boards"`
}

type TopicListItemResponse struct {
	domain.TopicListItem
}

// BoardResponse is one page of a board's topics.
type BoardResponse struct {
	Board  domain.Board                           `json:"board"`
	Topics pagination.Page[TopicListItemResponse] `json:"topics"`
}

func NewBoardListResponse(boards []domain.BoardSummary, md Renderer) BoardListResponse {
	resp := BoardListResponse{Boards: make([]BoardSummaryResponse, len(boards))}
	for i, b := range boards {
		resp.Boards[i] = BoardSummaryResponse{
			Board:       b.Board,
			TopicsCount: b.TopicsCount,
			PostsCount:  b.PostsCount,
		}
		if b.LastPost != nil {
			last := NewPostResponse(*b.LastPost, md)
			resp.Boards[i].LastPost = &last
		}
	}
	return resp
}

func NewBoardResponse(view domain.BoardView) BoardResponse {
	return BoardResponse{
		Board: view.Board,
		Topics: pagination.Map(view.Topics, func(t domain.TopicListItem) TopicListItemResponse {
			return TopicListItemResponse{t}
		}),
	}
}
