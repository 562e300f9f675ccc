package api

import (
	"github.com/itchan-dev/boards/shared/domain"
)

// Request DTOs

type CreateReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

type UpdatePostRequest struct {
	Message string `json:"message" validate:"required"`
}

// Response DTOs

type PostResponse struct {
	domain.Post
	MessageHTML string `json:"message_html"`
	Edited      bool   `json:"edited"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}

func NewPostResponse(p domain.Post, md Renderer) PostResponse {
	return PostResponse{Post: p, MessageHTML: md.Render(p.Message), Edited: p.Edited()}
}

func NewPostListResponse(posts []domain.Post, md Renderer) PostListResponse {
	resp := PostListResponse{Posts: make([]PostResponse, len(posts))}
	for i, p := range posts {
		resp.Posts[i] = NewPostResponse(p, md)
	}
	return resp
}
