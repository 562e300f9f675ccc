package api

import (
	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/pagination"
)

// Request DTOs

type CreateTopicRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Response DTOs

type TopicResponse struct {
	domain.Topic
	Replies int `json:"replies"`
}

// TopicPageResponse is one page of a topic's posts.
type TopicPageResponse struct {
	Topic TopicResponse                 `json:"topic"`
	Posts pagination.Page[PostResponse] `json:"posts"`
}

func NewTopicResponse(t domain.Topic) TopicResponse {
	return TopicResponse{Topic: t, Replies: t.Replies()}
}

func NewTopicPageResponse(view domain.TopicView, md Renderer) TopicPageResponse {
	return TopicPageResponse{
		Topic: NewTopicResponse(view.Topic),
		Posts: pagination.Map(view.Posts, func(p domain.Post) PostResponse {
			return NewPostResponse(p, md)
		}),
	}
}
