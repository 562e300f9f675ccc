package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name        BoardName
	Description BoardDescription
}

type Board struct {
	Id          BoardId          `json:"id"`
	Name        BoardName        `json:"name"`
	Description BoardDescription `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

// BoardSummary is a row of the home page board list.
type BoardSummary struct {
	Board
	TopicsCount int   `json:"topics_count"`
	PostsCount  int   `json:"posts_count"`
	LastPost    *Post `json:"last_post,omitempty"` // nil for a board without posts
}
