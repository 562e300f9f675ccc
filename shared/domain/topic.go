package domain

import (
	"time"
)

type TopicCreationData struct {
	Board   BoardId
	Subject TopicSubject
	Starter User
	Message PostMessage
}

type Topic struct {
	Id           TopicId      `json:"id"`
	Board        BoardId      `json:"board"`
	Subject      TopicSubject `json:"subject"`
	Starter      User         `json:"starter"`
	CreatedAt    time.Time    `json:"created_at"`
	LastActivity time.Time    `json:"last_activity"` // created_at of the newest post
	PostsCount   int          `json:"posts_count"`
	Views        int          `json:"views"`
}

// Replies is the number of posts after the opening one.
func (t Topic) Replies() int {
	return max(0, t.PostsCount-1)
}

// TopicListItem is a topic as shown on the board page.
type TopicListItem struct {
	Topic
	Replies   int `json:"replies"`
	PageCount int `json:"page_count"` // pages of posts inside the topic
}
