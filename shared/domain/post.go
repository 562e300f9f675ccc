package domain

import (
	"fmt"
	"time"
)

type ReplyCreationData struct {
	Board   BoardId
	Topic   TopicId
	Author  User
	Message PostMessage
}

type PostEditData struct {
	Board   BoardId
	Topic   TopicId
	Post    PostId
	Editor  User
	Message PostMessage
}

type Post struct {
	Id        PostId      `json:"id"`
	Board     BoardId     `json:"board"`
	Topic     TopicId     `json:"topic"`
	Message   PostMessage `json:"message"`
	CreatedBy User        `json:"created_by"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedBy *User       `json:"updated_by,omitempty"` // set only after an edit
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
}

func (p *Post) Edited() bool {
	return p.UpdatedAt != nil
}

// for debug
func (p *Post) String() string {
	return fmt.Sprintf("[id:%d, topic:%d, author:%d, created:%s, edited:%t, message:%s]",
		p.Id, p.Topic, p.CreatedBy.Id, p.CreatedAt.Format(time.StampMilli), p.Edited(), p.Message)
}
