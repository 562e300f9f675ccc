package domain

import "github.com/itchan-dev/boards/shared/pagination"

// BoardView is one page of a board's topic list.
type BoardView struct {
	Board  Board                          `json:"board"`
	Topics pagination.Page[TopicListItem] `json:"topics"`
}

// TopicView is one page of a topic's posts.
type TopicView struct {
	Topic Topic                 `json:"topic"`
	Posts pagination.Page[Post] `json:"posts"`
}
