package domain

type (
	UserId   = int64
	UserName = string

	BoardId          = int64
	BoardName        = string
	BoardDescription = string

	TopicId      = int64
	TopicSubject = string

	PostId      = int64
	PostMessage = string
)
