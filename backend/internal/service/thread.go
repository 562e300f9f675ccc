package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/boards/shared/domain"
	internal_errors "github.com/itchan-dev/boards/shared/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ThreadService handles writes: new topics, replies and edits. A nil user
// means an anonymous caller.
type ThreadService interface {
	CreateTopic(ctx context.Context, user *domain.User, board domain.BoardId, subject domain.TopicSubject, message domain.PostMessage) (domain.Topic, error)
	CreateReply(ctx context.Context, user *domain.User, board domain.BoardId, topic domain.TopicId, message domain.PostMessage) (domain.Post, error)
	UpdatePost(ctx context.Context, user *domain.User, board domain.BoardId, topic domain.TopicId, post domain.PostId, message domain.PostMessage) (domain.Post, error)
}

type Thread struct {
	storage   ThreadStorage
	validator ThreadValidator
	policy    EditPolicy
	boards    BoardCache
}

type ThreadStorage interface {
	CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error)
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Post, error)
	UpdatePost(ctx context.Context, data domain.PostEditData, authorize func(domain.Post) error) (domain.Post, error)
}

type ThreadValidator interface {
	Subject(subject domain.TopicSubject) error
	Message(message domain.PostMessage) error
}

// BoardCache is notified whenever board summaries change.
type BoardCache interface {
	Invalidate(ctx context.Context)
}

type noopBoardCache struct{}

func (noopBoardCache) Invalidate(context.Context) {}

// NewThread uses OwnerOnly when policy is nil.
func NewThread(storage ThreadStorage, validator ThreadValidator, policy EditPolicy, boards BoardCache) ThreadService {
	if policy == nil {
		policy = OwnerOnly{}
	}
	if boards == nil {
		boards = noopBoardCache{}
	}
	return &Thread{storage: storage, validator: validator, policy: policy, boards: boards}
}

func (t *Thread) CreateTopic(ctx context.Context, user *domain.User, board domain.BoardId, subject domain.TopicSubject, message domain.PostMessage) (_ domain.Topic, err error) {
	ctx, span := startSpan(ctx, "Thread.CreateTopic", attribute.Int64("board.id", board))
	defer endSpan(span, &err)

	if user == nil {
		return domain.Topic{}, internal_errors.AuthRequired()
	}
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if err := t.validator.Subject(subject); err != nil {
		return domain.Topic{}, err
	}
	if err := t.validator.Message(message); err != nil {
		return domain.Topic{}, err
	}

	topic, err := t.storage.CreateTopic(ctx, domain.TopicCreationData{
		Board:   board,
		Subject: subject,
		Starter: *user,
		Message: message,
	})
	if err != nil {
		return domain.Topic{}, err
	}
	topicsCreated.Inc()
	t.boards.Invalidate(ctx)
	return topic, nil
}

func (t *Thread) CreateReply(ctx context.Context, user *domain.User, board domain.BoardId, topic domain.TopicId, message domain.PostMessage) (_ domain.Post, err error) {
	ctx, span := startSpan(ctx, "Thread.CreateReply", attribute.Int64("board.id", board), attribute.Int64("topic.id", topic))
	defer endSpan(span, &err)

	if user == nil {
		return domain.Post{}, internal_errors.AuthRequired()
	}
	message = strings.TrimSpace(message)
	if err := t.validator.Message(message); err != nil {
		return domain.Post{}, err
	}

	post, err := t.storage.CreateReply(ctx, domain.ReplyCreationData{
		Board:   board,
		Topic:   topic,
		Author:  *user,
		Message: message,
	})
	if err != nil {
		return domain.Post{}, err
	}
	repliesCreated.Inc()
	t.boards.Invalidate(ctx)
	return post, nil
}

// UpdatePost validates the new message before looking the post up, so an
// invalid edit of a missing post reports the validation error.
func (t *Thread) UpdatePost(ctx context.Context, user *domain.User, board domain.BoardId, topic domain.TopicId, post domain.PostId, message domain.PostMessage) (_ domain.Post, err error) {
	ctx, span := startSpan(ctx, "Thread.UpdatePost",
		attribute.Int64("board.id", board), attribute.Int64("topic.id", topic), attribute.Int64("post.id", post))
	defer endSpan(span, &err)

	if user == nil {
		return domain.Post{}, internal_errors.AuthRequired()
	}
	message = strings.TrimSpace(message)
	if err := t.validator.Message(message); err != nil {
		return domain.Post{}, err
	}

	editor := *user
	updated, err := t.storage.UpdatePost(ctx, domain.PostEditData{
		Board:   board,
		Topic:   topic,
		Post:    post,
		Editor:  editor,
		Message: message,
	}, func(current domain.Post) error {
		if !t.policy.CanEdit(editor, current) {
			permissionDenied.Inc()
			return internal_errors.Permission("You can only edit your own posts")
		}
		return nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	postsEdited.Inc()
	// the board list shows the newest post, which may be this one
	t.boards.Invalidate(ctx)
	return updated, nil
}
