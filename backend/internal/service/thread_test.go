package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/itchan-dev/boards/shared/domain"
	internal_errors "github.com/itchan-dev/boards/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockThreadStorage mocks the ThreadStorage interface.
type MockThreadStorage struct {
	createTopicFunc func(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error)
	createReplyFunc func(ctx context.Context, data domain.ReplyCreationData) (domain.Post, error)
	updatePostFunc  func(ctx context.Context, data domain.PostEditData, authorize func(domain.Post) error) (domain.Post, error)

	mu    sync.Mutex
	calls int
}

func (m *MockThreadStorage) called() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockThreadStorage) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *MockThreadStorage) CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error) {
	m.record()
	if m.createTopicFunc != nil {
		return m.createTopicFunc(ctx, data)
	}
	return domain.Topic{Id: 1, Board: data.Board, Subject: data.Subject, Starter: data.Starter, PostsCount: 1}, nil
}

func (m *MockThreadStorage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Post, error) {
	m.record()
	if m.createReplyFunc != nil {
		return m.createReplyFunc(ctx, data)
	}
	return domain.Post{Id: 2, Board: data.Board, Topic: data.Topic, Message: data.Message, CreatedBy: data.Author}, nil
}

func (m *MockThreadStorage) UpdatePost(ctx context.Context, data domain.PostEditData, authorize func(domain.Post) error) (domain.Post, error) {
	m.record()
	if m.updatePostFunc != nil {
		return m.updatePostFunc(ctx, data, authorize)
	}
	return domain.Post{Id: data.Post, Message: data.Message}, nil
}

// MockThreadValidator mocks the ThreadValidator interface.
type MockThreadValidator struct {
	subjectFunc func(subject domain.TopicSubject) error
	messageFunc func(message domain.PostMessage) error
}

func (m *MockThreadValidator) Subject(subject domain.TopicSubject) error {
	if m.subjectFunc != nil {
		return m.subjectFunc(subject)
	}
	return nil
}

func (m *MockThreadValidator) Message(message domain.PostMessage) error {
	if m.messageFunc != nil {
		return m.messageFunc(message)
	}
	return nil
}

type mockBoardCache struct {
	invalidations int
}

func (m *mockBoardCache) Invalidate(context.Context) { m.invalidations++ }

// --- Helpers ---

var (
	alice = &domain.User{Id: 1, Name: "alice"}
	bob   = &domain.User{Id: 2, Name: "bob"}
)

// storedPost simulates the store handing its locked row to authorize.
func storedPost(post domain.Post) func(ctx context.Context, data domain.PostEditData, authorize func(domain.Post) error) (domain.Post, error) {
	return func(_ context.Context, data domain.PostEditData, authorize func(domain.Post) error) (domain.Post, error) {
		if err := authorize(post); err != nil {
			return domain.Post{}, err
		}
		now := time.Now()
		post.Message = data.Message
		post.UpdatedBy = &data.Editor
		post.UpdatedAt = &now
		return post, nil
	}
}

// --- Tests ---

func TestThreadCreateTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous caller never reaches storage", func(t *testing.T) {
		storage := &MockThreadStorage{}
		service := NewThread(storage, &MockThreadValidator{}, nil, nil)

		_, err := service.CreateTopic(ctx, nil, 1, "Hello", "Welcome")

		require.ErrorIs(t, err, internal_errors.ErrAuthRequired)
		assert.Zero(t, storage.called())
	})

	t.Run("trims input and passes starter", func(t *testing.T) {
		cache := &mockBoardCache{}
		var got domain.TopicCreationData
		storage := &MockThreadStorage{createTopicFunc: func(_ context.Context, data domain.TopicCreationData) (domain.Topic, error) {
			got = data
			return domain.Topic{Id: 10, Board: data.Board, Subject: data.Subject, Starter: data.Starter, PostsCount: 1}, nil
		}}
		service := NewThread(storage, &MockThreadValidator{}, nil, cache)

		topic, err := service.CreateTopic(ctx, alice, 3, "  Hello \n", "\tWelcome  ")

		require.NoError(t, err)
		assert.Equal(t, domain.TopicId(10), topic.Id)
		assert.Equal(t, domain.TopicCreationData{Board: 3, Subject: "Hello", Starter: *alice, Message: "Welcome"}, got)
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("validation errors stop before storage", func(t *testing.T) {
		for name, validator := range map[string]*MockThreadValidator{
			"subject": {subjectFunc: func(domain.TopicSubject) error { return internal_errors.Validation("bad subject") }},
			"message": {messageFunc: func(domain.PostMessage) error { return internal_errors.Validation("bad message") }},
		} {
			t.Run(name, func(t *testing.T) {
				storage := &MockThreadStorage{}
				cache := &mockBoardCache{}
				service := NewThread(storage, validator, nil, cache)

				_, err := service.CreateTopic(ctx, alice, 1, "s", "m")

				require.ErrorIs(t, err, internal_errors.ErrValidation)
				assert.Zero(t, storage.called())
				assert.Zero(t, cache.invalidations)
			})
		}
	})

	t.Run("validator sees trimmed subject", func(t *testing.T) {
		var seen string
		validator := &MockThreadValidator{subjectFunc: func(s domain.TopicSubject) error {
			seen = s
			return nil
		}}
		service := NewThread(&MockThreadStorage{}, validator, nil, nil)

		_, err := service.CreateTopic(ctx, alice, 1, "   ", "m")
		require.NoError(t, err)
		assert.Equal(t, "", seen)
	})

	t.Run("storage error is returned", func(t *testing.T) {
		cache := &mockBoardCache{}
		storage := &MockThreadStorage{createTopicFunc: func(context.Context, domain.TopicCreationData) (domain.Topic, error) {
			return domain.Topic{}, internal_errors.NotFound("Board not found")
		}}
		service := NewThread(storage, &MockThreadValidator{}, nil, cache)

		_, err := service.CreateTopic(ctx, alice, 99, "s", "m")

		require.ErrorIs(t, err, internal_errors.ErrNotFound)
		assert.Zero(t, cache.invalidations)
	})
}

func TestThreadCreateReply(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous caller never reaches storage", func(t *testing.T) {
		storage := &MockThreadStorage{}
		service := NewThread(storage, &MockThreadValidator{}, nil, nil)

		_, err := service.CreateReply(ctx, nil, 1, 1, "hi")

		require.ErrorIs(t, err, internal_errors.ErrAuthRequired)
		assert.Zero(t, storage.called())
	})

	t.Run("success", func(t *testing.T) {
		cache := &mockBoardCache{}
		var got domain.ReplyCreationData
		storage := &MockThreadStorage{createReplyFunc: func(_ context.Context, data domain.ReplyCreationData) (domain.Post, error) {
			got = data
			return domain.Post{Id: 5, Board: data.Board, Topic: data.Topic, Message: data.Message, CreatedBy: data.Author}, nil
		}}
		service := NewThread(storage, &MockThreadValidator{}, nil, cache)

		post, err := service.CreateReply(ctx, bob, 1, 2, " hi ")

		require.NoError(t, err)
		assert.Equal(t, domain.PostId(5), post.Id)
		assert.Equal(t, domain.ReplyCreationData{Board: 1, Topic: 2, Author: *bob, Message: "hi"}, got)
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("invalid message", func(t *testing.T) {
		storage := &MockThreadStorage{}
		validator := &MockThreadValidator{messageFunc: func(domain.PostMessage) error { return internal_errors.Validation("empty") }}
		service := NewThread(storage, validator, nil, nil)

		_, err := service.CreateReply(ctx, bob, 1, 2, "")

		require.ErrorIs(t, err, internal_errors.ErrValidation)
		assert.Zero(t, storage.called())
	})

	t.Run("topic in another board", func(t *testing.T) {
		storage := &MockThreadStorage{createReplyFunc: func(context.Context, domain.ReplyCreationData) (domain.Post, error) {
			return domain.Post{}, internal_errors.NotFound("Topic not found")
		}}
		service := NewThread(storage, &MockThreadValidator{}, nil, nil)

		_, err := service.CreateReply(ctx, bob, 7, 2, "hi")
		require.ErrorIs(t, err, internal_errors.ErrNotFound)
	})
}

func TestThreadUpdatePost(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	original := domain.Post{Id: 3, Board: 1, Topic: 2, Message: "original", CreatedBy: *alice, CreatedAt: created}

	t.Run("anonymous caller never reaches storage", func(t *testing.T) {
		storage := &MockThreadStorage{}
		service := NewThread(storage, &MockThreadValidator{}, nil, nil)

		_, err := service.UpdatePost(ctx, nil, 1, 2, 3, "x")

		require.ErrorIs(t, err, internal_errors.ErrAuthRequired)
		assert.Zero(t, storage.called())
	})

	t.Run("owner edits", func(t *testing.T) {
		cache := &mockBoardCache{}
		storage := &MockThreadStorage{updatePostFunc: storedPost(original)}
		service := NewThread(storage, &MockThreadValidator{}, nil, cache)

		post, err := service.UpdatePost(ctx, alice, 1, 2, 3, " edited ")

		require.NoError(t, err)
		assert.Equal(t, "edited", post.Message)
		assert.Equal(t, *alice, post.CreatedBy)
		assert.Equal(t, created, post.CreatedAt)
		require.True(t, post.Edited())
		assert.Equal(t, *alice, *post.UpdatedBy)
		assert.Equal(t, 1, cache.invalidations)
	})

	t.Run("someone else is denied", func(t *testing.T) {
		cache := &mockBoardCache{}
		storage := &MockThreadStorage{updatePostFunc: storedPost(original)}
		service := NewThread(storage, &MockThreadValidator{}, nil, cache)

		_, err := service.UpdatePost(ctx, bob, 1, 2, 3, "hijack")

		require.ErrorIs(t, err, internal_errors.ErrPermission)
		assert.Zero(t, cache.invalidations)
	})

	t.Run("admin is denied by default policy", func(t *testing.T) {
		admin := &domain.User{Id: 99, Name: "root", Admin: true}
		service := NewThread(&MockThreadStorage{updatePostFunc: storedPost(original)}, &MockThreadValidator{}, nil, nil)

		_, err := service.UpdatePost(ctx, admin, 1, 2, 3, "x")
		require.ErrorIs(t, err, internal_errors.ErrPermission)
	})

	t.Run("custom policy is consulted", func(t *testing.T) {
		admin := &domain.User{Id: 99, Name: "root", Admin: true}
		service := NewThread(&MockThreadStorage{updatePostFunc: storedPost(original)}, &MockThreadValidator{}, OwnerOrAdmin{}, nil)

		post, err := service.UpdatePost(ctx, admin, 1, 2, 3, "moderated")
		require.NoError(t, err)
		assert.Equal(t, "moderated", post.Message)
		assert.Equal(t, *alice, post.CreatedBy)
	})

	t.Run("validation happens before lookup", func(t *testing.T) {
		storage := &MockThreadStorage{}
		validator := &MockThreadValidator{messageFunc: func(domain.PostMessage) error { return internal_errors.Validation("empty") }}
		service := NewThread(storage, validator, nil, nil)

		_, err := service.UpdatePost(ctx, alice, 1, 2, 404, "")

		require.ErrorIs(t, err, internal_errors.ErrValidation)
		assert.Zero(t, storage.called())
	})

	t.Run("missing post", func(t *testing.T) {
		storage := &MockThreadStorage{updatePostFunc: func(context.Context, domain.PostEditData, func(domain.Post) error) (domain.Post, error) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}}
		service := NewThread(storage, &MockThreadValidator{}, nil, nil)

		_, err := service.UpdatePost(ctx, alice, 1, 2, 404, "x")
		require.ErrorIs(t, err, internal_errors.ErrNotFound)
	})

	t.Run("internal error passes through", func(t *testing.T) {
		boom := errors.New("connection reset")
		storage := &MockThreadStorage{updatePostFunc: func(context.Context, domain.PostEditData, func(domain.Post) error) (domain.Post, error) {
			return domain.Post{}, boom
		}}
		service := NewThread(storage, &MockThreadValidator{}, nil, nil)

		_, err := service.UpdatePost(ctx, alice, 1, 2, 3, "x")
		require.ErrorIs(t, err, boom)
	})
}

func TestEditPolicies(t *testing.T) {
	post := domain.Post{CreatedBy: domain.User{Id: 1, Name: "alice"}}
	renamed := domain.User{Id: 1, Name: "alice2"}
	other := domain.User{Id: 2, Name: "alice"}
	admin := domain.User{Id: 3, Admin: true}

	assert.True(t, OwnerOnly{}.CanEdit(renamed, post), "identity is the id")
	assert.False(t, OwnerOnly{}.CanEdit(other, post))
	assert.False(t, OwnerOnly{}.CanEdit(admin, post))

	assert.True(t, OwnerOrAdmin{}.CanEdit(renamed, post))
	assert.False(t, OwnerOrAdmin{}.CanEdit(other, post))
	assert.True(t, OwnerOrAdmin{}.CanEdit(admin, post))
}
