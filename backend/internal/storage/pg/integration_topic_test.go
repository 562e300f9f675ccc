package pg

import (
	"context"
	"strings"
	"testing"

	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("creates topic with opening post", func(t *testing.T) {
		board := setupBoard(t)
		topic := createTestTopic(t, board.Id, "Hello", "Welcome", alice)

		assert.Equal(t, board.Id, topic.Board)
		assert.Equal(t, "Hello", topic.Subject)
		assert.Equal(t, alice, topic.Starter)
		assert.Equal(t, 1, topic.PostsCount)
		assert.Zero(t, topic.Views)
		assert.True(t, topic.LastActivity.Equal(topic.CreatedAt))

		posts, err := storage.ListPosts(ctx, topic.Id, pagination.NewWindow(1, 10, 1))
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Welcome", posts[0].Message)
		assert.Equal(t, alice, posts[0].CreatedBy)
		assert.True(t, posts[0].CreatedAt.Equal(topic.CreatedAt), "opening post shares the topic timestamp")
		assert.False(t, posts[0].Edited())
	})

	t.Run("missing board", func(t *testing.T) {
		_, err := storage.CreateTopic(ctx, domain.TopicCreationData{Board: -1, Subject: "s", Message: "m", Starter: alice})
		requireNotFoundError(t, err)
	})

	t.Run("blank subject persists nothing", func(t *testing.T) {
		board := setupBoard(t)
		_, err := storage.CreateTopic(ctx, domain.TopicCreationData{Board: board.Id, Subject: "", Message: "m", Starter: alice})
		requireValidationError(t, err)
		assert.Zero(t, countRows(t, "SELECT COUNT(*) FROM topics WHERE board_id = $1", board.Id))
	})

	t.Run("blank message rolls back the topic", func(t *testing.T) {
		board := setupBoard(t)
		postsBefore := countRows(t, "SELECT COUNT(*) FROM posts")

		_, err := storage.CreateTopic(ctx, domain.TopicCreationData{Board: board.Id, Subject: "s", Message: "", Starter: alice})
		requireValidationError(t, err)

		assert.Zero(t, countRows(t, "SELECT COUNT(*) FROM topics WHERE board_id = $1", board.Id))
		assert.Equal(t, postsBefore, countRows(t, "SELECT COUNT(*) FROM posts"))
	})

	t.Run("oversized subject", func(t *testing.T) {
		board := setupBoard(t)
		long := strings.Repeat("a", 256)
		_, err := storage.CreateTopic(ctx, domain.TopicCreationData{Board: board.Id, Subject: long, Message: "m", Starter: alice})
		requireValidationError(t, err)
		assert.Zero(t, countRows(t, "SELECT COUNT(*) FROM topics WHERE board_id = $1", board.Id))
	})
}

func TestGetTopic(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t)
	other := setupBoard(t)
	topic := createTestTopic(t, board.Id, "Hello", "Welcome", alice)

	got, err := storage.GetTopic(ctx, board.Id, topic.Id)
	require.NoError(t, err)
	assert.Equal(t, topic.Id, got.Id)
	assert.Equal(t, topic.Subject, got.Subject)

	t.Run("wrong board", func(t *testing.T) {
		_, err := storage.GetTopic(ctx, other.Id, topic.Id)
		requireNotFoundError(t, err)
	})

	t.Run("missing topic", func(t *testing.T) {
		_, err := storage.GetTopic(ctx, board.Id, -1)
		requireNotFoundError(t, err)
	})
}

func TestListTopics(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t)

	oldest := createTestTopic(t, board.Id, "oldest", "m", alice)
	middle := createTestTopic(t, board.Id, "middle", "m", alice)
	newest := createTestTopic(t, board.Id, "newest", "m", alice)

	count, err := storage.CountTopics(ctx, board.Id)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	topics, err := storage.ListTopics(ctx, board.Id, pagination.NewWindow(count, 20, 1))
	require.NoError(t, err)
	assert.Equal(t, []domain.TopicId{newest.Id, middle.Id, oldest.Id}, topicIds(topics))

	t.Run("reply bumps topic to the top", func(t *testing.T) {
		createTestReply(t, board.Id, oldest.Id, "bump", bob)

		topics, err := storage.ListTopics(ctx, board.Id, pagination.NewWindow(count, 20, 1))
		require.NoError(t, err)
		assert.Equal(t, []domain.TopicId{oldest.Id, newest.Id, middle.Id}, topicIds(topics))
	})

	t.Run("paginates", func(t *testing.T) {
		page2, err := storage.ListTopics(ctx, board.Id, pagination.NewWindow(count, 2, 2))
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Equal(t, middle.Id, page2[0].Id)
	})

	t.Run("empty board", func(t *testing.T) {
		empty := setupBoard(t)
		topics, err := storage.ListTopics(ctx, empty.Id, pagination.NewWindow(0, 20, 1))
		require.NoError(t, err)
		assert.NotNil(t, topics)
		assert.Empty(t, topics)
	})
}

func TestIncrementViews(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t)
	topic := createTestTopic(t, board.Id, "Hello", "Welcome", alice)

	require.NoError(t, storage.IncrementViews(ctx, topic.Id))
	require.NoError(t, storage.IncrementViews(ctx, topic.Id))

	got, err := storage.GetTopic(ctx, board.Id, topic.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
	assert.True(t, got.LastActivity.Equal(topic.LastActivity), "views must not touch activity")
}

func topicIds(topics []domain.Topic) []domain.TopicId {
	ids := make([]domain.TopicId, len(topics))
	for i, t := range topics {
		ids[i] = t.Id
	}
	return ids
}
