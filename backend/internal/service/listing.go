package service

import (
	"context"

	"github.com/itchan-dev/boards/shared/config"
	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/logger"
	"github.com/itchan-dev/boards/shared/pagination"
	"go.opentelemetry.io/otel/attribute"
)

// ListingService handles the read side: board list, topic pages and post pages.
type ListingService interface {
	ListBoards(ctx context.Context) ([]domain.BoardSummary, error)
	ListTopics(ctx context.Context, board domain.BoardId, page int) (domain.BoardView, error)
	ListPosts(ctx context.Context, board domain.BoardId, topic domain.TopicId, page int) (domain.TopicView, error)
	RecentPosts(ctx context.Context, board domain.BoardId, topic domain.TopicId) ([]domain.Post, error)
}

type Listing struct {
	storage ListingStorage
	boards  BoardLister
	cfg     config.Public
}

type ListingStorage interface {
	GetBoard(ctx context.Context, id domain.BoardId) (domain.Board, error)
	CountTopics(ctx context.Context, board domain.BoardId) (int, error)
	ListTopics(ctx context.Context, board domain.BoardId, w pagination.Window) ([]domain.Topic, error)
	GetTopic(ctx context.Context, board domain.BoardId, id domain.TopicId) (domain.Topic, error)
	CountPosts(ctx context.Context, topic domain.TopicId) (int, error)
	ListPosts(ctx context.Context, topic domain.TopicId, w pagination.Window) ([]domain.Post, error)
	RecentPosts(ctx context.Context, topic domain.TopicId, limit int) ([]domain.Post, error)
	IncrementViews(ctx context.Context, id domain.TopicId) error
}

// BoardLister serves the board list, usually through the board cache.
type BoardLister interface {
	ListBoards(ctx context.Context) ([]domain.BoardSummary, error)
}

func NewListing(storage ListingStorage, boards BoardLister, cfg config.Public) ListingService {
	return &Listing{storage: storage, boards: boards, cfg: cfg}
}

func (l *Listing) ListBoards(ctx context.Context) (_ []domain.BoardSummary, err error) {
	ctx, span := startSpan(ctx, "Listing.ListBoards")
	defer endSpan(span, &err)

	return l.boards.ListBoards(ctx)
}

func (l *Listing) ListTopics(ctx context.Context, boardId domain.BoardId, page int) (_ domain.BoardView, err error) {
	ctx, span := startSpan(ctx, "Listing.ListTopics", attribute.Int64("board.id", boardId), attribute.Int("page", page))
	defer endSpan(span, &err)

	board, err := l.storage.GetBoard(ctx, boardId)
	if err != nil {
		return domain.BoardView{}, err
	}
	total, err := l.storage.CountTopics(ctx, boardId)
	if err != nil {
		return domain.BoardView{}, err
	}

	w := pagination.NewWindow(total, l.cfg.TopicsPerPage, page)
	topics, err := l.storage.ListTopics(ctx, boardId, w)
	if err != nil {
		return domain.BoardView{}, err
	}

	items := make([]domain.TopicListItem, len(topics))
	for i, t := range topics {
		items[i] = domain.TopicListItem{
			Topic:     t,
			Replies:   t.Replies(),
			PageCount: pagination.PageCount(t.PostsCount, l.cfg.PostsPerPage),
		}
	}
	return domain.BoardView{Board: board, Topics: pagination.NewPage(w, items)}, nil
}

// ListPosts counts as one view of the topic. A failed view increment is
// logged and does not fail the listing.
func (l *Listing) ListPosts(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, page int) (_ domain.TopicView, err error) {
	ctx, span := startSpan(ctx, "Listing.ListPosts",
		attribute.Int64("board.id", boardId), attribute.Int64("topic.id", topicId), attribute.Int("page", page))
	defer endSpan(span, &err)

	topic, err := l.storage.GetTopic(ctx, boardId, topicId)
	if err != nil {
		return domain.TopicView{}, err
	}

	if err := l.storage.IncrementViews(ctx, topicId); err != nil {
		logger.Log.Warn("failed to record topic view", "topic_id", topicId, "error", err)
	} else {
		topic.Views++
	}

	total, err := l.storage.CountPosts(ctx, topicId)
	if err != nil {
		return domain.TopicView{}, err
	}
	w := pagination.NewWindow(total, l.cfg.PostsPerPage, page)
	posts, err := l.storage.ListPosts(ctx, topicId, w)
	if err != nil {
		return domain.TopicView{}, err
	}
	return domain.TopicView{Topic: topic, Posts: pagination.NewPage(w, posts)}, nil
}

// RecentPosts returns the newest posts of a topic, newest first. It backs the
// reply form and does not count as a view.
func (l *Listing) RecentPosts(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) (_ []domain.Post, err error) {
	ctx, span := startSpan(ctx, "Listing.RecentPosts", attribute.Int64("board.id", boardId), attribute.Int64("topic.id", topicId))
	defer endSpan(span, &err)

	if _, err := l.storage.GetTopic(ctx, boardId, topicId); err != nil {
		return nil, err
	}
	return l.storage.RecentPosts(ctx, topicId, l.cfg.RecentPosts)
}
