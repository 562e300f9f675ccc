// Package cache keeps a read-through copy of the board list in Redis.
// A nil client turns every cache into a passthrough to its source.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/boards/shared/config"
	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/logger"
	"github.com/redis/go-redis/v9"
)

const boardsKey = "boards:list:v1"

// Connect returns nil, nil when no URL is configured.
func Connect(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	logger.Log.Info("connected to redis", "addr", opts.Addr)
	return client, nil
}

type BoardSource interface {
	ListBoards(ctx context.Context) ([]domain.BoardSummary, error)
}

// Boards serves the board list from Redis and falls back to the source on a
// miss. Redis errors are logged and never fail the read.
type Boards struct {
	source BoardSource
	client *redis.Client
	ttl    time.Duration
}

func NewBoards(source BoardSource, client *redis.Client, ttl time.Duration) *Boards {
	return &Boards{source: source, client: client, ttl: ttl}
}

func (b *Boards) ListBoards(ctx context.Context) ([]domain.BoardSummary, error) {
	if b.client == nil {
		return b.source.ListBoards(ctx)
	}

	var boards []domain.BoardSummary
	found, err := b.get(ctx, &boards)
	if err != nil {
		logger.Log.Warn("board cache read failed", "error", err)
	}
	if found {
		return boards, nil
	}

	boards, err = b.source.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.set(ctx, boards); err != nil {
		logger.Log.Warn("board cache write failed", "error", err)
	}
	return boards, nil
}

// Invalidate drops the cached list; the next read goes to the source.
func (b *Boards) Invalidate(ctx context.Context) {
	if b.client == nil {
		return
	}
	if err := b.client.Del(ctx, boardsKey).Err(); err != nil {
		logger.Log.Warn("board cache invalidation failed", "error", err)
	}
}

func (b *Boards) get(ctx context.Context, dest *[]domain.BoardSummary) (bool, error) {
	raw, err := b.client.Get(ctx, boardsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached boards: %w", err)
	}
	return true, nil
}

func (b *Boards) set(ctx context.Context, boards []domain.BoardSummary) error {
	raw, err := json.Marshal(boards)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, boardsKey, raw, b.ttl).Err()
}
