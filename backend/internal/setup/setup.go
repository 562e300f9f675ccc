package setup

import (
	"context"

	"github.com/itchan-dev/boards/backend/internal/handler"
	"github.com/itchan-dev/boards/backend/internal/service"
	"github.com/itchan-dev/boards/backend/internal/storage/cache"
	"github.com/itchan-dev/boards/backend/internal/storage/pg"
	"github.com/itchan-dev/boards/backend/internal/utils"
	"github.com/itchan-dev/boards/shared/config"
	"github.com/itchan-dev/boards/shared/jwt"
	"github.com/itchan-dev/boards/shared/markup"
	"github.com/itchan-dev/boards/shared/middleware"
	"github.com/redis/go-redis/v9"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Redis          *redis.Client // nil when no redis url is configured
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	redisClient, err := cache.Connect(ctx, cfg.Private.Redis)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}
	boards := cache.NewBoards(storage, redisClient, cfg.Public.BoardCacheTTL)

	validator := &utils.PostValidator{}
	board := service.NewBoard(storage, &utils.BoardValidator{}, boards)
	thread := service.NewThread(storage, validator, service.OwnerOnly{}, boards)
	listing := service.NewListing(storage, boards, cfg.Public)

	h := handler.New(board, thread, listing, markup.New(), storage)
	auth := middleware.NewAuth(jwt.New(cfg.JwtKey(), cfg.JwtTTL()))

	return &Dependencies{
		Storage:        storage,
		Redis:          redisClient,
		Handler:        h,
		AuthMiddleware: auth,
		Config:         cfg,
	}, nil
}

// Close releases the store and the cache connection.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		d.Redis.Close()
	}
	d.Storage.Cleanup()
}
