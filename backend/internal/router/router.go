package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/boards/backend/internal/setup"
	mw "github.com/itchan-dev/boards/shared/middleware"
	"github.com/itchan-dev/boards/shared/middleware/metrics"
)

const requestTimeout = 30 * time.Second

// New creates and configures a new chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLog)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{mw.RequestIdHeader},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(chimw.Timeout(requestTimeout))

		// Reads are open to anonymous visitors; a valid token still identifies the caller.
		v1.Group(func(public chi.Router) {
			public.Use(authMw.OptionalAuth())
			public.Get("/boards", h.ListBoards)
			public.Get("/boards/{board}", h.GetBoard)
			public.Get("/boards/{board}/topics/{topic}", h.GetTopic)
			public.Get("/boards/{board}/topics/{topic}/recent", h.RecentPosts)
		})

		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())
			loggedIn.Post("/boards/{board}/topics", h.CreateTopic)
			loggedIn.Post("/boards/{board}/topics/{topic}/posts", h.CreateReply)
			loggedIn.Put("/boards/{board}/topics/{topic}/posts/{post}", h.UpdatePost)
		})

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())
			admin.Post("/boards", h.CreateBoard)
			admin.Delete("/boards/{board}", h.DeleteBoard)
		})
	})

	return r
}
