package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/topicboard/engine/internal/api/handlers"
	mw "github.com/topicboard/engine/internal/api/middleware"
	"github.com/topicboard/engine/internal/repository"
)

type Dependencies struct {
	DB             *gorm.DB
	HMACSecret     []byte
	Users          repository.UserRepository
	RateLimitRPS   float64
	RateLimitBurst int

	AuthHandler   *handlers.AuthHandler
	UsersHandler  *handlers.UsersHandler
	PostsHandler  *handlers.PostsHandler
	TopicsHandler *handlers.TopicsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler(dep.DB)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	auth := mw.Auth(dep.HMACSecret, dep.Users)

	r.Route("/api/v1", func(api chi.Router) {
		// Public
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/token", dep.AuthHandler.Token)
		})

		api.Get("/posts", dep.PostsHandler.List)
		api.Get("/posts/{id}", dep.PostsHandler.Get)
		api.Get("/posts/{id}/comments", dep.PostsHandler.ListComments)

		api.Get("/topics", dep.TopicsHandler.List)
		api.Get("/topics/{id}", dep.TopicsHandler.Get)
		api.Get("/topics/{id}/stats", dep.TopicsHandler.Stats)
		api.Get("/topics/{id}/ratings", dep.TopicsHandler.ListRatings)

		// Authenticated
		api.Group(func(protected chi.Router) {
			protected.Use(auth)

			protected.Get("/users/me", dep.UsersHandler.Me)

			protected.Post("/posts", dep.PostsHandler.Create)
			protected.Delete("/posts/{id}", dep.PostsHandler.Delete)
			protected.Post("/posts/{id}/comments", dep.PostsHandler.CreateComment)
			protected.Delete("/comments/{comment_id}", dep.PostsHandler.DeleteComment)

			protected.Post("/topics/{id}/ratings", dep.TopicsHandler.UpsertRating)
		})

		// Admin
		api.Group(func(admin chi.Router) {
			admin.Use(auth, mw.RequireAdmin)

			admin.Get("/users", dep.UsersHandler.List)
			admin.Post("/topics", dep.TopicsHandler.Create)
		})
	})

	return r
}
