package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dhruvrajput1/letmecook2.0/internal/handlers"
	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
)

type Handlers struct {
	Users         *handlers.UserHandler
	Videos        *handlers.VideoHandler
	Comments      *handlers.CommentHandler
	Tweets        *handlers.TweetHandler
	Likes         *handlers.LikeHandler
	Playlists     *handlers.PlaylistHandler
	Subscriptions *handlers.SubscriptionHandler
	Dashboard     *handlers.DashboardHandler
	Health        *handlers.HealthHandler
}

// New builds the /api/v1 route tree. Auth endpoints sit behind the rate
// limiter; everything else splits into required-auth and optional-auth
// groups depending on whether the resource is viewable anonymously.
func New(h Handlers, jwt *middleware.JWTAuth, limiter *middleware.RateLimiter, frontendURL string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", h.Health.Check)

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)
				r.Post("/register", h.Users.Register)
				r.Post("/login", h.Users.Login)
				r.Post("/refresh-token", h.Users.Refresh)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwt.Middleware)
				r.Post("/logout", h.Users.Logout)
				r.Post("/change-password", h.Users.ChangePassword)
				r.Get("/current-user", h.Users.CurrentUser)
				r.Patch("/update-account", h.Users.UpdateAccount)
				r.Patch("/avatar", h.Users.UpdateAvatar)
				r.Patch("/cover-image", h.Users.UpdateCoverImage)
				r.Get("/history", h.Users.WatchHistory)
			})

			r.With(jwt.OptionalMiddleware).Get("/c/{username}", h.Users.ChannelProfile)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(jwt.OptionalMiddleware)
				r.Get("/", h.Videos.List)
				r.Get("/{videoId}", h.Videos.GetByID)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwt.Middleware)
				r.Post("/", h.Videos.Publish)
				r.Patch("/{videoId}", h.Videos.Update)
				r.Delete("/{videoId}", h.Videos.Delete)
				r.Patch("/toggle/publish/{videoId}", h.Videos.TogglePublish)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(jwt.Middleware)
			r.Get("/{videoId}", h.Comments.ListByVideo)
			r.Post("/{videoId}", h.Comments.Add)
			r.Patch("/c/{commentId}", h.Comments.Update)
			r.Delete("/c/{commentId}", h.Comments.Delete)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Use(jwt.Middleware)
			r.Post("/", h.Tweets.Create)
			r.Get("/user/{userId}", h.Tweets.ListByUser)
			r.Patch("/{tweetId}", h.Tweets.Update)
			r.Delete("/{tweetId}", h.Tweets.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(jwt.Middleware)
			r.Post("/toggle/v/{videoId}", h.Likes.ToggleVideo)
			r.Post("/toggle/c/{commentId}", h.Likes.ToggleComment)
			r.Post("/toggle/t/{tweetId}", h.Likes.ToggleTweet)
			r.Get("/videos", h.Likes.LikedVideos)
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Use(jwt.Middleware)
			r.Post("/", h.Playlists.Create)
			r.Get("/user/{userId}", h.Playlists.ListByUser)
			r.Get("/{playlistId}", h.Playlists.GetByID)
			r.Patch("/{playlistId}", h.Playlists.Update)
			r.Delete("/{playlistId}", h.Playlists.Delete)
			r.Patch("/add/{videoId}/{playlistId}", h.Playlists.AddVideo)
			r.Patch("/remove/{videoId}/{playlistId}", h.Playlists.RemoveVideo)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(jwt.Middleware)
			r.Post("/c/{channelId}", h.Subscriptions.Toggle)
			r.Get("/c/{channelId}", h.Subscriptions.Subscribers)
			r.Get("/u/{subscriberId}", h.Subscriptions.SubscribedChannels)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwt.Middleware)
			r.Get("/stats", h.Dashboard.ChannelStats)
			r.Get("/videos", h.Dashboard.ChannelVideos)
		})
	})

	return r
}
