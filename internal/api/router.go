package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tandemchat/tandem/internal/api/handlers"
	"github.com/tandemchat/tandem/internal/api/middleware"
	"github.com/tandemchat/tandem/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	roomHandler := handlers.NewRoomHandler(services.Room)
	messageHandler := handlers.NewMessageHandler(services.Message)
	agentHandler := handlers.NewAgentHandler(services.Agent)
	statusHandler := handlers.NewStatusHandler(services.Status)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"Hello World"}`))
		})

		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Agent dispatch routes (public in current scope)
		r.Post("/chat", agentHandler.Chat)
		r.Post("/search", agentHandler.Search)
		r.Get("/agents/capabilities", agentHandler.Capabilities)

		// Status checks
		r.Post("/status", statusHandler.Create)
		r.Get("/status", statusHandler.List)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/chats", func(r chi.Router) {
				r.Post("/create", roomHandler.Create)
				r.Post("/join/{inviteToken}", roomHandler.Join)
				r.Get("/my-chats", roomHandler.MyChats)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/{chatID}", messageHandler.Send)
				r.Get("/{chatID}", messageHandler.List)
			})
		})
	})

	return r
}
