package api

import (
	"github.com/campusboard/coursefeed-be/internal/api/handlers"
	"github.com/campusboard/coursefeed-be/internal/auth"
	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/campusboard/coursefeed-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps bundles everything the router needs to wire its handlers.
type Deps struct {
	Hub           *websocket.Hub
	Tokens        *auth.Manager
	UserService   services.UserServiceProvider
	CourseService services.CourseServiceProvider
	FeedbackSvc   services.FeedbackServiceProvider
	DashboardSvc  services.DashboardServiceProvider
	EventService  services.EventServiceProvider
	AllowedOrigin string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.UserService, deps.Tokens)
	userHandler := handlers.NewUserHandler(deps.UserService)
	courseHandler := handlers.NewCourseHandler(deps.CourseService)
	feedbackHandler := handlers.NewFeedbackHandler(deps.FeedbackSvc)
	dashboardHandler := handlers.NewDashboardHandler(deps.DashboardSvc)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	systemHandler := handlers.NewSystemHandler()
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	requireAuth := deps.Tokens.Middleware()

	r.Route("/api/v1", func(r chi.Router) {
		// Live dashboard feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(requireAuth).Get("/me", authHandler.GetMe)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", userHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Post("/password", userHandler.ChangePassword)
				r.Delete("/", userHandler.Delete)
			})
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseHandler.List)
			r.With(requireAuth).Post("/", courseHandler.Create)
			r.Get("/{id}", courseHandler.Get)
		})

		// Joined feedback rows for the feedback table
		r.Get("/feedbacks", feedbackHandler.List)
		// Public submission endpoint; acknowledges any non-empty JSON body
		r.Post("/feedback/submit", feedbackHandler.Submit)
		r.With(requireAuth).Post("/feedback", feedbackHandler.Create)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", dashboardHandler.Summary)
			r.Get("/barchart", dashboardHandler.Barchart)
			r.Get("/piechart", dashboardHandler.Piechart)
			r.Get("/snapshots", dashboardHandler.Snapshots)
		})

		r.With(requireAuth).Get("/events", eventHandler.GetRecent)
		r.With(requireAuth).Get("/system/stats", systemHandler.Stats)
	})

	return r
}
