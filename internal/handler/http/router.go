package http

import (
	"log/slog"
	"os"

	"github.com/devxankit/appzeto-payroll/internal/handler/http/middleware"
	"github.com/devxankit/appzeto-payroll/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, salaryHandler SalaryHandler, rewardHandler RewardHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "appzeto-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", salaryHandler.ListRecords)
				r.Get("/{id}", salaryHandler.GetRecord)

				// Money-affecting operations
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/provision", salaryHandler.Provision)
					r.Post("/generate", salaryHandler.GenerateMonth)
					r.Patch("/{id}/status", salaryHandler.SetStatus)
					r.Delete("/{id}", salaryHandler.Delete)
				})
			})

			r.Route("/rewards", func(r chi.Router) {
				r.Get("/", rewardHandler.ListRewards)
				r.Get("/{id}", rewardHandler.GetReward)
				r.Get("/{id}/awards", rewardHandler.ListAwards)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/evaluate", rewardHandler.Evaluate)
				})
			})
		})
	})

	return r
}
