package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timecard-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timecard-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	payrollHandler PayrollHandler,
	attendanceHandler AttendanceHandler,
	profileHandler ProfileHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", truncatedHeader},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/break-policy", payrollHandler.ApplyBreakPolicy)
				r.Post("/shifts/edit", payrollHandler.EditShift)
				r.Post("/payslip", payrollHandler.Payslip)
				r.Get("/minimum-wage", payrollHandler.MinimumWage)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/analyze", attendanceHandler.Analyze)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/shop-name", profileHandler.GetShopName)
				r.Put("/shop-name", profileHandler.UpdateShopName)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
