package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kriyahr/hrms-backend-go/internal/config"
	"github.com/kriyahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kriyahr/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth           AuthHandler
	Attendance     AttendanceHandler
	Employee       EmployeeHandler
	Leave          LeaveHandler
	WFH            WFHHandler
	Regularization RegularizationHandler
	TaskReport     TaskReportHandler
	Master         MasterHandler
	Notification   NotificationHandler
	Payroll        PayrollHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	limiter := middleware.NewRateLimiter(5, 10)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Use(limiter.Handler)

			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/geofence-status", h.Attendance.GeofenceStatus)
				r.Get("/today", h.Attendance.Today)
				r.Get("/my", h.Attendance.MyList)
				r.Get("/report", h.Attendance.MyReport)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", h.Attendance.List)
					r.Put("/{id}", h.Attendance.Update)
					r.Get("/{id}/tasks", h.TaskReport.ForAttendance)
					r.Get("/employees/{id}/report", h.Attendance.EmployeeReport)
				})
			})

			r.Route("/task-reports", func(r chi.Router) {
				r.Get("/my", h.TaskReport.MyReports)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.ManagerOnly)
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Get("/search", h.Employee.Search)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.MyList)
				r.Post("/{id}/cancel", h.Leave.Cancel)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", h.Leave.List)
					r.Post("/{id}/review", h.Leave.Review)
				})
			})

			r.Route("/wfh", func(r chi.Router) {
				r.Post("/", h.WFH.Apply)
				r.Get("/my", h.WFH.MyList)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", h.WFH.List)
					r.Post("/{id}/review", h.WFH.Review)
				})
			})

			r.Route("/regularizations", func(r chi.Router) {
				r.Post("/", h.Regularization.Apply)
				r.Get("/my", h.Regularization.MyList)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Get("/", h.Regularization.List)
					r.Post("/{id}/review", h.Regularization.Review)
				})
			})

			r.Route("/masters", func(r chi.Router) {
				r.Get("/holidays", h.Master.ListHolidays)
				r.Get("/settings/effective", h.Master.GetEffectiveSettings)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)

					r.Route("/offices", func(r chi.Router) {
						r.Get("/", h.Master.ListOffices)
						r.Post("/", h.Master.CreateOffice)
						r.Put("/{id}", h.Master.UpdateOffice)
						r.Delete("/{id}", h.Master.DeleteOffice)
					})

					r.Post("/holidays", h.Master.CreateHoliday)
					r.Delete("/holidays/{id}", h.Master.DeleteHoliday)

					r.Get("/settings", h.Master.GetSettings)
					r.Put("/settings", h.Master.UpdateSettings)
					r.Get("/settings/departments/{department}", h.Master.GetSettings)
					r.Put("/settings/departments/{department}", h.Master.UpdateSettings)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/read-all", h.Notification.MarkAllRead)
				r.Post("/{id}/read", h.Notification.MarkRead)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my", h.Payroll.MySlips)
				r.Get("/{id}/download", h.Payroll.Download)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerOnly)
					r.Post("/generate", h.Payroll.Generate)
					r.Get("/employees/{id}", h.Payroll.EmployeeSlips)
				})
			})
		})
	})
	return r
}
