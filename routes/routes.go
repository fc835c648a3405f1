package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/registration-system/handlers"
	"github.com/Dosada05/registration-system/middleware"
)

// SetupRoutes настраивает все маршруты приложения.
// Мутации турниров доступны только администраторам, остальные операции —
// аутентифицированным делегациям.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	choreographyHandler *handlers.ChoreographyHandler,
	coachHandler *handlers.CoachHandler,
	judgeHandler *handlers.JudgeHandler,
	batchHandler *handlers.BatchHandler,
	statusHandler *handlers.StatusHandler,
	gymnastHandler *handlers.GymnastHandler,
	tournamentHandler *handlers.TournamentHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	// Live-события смены статусов, токен передаётся в query при апгрейде.
	router.Get("/ws/registrations", webSocketHandler.Subscribe)

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.GetByID)

		// Защищенные маршруты только для администраторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(middleware.RoleAdmin))

			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Delete("/{id}", tournamentHandler.Delete)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(middleware.RoleAdmin, middleware.RoleDelegation))

		r.Route("/choreographies", func(r chi.Router) {
			r.Post("/", choreographyHandler.Create)
			r.Get("/", choreographyHandler.List)
			r.Get("/stats/{country}", dashboardHandler.ChoreographyStats)
			r.Get("/{id}", choreographyHandler.GetByID)
			r.Put("/{id}", choreographyHandler.Update)
			r.Delete("/{id}", choreographyHandler.Delete)
		})

		r.Route("/coaches", func(r chi.Router) {
			r.Post("/", coachHandler.Create)
			r.Get("/", coachHandler.List)
			r.Get("/stats/{country}", dashboardHandler.CoachStats)
			r.Get("/{id}", coachHandler.GetByID)
			r.Put("/{id}", coachHandler.Update)
			r.Delete("/{id}", coachHandler.Delete)
		})

		r.Route("/judges", func(r chi.Router) {
			r.Post("/", judgeHandler.Create)
			r.Get("/", judgeHandler.List)
			r.Get("/stats/{country}", dashboardHandler.JudgeStats)
			r.Get("/{id}", judgeHandler.GetByID)
			r.Put("/{id}", judgeHandler.Update)
			r.Delete("/{id}", judgeHandler.Delete)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/", statusHandler.FindByStatus)
			r.Post("/batch", batchHandler.ProcessBatch)
			r.Get("/summary", batchHandler.GetSummary)
			r.Patch("/status", statusHandler.UpdateStatusByIDs)
			r.Patch("/status/bulk", statusHandler.UpdateStatusBatch)
		})

		r.Route("/gymnasts", func(r chi.Router) {
			r.Post("/local", gymnastHandler.CreateLocal)
			r.Get("/{figId}", gymnastHandler.FindByFigID)
		})

		r.Get("/dashboard", dashboardHandler.CountryDashboard)
	})
}
