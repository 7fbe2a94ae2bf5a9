package routes

import (
	"github.com/emontecinos/futbol-tracker/handlers"
	"github.com/emontecinos/futbol-tracker/middleware"
	"github.com/emontecinos/futbol-tracker/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes arma el árbol de rutas completo. La lectura de la tabla y
// del historial es pública; toda mutación exige token y rol de admin.
func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	standingsHandler *handlers.StandingsHandler,
	matchHandler *handlers.MatchHandler,
	clubHandler *handlers.ClubHandler,
	playerHandler *handlers.PlayerHandler,
	suspensionHandler *handlers.SuspensionHandler,
	webSocketHandler *handlers.WebSocketHandler,
	jwtSecret string,
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

	requireAdmin := func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize(models.RoleAdmin))
	}

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/standings", func(r chi.Router) {
		r.Get("/", standingsHandler.ListRankings)
		r.Get("/season", standingsHandler.GetSeason)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/recalculate", standingsHandler.Recalculate)
			r.Post("/rollover", standingsHandler.RolloverSeason)
			r.Put("/season/date3", standingsHandler.SetDate3Passed)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.List)
		r.Get("/{matchID}", matchHandler.GetByID)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", matchHandler.Record)
			r.Put("/{matchID}", matchHandler.Edit)
		})
	})

	router.Route("/clubs", func(r chi.Router) {
		r.Get("/", clubHandler.List)
		r.Get("/{clubID}", clubHandler.GetByID)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Put("/{clubID}/series-disabled", standingsHandler.SetSeriesDisabled)
			r.Post("/{clubID}/crest", clubHandler.UploadCrest)
			r.Delete("/{clubID}/crest", clubHandler.RemoveCrest)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{rut}", playerHandler.GetByRut)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", playerHandler.Register)
		})
	})

	router.Route("/suspensions", func(r chi.Router) {
		r.Get("/", suspensionHandler.List)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", suspensionHandler.Create)
			r.Put("/{suspensionID}", suspensionHandler.Update)
		})
	})

	router.Get("/ws/standings", webSocketHandler.ServeStandings)
}
