package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/handler"
	mw "github.com/quizdeck-dev/quizdeck/internal/middleware"
	"github.com/quizdeck-dev/quizdeck/internal/middleware/metrics"
	"github.com/quizdeck-dev/quizdeck/internal/setup"
)

// New configures the chi router. Role floors are enforced per subrouter:
// /api requires a session, /api/mod a Moderator one, /api/admin an
// Administrator one. The gate runs before any handler touches data.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	// JSON API only, no scripts/styles needed
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies, "default-src 'none'; frame-ancestors 'none'"))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthz", handler.Healthz(deps.Storage))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public endpoints
	r.Post("/api/register", h.Register)
	r.Post("/api/login", h.Login)
	r.Get("/api/categories", h.GetCategories)

	// Authenticated user endpoints
	r.Group(func(r chi.Router) {
		r.Use(authMw.RequireRole(domain.RoleRegular))
		r.Use(mw.NotifyPageViews(deps.Subject))

		r.Post("/api/logout", h.Logout)

		r.Get("/api/getSets", h.GetSets)
		r.Get("/api/getSet", h.GetSet)
		r.Post("/api/newSet", h.NewSet)
		r.Put("/api/editSet", h.EditSet)
		r.Delete("/api/deleteSet", h.DeleteSet)
		r.Post("/api/reportSet", h.ReportSet)

		r.Get("/api/getCards", h.GetCards)
		r.Post("/api/newCard", h.NewCard)
		r.Put("/api/editCard", h.EditCard)
		r.Delete("/api/deleteCard", h.DeleteCard)

		r.Post("/api/shareSet", h.ShareSet)
		r.Delete("/api/unshareSet", h.UnshareSet)
		r.Get("/api/getSharedSets", h.GetSharedSets)

		r.Put("/api/editUser", h.EditUser)
		r.Put("/api/changePassword", h.ChangePassword)
		r.Get("/api/getUserActivity", h.GetUserActivity)
	})

	// Moderator endpoints
	r.Group(func(r chi.Router) {
		r.Use(authMw.RequireRole(domain.RoleModerator))

		r.Get("/api/mod/getUsers", h.GetUsers)
		r.Get("/api/mod/getAllUsersActivity", h.GetAllUsersActivity)
		r.Get("/api/mod/getUserActivity", h.GetUserActivityByName)
		r.Post("/api/mod/banUser", h.BanUser)
		r.Post("/api/mod/unbanUser", h.UnbanUser)
	})

	// Administrator endpoints
	r.Group(func(r chi.Router) {
		r.Use(authMw.RequireRole(domain.RoleAdministrator))

		r.Get("/api/admin/getModerators", h.GetModerators)
	})

	return r
}
