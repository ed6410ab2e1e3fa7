/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the roster frontend

ROUTE GROUPS:
  /api/roles            Role reference data
  /api/usuarios/*       Employee management
  /api/festivos/*       Holiday calendar
  /api/turnos/*         Shift ledger and assignment
  /api/reportes/*       Aggregated reports
  /health               Liveness probe

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. origins lists
// the allowed CORS origins.
func NewRouter(h *Handler, origins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/roles", h.ListRoles)

		// Employee routes
		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.ReplaceEmployee)
			r.Patch("/{id}", h.PatchEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		// Holiday routes
		r.Route("/festivos", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/defaults", h.AddDefaultHolidays)
			r.Get("/{id}", h.GetHoliday)
			r.Patch("/{id}", h.PatchHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Shift routes
		r.Route("/turnos", func(r chi.Router) {
			r.Post("/asignar", h.AssignShift)
			r.Post("/ausencia/rango", h.AssignAbsenceRange)
			r.Post("/cumpleanos/mes/{year}/{month}", h.AssignBirthdays)
			r.Get("/mes/{year}/{month}", h.ListMonth)
			r.Get("/mes/{year}/{month}/export", h.ExportMonth)
			r.Get("/{id}", h.GetEntry)
			r.Patch("/{id}", h.PatchEntry)
		})

		// Report routes
		r.Route("/reportes", func(r chi.Router) {
			r.Post("/trabajados", h.WorkedReport)
			r.Post("/turnos", h.ShiftTypeReport)
			r.Post("/festivos", h.HolidayReport)
			r.Post("/vacaciones", h.VacationReport)
			r.Get("/years", h.ReportYears)
		})
	})

	return r
}
