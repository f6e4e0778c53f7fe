/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the admin frontend

ROUTE GROUPS:
  /api/login             Phone login
  /api/workers/*         Worker management and tier workflow
  /api/businesses/*      Business management
  /api/tasks/*           Task lifecycle and settlement
  /api/plans/*           Plan preview and confirmation
  /api/assignments/*     Manual assignment
  /api/payments/*        Payout requests and processing
  /api/rates, /api/multipliers
  /api/announcements/*, /api/tickets/*, /api/pool-comments/*
  /api/comments/generate Review draft generator
  /api/sweep             Simulated review-bot sweep

SECURITY NOTE:
  No authentication middleware. All endpoints are public; the login endpoint
  only resolves a worker identity for the frontend.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Post("/", h.CreateWorker)
			r.Post("/bulk", h.BulkCreateWorkers)
			r.Post("/bulk-delete", h.BulkDeleteWorkers)
			r.Put("/{id}", h.UpdateWorker)
			r.Delete("/{id}", h.DeleteWorker)
			r.Get("/{id}/tasks", h.WorkerTasks)
			r.Get("/{id}/messages", h.WorkerMessages)
			r.Post("/{id}/tier/request", h.RequestTier)
			r.Post("/{id}/tier/approve", h.ApproveTier)
			r.Post("/{id}/tier/reject", h.RejectTier)
		})

		r.Post("/messages/{id}/read", h.MarkMessageRead)

		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", h.ListBusinesses)
			r.Post("/", h.CreateBusiness)
			r.Put("/{id}", h.UpdateBusiness)
			r.Delete("/{id}", h.DeleteBusiness)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Delete("/", h.DeleteAllTasks)
			r.Post("/{id}/status", h.UpdateTaskStatus)
			r.Post("/{id}/review", h.SubmitReview)
			r.Post("/{id}/details", h.UpdateTaskDetails)
			r.Delete("/{id}", h.DeleteTask)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Post("/preview", h.PreviewPlan)
			r.Post("/confirm", h.ConfirmPlan)
		})
		r.Post("/assignments/manual", h.AssignManual)

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.ListPayments)
			r.Post("/", h.RequestPayment)
			r.Post("/{id}/approve", h.ApprovePayment)
			r.Post("/{id}/reject", h.RejectPayment)
		})

		r.Get("/rates/conversion", h.GetConversionRate)
		r.Put("/rates/conversion", h.SetConversionRate)
		r.Get("/multipliers", h.GetMultipliers)
		r.Put("/multipliers", h.SetMultipliers)

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", h.ListAnnouncements)
			r.Post("/", h.AddAnnouncement)
			r.Delete("/{id}", h.DeleteAnnouncement)
			r.Post("/{id}/toggle", h.ToggleAnnouncement)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", h.ListTickets)
			r.Post("/", h.CreateTicket)
			r.Post("/{id}/reply", h.ReplyTicket)
			r.Post("/{id}/status", h.SetTicketStatus)
		})

		r.Route("/pool-comments", func(r chi.Router) {
			r.Get("/", h.ListPoolComments)
			r.Post("/", h.AddPoolComment)
			r.Put("/{id}", h.UpdatePoolComment)
			r.Delete("/{id}", h.DeletePoolComment)
		})

		r.Post("/comments/generate", h.GenerateComments)
		r.Post("/sweep", h.Sweep)
	})

	return r
}
