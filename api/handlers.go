/*
handlers.go - HTTP API handlers for the review coordination engine

PURPOSE:
  Exposes the engine via REST. Handlers parse the request, delegate to the
  service layer and serialize the response. No business rules live here.

ENDPOINTS:
  Auth:
    POST   /api/login                        Phone-number login

  Workers:
    GET    /api/workers                      List workers
    POST   /api/workers                      Create worker
    POST   /api/workers/bulk                 Bulk import
    POST   /api/workers/bulk-delete          Bulk delete
    PUT    /api/workers/{id}                 Update worker
    DELETE /api/workers/{id}                 Delete worker (cascades tasks)
    GET    /api/workers/{id}/tasks           Worker's tasks
    GET    /api/workers/{id}/messages        Worker's inbox
    POST   /api/workers/{id}/tier/request    Request tier upgrade
    POST   /api/workers/{id}/tier/approve    Approve pending tier
    POST   /api/workers/{id}/tier/reject     Reject pending tier

  Businesses:
    GET/POST /api/businesses, PUT/DELETE /api/businesses/{id}

  Tasks:
    GET    /api/tasks                        List tasks
    POST   /api/tasks/{id}/status            Transition status (settles)
    POST   /api/tasks/{id}/review            Submit review link
    POST   /api/tasks/{id}/details           Set instructions
    DELETE /api/tasks/{id}                   Delete one task
    DELETE /api/tasks                        Delete all tasks

  Planning:
    POST   /api/plans/preview                Generate plan (pure)
    POST   /api/plans/confirm                Materialize previewed plan
    POST   /api/assignments/manual           Manual single assignment

  Payments:
    GET    /api/payments                     List requests
    POST   /api/payments                     Request payout
    POST   /api/payments/{id}/approve        Mark paid
    POST   /api/payments/{id}/reject         Reject and refund

  Misc:
    GET/PUT /api/rates/conversion, GET/PUT /api/multipliers
    announcements, tickets, pool-comments, comments/generate,
    POST /api/sweep, POST /api/messages/{id}/read

ERROR HANDLING:
  Service sentinels map to HTTP status:
  - 400: client-correctable advisories (balance, empty plan, duplicates)
  - 404: unknown id on read paths
  - 409: sweep or login already in flight
  - 500: everything else

SEE ALSO:
  - dto.go: Request/response types
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reviewcrew/review-engine/domain"
	"github.com/reviewcrew/review-engine/planner"
	"github.com/reviewcrew/review-engine/service"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the service facade all endpoints delegate to.
type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// =============================================================================
// AUTH
// =============================================================================

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	worker, err := h.svc.Login(r.Context(), req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, worker)
}

// =============================================================================
// WORKERS
// =============================================================================

func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListWorkers())
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	worker, err := h.svc.CreateWorker(r.Context(), domain.Worker{
		Name:   req.Name,
		Phone:  req.Phone,
		Role:   req.Role,
		Gender: req.Gender,
		City:   req.City,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, worker)
}

func (h *Handler) BulkCreateWorkers(w http.ResponseWriter, r *http.Request) {
	var req BulkWorkersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ws := make([]domain.Worker, len(req.Workers))
	for i, c := range req.Workers {
		ws[i] = domain.Worker{
			Name:   c.Name,
			Phone:  c.Phone,
			Role:   c.Role,
			Gender: c.Gender,
			City:   c.City,
		}
	}

	created, err := h.svc.CreateWorkersBulk(r.Context(), ws)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	var worker domain.Worker
	if err := json.NewDecoder(r.Body).Decode(&worker); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	worker.ID = chi.URLParam(r, "id")

	if err := h.svc.UpdateWorker(r.Context(), worker); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, worker)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteWorkers(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BulkDeleteWorkers(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.DeleteWorkers(r.Context(), req.IDs...); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) WorkerTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().TasksByWorker(chi.URLParam(r, "id")))
}

func (h *Handler) WorkerMessages(w http.ResponseWriter, r *http.Request) {
	msgs := h.svc.Store().MessagesByReceiver(chi.URLParam(r, "id"))
	dtos := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = MessageDTO{
			ID:      m.ID,
			Content: m.Content,
			SentAt:  m.SentAt,
			Read:    m.Read,
			Kind:    string(m.Kind),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().MarkMessageRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TIER WORKFLOW
// =============================================================================

func (h *Handler) RequestTier(w http.ResponseWriter, r *http.Request) {
	var req TierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.RequestTier(r.Context(), chi.URLParam(r, "id"), req.Level, req.ProofURL); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ApproveTier(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ApproveTier(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RejectTier(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RejectTier(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// BUSINESSES
// =============================================================================

func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListBusinesses())
}

func (h *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req BusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	b := domain.Business{
		ID:                newID(),
		Name:              req.Name,
		MapsURL:           req.MapsURL,
		City:              req.City,
		TargetReviewCount: req.TargetReviewCount,
	}
	if err := h.svc.Store().UpsertBusiness(r.Context(), b); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var b domain.Business
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	b.ID = chi.URLParam(r, "id")
	if err := h.svc.Store().UpsertBusiness(r.Context(), b); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().DeleteBusiness(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TASKS
// =============================================================================

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListTasks())
}

func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.UpdateTaskStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.SubmitReview(r.Context(), chi.URLParam(r, "id"), req.Link, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateTaskDetails(w http.ResponseWriter, r *http.Request) {
	var req DetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.UpdateTaskDetails(r.Context(), chi.URLParam(r, "id"), req.SuggestedContent, req.Keywords); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteAllTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Store().DeleteAllTasks(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PLANNING
// =============================================================================

func (h *Handler) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rules, err := toPlannerRules(req.Rules)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid plan rules", err)
		return
	}

	plan, err := h.svc.PreviewPlan(req.BusinessID, rules)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) ConfirmPlan(w http.ResponseWriter, r *http.Request) {
	var plan planner.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	tasks, err := h.svc.ConfirmPlan(r.Context(), plan)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tasks)
}

func (h *Handler) AssignManual(w http.ResponseWriter, r *http.Request) {
	var req ManualAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	task, err := h.svc.AssignManual(r.Context(), req.WorkerID, req.BusinessID, day, req.Shift)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func toPlannerRules(in PlanRules) (planner.Rules, error) {
	start, err := domain.ParseDay(in.StartDate)
	if err != nil {
		return planner.Rules{}, err
	}
	weekdays := make([]time.Weekday, len(in.Weekdays))
	for i, d := range in.Weekdays {
		weekdays[i] = time.Weekday(d % 7)
	}
	return planner.Rules{
		TotalTarget:      in.TotalTarget,
		DailyMax:         in.DailyMax,
		RestPeriodDays:   in.RestPeriodDays,
		StartDate:        start,
		Weekdays:         weekdays,
		Gender:           in.Gender,
		MinTierLevel:     in.MinTierLevel,
		LocationPriority: in.LocationPriority,
	}, nil
}

// =============================================================================
// PAYMENTS & RATES
// =============================================================================

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListPaymentRequests())
}

func (h *Handler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	points, err := decimal.NewFromString(req.Points)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid points value", err)
		return
	}

	created, err := h.svc.RequestPayment(r.Context(), req.WorkerID, points, req.Method, req.Details)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ApprovePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RejectPayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetConversionRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"rate": h.svc.Store().ConversionRate().String()})
}

func (h *Handler) SetConversionRate(w http.ResponseWriter, r *http.Request) {
	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate value", err)
		return
	}
	if err := h.svc.SetConversionRate(r.Context(), rate); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetMultipliers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().Multipliers())
}

func (h *Handler) SetMultipliers(w http.ResponseWriter, r *http.Request) {
	var req MultipliersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	table := make(domain.MultiplierTable, len(req.Multipliers))
	for level, raw := range req.Multipliers {
		m, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multiplier value", err)
			return
		}
		table[level] = m
	}

	if err := h.svc.SetMultipliers(r.Context(), table); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ANNOUNCEMENTS
// =============================================================================

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListAnnouncements())
}

func (h *Handler) AddAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	a, err := h.svc.AddAnnouncement(r.Context(), req.Title, req.Content, req.Kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ToggleAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ToggleAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TICKETS
// =============================================================================

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListTickets())
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ticket, err := h.svc.CreateTicket(r.Context(), req.WorkerID, req.Subject, req.Message, req.Priority)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) ReplyTicket(w http.ResponseWriter, r *http.Request) {
	var req TicketReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.ReplyTicket(r.Context(), chi.URLParam(r, "id"), req.SenderID, req.Message); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req TicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.svc.SetTicketStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COMMENT POOL
// =============================================================================

func (h *Handler) ListPoolComments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Store().ListPoolComments())
}

func (h *Handler) AddPoolComment(w http.ResponseWriter, r *http.Request) {
	var req PoolCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := h.svc.AddPoolComment(r.Context(), domain.PoolComment{
		Content:    req.Content,
		Sector:     req.Sector,
		Tags:       req.Tags,
		BusinessID: req.BusinessID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdatePoolComment(w http.ResponseWriter, r *http.Request) {
	var c domain.PoolComment
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c.ID = chi.URLParam(r, "id")
	if err := h.svc.UpdatePoolComment(r.Context(), c); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeletePoolComment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePoolComment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GenerateComments(w http.ResponseWriter, r *http.Request) {
	var req GenerateCommentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Count <= 0 || req.Count > 10 {
		req.Count = 5
	}
	drafts := h.svc.GenerateComments(req.Sector, req.BusinessName, req.Keywords, req.Count, req.Tone)
	writeJSON(w, http.StatusOK, GenerateCommentsResponse{Drafts: drafts})
}

// =============================================================================
// SWEEP
// =============================================================================

func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Sweep(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// HELPERS
// =============================================================================

func newID() string {
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps engine sentinels onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, domain.ErrSweepInProgress), errors.Is(err, domain.ErrLoginInProgress):
		writeError(w, http.StatusConflict, "Operation already in progress", err)
	case domain.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Request rejected", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
