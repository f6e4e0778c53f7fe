/*
Administration operations: worker CRUD, the tier approval workflow, support
tickets, announcements, the comment pool and payout processing.
*/
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/reviewcrew/review-engine/comments"
	"github.com/reviewcrew/review-engine/domain"
)

// =============================================================================
// WORKERS
// =============================================================================

// CreateWorker registers a worker, minting an id when none is supplied.
func (s *Service) CreateWorker(ctx context.Context, w domain.Worker) (domain.Worker, error) {
	if w.ID == "" {
		w.ID = s.newID()
	}
	if w.Role == "" {
		w.Role = domain.RoleWorker
	}
	if w.TierStatus == "" {
		w.TierStatus = domain.TierNone
	}
	if err := s.store.UpsertWorker(ctx, w); err != nil {
		return domain.Worker{}, err
	}
	return w, nil
}

// CreateWorkersBulk registers an imported batch in one persist.
func (s *Service) CreateWorkersBulk(ctx context.Context, ws []domain.Worker) ([]domain.Worker, error) {
	for i := range ws {
		if ws[i].ID == "" {
			ws[i].ID = s.newID()
		}
		if ws[i].Role == "" {
			ws[i].Role = domain.RoleWorker
		}
		if ws[i].TierStatus == "" {
			ws[i].TierStatus = domain.TierNone
		}
	}
	if err := s.store.UpsertWorkers(ctx, ws); err != nil {
		return nil, err
	}
	s.log.Infow("bulk import", "workers", len(ws))
	return ws, nil
}

func (s *Service) UpdateWorker(ctx context.Context, w domain.Worker) error {
	if _, ok := s.store.GetWorker(w.ID); !ok {
		return domain.ErrNotFound
	}
	return s.store.UpsertWorker(ctx, w)
}

// DeleteWorkers removes workers and their tasks. Settled points elsewhere
// in the system stay as they are.
func (s *Service) DeleteWorkers(ctx context.Context, ids ...string) error {
	return s.store.DeleteWorkers(ctx, ids...)
}

// =============================================================================
// TIER WORKFLOW
// =============================================================================

// RequestTier files a tier upgrade for admin review.
func (s *Service) RequestTier(ctx context.Context, workerID string, level int, proofURL string) error {
	if level < domain.MinTierLevel || level > domain.MaxTierLevel {
		return domain.ErrTierOutOfRange
	}
	worker, ok := s.store.GetWorker(workerID)
	if !ok {
		return nil
	}
	worker.PendingTierLevel = &level
	worker.TierProofURL = proofURL
	worker.TierStatus = domain.TierPending
	return s.store.UpsertWorker(ctx, worker)
}

// ApproveTier promotes the worker to the requested level. Without a pending
// request this is a no-op.
func (s *Service) ApproveTier(ctx context.Context, workerID string) error {
	worker, ok := s.store.GetWorker(workerID)
	if !ok || worker.PendingTierLevel == nil {
		return nil
	}

	level := *worker.PendingTierLevel
	worker.TierLevel = level
	worker.PendingTierLevel = nil
	worker.TierStatus = domain.TierApproved
	if err := s.store.UpsertWorker(ctx, worker); err != nil {
		return err
	}

	s.Notify(ctx, worker.ID,
		fmt.Sprintf("Congratulations! Tier level %d was approved. Your tasks now earn more points.", level))
	return nil
}

func (s *Service) RejectTier(ctx context.Context, workerID string) error {
	worker, ok := s.store.GetWorker(workerID)
	if !ok {
		return nil
	}
	worker.PendingTierLevel = nil
	worker.TierStatus = domain.TierRejected
	if err := s.store.UpsertWorker(ctx, worker); err != nil {
		return err
	}

	s.Notify(ctx, worker.ID,
		"Your tier verification request was not approved. Please check the proof link and try again.")
	return nil
}

// =============================================================================
// SUPPORT TICKETS
// =============================================================================

// CreateTicket opens a ticket with the worker's first message attached.
func (s *Service) CreateTicket(ctx context.Context, workerID, subject, body string, priority domain.TicketPriority) (domain.Ticket, error) {
	worker, ok := s.store.GetWorker(workerID)
	if !ok {
		return domain.Ticket{}, domain.ErrNotFound
	}

	now := s.now()
	ticket := domain.Ticket{
		ID:         s.newID(),
		WorkerID:   worker.ID,
		WorkerName: worker.Name,
		Subject:    subject,
		Status:     domain.TicketOpen,
		Priority:   priority,
		CreatedAt:  now,
		UpdatedAt:  now,
		Messages: []domain.TicketMessage{{
			ID:         s.newID(),
			SenderID:   worker.ID,
			SenderName: worker.Name,
			Body:       body,
			CreatedAt:  now,
			FromAdmin:  false,
		}},
	}
	if err := s.store.UpsertTicket(ctx, ticket); err != nil {
		return domain.Ticket{}, err
	}
	return ticket, nil
}

// ReplyTicket appends a message. An admin reply resolves the ticket and
// notifies the worker; a worker reply reopens it.
func (s *Service) ReplyTicket(ctx context.Context, ticketID, senderID, body string) error {
	ticket, ok := s.store.GetTicket(ticketID)
	if !ok {
		return domain.ErrNotFound
	}

	senderName := "Unknown"
	fromAdmin := false
	if sender, ok := s.store.GetWorker(senderID); ok {
		senderName = sender.Name
		fromAdmin = sender.Role == domain.RoleAdmin
	}

	now := s.now()
	ticket.Messages = append(ticket.Messages, domain.TicketMessage{
		ID:         s.newID(),
		SenderID:   senderID,
		SenderName: senderName,
		Body:       body,
		CreatedAt:  now,
		FromAdmin:  fromAdmin,
	})
	ticket.UpdatedAt = now
	if fromAdmin {
		ticket.Status = domain.TicketResolved
	} else {
		ticket.Status = domain.TicketOpen
	}

	if err := s.store.UpsertTicket(ctx, ticket); err != nil {
		return err
	}

	if fromAdmin {
		preview := body
		if len([]rune(preview)) > 30 {
			preview = string([]rune(preview)[:30]) + "..."
		}
		s.Notify(ctx, ticket.WorkerID,
			fmt.Sprintf("Your support ticket (#%s) got a reply: %q", shortID(ticket.ID), preview))
	}
	return nil
}

func (s *Service) SetTicketStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	ticket, ok := s.store.GetTicket(ticketID)
	if !ok {
		return domain.ErrNotFound
	}
	ticket.Status = status
	ticket.UpdatedAt = s.now()
	return s.store.UpsertTicket(ctx, ticket)
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// =============================================================================
// ANNOUNCEMENTS
// =============================================================================

func (s *Service) AddAnnouncement(ctx context.Context, title, content string, kind domain.AnnouncementKind) (domain.Announcement, error) {
	if kind == "" {
		kind = domain.AnnouncementInfo
	}
	a := domain.Announcement{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		CreatedAt: s.now(),
		Active:    true,
		Kind:      kind,
	}
	if err := s.store.UpsertAnnouncement(ctx, a); err != nil {
		return domain.Announcement{}, err
	}
	return a, nil
}

func (s *Service) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.store.DeleteAnnouncement(ctx, id)
}

func (s *Service) ToggleAnnouncement(ctx context.Context, id string) error {
	for _, a := range s.store.ListAnnouncements() {
		if a.ID == id {
			a.Active = !a.Active
			return s.store.UpsertAnnouncement(ctx, a)
		}
	}
	return domain.ErrNotFound
}

// =============================================================================
// COMMENT POOL
// =============================================================================

func (s *Service) AddPoolComment(ctx context.Context, c domain.PoolComment) (domain.PoolComment, error) {
	if c.ID == "" {
		c.ID = s.newID()
	}
	if err := s.store.UpsertPoolComment(ctx, c); err != nil {
		return domain.PoolComment{}, err
	}
	return c, nil
}

func (s *Service) UpdatePoolComment(ctx context.Context, c domain.PoolComment) error {
	return s.store.UpsertPoolComment(ctx, c)
}

func (s *Service) DeletePoolComment(ctx context.Context, id string) error {
	return s.store.DeletePoolComment(ctx, id)
}

// GenerateComments produces review drafts from the sector template bank.
func (s *Service) GenerateComments(sector domain.Sector, businessName string, keywords []string, count int, tone comments.Tone) []string {
	return s.gen.Generate(sector, businessName, keywords, count, tone)
}

// =============================================================================
// PAYMENTS & RATES
// =============================================================================

func (s *Service) RequestPayment(ctx context.Context, workerID string, points decimal.Decimal, method domain.PaymentMethod, details string) (domain.PaymentRequest, error) {
	return s.ledger.Request(ctx, workerID, points, method, details)
}

func (s *Service) ApprovePayment(ctx context.Context, requestID string) error {
	return s.ledger.Approve(ctx, requestID)
}

func (s *Service) RejectPayment(ctx context.Context, requestID string) error {
	return s.ledger.Reject(ctx, requestID)
}

func (s *Service) SetConversionRate(ctx context.Context, rate decimal.Decimal) error {
	s.log.Infow("conversion rate changed", "rate", rate)
	return s.store.SetConversionRate(ctx, rate)
}

// SetMultipliers replaces the tier table. Past settlements are never
// rescored.
func (s *Service) SetMultipliers(ctx context.Context, table domain.MultiplierTable) error {
	return s.store.SetMultipliers(ctx, table)
}
