/*
Package wallet implements the payout ledger.

CONTRACT:
  Request:  reject if points exceed the worker's current live balance;
            otherwise deduct eagerly, freeze the fiat value at the current
            conversion rate, create a PENDING request, notify the worker.
  Approve:  PENDING -> PAID, stamp processed time, notify. No balance change,
            the points left at request time.
  Reject:   PENDING -> REJECTED, stamp processed time, restore exactly the
            deducted points ADDITIVELY onto the current balance, notify.

A request or worker id that no longer resolves makes the operation a silent
no-op, consistent with the engine-wide referential-miss policy. A request
that is no longer PENDING is likewise left untouched, so a double reject
cannot restore points twice.
*/
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reviewcrew/review-engine/domain"
)

// Store is the slice of the entity store the ledger needs.
type Store interface {
	GetWorker(id string) (domain.Worker, bool)
	UpsertWorker(ctx context.Context, w domain.Worker) error
	GetPaymentRequest(id string) (domain.PaymentRequest, bool)
	UpsertPaymentRequest(ctx context.Context, r domain.PaymentRequest) error
	ConversionRate() decimal.Decimal
}

// Notifier delivers a worker-facing message. Fire-and-forget: it always
// succeeds from the ledger's viewpoint.
type Notifier interface {
	Notify(ctx context.Context, recipientID, text string)
}

type Ledger struct {
	store    Store
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

func NewLedger(store Store, notifier Notifier, now func() time.Time, newID func() string) *Ledger {
	return &Ledger{store: store, notifier: notifier, now: now, newID: newID}
}

// Request creates a payout request, deducting the points immediately.
func (l *Ledger) Request(ctx context.Context, workerID string, points decimal.Decimal, method domain.PaymentMethod, details string) (domain.PaymentRequest, error) {
	worker, ok := l.store.GetWorker(workerID)
	if !ok {
		return domain.PaymentRequest{}, nil
	}

	if points.GreaterThan(worker.Points) {
		return domain.PaymentRequest{}, &domain.InsufficientBalanceError{
			WorkerID:  workerID,
			Available: worker.Points,
			Requested: points,
		}
	}

	// Fiat value is frozen at the rate in effect now; later rate changes
	// never touch this request.
	fiat := points.Mul(l.store.ConversionRate())

	req := domain.PaymentRequest{
		ID:          l.newID(),
		WorkerID:    worker.ID,
		WorkerName:  worker.Name,
		WorkerPhone: worker.Phone,
		Points:      points,
		Fiat:        fiat,
		Method:      method,
		Details:     details,
		Status:      domain.PaymentPending,
		RequestedAt: l.now(),
	}

	worker.Points = worker.Points.Sub(points)
	if err := l.store.UpsertWorker(ctx, worker); err != nil {
		return domain.PaymentRequest{}, err
	}
	if err := l.store.UpsertPaymentRequest(ctx, req); err != nil {
		return domain.PaymentRequest{}, err
	}

	l.notifier.Notify(ctx, worker.ID,
		fmt.Sprintf("Your payout request was received. Amount: %s. It has been queued for processing.", fiat))

	return req, nil
}

// Approve marks a pending request paid. The points were already deducted.
func (l *Ledger) Approve(ctx context.Context, requestID string) error {
	req, ok := l.store.GetPaymentRequest(requestID)
	if !ok || req.Status != domain.PaymentPending {
		return nil
	}

	now := l.now()
	req.Status = domain.PaymentPaid
	req.ProcessedAt = &now
	if err := l.store.UpsertPaymentRequest(ctx, req); err != nil {
		return err
	}

	l.notifier.Notify(ctx, req.WorkerID,
		fmt.Sprintf("Your payout is complete. %s was sent to your account.", req.Fiat))
	return nil
}

// Reject marks a pending request rejected and restores the deducted points
// onto the worker's CURRENT balance, preserving any changes that happened
// between request and rejection.
func (l *Ledger) Reject(ctx context.Context, requestID string) error {
	req, ok := l.store.GetPaymentRequest(requestID)
	if !ok || req.Status != domain.PaymentPending {
		return nil
	}

	if worker, ok := l.store.GetWorker(req.WorkerID); ok {
		worker.Points = worker.Points.Add(req.Points)
		if err := l.store.UpsertWorker(ctx, worker); err != nil {
			return err
		}
	}

	now := l.now()
	req.Status = domain.PaymentRejected
	req.ProcessedAt = &now
	if err := l.store.UpsertPaymentRequest(ctx, req); err != nil {
		return err
	}

	l.notifier.Notify(ctx, req.WorkerID,
		fmt.Sprintf("Your payout request was rejected. %s points were returned to your balance. Please check your payout details.", req.Points))
	return nil
}
