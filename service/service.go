/*
Package service orchestrates the engine: settlement, planning, payouts,
the review-bot sweep and the admin workflows all go through here.

PURPOSE:
  The store holds state, the settle/planner/wallet packages hold the rules;
  this package glues them together. Every public method is one complete
  user-triggered operation: look entities up, apply the rule, persist,
  notify. Operations run synchronously against the single authoritative
  store, one at a time.

KEY CONCEPTS IN THIS FILE (service.go):
  - Service: dependency bundle with injected clock, id source and rng
  - Notify: the notification sink, appends an unread SYSTEM message
  - UpdateTaskStatus / SubmitReview: the two settlement entry points
  - Sweep: the simulated external review-bot check
  - Login: phone lookup with simulated latency

REENTRANCY:
  Sweep and Login simulate slow external calls. Each carries an in-flight
  flag; a second invocation while one is pending is rejected, never raced.

SEE ALSO:
  - plan.go: plan preview, confirmation and manual assignment
  - admin.go: worker, tier, ticket, announcement and payout administration
*/
package service

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reviewcrew/review-engine/comments"
	"github.com/reviewcrew/review-engine/domain"
	"github.com/reviewcrew/review-engine/settle"
	"github.com/reviewcrew/review-engine/store"
	"github.com/reviewcrew/review-engine/wallet"
)

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	store  *store.Store
	ledger *wallet.Ledger
	gen    *comments.Generator
	log    *zap.SugaredLogger

	now   func() time.Time
	newID func() string
	rng   *rand.Rand

	sweepDelay time.Duration
	loginDelay time.Duration

	sweeping  atomic.Bool
	loggingIn atomic.Bool
}

// Options tune the simulated latencies and inject determinism for tests.
// Zero values fall back to production defaults.
type Options struct {
	SweepDelay time.Duration
	LoginDelay time.Duration
	Now        func() time.Time
	NewID      func() string
	Rand       *rand.Rand
}

func New(st *store.Store, log *zap.SugaredLogger, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Service{
		store:      st,
		log:        log,
		now:        opts.Now,
		newID:      opts.NewID,
		rng:        opts.Rand,
		sweepDelay: opts.SweepDelay,
		loginDelay: opts.LoginDelay,
	}
	s.ledger = wallet.NewLedger(st, s, opts.Now, opts.NewID)
	s.gen = comments.NewGenerator(opts.Rand)
	return s
}

func (s *Service) Store() *store.Store {
	return s.store
}

// =============================================================================
// NOTIFICATION SINK
// =============================================================================

// Notify appends an unread SYSTEM message to the recipient's inbox.
// Fire-and-forget: a persistence failure is logged, never surfaced.
func (s *Service) Notify(ctx context.Context, recipientID, text string) {
	msg := domain.Message{
		ID:         s.newID(),
		SenderID:   "SYSTEM",
		ReceiverID: recipientID,
		Content:    text,
		SentAt:     s.now(),
		Kind:       domain.MessageSystem,
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		s.log.Errorw("notify failed", "recipient", recipientID, "error", err)
	}
}

// =============================================================================
// SETTLEMENT ENTRY POINTS
// =============================================================================

// UpdateTaskStatus transitions a task and settles the point delta. A missing
// task is a silent no-op.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	task, ok := s.store.GetTask(taskID)
	if !ok {
		return nil
	}
	return s.applyTransition(ctx, task, status)
}

// SubmitReview records a review link and transitions the task. An empty
// status defaults to PENDING_REVIEW; an admin submitting PUBLISHED directly
// settles the award in the same call.
func (s *Service) SubmitReview(ctx context.Context, taskID, link string, status domain.TaskStatus) error {
	if status == "" {
		status = domain.StatusPendingReview
	}
	task, ok := s.store.GetTask(taskID)
	if !ok {
		return nil
	}
	task.ReviewLink = link
	return s.applyTransition(ctx, task, status)
}

// applyTransition is the single settlement path. The delta is computed from
// the task's pre-transition status; the status field is only overwritten
// afterwards. A missing worker or business makes the whole call a no-op.
func (s *Service) applyTransition(ctx context.Context, task domain.Task, status domain.TaskStatus) error {
	worker, okW := s.store.GetWorker(task.WorkerID)
	business, okB := s.store.GetBusiness(task.BusinessID)
	if !okW || !okB {
		s.log.Warnw("stale task reference, skipping settlement",
			"task", task.ID, "worker", task.WorkerID, "business", task.BusinessID)
		return nil
	}

	out := settle.Evaluate(task.Status, status, worker.TierLevel, s.store.Multipliers())

	if !out.Delta.IsZero() {
		worker.Points = worker.Points.Add(out.Delta)
		if err := s.store.UpsertWorker(ctx, worker); err != nil {
			return err
		}
		s.log.Infow("settled",
			"task", task.ID, "worker", worker.ID,
			"from", task.Status, "to", status,
			"delta", out.Delta, "reason", out.Reason)
	}

	if text := settle.NotificationText(out, business.Name); text != "" {
		s.Notify(ctx, worker.ID, text)
	}

	task.Status = status
	return s.store.UpsertTask(ctx, task)
}

// UpdateTaskDetails sets per-task instructions and tells the worker to look.
func (s *Service) UpdateTaskDetails(ctx context.Context, taskID string, suggestedContent, keywords *string) error {
	task, ok := s.store.GetTask(taskID)
	if !ok {
		return nil
	}

	changed := false
	if suggestedContent != nil {
		task.SuggestedContent = *suggestedContent
		changed = changed || *suggestedContent != ""
	}
	if keywords != nil {
		task.Keywords = *keywords
		changed = changed || *keywords != ""
	}

	if err := s.store.UpsertTask(ctx, task); err != nil {
		return err
	}
	if changed {
		s.Notify(ctx, task.WorkerID, "An instruction was added to one of your tasks. Please follow it when writing your review.")
	}
	return nil
}

// =============================================================================
// REVIEW-BOT SWEEP
// =============================================================================

// SweepResult counts the status changes one sweep applied.
type SweepResult struct {
	Published int `json:"published"`
	Spam      int `json:"spam"`
}

// Sweep simulates an external platform checking submitted reviews. Only
// tasks that carry a review link are considered. PENDING_REVIEW resolves to
// PUBLISHED 80% of the time and SPAM_DELETED otherwise; an already PUBLISHED
// review is retroactively deleted as spam with 5% probability. Every change
// settles through the normal transition path.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	if !s.sweeping.CompareAndSwap(false, true) {
		return SweepResult{}, domain.ErrSweepInProgress
	}
	defer s.sweeping.Store(false)

	if err := sleep(ctx, s.sweepDelay); err != nil {
		return SweepResult{}, err
	}

	var res SweepResult
	for _, task := range s.store.ListTasks() {
		if task.ReviewLink == "" {
			continue
		}

		next := task.Status
		switch task.Status {
		case domain.StatusPendingReview:
			if s.rng.Float64() > 0.2 {
				next = domain.StatusPublished
				res.Published++
			} else {
				next = domain.StatusSpamDeleted
				res.Spam++
			}
		case domain.StatusPublished:
			if s.rng.Float64() < 0.05 {
				next = domain.StatusSpamDeleted
				res.Spam++
			}
		}

		if next == task.Status {
			continue
		}
		if err := s.applyTransition(ctx, task, next); err != nil {
			return res, err
		}
	}

	s.log.Infow("sweep finished", "published", res.Published, "spam", res.Spam)
	return res, nil
}

// =============================================================================
// LOGIN
// =============================================================================

// Login resolves a worker by phone number, with simulated lookup latency.
// A concurrent login attempt is rejected rather than raced.
func (s *Service) Login(ctx context.Context, phone string) (domain.Worker, error) {
	if !s.loggingIn.CompareAndSwap(false, true) {
		return domain.Worker{}, domain.ErrLoginInProgress
	}
	defer s.loggingIn.Store(false)

	if err := sleep(ctx, s.loginDelay); err != nil {
		return domain.Worker{}, err
	}

	worker, ok := s.store.FindWorkerByPhone(phone)
	if !ok {
		return domain.Worker{}, domain.ErrNotFound
	}
	return worker, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
