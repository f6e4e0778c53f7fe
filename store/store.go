/*
Package store holds the canonical in-memory collections and mirrors every
mutation to a durable key-value snapshot backend.

PURPOSE:
  The process owns one authoritative copy of all state. Every mutation runs
  as (validate -> mutate in memory -> persist affected collection -> return)
  under a single mutex, so one operation completes fully before the next
  begins. There is no cross-key atomicity: each collection serializes
  independently under its own key, and a crash between two writes may leave
  keys inconsistent. Open tolerates that - missing or unreadable keys load
  as empty/default collections.

KEYS:
  workers, businesses, tasks, pool_comments, multipliers, messages,
  announcements, payment_requests, conversion_rate, tickets

IMPLEMENTATIONS OF KV:
  - store/sqlite: durable SQLite-backed snapshots
  - MemoryKV (this package): in-memory, for tests
*/
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/reviewcrew/review-engine/domain"
)

// =============================================================================
// KV - Durable snapshot backend
// =============================================================================

// KV persists whole-collection snapshots. Get returns (nil, nil) for a key
// that has never been written.
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Snapshot keys, one per collection.
const (
	KeyWorkers         = "workers"
	KeyBusinesses      = "businesses"
	KeyTasks           = "tasks"
	KeyPoolComments    = "pool_comments"
	KeyMultipliers     = "multipliers"
	KeyMessages        = "messages"
	KeyAnnouncements   = "announcements"
	KeyPaymentRequests = "payment_requests"
	KeyConversionRate  = "conversion_rate"
	KeyTickets         = "tickets"
)

// =============================================================================
// STORE - Canonical collections
// =============================================================================

type Store struct {
	mu sync.RWMutex
	kv KV

	workers         []domain.Worker
	businesses      []domain.Business
	tasks           []domain.Task
	poolComments    []domain.PoolComment
	paymentRequests []domain.PaymentRequest
	tickets         []domain.Ticket
	messages        []domain.Message
	announcements   []domain.Announcement
	multipliers     domain.MultiplierTable
	conversionRate  decimal.Decimal
}

// Open loads every collection from the backend. Missing keys initialize
// empty; the multiplier table and conversion rate fall back to defaults.
func Open(ctx context.Context, kv KV) (*Store, error) {
	s := &Store{
		kv:             kv,
		multipliers:    domain.DefaultMultipliers(),
		conversionRate: decimal.NewFromInt(10),
	}

	loads := []struct {
		key  string
		dest any
	}{
		{KeyWorkers, &s.workers},
		{KeyBusinesses, &s.businesses},
		{KeyTasks, &s.tasks},
		{KeyPoolComments, &s.poolComments},
		{KeyPaymentRequests, &s.paymentRequests},
		{KeyTickets, &s.tickets},
		{KeyMessages, &s.messages},
		{KeyAnnouncements, &s.announcements},
		{KeyMultipliers, &s.multipliers},
		{KeyConversionRate, &s.conversionRate},
	}

	for _, l := range loads {
		raw, err := kv.Get(ctx, l.key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", l.key, err)
		}
		if len(raw) == 0 {
			continue
		}
		if err := json.Unmarshal(raw, l.dest); err != nil {
			return nil, fmt.Errorf("decode %s: %w", l.key, err)
		}
	}

	return s, nil
}

func (s *Store) persistLocked(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// =============================================================================
// WORKERS
// =============================================================================

func (s *Store) ListWorkers() []domain.Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Worker, len(s.workers))
	copy(out, s.workers)
	return out
}

func (s *Store) GetWorker(id string) (domain.Worker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workers {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Worker{}, false
}

func (s *Store) FindWorkerByPhone(phone string) (domain.Worker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workers {
		if w.Phone == phone {
			return w, true
		}
	}
	return domain.Worker{}, false
}

// UpsertWorker replaces the worker with the same id or appends a new one.
func (s *Store) UpsertWorker(ctx context.Context, w domain.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertWorkerLocked(w)
	return s.persistLocked(ctx, KeyWorkers, s.workers)
}

// UpsertWorkers applies a batch in one persist.
func (s *Store) UpsertWorkers(ctx context.Context, ws []domain.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range ws {
		s.upsertWorkerLocked(w)
	}
	return s.persistLocked(ctx, KeyWorkers, s.workers)
}

func (s *Store) upsertWorkerLocked(w domain.Worker) {
	for i := range s.workers {
		if s.workers[i].ID == w.ID {
			s.workers[i] = w
			return
		}
	}
	s.workers = append(s.workers, w)
}

// DeleteWorkers removes the workers and cascades deletion of their tasks.
// Settled points are NOT reversed: a history wipe is not a settlement
// reversal.
func (s *Store) DeleteWorkers(ctx context.Context, ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.workers[:0]
	for _, w := range s.workers {
		if !drop[w.ID] {
			kept = append(kept, w)
		}
	}
	s.workers = kept

	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if !drop[t.WorkerID] {
			keptTasks = append(keptTasks, t)
		}
	}
	s.tasks = keptTasks

	if err := s.persistLocked(ctx, KeyWorkers, s.workers); err != nil {
		return err
	}
	return s.persistLocked(ctx, KeyTasks, s.tasks)
}

// =============================================================================
// BUSINESSES
// =============================================================================

func (s *Store) ListBusinesses() []domain.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Business, len(s.businesses))
	copy(out, s.businesses)
	return out
}

func (s *Store) GetBusiness(id string) (domain.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.businesses {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Business{}, false
}

func (s *Store) UpsertBusiness(ctx context.Context, b domain.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.businesses {
		if s.businesses[i].ID == b.ID {
			s.businesses[i] = b
			return s.persistLocked(ctx, KeyBusinesses, s.businesses)
		}
	}
	s.businesses = append(s.businesses, b)
	return s.persistLocked(ctx, KeyBusinesses, s.businesses)
}

// DeleteBusiness removes the business and cascades deletion of its tasks.
func (s *Store) DeleteBusiness(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.businesses[:0]
	for _, b := range s.businesses {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.businesses = kept

	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.BusinessID != id {
			keptTasks = append(keptTasks, t)
		}
	}
	s.tasks = keptTasks

	if err := s.persistLocked(ctx, KeyBusinesses, s.businesses); err != nil {
		return err
	}
	return s.persistLocked(ctx, KeyTasks, s.tasks)
}

// =============================================================================
// TASKS
// =============================================================================

func (s *Store) ListTasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) GetTask(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

func (s *Store) TasksByWorker(workerID string) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if t.WorkerID == workerID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) TasksByBusiness(businessID string) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if t.BusinessID == businessID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) UpsertTask(ctx context.Context, t domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertTaskLocked(t)
	return s.persistLocked(ctx, KeyTasks, s.tasks)
}

func (s *Store) UpsertTasks(ctx context.Context, ts []domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range ts {
		s.upsertTaskLocked(t)
	}
	return s.persistLocked(ctx, KeyTasks, s.tasks)
}

func (s *Store) upsertTaskLocked(t domain.Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return
		}
	}
	s.tasks = append(s.tasks, t)
}

// DeleteTask removes a single task. Already-settled points stay untouched.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.persistLocked(ctx, KeyTasks, s.tasks)
}

// DeleteAllTasks wipes the task history. Worker balances and last-task
// dates are deliberately left as they are.
func (s *Store) DeleteAllTasks(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	return s.persistLocked(ctx, KeyTasks, s.tasks)
}

// =============================================================================
// MULTIPLIERS & CONVERSION RATE
// =============================================================================

func (s *Store) Multipliers() domain.MultiplierTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.multipliers.Clone()
}

func (s *Store) SetMultipliers(ctx context.Context, t domain.MultiplierTable) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multipliers = t.Clone()
	return s.persistLocked(ctx, KeyMultipliers, s.multipliers)
}

func (s *Store) ConversionRate() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conversionRate
}

func (s *Store) SetConversionRate(ctx context.Context, rate decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversionRate = rate
	return s.persistLocked(ctx, KeyConversionRate, s.conversionRate)
}

// =============================================================================
// PAYMENT REQUESTS
// =============================================================================

func (s *Store) ListPaymentRequests() []domain.PaymentRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PaymentRequest, len(s.paymentRequests))
	copy(out, s.paymentRequests)
	return out
}

func (s *Store) GetPaymentRequest(id string) (domain.PaymentRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.paymentRequests {
		if r.ID == id {
			return r, true
		}
	}
	return domain.PaymentRequest{}, false
}

func (s *Store) UpsertPaymentRequest(ctx context.Context, r domain.PaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.paymentRequests {
		if s.paymentRequests[i].ID == r.ID {
			s.paymentRequests[i] = r
			return s.persistLocked(ctx, KeyPaymentRequests, s.paymentRequests)
		}
	}
	// Newest first, matching how operators review the queue.
	s.paymentRequests = append([]domain.PaymentRequest{r}, s.paymentRequests...)
	return s.persistLocked(ctx, KeyPaymentRequests, s.paymentRequests)
}

// =============================================================================
// MESSAGES
// =============================================================================

func (s *Store) MessagesByReceiver(receiverID string) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Message
	for _, m := range s.messages {
		if m.ReceiverID == receiverID {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) AppendMessage(ctx context.Context, m domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	return s.persistLocked(ctx, KeyMessages, s.messages)
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			return s.persistLocked(ctx, KeyMessages, s.messages)
		}
	}
	return nil
}

// =============================================================================
// ANNOUNCEMENTS
// =============================================================================

func (s *Store) ListAnnouncements() []domain.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}

func (s *Store) UpsertAnnouncement(ctx context.Context, a domain.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.announcements {
		if s.announcements[i].ID == a.ID {
			s.announcements[i] = a
			return s.persistLocked(ctx, KeyAnnouncements, s.announcements)
		}
	}
	s.announcements = append([]domain.Announcement{a}, s.announcements...)
	return s.persistLocked(ctx, KeyAnnouncements, s.announcements)
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.announcements[:0]
	for _, a := range s.announcements {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.announcements = kept
	return s.persistLocked(ctx, KeyAnnouncements, s.announcements)
}

// =============================================================================
// POOL COMMENTS
// =============================================================================

func (s *Store) ListPoolComments() []domain.PoolComment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PoolComment, len(s.poolComments))
	copy(out, s.poolComments)
	return out
}

func (s *Store) UpsertPoolComment(ctx context.Context, c domain.PoolComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.poolComments {
		if s.poolComments[i].ID == c.ID {
			s.poolComments[i] = c
			return s.persistLocked(ctx, KeyPoolComments, s.poolComments)
		}
	}
	s.poolComments = append([]domain.PoolComment{c}, s.poolComments...)
	return s.persistLocked(ctx, KeyPoolComments, s.poolComments)
}

func (s *Store) DeletePoolComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.poolComments[:0]
	for _, c := range s.poolComments {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.poolComments = kept
	return s.persistLocked(ctx, KeyPoolComments, s.poolComments)
}

// =============================================================================
// TICKETS
// =============================================================================

func (s *Store) ListTickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

func (s *Store) GetTicket(id string) (domain.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Ticket{}, false
}

func (s *Store) UpsertTicket(ctx context.Context, t domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == t.ID {
			s.tickets[i] = t
			return s.persistLocked(ctx, KeyTickets, s.tickets)
		}
	}
	s.tickets = append([]domain.Ticket{t}, s.tickets...)
	return s.persistLocked(ctx, KeyTickets, s.tickets)
}
