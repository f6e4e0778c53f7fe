package service_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reviewcrew/review-engine/domain"
	"github.com/reviewcrew/review-engine/service"
	"github.com/reviewcrew/review-engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T, opts service.Options) (*service.Service, *store.Store) {
	ctx := context.Background()
	st, err := store.Open(ctx, store.NewMemoryKV())
	require.NoError(t, err)

	if opts.Now == nil {
		opts.Now = func() time.Time {
			return time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
		}
	}
	if opts.NewID == nil {
		seq := 0
		opts.NewID = func() string { seq++; return fmt.Sprintf("id-%d", seq) }
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}

	return service.New(st, zap.NewNop().Sugar(), opts), st
}

func seedWorkerBiz(t *testing.T, st *store.Store, tier int) (domain.Worker, domain.Business) {
	ctx := context.Background()
	w := domain.Worker{
		ID:        "w1",
		Name:      "Merve Şahin",
		Phone:     "905551234567",
		Role:      domain.RoleWorker,
		City:      "İstanbul",
		Points:    decimal.NewFromInt(10),
		TierLevel: tier,
	}
	b := domain.Business{ID: "b1", Name: "Cafe Nero", City: "İstanbul", TargetReviewCount: 20}
	require.NoError(t, st.UpsertWorker(ctx, w))
	require.NoError(t, st.UpsertBusiness(ctx, b))
	return w, b
}

func seedTask(t *testing.T, st *store.Store, id string, status domain.TaskStatus, link string) domain.Task {
	task := domain.Task{
		ID:          id,
		WorkerID:    "w1",
		BusinessID:  "b1",
		ScheduledAt: time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC),
		Shift:       domain.ShiftMorning,
		Status:      status,
		ReviewLink:  link,
	}
	require.NoError(t, st.UpsertTask(context.Background(), task))
	return task
}

// =============================================================================
// SETTLEMENT ENTRY POINTS
// =============================================================================

func TestUpdateTaskStatus_AwardAndNotification(t *testing.T) {
	// GIVEN: Tier 3 worker (multiplier 1.3), task ASSIGNED
	// WHEN: Transitioning to PUBLISHED
	// THEN: Balance +1.3 and one notification naming the business

	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 3)
	seedTask(t, st, "t1", domain.StatusAssigned, "")

	require.NoError(t, svc.UpdateTaskStatus(ctx, "t1", domain.StatusPublished))

	w, _ := st.GetWorker("w1")
	assert.True(t, w.Points.Equal(decimal.RequireFromString("11.3")), "got %s", w.Points)

	task, _ := st.GetTask("t1")
	assert.Equal(t, domain.StatusPublished, task.Status)

	msgs := st.MessagesByReceiver("w1")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "Cafe Nero")
	assert.False(t, msgs[0].Read)
}

func TestUpdateTaskStatus_SameStatusTwiceSettlesOnce(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	seedTask(t, st, "t1", domain.StatusAssigned, "")

	require.NoError(t, svc.UpdateTaskStatus(ctx, "t1", domain.StatusPublished))
	require.NoError(t, svc.UpdateTaskStatus(ctx, "t1", domain.StatusPublished))

	w, _ := st.GetWorker("w1")
	assert.True(t, w.Points.Equal(decimal.NewFromInt(11)), "second identical transition must not settle, got %s", w.Points)
	assert.Len(t, st.MessagesByReceiver("w1"), 1)
}

func TestUpdateTaskStatus_PublishedToSpamDoubleDelta(t *testing.T) {
	// PUBLISHED -> SPAM_DELETED reverses the award AND applies the penalty.
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 3)
	seedTask(t, st, "t1", domain.StatusPublished, "https://g.page/r/abc")

	require.NoError(t, svc.UpdateTaskStatus(ctx, "t1", domain.StatusSpamDeleted))

	w, _ := st.GetWorker("w1")
	assert.True(t, w.Points.Equal(decimal.RequireFromString("7.4")), "10 - 2.6, got %s", w.Points)
}

func TestUpdateTaskStatus_MissingTaskNoOp(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	seedWorkerBiz(t, st, 0)

	assert.NoError(t, svc.UpdateTaskStatus(context.Background(), "ghost", domain.StatusPublished))
	w, _ := st.GetWorker("w1")
	assert.True(t, w.Points.Equal(decimal.NewFromInt(10)))
}

func TestUpdateTaskStatus_StaleWorkerReferenceNoOp(t *testing.T) {
	// GIVEN: Task whose worker was deleted out from under it
	// THEN: Nothing changes, not even the task status

	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	task := domain.Task{ID: "t1", WorkerID: "ghost", BusinessID: "b1", Status: domain.StatusAssigned}
	require.NoError(t, st.UpsertTask(ctx, task))

	require.NoError(t, svc.UpdateTaskStatus(ctx, "t1", domain.StatusPublished))

	got, _ := st.GetTask("t1")
	assert.Equal(t, domain.StatusAssigned, got.Status)
}

func TestSubmitReview_DefaultsToPendingReview(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	seedTask(t, st, "t1", domain.StatusAssigned, "")

	require.NoError(t, svc.SubmitReview(ctx, "t1", "https://g.page/r/xyz", ""))

	task, _ := st.GetTask("t1")
	assert.Equal(t, domain.StatusPendingReview, task.Status)
	assert.Equal(t, "https://g.page/r/xyz", task.ReviewLink)

	w, _ := st.GetWorker("w1")
	assert.True(t, w.Points.Equal(decimal.NewFromInt(10)), "pending review settles nothing")
}

func TestSubmitReview_DirectPublishSettlesAward(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	seedTask(t, st, "t1", domain.StatusAssigned, "")

	require.NoError(t, svc.SubmitReview(ctx, "t1", "https://g.page/r/xyz", domain.StatusPublished))

	w, _ := st.GetWorker("w1")
	assert.True(t, w.Points.Equal(decimal.NewFromInt(11)))
}

func TestUpdateTaskDetails_NotifiesWorker(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	seedTask(t, st, "t1", domain.StatusAssigned, "")

	content := "Mention the breakfast menu"
	keywords := "kahvaltı, taze"
	require.NoError(t, svc.UpdateTaskDetails(ctx, "t1", &content, &keywords))

	task, _ := st.GetTask("t1")
	assert.Equal(t, content, task.SuggestedContent)
	assert.Equal(t, keywords, task.Keywords)
	assert.Len(t, st.MessagesByReceiver("w1"), 1)
}

// =============================================================================
// SWEEP
// =============================================================================

func TestSweep_OnlyTouchesTasksWithLinks(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	seedTask(t, st, "linked", domain.StatusPendingReview, "https://g.page/r/abc")
	seedTask(t, st, "bare", domain.StatusPendingReview, "")

	res, err := svc.Sweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Published+res.Spam, "exactly the linked task resolves")

	linked, _ := st.GetTask("linked")
	assert.NotEqual(t, domain.StatusPendingReview, linked.Status)

	bare, _ := st.GetTask("bare")
	assert.Equal(t, domain.StatusPendingReview, bare.Status)
}

func TestSweep_ResolvesEveryPendingLinkedTask(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	for i := 0; i < 20; i++ {
		seedTask(t, st, fmt.Sprintf("t%d", i), domain.StatusPendingReview, "https://g.page/r/x")
	}

	res, err := svc.Sweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, 20, res.Published+res.Spam)
	for _, task := range st.ListTasks() {
		assert.NotEqual(t, domain.StatusPendingReview, task.Status)
	}
}

func TestSweep_SecondInvocationRejectedWhileRunning(t *testing.T) {
	svc, st := newTestService(t, service.Options{SweepDelay: 200 * time.Millisecond})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Sweep(ctx)
		done <- err
	}()

	// Give the first sweep time to take the flag.
	time.Sleep(50 * time.Millisecond)
	_, err := svc.Sweep(ctx)
	assert.ErrorIs(t, err, domain.ErrSweepInProgress)

	require.NoError(t, <-done)
}

func TestSweep_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t, service.Options{SweepDelay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Sweep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_ResolvesWorkerByPhone(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	seedWorkerBiz(t, st, 0)

	w, err := svc.Login(context.Background(), "905551234567")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)
}

func TestLogin_UnknownPhone(t *testing.T) {
	svc, _ := newTestService(t, service.Options{})

	_, err := svc.Login(context.Background(), "905000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// TIER WORKFLOW
// =============================================================================

func TestTierWorkflow_RequestApprove(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 2)

	require.NoError(t, svc.RequestTier(ctx, "w1", 6, "https://maps.google.com/contrib/123"))

	w, _ := st.GetWorker("w1")
	require.NotNil(t, w.PendingTierLevel)
	assert.Equal(t, 6, *w.PendingTierLevel)
	assert.Equal(t, domain.TierPending, w.TierStatus)
	assert.Equal(t, 2, w.TierLevel, "level unchanged until approval")

	require.NoError(t, svc.ApproveTier(ctx, "w1"))

	w, _ = st.GetWorker("w1")
	assert.Equal(t, 6, w.TierLevel)
	assert.Nil(t, w.PendingTierLevel)
	assert.Equal(t, domain.TierApproved, w.TierStatus)
	assert.Len(t, st.MessagesByReceiver("w1"), 1)
}

func TestTierWorkflow_Reject(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 2)

	require.NoError(t, svc.RequestTier(ctx, "w1", 6, "proof"))
	require.NoError(t, svc.RejectTier(ctx, "w1"))

	w, _ := st.GetWorker("w1")
	assert.Equal(t, 2, w.TierLevel)
	assert.Nil(t, w.PendingTierLevel)
	assert.Equal(t, domain.TierRejected, w.TierStatus)
}

func TestRequestTier_OutOfRange(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	seedWorkerBiz(t, st, 0)

	err := svc.RequestTier(context.Background(), "w1", 11, "proof")
	assert.ErrorIs(t, err, domain.ErrTierOutOfRange)
}

// =============================================================================
// TICKETS
// =============================================================================

func TestTickets_AdminReplyResolvesAndNotifies(t *testing.T) {
	svc, st := newTestService(t, service.Options{})
	ctx := context.Background()
	seedWorkerBiz(t, st, 0)
	require.NoError(t, st.UpsertWorker(ctx, domain.Worker{ID: "admin_1", Name: "Admin", Role: domain.RoleAdmin}))

	ticket, err := svc.CreateTicket(ctx, "w1", "Ödeme sorunu", "Puanlarım görünmüyor", domain.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	require.Len(t, ticket.Messages, 1)

	require.NoError(t, svc.ReplyTicket(ctx, ticket.ID, "admin_1", "Kontrol ettik, puanlar yansıdı"))

	got, _ := st.GetTicket(ticket.ID)
	assert.Equal(t, domain.TicketResolved, got.Status)
	require.Len(t, got.Messages, 2)
	assert.True(t, got.Messages[1].FromAdmin)
	assert.Len(t, st.MessagesByReceiver("w1"), 1)

	// A worker reply reopens the ticket.
	require.NoError(t, svc.ReplyTicket(ctx, ticket.ID, "w1", "Teşekkürler ama hala eksik"))
	got, _ = st.GetTicket(ticket.ID)
	assert.Equal(t, domain.TicketOpen, got.Status)
}
