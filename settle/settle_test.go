package settle_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/reviewcrew/review-engine/domain"
	"github.com/reviewcrew/review-engine/settle"
)

// =============================================================================
// TRANSITION MATRIX TESTS
// =============================================================================

func TestEvaluate_Award(t *testing.T) {
	// GIVEN: Tier 0 worker (multiplier 1)
	// WHEN: ASSIGNED -> PUBLISHED
	// THEN: Delta is +1

	out := settle.Evaluate(domain.StatusAssigned, domain.StatusPublished, 0, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.NewFromInt(1)), "delta should be +1, got %s", out.Delta)
	assert.Equal(t, settle.ReasonAward, out.Reason)
}

func TestEvaluate_AwardScalesWithTier(t *testing.T) {
	// GIVEN: Tier 3 worker (multiplier 1.3)
	// WHEN: ASSIGNED -> PUBLISHED
	// THEN: Delta is +1.3

	out := settle.Evaluate(domain.StatusAssigned, domain.StatusPublished, 3, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.RequireFromString("1.3")), "delta should be +1.3, got %s", out.Delta)
}

func TestEvaluate_AwardReversal(t *testing.T) {
	// GIVEN: Task currently PUBLISHED
	// WHEN: PUBLISHED -> ASSIGNED
	// THEN: The award is reversed exactly

	out := settle.Evaluate(domain.StatusPublished, domain.StatusAssigned, 3, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.RequireFromString("-1.3")), "delta should be -1.3, got %s", out.Delta)
	assert.Equal(t, settle.ReasonAwardReversed, out.Reason)
}

func TestEvaluate_Penalty(t *testing.T) {
	out := settle.Evaluate(domain.StatusPendingReview, domain.StatusSpamDeleted, 0, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.NewFromInt(-1)))
	assert.Equal(t, settle.ReasonPenalty, out.Reason)
}

func TestEvaluate_PenaltyReversal(t *testing.T) {
	out := settle.Evaluate(domain.StatusSpamDeleted, domain.StatusPendingReview, 0, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, settle.ReasonPenaltyReversed, out.Reason)
}

func TestEvaluate_PublishedToSpam_StacksBothRules(t *testing.T) {
	// GIVEN: Tier 3 worker, task currently PUBLISHED
	// WHEN: PUBLISHED -> SPAM_DELETED
	// THEN: Award reversal (-1.3) and penalty (-1.3) stack to -2.6.
	//       The stacking is the contract, not a single per-edge delta.

	out := settle.Evaluate(domain.StatusPublished, domain.StatusSpamDeleted, 3, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.RequireFromString("-2.6")), "delta should be -2.6, got %s", out.Delta)
	assert.Equal(t, settle.ReasonPenalty, out.Reason, "spam-side reason wins")
}

func TestEvaluate_SpamToPublished_StacksBothRules(t *testing.T) {
	// The mirror image: penalty reversal plus award.
	out := settle.Evaluate(domain.StatusSpamDeleted, domain.StatusPublished, 0, domain.DefaultMultipliers())

	assert.True(t, out.Delta.Equal(decimal.NewFromInt(2)), "delta should be +2, got %s", out.Delta)
}

func TestEvaluate_SameStatus_NoOp(t *testing.T) {
	// Re-applying the current status must settle nothing, for every status.
	statuses := []domain.TaskStatus{
		domain.StatusAssigned,
		domain.StatusPendingReview,
		domain.StatusPublished,
		domain.StatusSpamDeleted,
	}
	for _, st := range statuses {
		out := settle.Evaluate(st, st, 5, domain.DefaultMultipliers())
		assert.True(t, out.Delta.IsZero(), "same-status %s should be a no-op, got %s", st, out.Delta)
	}
}

func TestEvaluate_NeutralTransition(t *testing.T) {
	// ASSIGNED -> PENDING_REVIEW touches neither rule.
	out := settle.Evaluate(domain.StatusAssigned, domain.StatusPendingReview, 7, domain.DefaultMultipliers())

	assert.True(t, out.Delta.IsZero())
	assert.Equal(t, settle.ReasonNone, out.Reason)
	assert.Empty(t, settle.NotificationText(out, "Biz"))
}

// =============================================================================
// MULTIPLIER & ROUNDING TESTS
// =============================================================================

func TestEvaluate_UnknownTierFallsBackToOne(t *testing.T) {
	// Level missing from the table settles at the base unit.
	table := domain.MultiplierTable{0: decimal.NewFromInt(1)}

	out := settle.Evaluate(domain.StatusAssigned, domain.StatusPublished, 9, table)

	assert.True(t, out.Delta.Equal(decimal.NewFromInt(1)))
}

func TestEvaluate_RoundTripDriftBounded(t *testing.T) {
	// GIVEN: Multiplier with more than one decimal place (1.25)
	// WHEN: Award then reversal
	// THEN: Drift stays within 0.1 because each delta rounds to one decimal

	table := domain.MultiplierTable{4: decimal.RequireFromString("1.25")}

	award := settle.Evaluate(domain.StatusAssigned, domain.StatusPublished, 4, table)
	reversal := settle.Evaluate(domain.StatusPublished, domain.StatusAssigned, 4, table)

	drift := award.Delta.Add(reversal.Delta).Abs()
	assert.True(t, drift.LessThanOrEqual(decimal.RequireFromString("0.1")),
		"round-trip drift %s exceeds 0.1", drift)
}

func TestEvaluate_AwardThenReversalRestoresBalance(t *testing.T) {
	// Exact restoration for a one-decimal multiplier.
	table := domain.DefaultMultipliers()
	balance := decimal.RequireFromString("7.4")

	award := settle.Evaluate(domain.StatusAssigned, domain.StatusPublished, 3, table)
	balance = balance.Add(award.Delta)
	reversal := settle.Evaluate(domain.StatusPublished, domain.StatusAssigned, 3, table)
	balance = balance.Add(reversal.Delta)

	assert.True(t, balance.Equal(decimal.RequireFromString("7.4")), "balance should be restored, got %s", balance)
}

// =============================================================================
// NOTIFICATION TEXT
// =============================================================================

func TestNotificationText_NamesBusiness(t *testing.T) {
	out := settle.Evaluate(domain.StatusAssigned, domain.StatusPublished, 0, domain.DefaultMultipliers())

	text := settle.NotificationText(out, "Kebapçı Halil")
	assert.Contains(t, text, "Kebapçı Halil")
	assert.Contains(t, text, "1")
}
