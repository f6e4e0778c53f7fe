/*
Package settle computes point deltas for task status transitions.

PURPOSE:
  A task's status change is the only thing that moves a worker's balance.
  The engine compares the OLD status against the NEW status and derives a
  delta; it never looks at the new status alone, so re-applying the same
  status is always a zero-delta no-op.

RULES (evaluated independently, summed):
  old != PUBLISHED,    new == PUBLISHED    -> +unit*multiplier  (award)
  old == PUBLISHED,    new != PUBLISHED    -> -unit*multiplier  (reverse award)
  old != SPAM_DELETED, new == SPAM_DELETED -> -unit*multiplier  (penalty)
  old == SPAM_DELETED, new != SPAM_DELETED -> +unit*multiplier  (reverse penalty)

  PUBLISHED -> SPAM_DELETED therefore matches BOTH the reverse-award and the
  penalty rule: the deltas stack to -2*unit*multiplier. That stacking is the
  contract, not a bug to be "fixed" into a single per-edge delta.

ROUNDING:
  The summed delta is rounded to one decimal place before it is applied, so
  repeated transitions cannot accumulate floating-point drift.

The engine is pure: it takes statuses, a tier level and a multiplier table,
and returns a value. Looking entities up and mutating the balance is the
caller's job (see the service package).
*/
package settle

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/reviewcrew/review-engine/domain"
)

// BaseUnit is the point value of one published review before the tier
// multiplier is applied.
var BaseUnit = decimal.NewFromInt(1)

// Reason classifies why a delta was applied, and drives notification text.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonAward           Reason = "award"
	ReasonAwardReversed   Reason = "award_reversed"
	ReasonPenalty         Reason = "penalty"
	ReasonPenaltyReversed Reason = "penalty_reversed"
)

// Outcome is the result of evaluating one transition.
type Outcome struct {
	// Delta is the net balance change, rounded to one decimal place.
	// Zero means the transition settles nothing.
	Delta decimal.Decimal

	// Reason is the dominant cause for notification purposes. When both a
	// published-side and a spam-side rule fire on the same transition, the
	// spam-side reason wins.
	Reason Reason

	// Points is unit*multiplier rounded to one decimal place: the magnitude
	// quoted in notifications even when Delta is twice that.
	Points decimal.Decimal
}

// Evaluate derives the point delta for a transition from old to new status,
// using the worker's current tier level against the multiplier table.
func Evaluate(old, new domain.TaskStatus, tierLevel int, table domain.MultiplierTable) Outcome {
	points := BaseUnit.Mul(table.Lookup(tierLevel)).Round(1)

	delta := decimal.Zero
	reason := ReasonNone

	// Published-side rule.
	if new == domain.StatusPublished && old != domain.StatusPublished {
		delta = delta.Add(points)
		reason = ReasonAward
	} else if old == domain.StatusPublished && new != domain.StatusPublished {
		delta = delta.Sub(points)
		reason = ReasonAwardReversed
	}

	// Spam-side rule. Evaluated independently; overrides the reason.
	if new == domain.StatusSpamDeleted && old != domain.StatusSpamDeleted {
		delta = delta.Sub(points)
		reason = ReasonPenalty
	} else if old == domain.StatusSpamDeleted && new != domain.StatusSpamDeleted {
		delta = delta.Add(points)
		reason = ReasonPenaltyReversed
	}

	return Outcome{
		Delta:  delta.Round(1),
		Reason: reason,
		Points: points,
	}
}

// NotificationText renders the worker-facing message for an outcome,
// naming the business the settlement belongs to.
func NotificationText(o Outcome, businessName string) string {
	switch o.Reason {
	case ReasonAward:
		return fmt.Sprintf("Your review for %s was approved. You earned %s points.", businessName, o.Points)
	case ReasonAwardReversed:
		return fmt.Sprintf("Your points for %s were taken back.", businessName)
	case ReasonPenalty:
		return fmt.Sprintf("Your review for %s was removed as spam. A %s point penalty was applied.", businessName, o.Points)
	case ReasonPenaltyReversed:
		return fmt.Sprintf("Your penalty for %s was cancelled.", businessName)
	default:
		return ""
	}
}
