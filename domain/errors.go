/*
errors.go - Centralized error types for the engine

All public operations return explicit errors instead of unwinding through a
generic handler. The API layer maps these sentinels to user-facing advisories.
Referential misses (a task, worker or business id that no longer resolves at
mutation time) are deliberately NOT errors: those operations are silent
no-ops, because a miss means a stale reference from an earlier UI flow.
*/
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientBalance is returned when a payout request exceeds the
	// worker's current live balance. No state is mutated.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrEmptyPlan is returned when the planner cannot schedule a single
	// task: empty eligible pool, or no day within the safety bound matches.
	ErrEmptyPlan = errors.New("no eligible workers or schedulable days")

	// ErrNoWeekdaysSelected is returned when the rule set allows no weekday
	// at all, which would make the calendar walk pointless.
	ErrNoWeekdaysSelected = errors.New("no weekdays selected")

	// ErrDuplicateAssignment is returned by the manual path when the worker
	// already has a task on the same calendar day for any business.
	ErrDuplicateAssignment = errors.New("worker already has a task on this day")

	// ErrSweepInProgress is returned when a review-bot sweep is started
	// while a previous one is still running.
	ErrSweepInProgress = errors.New("status sweep already in progress")

	// ErrLoginInProgress is returned when a login lookup is started while a
	// previous one is still pending.
	ErrLoginInProgress = errors.New("login lookup already in progress")

	// ErrTierOutOfRange is returned for tier levels outside 0-10.
	ErrTierOutOfRange = errors.New("tier level out of range")

	// ErrInvalidMultiplier is returned for non-positive multiplier values.
	ErrInvalidMultiplier = errors.New("multiplier must be positive")

	// ErrNotFound is returned by read paths (not mutations) when an entity
	// id does not resolve.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError reports how far a payout request overshoots.
type InsufficientBalanceError struct {
	WorkerID  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, requested %s",
		e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// DuplicateAssignmentError identifies the day already occupied.
type DuplicateAssignmentError struct {
	WorkerID string
	Date     Day
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("worker %s already has a task on %s", e.WorkerID, e.Date)
}

func (e *DuplicateAssignmentError) Unwrap() error { return ErrDuplicateAssignment }

// IsClientError reports whether the error is a user-correctable advisory
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrEmptyPlan) ||
		errors.Is(err, ErrNoWeekdaysSelected) ||
		errors.Is(err, ErrDuplicateAssignment) ||
		errors.Is(err, ErrTierOutOfRange) ||
		errors.Is(err, ErrInvalidMultiplier)
}
