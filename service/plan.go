/*
Planning operations: preview, confirmation and the manual assignment path.

Preview and confirmation are two discrete steps so a caller can render the
proposed plan before committing. The plan value is ephemeral; only
ConfirmPlan materializes tasks.
*/
package service

import (
	"context"
	"fmt"

	"github.com/reviewcrew/review-engine/domain"
	"github.com/reviewcrew/review-engine/planner"
)

// =============================================================================
// PLAN PREVIEW & CONFIRMATION
// =============================================================================

// PreviewPlan runs the planner against current state without mutating
// anything.
func (s *Service) PreviewPlan(businessID string, rules planner.Rules) (planner.Plan, error) {
	business, ok := s.store.GetBusiness(businessID)
	if !ok {
		return planner.Plan{}, domain.ErrNotFound
	}
	return planner.Generate(s.store.ListWorkers(), s.store.ListTasks(), business, rules)
}

// ConfirmPlan materializes a previewed plan: one ASSIGNED task per proposal,
// each worker's last-task date advanced to the latest of their new tasks,
// and ONE aggregated notification per worker, not one per task.
func (s *Service) ConfirmPlan(ctx context.Context, plan planner.Plan) ([]domain.Task, error) {
	business, ok := s.store.GetBusiness(plan.BusinessID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	var tasks []domain.Task
	lastDay := make(map[string]domain.Day)
	perWorker := make(map[string]int)

	for _, day := range plan.Days {
		for _, pt := range day.Tasks {
			hour, minute := planner.ShiftClock(pt.Shift)
			tasks = append(tasks, domain.Task{
				ID:          s.newID(),
				WorkerID:    pt.WorkerID,
				BusinessID:  business.ID,
				ScheduledAt: day.Date.At(hour, minute),
				Shift:       pt.Shift,
				Status:      domain.StatusAssigned,
			})

			if cur, seen := lastDay[pt.WorkerID]; !seen || day.Date.After(cur) {
				lastDay[pt.WorkerID] = day.Date
			}
			perWorker[pt.WorkerID]++
		}
	}

	if len(tasks) == 0 {
		return nil, domain.ErrEmptyPlan
	}

	if err := s.store.UpsertTasks(ctx, tasks); err != nil {
		return nil, err
	}

	var updated []domain.Worker
	for workerID, day := range lastDay {
		worker, ok := s.store.GetWorker(workerID)
		if !ok {
			continue
		}
		d := day
		worker.LastTaskDate = &d
		updated = append(updated, worker)
	}
	if err := s.store.UpsertWorkers(ctx, updated); err != nil {
		return nil, err
	}

	for workerID, count := range perWorker {
		s.Notify(ctx, workerID,
			fmt.Sprintf("%d new tasks were scheduled for you. Check your panel for details.", count))
	}

	s.log.Infow("plan confirmed", "business", business.ID, "tasks", len(tasks), "workers", len(perWorker))
	return tasks, nil
}

// =============================================================================
// MANUAL ASSIGNMENT
// =============================================================================

// AssignManual bypasses the pool and rest-period logic entirely. The only
// guard is a same-worker same-day collision, checked across ALL businesses.
// This is deliberately narrower than the planner's per-business-ever
// exclusion: manual mode is the operator's escape hatch.
func (s *Service) AssignManual(ctx context.Context, workerID, businessID string, day domain.Day, shift domain.Shift) (domain.Task, error) {
	worker, ok := s.store.GetWorker(workerID)
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}
	business, ok := s.store.GetBusiness(businessID)
	if !ok {
		return domain.Task{}, domain.ErrNotFound
	}

	for _, t := range s.store.TasksByWorker(workerID) {
		if t.Day().Equal(day) {
			return domain.Task{}, &domain.DuplicateAssignmentError{WorkerID: workerID, Date: day}
		}
	}

	hour, minute := planner.ShiftClock(shift)
	task := domain.Task{
		ID:          s.newID(),
		WorkerID:    worker.ID,
		BusinessID:  business.ID,
		ScheduledAt: day.At(hour, minute),
		Shift:       shift,
		Status:      domain.StatusAssigned,
	}
	if err := s.store.UpsertTask(ctx, task); err != nil {
		return domain.Task{}, err
	}

	d := day
	worker.LastTaskDate = &d
	if err := s.store.UpsertWorker(ctx, worker); err != nil {
		return domain.Task{}, err
	}

	s.Notify(ctx, worker.ID,
		fmt.Sprintf("New task: you were assigned to %s. Please check your panel.", business.Name))

	return task, nil
}
