package planner_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewcrew/review-engine/domain"
	"github.com/reviewcrew/review-engine/planner"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var allWeekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

func worker(id, city string, gender domain.Gender, tier int, last *domain.Day) domain.Worker {
	return domain.Worker{
		ID:           id,
		Name:         "Worker " + id,
		Role:         domain.RoleWorker,
		Gender:       gender,
		City:         city,
		TierLevel:    tier,
		LastTaskDate: last,
	}
}

func workerPool(n int) []domain.Worker {
	ws := make([]domain.Worker, n)
	for i := range ws {
		ws[i] = worker(fmt.Sprintf("w%d", i), "Ankara", domain.GenderMale, 0, nil)
	}
	return ws
}

func baseRules(target, dailyMax, rest int) planner.Rules {
	return planner.Rules{
		TotalTarget:    target,
		DailyMax:       dailyMax,
		RestPeriodDays: rest,
		StartDate:      domain.NewDay(2026, time.March, 2), // a Monday
		Weekdays:       allWeekdays,
	}
}

var biz = domain.Business{ID: "biz-1", Name: "Test Biz", City: "İstanbul", TargetReviewCount: 10}

// =============================================================================
// TARGET & CAPACITY TESTS
// =============================================================================

func TestGenerate_HitsTargetExactly(t *testing.T) {
	// GIVEN: 10 workers, target 7, dailyMax 3
	// WHEN: Generating a plan
	// THEN: Exactly 7 tasks are proposed, never an overshoot

	plan, err := planner.Generate(workerPool(10), nil, biz, baseRules(7, 3, 0))
	require.NoError(t, err)

	assert.Equal(t, 7, plan.TaskCount())
}

func TestGenerate_SpansEnoughDays(t *testing.T) {
	// GIVEN: target 5, dailyMax 2, 3 workers, rest 0, all weekdays
	// THEN: The plan spans at least 3 calendar days (ceil(5/2))
	//       and never repeats a worker within one day

	plan, err := planner.Generate(workerPool(3), nil, biz, baseRules(5, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, 5, plan.TaskCount())
	assert.GreaterOrEqual(t, len(plan.Days), 3)

	for _, day := range plan.Days {
		seen := map[string]bool{}
		for _, task := range day.Tasks {
			assert.False(t, seen[task.WorkerID], "worker %s repeated on %s", task.WorkerID, day.Date)
			seen[task.WorkerID] = true
		}
	}
}

func TestGenerate_DailyMaxRespected(t *testing.T) {
	plan, err := planner.Generate(workerPool(10), nil, biz, baseRules(9, 2, 0))
	require.NoError(t, err)

	for _, day := range plan.Days {
		assert.LessOrEqual(t, len(day.Tasks), 2)
	}
}

func TestGenerate_PartialPlanWhenTargetUnreachable(t *testing.T) {
	// GIVEN: 1 worker with a 400-day rest period
	// THEN: The walk hits the safety bound and returns the single-task plan

	plan, err := planner.Generate(workerPool(1), nil, biz, baseRules(5, 1, 400))
	require.NoError(t, err)

	assert.Equal(t, 1, plan.TaskCount())
}

// =============================================================================
// POOL FILTER TESTS
// =============================================================================

func TestGenerate_ExcludesWorkersWhoServedBusiness(t *testing.T) {
	// GIVEN: w0 already has a SPAM_DELETED task for this business
	// THEN: w0 is never planned again, regardless of task status

	ws := workerPool(2)
	tasks := []domain.Task{{
		ID:          "t1",
		WorkerID:    "w0",
		BusinessID:  biz.ID,
		ScheduledAt: time.Date(2025, time.January, 5, 9, 30, 0, 0, time.UTC),
		Status:      domain.StatusSpamDeleted,
	}}

	plan, err := planner.Generate(ws, tasks, biz, baseRules(3, 1, 0))
	require.NoError(t, err)

	for _, day := range plan.Days {
		for _, task := range day.Tasks {
			assert.NotEqual(t, "w0", task.WorkerID)
		}
	}
}

func TestGenerate_GenderAndTierFilters(t *testing.T) {
	ws := []domain.Worker{
		worker("m-low", "Ankara", domain.GenderMale, 1, nil),
		worker("f-low", "Ankara", domain.GenderFemale, 1, nil),
		worker("f-high", "Ankara", domain.GenderFemale, 5, nil),
	}
	rules := baseRules(2, 2, 0)
	rules.Gender = domain.GenderFemale
	rules.MinTierLevel = 3

	plan, err := planner.Generate(ws, nil, biz, rules)
	require.NoError(t, err)

	require.Equal(t, 1, plan.TaskCount())
	assert.Equal(t, "f-high", plan.Days[0].Tasks[0].WorkerID)
}

func TestGenerate_AdminsNeverPlanned(t *testing.T) {
	admin := worker("a1", "Ankara", domain.GenderMale, 0, nil)
	admin.Role = domain.RoleAdmin

	_, err := planner.Generate([]domain.Worker{admin}, nil, biz, baseRules(1, 1, 0))
	assert.ErrorIs(t, err, domain.ErrEmptyPlan)
}

func TestGenerate_EmptyPoolErrors(t *testing.T) {
	_, err := planner.Generate(nil, nil, biz, baseRules(3, 1, 0))
	assert.ErrorIs(t, err, domain.ErrEmptyPlan)
}

func TestGenerate_NoWeekdaysErrors(t *testing.T) {
	rules := baseRules(3, 1, 0)
	rules.Weekdays = nil

	_, err := planner.Generate(workerPool(3), nil, biz, rules)
	assert.ErrorIs(t, err, domain.ErrNoWeekdaysSelected)
}

// =============================================================================
// ORDERING TESTS
// =============================================================================

func TestGenerate_LocationPriorityRanksCityMatchFirst(t *testing.T) {
	// GIVEN: An out-of-town worker who has never worked, and an Istanbul
	//        worker with recent history
	// WHEN: Location priority is on
	// THEN: The city match outranks recency

	recent := domain.NewDay(2026, time.February, 25)
	ws := []domain.Worker{
		worker("out-fresh", "Ankara", domain.GenderMale, 0, nil),
		worker("ist-recent", "İstanbul", domain.GenderMale, 0, &recent),
	}
	rules := baseRules(1, 1, 0)
	rules.LocationPriority = true

	plan, err := planner.Generate(ws, nil, biz, rules)
	require.NoError(t, err)

	assert.Equal(t, "ist-recent", plan.Days[0].Tasks[0].WorkerID)
}

func TestGenerate_NeverAssignedSortFirstWithoutLocationPriority(t *testing.T) {
	recent := domain.NewDay(2026, time.February, 25)
	older := domain.NewDay(2026, time.January, 10)
	ws := []domain.Worker{
		worker("recent", "İstanbul", domain.GenderMale, 0, &recent),
		worker("older", "Ankara", domain.GenderMale, 0, &older),
		worker("fresh", "Ankara", domain.GenderMale, 0, nil),
	}

	plan, err := planner.Generate(ws, nil, biz, baseRules(3, 3, 0))
	require.NoError(t, err)

	order := []string{}
	for _, day := range plan.Days {
		for _, task := range day.Tasks {
			order = append(order, task.WorkerID)
		}
	}
	assert.Equal(t, []string{"fresh", "older", "recent"}, order)
}

func TestGenerate_ShiftRoundRobin(t *testing.T) {
	// Slots within a day rotate MORNING, NOON, EVENING.
	plan, err := planner.Generate(workerPool(3), nil, biz, baseRules(3, 3, 0))
	require.NoError(t, err)

	require.Equal(t, 1, len(plan.Days))
	shifts := []domain.Shift{}
	for _, task := range plan.Days[0].Tasks {
		shifts = append(shifts, task.Shift)
	}
	assert.Equal(t, []domain.Shift{domain.ShiftMorning, domain.ShiftNoon, domain.ShiftEvening}, shifts)
}

// =============================================================================
// REST PERIOD & CALENDAR TESTS
// =============================================================================

func TestGenerate_RestPeriodSpacesAssignments(t *testing.T) {
	// GIVEN: A single worker with a 2-day rest period
	// THEN: Consecutive assignments are at least 3 days apart (day+rest+1)

	plan, err := planner.Generate(workerPool(1), nil, biz, baseRules(3, 1, 2))
	require.NoError(t, err)
	require.Equal(t, 3, plan.TaskCount())

	for i := 1; i < len(plan.Days); i++ {
		gap := domain.DaysBetween(plan.Days[i-1].Date, plan.Days[i].Date)
		assert.GreaterOrEqual(t, gap, 3)
	}
}

func TestGenerate_RecentHistoryDelaysEligibility(t *testing.T) {
	// GIVEN: Worker whose last task was the day before the start, rest 5
	// THEN: First assignment lands on lastTaskDate+5 or later

	last := domain.NewDay(2026, time.March, 1)
	ws := []domain.Worker{worker("w0", "Ankara", domain.GenderMale, 0, &last)}

	plan, err := planner.Generate(ws, nil, biz, baseRules(1, 1, 5))
	require.NoError(t, err)

	require.Equal(t, 1, plan.TaskCount())
	assert.True(t, plan.Days[0].Date.AfterOrEqual(last.AddDays(5)),
		"first day %s should respect the rest period", plan.Days[0].Date)
}

func TestGenerate_WeekdayMask(t *testing.T) {
	rules := baseRules(4, 2, 0)
	rules.Weekdays = []time.Weekday{time.Saturday, time.Sunday}

	plan, err := planner.Generate(workerPool(5), nil, biz, rules)
	require.NoError(t, err)

	for _, day := range plan.Days {
		wd := day.Date.Weekday()
		assert.True(t, wd == time.Saturday || wd == time.Sunday, "unexpected weekday %s", wd)
	}
}

func TestGenerate_RealTasksBlockTheDay(t *testing.T) {
	// GIVEN: Worker already has a persisted task (for another business) on
	//        the start date
	// THEN: The planner skips that exact day for them

	start := domain.NewDay(2026, time.March, 2)
	ws := workerPool(1)
	tasks := []domain.Task{{
		ID:          "t1",
		WorkerID:    "w0",
		BusinessID:  "other-biz",
		ScheduledAt: start.At(9, 30),
		Status:      domain.StatusAssigned,
	}}

	plan, err := planner.Generate(ws, tasks, biz, baseRules(1, 1, 0))
	require.NoError(t, err)

	require.Equal(t, 1, plan.TaskCount())
	assert.False(t, plan.Days[0].Date.Equal(start), "blocked day should be skipped")
}

func TestGenerate_IsPure(t *testing.T) {
	// Same inputs, same plan; inputs not mutated.
	last := domain.NewDay(2026, time.February, 20)
	ws := []domain.Worker{
		worker("w0", "İstanbul", domain.GenderMale, 2, &last),
		worker("w1", "Ankara", domain.GenderFemale, 0, nil),
	}
	rules := baseRules(4, 2, 1)
	rules.LocationPriority = true

	p1, err := planner.Generate(ws, nil, biz, rules)
	require.NoError(t, err)
	p2, err := planner.Generate(ws, nil, biz, rules)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, "w0", ws[0].ID, "input slice order must not change")
}
