/*
Package planner builds day-by-day staffing plans for a business campaign.

PURPOSE:
  Given snapshots of the worker pool and the existing tasks, plus a rule set
  (target count, daily cap, rest period, gender/tier filters, weekday mask,
  start date), Generate simulates a calendar walk and proposes (day, worker,
  shift) assignments. The simulation is pure: it mutates nothing and is
  deterministic for a given input, so a caller can render a preview and only
  then materialize the plan into real tasks.

ALGORITHM:
  1. Build the candidate pool: workers only, minus anyone who has EVER had a
     task for this business (a worker reviews a business at most once in its
     lifetime), filtered by gender and minimum tier.
  2. Sort the pool. Location priority ranks same-city candidates strictly
     above the rest; within a rank, workers who never had a task come first,
     then least-recently-assigned first.
  3. Walk calendar days from the start date, bounded at 365 days. Skip days
     outside the weekday mask. Fill up to dailyMax slots per day with the
     first pool candidate whose simulated rest period has elapsed and who has
     no real task on that exact day. First fit - no backtracking.
  4. On selection: rotate the shift by slot index, push the worker's next
     available date to day+rest+1, and move them to the back of the queue so
     the rest of the pool is tried before anyone is reused.
  5. Stop once the target is reached. A walk that schedules nothing at all is
     an error; a partial plan is returned as-is.
*/
package planner

import (
	"sort"
	"time"

	"github.com/reviewcrew/review-engine/domain"
)

// safetyDayLimit bounds the calendar walk so generation terminates even when
// the target can never be met.
const safetyDayLimit = 365

// Rules configures one planning run.
type Rules struct {
	TotalTarget    int            `json:"totalTarget"`
	DailyMax       int            `json:"dailyMax"`
	RestPeriodDays int            `json:"restPeriodDays"`
	StartDate      domain.Day     `json:"startDate"`
	Weekdays       []time.Weekday `json:"weekdays"`

	// Gender empty = mixed pool.
	Gender domain.Gender `json:"gender,omitempty"`

	// MinTierLevel 0 = everyone.
	MinTierLevel int `json:"minTierLevel"`

	// LocationPriority ranks candidates in the business's city first.
	LocationPriority bool `json:"locationPriority"`
}

// PlanTask is one proposed assignment. It carries display fields so a
// preview can be rendered without re-resolving workers.
type PlanTask struct {
	WorkerID   string        `json:"workerId"`
	WorkerName string        `json:"workerName"`
	City       string        `json:"city"`
	Gender     domain.Gender `json:"gender"`
	TierLevel  int           `json:"tierLevel"`
	Shift      domain.Shift  `json:"shift"`
	Time       string        `json:"time"`
}

// PlanDay groups the proposals for one calendar day.
type PlanDay struct {
	Date  domain.Day `json:"date"`
	Tasks []PlanTask `json:"tasks"`
}

// Plan is an ephemeral proposal. It is never persisted; it lives between
// Generate and the service's ConfirmPlan and is discarded on any rule change.
type Plan struct {
	BusinessID string    `json:"businessId"`
	Days       []PlanDay `json:"days"`
}

// TaskCount is the total number of proposed assignments.
func (p Plan) TaskCount() int {
	n := 0
	for _, d := range p.Days {
		n += len(d.Tasks)
	}
	return n
}

// shiftCycle is the round-robin order keyed by slot index within a day.
var shiftCycle = [...]domain.Shift{domain.ShiftMorning, domain.ShiftNoon, domain.ShiftEvening}

// ShiftClock returns the wall-clock time a shift starts at.
func ShiftClock(s domain.Shift) (hour, minute int) {
	switch s {
	case domain.ShiftNoon:
		return 14, 0
	case domain.ShiftEvening:
		return 19, 30
	default:
		return 9, 30
	}
}

// ShiftTime formats the shift start as HH:MM.
func ShiftTime(s domain.Shift) string {
	switch s {
	case domain.ShiftNoon:
		return "14:00"
	case domain.ShiftEvening:
		return "19:30"
	default:
		return "09:30"
	}
}

// Generate produces a staffing plan. workers and tasks are read-only
// snapshots of current state; nothing is mutated.
func Generate(workers []domain.Worker, tasks []domain.Task, business domain.Business, rules Rules) (Plan, error) {
	if len(rules.Weekdays) == 0 {
		return Plan{}, domain.ErrNoWeekdaysSelected
	}

	pool := buildPool(workers, tasks, business, rules)
	if len(pool) == 0 {
		return Plan{}, domain.ErrEmptyPlan
	}

	// Simulated next-available date per worker, seeded from real history.
	nextAvailable := make(map[string]domain.Day, len(pool))
	for _, w := range pool {
		if w.LastTaskDate != nil {
			nextAvailable[w.ID] = w.LastTaskDate.AddDays(rules.RestPeriodDays)
		} else {
			nextAvailable[w.ID] = domain.Epoch()
		}
	}

	// Real, already-persisted tasks block their worker for that exact day,
	// regardless of which business they belong to.
	busy := make(map[string]map[string]bool)
	for _, t := range tasks {
		day := t.Day().String()
		if busy[t.WorkerID] == nil {
			busy[t.WorkerID] = make(map[string]bool)
		}
		busy[t.WorkerID][day] = true
	}

	allowed := make(map[time.Weekday]bool, len(rules.Weekdays))
	for _, wd := range rules.Weekdays {
		allowed[wd] = true
	}

	var days []PlanDay
	assigned := 0
	day := rules.StartDate

	for walked := 0; assigned < rules.TotalTarget && walked < safetyDayLimit; walked++ {
		if allowed[day.Weekday()] {
			var dayTasks []PlanTask

			for slot := 0; slot < rules.DailyMax; slot++ {
				if assigned >= rules.TotalTarget {
					break
				}

				idx := firstEligible(pool, nextAvailable, busy, day)
				if idx < 0 {
					continue
				}
				candidate := pool[idx]

				shift := shiftCycle[slot%len(shiftCycle)]
				dayTasks = append(dayTasks, PlanTask{
					WorkerID:   candidate.ID,
					WorkerName: candidate.Name,
					City:       candidate.City,
					Gender:     candidate.Gender,
					TierLevel:  candidate.TierLevel,
					Shift:      shift,
					Time:       ShiftTime(shift),
				})

				nextAvailable[candidate.ID] = day.AddDays(rules.RestPeriodDays + 1)

				// Requeue at the back so nobody is reused before the rest
				// of the pool has been tried.
				pool = append(pool[:idx], pool[idx+1:]...)
				pool = append(pool, candidate)

				assigned++
			}

			if len(dayTasks) > 0 {
				days = append(days, PlanDay{Date: day, Tasks: dayTasks})
			}
		}

		day = day.AddDays(1)
	}

	if len(days) == 0 {
		return Plan{}, domain.ErrEmptyPlan
	}

	return Plan{BusinessID: business.ID, Days: days}, nil
}

// buildPool filters and orders the candidate queue.
func buildPool(workers []domain.Worker, tasks []domain.Task, business domain.Business, rules Rules) []domain.Worker {
	servedBusiness := make(map[string]bool)
	for _, t := range tasks {
		if t.BusinessID == business.ID {
			servedBusiness[t.WorkerID] = true
		}
	}

	var pool []domain.Worker
	for _, w := range workers {
		if w.Role != domain.RoleWorker {
			continue
		}
		if servedBusiness[w.ID] {
			continue
		}
		if rules.Gender != "" && w.Gender != rules.Gender {
			continue
		}
		if rules.MinTierLevel > 0 && w.TierLevel < rules.MinTierLevel {
			continue
		}
		pool = append(pool, w)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]

		if rules.LocationPriority {
			aMatch := a.City == business.City
			bMatch := b.City == business.City
			if aMatch != bMatch {
				return aMatch
			}
		}

		// Never-assigned workers sort first; otherwise oldest last task
		// first.
		switch {
		case a.LastTaskDate == nil && b.LastTaskDate == nil:
			return false
		case a.LastTaskDate == nil:
			return true
		case b.LastTaskDate == nil:
			return false
		default:
			return a.LastTaskDate.Before(*b.LastTaskDate)
		}
	})

	return pool
}

// firstEligible returns the index of the first candidate whose rest period
// has elapsed and who has no persisted task on the day, or -1.
func firstEligible(pool []domain.Worker, nextAvailable map[string]domain.Day, busy map[string]map[string]bool, day domain.Day) int {
	for i, w := range pool {
		if nextAvailable[w.ID].After(day) {
			continue
		}
		if busy[w.ID][day.String()] {
			continue
		}
		return i
	}
	return -1
}
