// Package validate holds the post-generation gates: the corrector that
// synchronizes recurring day types, the structural validator that accepts
// or rejects the plan, and the diagnostic contract validator that catches
// generator regressions.
package validate

import (
	"github.com/claude/planforge/internal/events"
	"github.com/claude/planforge/internal/plan"
)

// CorrectRecurrences forces every recurrence of a day type to carry the
// exact exercise list of its first occurrence, eliminating day-to-day
// drift. Returns the number of days rewritten. Running it on an already
// synchronized plan changes nothing.
func CorrectRecurrences(p *plan.TrainingPlan, obs events.Observer) int {
	if obs == nil {
		obs = events.Nop{}
	}

	corrected := 0
	seen := make(map[plan.DayType]bool)

	for _, day := range p.WeeklySchedule {
		if seen[day.Type] {
			continue
		}
		seen[day.Type] = true

		idx := p.DaysOfType(day.Type)
		reference := p.WeeklySchedule[idx[0]].Exercises
		for _, i := range idx[1:] {
			recurrence := &p.WeeklySchedule[i]
			if exercisesEqual(recurrence.Exercises, reference) {
				continue
			}
			recurrence.Exercises = make([]plan.Exercise, len(reference))
			copy(recurrence.Exercises, reference)
			corrected++
			obs.Publish(events.Event{
				Kind: events.KindDayCorrected, Day: recurrence.Day, DayType: recurrence.Type,
				Detail: "synchronized with first occurrence of day type",
			})
		}
	}
	return corrected
}

// exercisesEqual compares the fields the recurrence invariant covers:
// name, sets, reps, and rest, position by position.
func exercisesEqual(a, b []plan.Exercise) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Sets != b[i].Sets ||
			a[i].Reps != b[i].Reps || a[i].Rest != b[i].Rest {
			return false
		}
	}
	return true
}
