package engine

import (
	"fmt"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/events"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

const (
	// setExecutionSeconds is the assumed working time per set.
	setExecutionSeconds = 30
	// restFloorSeconds is the lowest rest the trim pass may prescribe.
	restFloorSeconds = 45
	// minExercisesPerDay is the hard floor the trim pass never crosses.
	minExercisesPerDay = 3
)

// fitToTime trims each day to the session-length ceiling: first rests are
// shrunk proportionally down to the floor, then isolated exercises are
// removed from the end of the list, never below three per day.
func (g *Generator) fitToTime(cons rules.Constraints, days []plan.TrainingDay) {
	budget := cons.AvailableMinutes * 60
	if budget <= 0 {
		return
	}

	for i := range days {
		day := &days[i]
		if SessionSeconds(day.Exercises) <= budget {
			continue
		}

		shrinkRests(day.Exercises, budget)

		removed := 0
		for SessionSeconds(day.Exercises) > budget && len(day.Exercises) > minExercisesPerDay {
			idx := lastIsolated(day.Exercises)
			if idx < 0 {
				break
			}
			name := day.Exercises[idx].Name
			day.Exercises = append(day.Exercises[:idx], day.Exercises[idx+1:]...)
			removed++
			g.observer.Publish(events.Event{
				Kind: events.KindSessionTrimmed, Day: day.Day, DayType: day.Type,
				Exercise: name, Detail: "removed to fit session time",
			})
		}
		if removed == 0 {
			g.observer.Publish(events.Event{
				Kind: events.KindSessionTrimmed, Day: day.Day, DayType: day.Type,
				Detail: fmt.Sprintf("rests reduced to fit %d min", cons.AvailableMinutes),
			})
		}
	}
}

// SessionSeconds estimates a day's duration: per set, the execution time
// plus the prescribed rest. Unparseable rests count as the floor.
func SessionSeconds(exercises []plan.Exercise) int {
	total := 0
	for _, ex := range exercises {
		rest, err := ParseRestSeconds(ex.Rest)
		if err != nil {
			rest = restFloorSeconds
		}
		total += ex.Sets * (setExecutionSeconds + rest)
	}
	return total
}

// shrinkRests scales every rest down proportionally so the session fits
// the budget, clamped at the rest floor.
func shrinkRests(exercises []plan.Exercise, budget int) {
	execSeconds := 0
	restSeconds := 0
	for _, ex := range exercises {
		rest, err := ParseRestSeconds(ex.Rest)
		if err != nil {
			rest = restFloorSeconds
		}
		execSeconds += ex.Sets * setExecutionSeconds
		restSeconds += ex.Sets * rest
	}
	restBudget := budget - execSeconds
	if restBudget <= 0 || restSeconds <= restBudget {
		return
	}
	scale := float64(restBudget) / float64(restSeconds)
	for i := range exercises {
		rest, err := ParseRestSeconds(exercises[i].Rest)
		if err != nil {
			rest = restFloorSeconds
		}
		scaled := int(float64(rest) * scale)
		if scaled < restFloorSeconds {
			scaled = restFloorSeconds
		}
		exercises[i].Rest = fmt.Sprintf("%ds", scaled)
	}
}

// lastIsolated returns the index of the last isolation exercise, or -1.
func lastIsolated(exercises []plan.Exercise) int {
	for i := len(exercises) - 1; i >= 0; i-- {
		if exercises[i].Role == catalog.RoleIsolated {
			return i
		}
	}
	return -1
}
