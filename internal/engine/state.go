// Package engine implements the constraint-governed plan generator: the
// per-day and per-week state trackers, the selection pass that fills each
// training day, and the time-budget trim.
package engine

import (
	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// DayState tracks one training day while it is being filled. It is created
// at day start and discarded at day end; nothing carries across days.
type DayState struct {
	Exercises     []plan.Exercise
	PatternCounts map[catalog.MovementPattern]int
	MuscleCounts  map[catalog.Muscle]int
}

// NewDayState returns empty per-day counters.
func NewDayState() *DayState {
	return &DayState{
		PatternCounts: make(map[catalog.MovementPattern]int),
		MuscleCounts:  make(map[catalog.Muscle]int),
	}
}

// Update records an accepted placement. Unknown patterns are not counted
// against any ceiling. Only the generator calls this, and only after the
// contract approved the placement.
func (d *DayState) Update(ex plan.Exercise) {
	d.Exercises = append(d.Exercises, ex)
	if ex.Pattern != catalog.PatternUnknown {
		d.PatternCounts[rules.PatternKey(ex.Pattern)]++
	}
	d.MuscleCounts[ex.PrimaryMuscle]++
}

// Context snapshots the counters in the shape the contract reads.
func (d *DayState) Context() rules.DayContext {
	return rules.DayContext{
		ExerciseCount: len(d.Exercises),
		PatternCounts: d.PatternCounts,
		MuscleCounts:  d.MuscleCounts,
	}
}

// Contains reports whether an exercise name was already placed today.
func (d *DayState) Contains(name string) bool {
	for _, ex := range d.Exercises {
		if ex.Name == name {
			return true
		}
	}
	return false
}

// WeekState accumulates per-muscle series across the whole plan. Created
// once per generation, discarded when the plan is finalized.
type WeekState struct {
	Totals map[catalog.Muscle]int
	rules  rules.RuleTable
}

// NewWeekState returns an empty weekly accumulator bound to the plan's
// rule table.
func NewWeekState(rt rules.RuleTable) *WeekState {
	return &WeekState{
		Totals: make(map[catalog.Muscle]int),
		rules:  rt,
	}
}

// EffectiveSets is the conservative set count used for weekly admission:
// an exercise can never be adjusted below the minimum sets per exercise,
// so admission must assume at least that many.
func (w *WeekState) EffectiveSets(templateSets int) int {
	if templateSets < w.rules.MinSetsPerExercise {
		return w.rules.MinSetsPerExercise
	}
	return templateSets
}

// CanAdd re-derives the weekly ceiling check at the state layer using
// effective sets, via the shared contract.
func (w *WeekState) CanAdd(c *rules.Contract, m catalog.Muscle, proposedSets int) rules.Decision {
	return c.CanAddExerciseToWeek(m, w.EffectiveSets(proposedSets), w.Totals)
}

// Update adds an accepted exercise's sets to the weekly running total.
func (w *WeekState) Update(ex plan.Exercise) {
	w.Totals[ex.PrimaryMuscle] += ex.Sets
}

// Remaining returns the unused weekly capacity for a muscle.
func (w *WeekState) Remaining(m catalog.Muscle) int {
	limit, ok := w.rules.WeeklySeriesLimit[m]
	if !ok {
		return 0
	}
	r := limit - w.Totals[m]
	if r < 0 {
		return 0
	}
	return r
}
