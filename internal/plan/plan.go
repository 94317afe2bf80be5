// Package plan defines the output entities of the training plan engine:
// the weekly plan, its days, and the materialized exercises.
package plan

import "github.com/claude/planforge/internal/catalog"

// Exercise is a materialized instance of a catalog template: concrete sets,
// a rep range, and a rest prescription after all profile adjustments.
type Exercise struct {
	Name             string                  `json:"name"`
	PrimaryMuscle    catalog.Muscle          `json:"primaryMuscle"`
	SecondaryMuscles []catalog.Muscle        `json:"secondaryMuscles,omitempty"`
	Role             catalog.Role            `json:"role"`
	Pattern          catalog.MovementPattern `json:"pattern"`
	Sets             int                     `json:"sets"`
	Reps             string                  `json:"reps"` // "min-max"
	Rest             string                  `json:"rest"` // e.g. "90s"
	Notes            string                  `json:"notes,omitempty"`
}

// TrainingDay is one day of the weekly schedule.
type TrainingDay struct {
	Day         string     `json:"day"`  // "Dia 1", "Dia 2", ...
	Type        DayType    `json:"type"` // Push, Pull, ...
	Exercises   []Exercise `json:"exercises"`
	Description string     `json:"description,omitempty"`
}

// TrainingPlan is the final weekly schedule returned to callers.
type TrainingPlan struct {
	Overview       string        `json:"overview"`
	WeeklySchedule []TrainingDay `json:"weeklySchedule"`
	Progression    string        `json:"progression"`
}

// DayType classifies a training day within a split.
type DayType string

const (
	DayPush     DayType = "Push"
	DayPull     DayType = "Pull"
	DayLegs     DayType = "Legs"
	DayUpper    DayType = "Upper"
	DayLower    DayType = "Lower"
	DayFullBody DayType = "Full Body"
)

// Split is a weekly arrangement of day types.
type Split string

const (
	SplitPPL         Split = "PPL"
	SplitUpperLower  Split = "Upper/Lower"
	SplitFullBody    Split = "Full Body"
	SplitPPLUpperLow Split = "PPL + Upper/Lower"
)

// ValidSplits lists every split the engine can emit, in resolution order.
func ValidSplits() []Split {
	return []Split{SplitFullBody, SplitUpperLower, SplitPPL, SplitPPLUpperLow}
}

// TotalSets sums the sets assigned to a muscle across the whole plan.
func (p *TrainingPlan) TotalSets(m catalog.Muscle) int {
	total := 0
	for _, d := range p.WeeklySchedule {
		for _, ex := range d.Exercises {
			if ex.PrimaryMuscle == m {
				total += ex.Sets
			}
		}
	}
	return total
}

// DaysOfType returns the indexes of days with the given type, in order.
func (p *TrainingPlan) DaysOfType(t DayType) []int {
	var idx []int
	for i, d := range p.WeeklySchedule {
		if d.Type == t {
			idx = append(idx, i)
		}
	}
	return idx
}
