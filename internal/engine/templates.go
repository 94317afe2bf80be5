package engine

import (
	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// slotShare weights the per-slot target count within a day: the primary
// muscle gets the level's max, secondary the midpoint, tertiary the min.
type slotShare int

const (
	sharePrimary slotShare = iota
	shareSecondary
	shareTertiary
)

// muscleSlot is one position in a day template.
type muscleSlot struct {
	Muscle catalog.Muscle
	Share  slotShare
	// Required slots must end up with at least one exercise for the day to
	// pass the structural gate; target sizing reserves session capacity
	// for them.
	Required bool
}

// daySlots returns the ordered muscle slots for a day type.
func daySlots(t plan.DayType) []muscleSlot {
	switch t {
	case plan.DayPush:
		return []muscleSlot{
			{catalog.MuscleChest, sharePrimary, true},
			{catalog.MuscleShoulders, shareSecondary, false},
			{catalog.MuscleTriceps, shareTertiary, false},
		}
	case plan.DayPull:
		return []muscleSlot{
			{catalog.MuscleBack, sharePrimary, true},
			{catalog.MuscleBiceps, shareSecondary, false},
			{catalog.MuscleAbs, shareTertiary, false},
		}
	case plan.DayLegs, plan.DayLower:
		return []muscleSlot{
			{catalog.MuscleQuads, sharePrimary, true},
			{catalog.MusclePosterior, shareSecondary, true},
			{catalog.MuscleGlutes, shareTertiary, true},
			{catalog.MuscleCalves, shareTertiary, false},
			{catalog.MuscleAbs, shareTertiary, false},
		}
	case plan.DayUpper:
		return []muscleSlot{
			{catalog.MuscleChest, sharePrimary, true},
			{catalog.MuscleBack, sharePrimary, true},
			{catalog.MuscleShoulders, shareSecondary, false},
			{catalog.MuscleBiceps, shareTertiary, false},
			{catalog.MuscleTriceps, shareTertiary, false},
		}
	default: // Full Body
		return []muscleSlot{
			{catalog.MuscleQuads, sharePrimary, true},
			{catalog.MuscleChest, sharePrimary, true},
			{catalog.MuscleBack, sharePrimary, true},
			{catalog.MusclePosterior, shareSecondary, false},
			{catalog.MuscleShoulders, shareTertiary, false},
			{catalog.MuscleAbs, shareTertiary, false},
		}
	}
}

// targetFor sizes a slot from the level's volume bounds.
func targetFor(level rules.Level, share slotShare) int {
	min, max := level.VolumeBounds()
	switch share {
	case sharePrimary:
		return max
	case shareSecondary:
		return (min + max + 1) / 2
	default:
		return min
	}
}

// DaySequence expands a split and weekly frequency into the ordered day
// types of the plan. Frequencies that do not divide evenly cycle through
// the split's base rotation.
func DaySequence(s plan.Split, frequency int) []plan.DayType {
	if frequency < 1 {
		frequency = 1
	}
	var rotation []plan.DayType
	switch s {
	case plan.SplitFullBody:
		rotation = []plan.DayType{plan.DayFullBody}
	case plan.SplitUpperLower:
		rotation = []plan.DayType{plan.DayUpper, plan.DayLower}
	case plan.SplitPPLUpperLow:
		rotation = []plan.DayType{plan.DayPush, plan.DayPull, plan.DayLegs, plan.DayUpper, plan.DayLower}
	default: // PPL
		rotation = []plan.DayType{plan.DayPush, plan.DayPull, plan.DayLegs}
	}

	days := make([]plan.DayType, frequency)
	for i := 0; i < frequency; i++ {
		days[i] = rotation[i%len(rotation)]
	}
	return days
}
