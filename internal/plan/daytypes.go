package plan

import "github.com/claude/planforge/internal/catalog"

// AllowedMuscles lists the primary muscles an exercise may target on a day
// of the given type. Full Body days allow everything.
func AllowedMuscles(t DayType) []catalog.Muscle {
	switch t {
	case DayPush:
		return []catalog.Muscle{catalog.MuscleChest, catalog.MuscleShoulders, catalog.MuscleTriceps}
	case DayPull:
		return []catalog.Muscle{catalog.MuscleBack, catalog.MuscleBiceps, catalog.MuscleAbs}
	case DayLegs, DayLower:
		return []catalog.Muscle{
			catalog.MuscleQuads, catalog.MusclePosterior, catalog.MuscleGlutes,
			catalog.MuscleCalves, catalog.MuscleAbs,
		}
	case DayUpper:
		return []catalog.Muscle{
			catalog.MuscleChest, catalog.MuscleBack, catalog.MuscleShoulders,
			catalog.MuscleBiceps, catalog.MuscleTriceps, catalog.MuscleAbs,
		}
	default:
		return catalog.AllMuscles()
	}
}

// MuscleAllowed reports whether a primary muscle belongs on a day type.
func MuscleAllowed(t DayType, m catalog.Muscle) bool {
	for _, allowed := range AllowedMuscles(t) {
		if allowed == m {
			return true
		}
	}
	return false
}

// RequiredMuscles returns the muscle groups that must appear on a day of
// the given type. Each inner slice is an any-of group: at least one of its
// members must be present.
func RequiredMuscles(t DayType) [][]catalog.Muscle {
	switch t {
	case DayPush:
		return [][]catalog.Muscle{{catalog.MuscleChest}}
	case DayPull:
		return [][]catalog.Muscle{{catalog.MuscleBack}}
	case DayLegs, DayLower:
		return [][]catalog.Muscle{
			{catalog.MuscleQuads},
			{catalog.MusclePosterior},
			{catalog.MuscleGlutes, catalog.MuscleCalves},
		}
	case DayUpper:
		return [][]catalog.Muscle{{catalog.MuscleChest}, {catalog.MuscleBack}}
	case DayFullBody:
		return [][]catalog.Muscle{
			{catalog.MuscleQuads, catalog.MusclePosterior},
			{catalog.MuscleChest},
			{catalog.MuscleBack},
		}
	default:
		return nil
	}
}
