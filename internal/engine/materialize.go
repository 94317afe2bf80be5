package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// isolatedRepFloor is the lowest legal rep count for isolation work; very
// low rep ranges are reserved for heavy compounds.
const isolatedRepFloor = 6

// materialize turns a catalog template into a concrete plan exercise:
// rep range adjusted for the training goal then clamped to the level's
// legal window, deficit mode forcing single sets, and the structural bonus
// set for large muscles outside deficit.
func materialize(t catalog.Template, cons rules.Constraints) plan.Exercise {
	return plan.Exercise{
		Name:             t.Name,
		PrimaryMuscle:    t.PrimaryMuscle,
		SecondaryMuscles: t.SecondaryMuscles,
		Role:             t.Role,
		Pattern:          t.Pattern,
		Sets:             adjustSets(t, cons),
		Reps:             adjustReps(t, cons),
		Rest:             t.Rest,
	}
}

func adjustSets(t catalog.Template, cons rules.Constraints) int {
	if cons.Deficit {
		// Volume in deficit is capped by reducing sets, never by silently
		// dropping exercises.
		return 1
	}
	sets := t.Sets
	if sets < cons.Rules.MinSetsPerExercise {
		sets = cons.Rules.MinSetsPerExercise
	}
	if t.IsStructural() && catalog.SizeOf(t.PrimaryMuscle) == catalog.SizeLarge {
		sets++
	}
	return sets
}

func adjustReps(t catalog.Template, cons rules.Constraints) string {
	min, max, err := ParseRepRange(t.Reps)
	if err != nil {
		floor, ceil := cons.Level.RepWindow()
		return fmt.Sprintf("%d-%d", floor, ceil)
	}

	switch {
	case cons.Deficit || cons.Goal == rules.GoalLoseWeight:
		// Higher-rep, lower-load work in deficit.
		if min < 12 {
			min = 12
		}
		if max < 15 {
			max = 15
		}
	case cons.Goal == rules.GoalGainMass:
		if min < 8 {
			min = 8
		}
		if max > 12 {
			max = 12
		}
	}

	// Both bounds are clamped into the window: high-rep holds like planks
	// carry catalog ranges far above any level ceiling.
	floor, ceil := cons.Level.RepWindow()
	if min < floor {
		min = floor
	}
	if min > ceil {
		min = ceil
	}
	if max > ceil {
		max = ceil
	}
	if !t.IsStructural() && min < isolatedRepFloor {
		min = isolatedRepFloor
	}
	if max < min {
		max = min
	}
	return fmt.Sprintf("%d-%d", min, max)
}

// ParseRepRange parses a "min-max" rep string.
func ParseRepRange(s string) (min, max int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("rep range %q is not min-max", s)
	}
	min, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("rep range %q: %w", s, err)
	}
	max, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("rep range %q: %w", s, err)
	}
	if min < 1 || max < min {
		return 0, 0, fmt.Errorf("rep range %q is not ascending", s)
	}
	return min, max, nil
}

// ParseRestSeconds parses a rest prescription like "90s" or "2min".
func ParseRestSeconds(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasSuffix(s, "min"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "min")))
		if err != nil {
			return 0, fmt.Errorf("rest %q: %w", s, err)
		}
		return n * 60, nil
	case strings.HasSuffix(s, "s"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "s")))
		if err != nil {
			return 0, fmt.Errorf("rest %q: %w", s, err)
		}
		return n, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("rest %q has no unit", s)
		}
		return n, nil
	}
}
