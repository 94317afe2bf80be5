package rules

import (
	"math"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
)

// Severity ranks a rule in the enforcement hierarchy. HARD rules block
// placement outright, SOFT rules are recorded and avoided when an
// alternative exists, FLEXIBLE rules are advisory only.
type Severity int

const (
	SeverityFlexible Severity = iota
	SeveritySoft
	SeverityHard
)

func (s Severity) String() string {
	switch s {
	case SeverityHard:
		return "HARD"
	case SeveritySoft:
		return "SOFT"
	default:
		return "FLEXIBLE"
	}
}

// Joint identifies a restrictable joint.
type Joint string

const (
	JointShoulder Joint = "shoulder"
	JointKnee     Joint = "knee"
)

// DeficitMultiplier scales weekly series ceilings in caloric-deficit mode.
const DeficitMultiplier = 0.7

// Base weekly series ceilings per muscle size class, before level and
// deficit scaling.
const (
	baseWeeklyLarge  = 16
	baseWeeklyMedium = 13
	baseWeeklySmall  = 10
)

// RuleTable is the single canonical value holding every numeric limit the
// adapter, the contract, and the validators share. It is built once per
// plan request and never mutated.
type RuleTable struct {
	Level                  Level
	Deficit                bool
	MaxExercisesPerSession int
	MaxPerMusclePerDay     int
	MinSetsPerExercise     int
	WeeklySeriesLimit      map[catalog.Muscle]int
	PatternLimit           map[catalog.MovementPattern]int
	jointSeverity          map[Joint]map[catalog.MovementPattern]Severity
}

// NewRuleTable derives the full limit set for an operational level and
// deficit mode. This is the only place weekly-limit math lives.
func NewRuleTable(level Level, deficit bool) RuleTable {
	p := level.params()

	weekly := make(map[catalog.Muscle]int, len(catalog.AllMuscles()))
	for _, m := range catalog.AllMuscles() {
		base := baseWeeklySmall
		switch catalog.SizeOf(m) {
		case catalog.SizeLarge:
			base = baseWeeklyLarge
		case catalog.SizeMedium:
			base = baseWeeklyMedium
		}
		limit := float64(base) * p.VolumeFactor
		if deficit {
			limit *= DeficitMultiplier
		}
		weekly[m] = int(math.Floor(limit))
	}

	minSets := 2
	if deficit {
		minSets = 1
	}

	return RuleTable{
		Level:                  level,
		Deficit:                deficit,
		MaxExercisesPerSession: p.MaxExercisesPerSession,
		MaxPerMusclePerDay:     p.MaxPerMusclePerDay,
		MinSetsPerExercise:     minSets,
		WeeklySeriesLimit:      weekly,
		PatternLimit:           defaultPatternLimits(),
		jointSeverity:          jointSeverityTable(),
	}
}

// defaultPatternLimits returns the fixed per-day motor-pattern ceilings.
// overhead_movement is absent on purpose: it shares the vertical_push
// counter (see Contract.patternKey).
func defaultPatternLimits() map[catalog.MovementPattern]int {
	return map[catalog.MovementPattern]int{
		catalog.PatternVerticalPush:   1,
		catalog.PatternHorizontalPush: 2,
		catalog.PatternHorizontalPull: 2,
		catalog.PatternVerticalPull:   2,
		catalog.PatternHipDominant:    2,
		catalog.PatternKneeDominant:   2,
		catalog.PatternSquat:          2,
		catalog.PatternUnilateral:     2,
		catalog.PatternCoreStability:  2,
		catalog.PatternDeepFlexion:    1,
		catalog.PatternImpact:         1,
	}
}

// jointSeverityTable is the system-defined (joint, pattern) severity map.
// Severity is never user-supplied.
func jointSeverityTable() map[Joint]map[catalog.MovementPattern]Severity {
	return map[Joint]map[catalog.MovementPattern]Severity{
		JointShoulder: {
			catalog.PatternVerticalPush:   SeverityHard,
			catalog.PatternOverhead:       SeverityHard,
			catalog.PatternHorizontalPush: SeveritySoft,
		},
		JointKnee: {
			catalog.PatternSquat:        SeverityHard,
			catalog.PatternDeepFlexion:  SeverityHard,
			catalog.PatternImpact:       SeverityHard,
			catalog.PatternKneeDominant: SeveritySoft,
			catalog.PatternUnilateral:   SeveritySoft,
		},
	}
}

// JointSeverity looks up the restriction severity for a joint/pattern pair.
// The second return is false when the pattern is unrestricted for the joint.
func (rt RuleTable) JointSeverity(j Joint, p catalog.MovementPattern) (Severity, bool) {
	s, ok := rt.jointSeverity[j][p]
	return s, ok
}

// Goal is the normalized training objective derived from the free-text
// objective field.
type Goal string

const (
	GoalMaintain   Goal = "manter"
	GoalLoseWeight Goal = "emagrecer"
	GoalGainMass   Goal = "ganhar massa"
)

// Constraints is the immutable per-request derivation of a user profile:
// the resolved split, operational level, restriction flags, and the rule
// table that governs generation.
type Constraints struct {
	Split              plan.Split
	Level              Level
	DeclaredLevel      Level
	Frequency          int
	AvailableMinutes   int
	Location           catalog.Location
	Deficit            bool
	Goal               Goal
	ShoulderRestricted bool
	KneeRestricted     bool
	Rules              RuleTable
	// Notes collects human-readable resolution decisions (level downgrade,
	// fallbacks) for the plan overview.
	Notes []string
}
