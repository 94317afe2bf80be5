package rules

import (
	"fmt"

	"github.com/claude/planforge/internal/catalog"
)

// RejectionReason types the typed deny outcomes for the metrics sink.
type RejectionReason string

const (
	ReasonSessionFull      RejectionReason = "session_exercise_cap"
	ReasonPatternCap       RejectionReason = "motor_pattern_cap"
	ReasonJointRestricted  RejectionReason = "joint_restriction"
	ReasonWeeklyCeiling    RejectionReason = "weekly_series_ceiling"
	ReasonMusclePerDay     RejectionReason = "muscle_per_day_cap"
	ReasonSplitFrequency   RejectionReason = "split_frequency_mismatch"
	ReasonRequiredMuscle   RejectionReason = "required_muscle_missing"
	ReasonEmptyDay         RejectionReason = "empty_day"
	ReasonRepRangeIllegal  RejectionReason = "rep_range_illegal"
	ReasonSecondaryMuscles RejectionReason = "secondary_muscle_overflow"
	ReasonSessionDuration  RejectionReason = "session_duration_exceeded"
	ReasonBannedPhrase     RejectionReason = "banned_phrasing"
	ReasonMuscleNotAllowed RejectionReason = "muscle_not_in_day_type"
	ReasonBelowIdealCount  RejectionReason = "exercise_count_below_ideal"
	ReasonSingleSet        RejectionReason = "single_set_outside_deficit"
)

// Decision is the structured allow/deny result every placement check
// returns. Business rules never surface as errors.
type Decision struct {
	Allowed  bool
	Severity Severity
	Reason   RejectionReason
	Detail   string
}

func allow() Decision {
	return Decision{Allowed: true}
}

// allowSoft marks an allowed placement that carries a SOFT penalty.
func allowSoft(reason RejectionReason, detail string) Decision {
	return Decision{Allowed: true, Severity: SeveritySoft, Reason: reason, Detail: detail}
}

func deny(sev Severity, reason RejectionReason, detail string) Decision {
	return Decision{Allowed: false, Severity: sev, Reason: reason, Detail: detail}
}

// Penalized reports whether an allowed decision carries a SOFT flag.
func (d Decision) Penalized() bool {
	return d.Allowed && d.Severity == SeveritySoft
}

// DayContext carries the per-day counters a placement check needs. The
// generator owns the mutable state; the contract only reads snapshots.
type DayContext struct {
	ExerciseCount int
	PatternCounts map[catalog.MovementPattern]int
	MuscleCounts  map[catalog.Muscle]int
}

// Contract is the read-only oracle built once per plan from the resolved
// constraints. Every placement decision consults it before committing.
type Contract struct {
	cons Constraints
}

// NewContract builds the approval contract for one plan request.
func NewContract(cons Constraints) *Contract {
	return &Contract{cons: cons}
}

// Constraints returns the constraint set the contract was built from.
func (c *Contract) Constraints() Constraints {
	return c.cons
}

// PatternKey folds overhead_movement into the vertical_push counter; the
// two share one per-day ceiling. State trackers must count with the same
// key the contract checks against.
func PatternKey(p catalog.MovementPattern) catalog.MovementPattern {
	if p == catalog.PatternOverhead {
		return catalog.PatternVerticalPush
	}
	return p
}

// CanAddExercise checks a candidate against the day in strict order:
// session exercise cap (HARD), motor-pattern cap (HARD), then the joint
// restriction table (HARD deny or SOFT allow-with-penalty). The per-muscle
// day cap is checked last and is SOFT: it flags but never blocks.
func (c *Contract) CanAddExercise(t catalog.Template, day DayContext) Decision {
	rt := c.cons.Rules

	if day.ExerciseCount >= rt.MaxExercisesPerSession {
		return deny(SeverityHard, ReasonSessionFull,
			fmt.Sprintf("session already has %d exercises (cap %d)", day.ExerciseCount, rt.MaxExercisesPerSession))
	}

	if d := c.CanAddMotorPattern(t.Pattern, day.PatternCounts); !d.Allowed {
		return d
	}

	if d := c.checkJoints(t.Pattern); !d.Allowed || d.Penalized() {
		return d
	}

	if day.MuscleCounts[t.PrimaryMuscle] >= rt.MaxPerMusclePerDay {
		return allowSoft(ReasonMusclePerDay,
			fmt.Sprintf("%s already has %d exercises today", t.PrimaryMuscle, day.MuscleCounts[t.PrimaryMuscle]))
	}

	return allow()
}

// CanAddMotorPattern is the standalone pattern-ceiling check, usable before
// a full template is constructed. Unknown patterns are never capped.
func (c *Contract) CanAddMotorPattern(p catalog.MovementPattern, counts map[catalog.MovementPattern]int) Decision {
	if p == catalog.PatternUnknown {
		return allow()
	}
	key := PatternKey(p)
	limit, capped := c.cons.Rules.PatternLimit[key]
	if !capped {
		return allow()
	}
	if counts[key] >= limit {
		return deny(SeverityHard, ReasonPatternCap,
			fmt.Sprintf("pattern %s at ceiling %d for the day", key, limit))
	}
	return allow()
}

func (c *Contract) checkJoints(p catalog.MovementPattern) Decision {
	type active struct {
		joint Joint
		on    bool
	}
	for _, a := range []active{
		{JointShoulder, c.cons.ShoulderRestricted},
		{JointKnee, c.cons.KneeRestricted},
	} {
		if !a.on {
			continue
		}
		sev, restricted := c.cons.Rules.JointSeverity(a.joint, p)
		if !restricted {
			continue
		}
		if sev == SeverityHard {
			return deny(SeverityHard, ReasonJointRestricted,
				fmt.Sprintf("pattern %s is restricted for %s", p, a.joint))
		}
		return allowSoft(ReasonJointRestricted,
			fmt.Sprintf("pattern %s is tolerated but not preferred for %s", p, a.joint))
	}
	return allow()
}

// CanAddExerciseToWeek enforces the deficit-adjusted weekly series ceiling
// for a muscle. HARD: current + proposed must stay within the limit.
func (c *Contract) CanAddExerciseToWeek(m catalog.Muscle, proposedSets int, weekly map[catalog.Muscle]int) Decision {
	limit, ok := c.cons.Rules.WeeklySeriesLimit[m]
	if !ok {
		return allow()
	}
	if weekly[m]+proposedSets > limit {
		return deny(SeverityHard, ReasonWeeklyCeiling,
			fmt.Sprintf("%s weekly series %d + %d exceeds ceiling %d", m, weekly[m], proposedSets, limit))
	}
	return allow()
}

// MaxExercisesForMuscle is the FLEXIBLE sizing rule: how many exercises to
// plan for a muscle today without exhausting the weekly capacity needed by
// later days of the same type. Clamped by the per-muscle session cap and
// never negative.
func (c *Contract) MaxExercisesForMuscle(m catalog.Muscle, remainingWeekly, remainingDaysOfType int) int {
	rt := c.cons.Rules
	if remainingDaysOfType < 1 {
		remainingDaysOfType = 1
	}
	minSets := rt.MinSetsPerExercise
	if minSets < 1 {
		minSets = 1
	}
	n := remainingWeekly / minSets / remainingDaysOfType
	if n > rt.MaxPerMusclePerDay {
		n = rt.MaxPerMusclePerDay
	}
	if n < 0 {
		n = 0
	}
	return n
}

// WellFormed checks the contract's own integrity: every muscle has a
// weekly ceiling, every ceiling is non-negative, and the session cap is
// positive. Used by the diagnostic validator as defense-in-depth.
func (c *Contract) WellFormed() error {
	rt := c.cons.Rules
	if rt.MaxExercisesPerSession < 1 {
		return fmt.Errorf("session exercise cap %d must be positive", rt.MaxExercisesPerSession)
	}
	if rt.MinSetsPerExercise < 1 {
		return fmt.Errorf("min sets per exercise %d must be positive", rt.MinSetsPerExercise)
	}
	for _, m := range catalog.AllMuscles() {
		limit, ok := rt.WeeklySeriesLimit[m]
		if !ok {
			return fmt.Errorf("muscle %s has no weekly ceiling", m)
		}
		if limit < 0 {
			return fmt.Errorf("muscle %s has negative weekly ceiling %d", m, limit)
		}
	}
	for p, limit := range rt.PatternLimit {
		if limit < 1 {
			return fmt.Errorf("pattern %s has non-positive ceiling %d", p, limit)
		}
	}
	return nil
}
