package validate

import (
	"fmt"
	"strings"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/engine"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// Rejection is the typed terminal outcome when a plan fails the gate. The
// first failing rule is always the one reported.
type Rejection struct {
	Reason rules.RejectionReason
	Detail string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

// bannedPhrases is aesthetic-bias phrasing that must never appear in
// generated text fields.
var bannedPhrases = []string{
	"corpo perfeito",
	"corpo dos sonhos",
	"projeto verão",
	"barriga negativa",
	"shape inexplicável",
}

// Structural is the final gate a plan must pass to be usable. Any single
// failing rule rejects the whole plan.
func Structural(p *plan.TrainingPlan, cons rules.Constraints) *Rejection {
	if rej := checkSplitFrequency(cons); rej != nil {
		return rej
	}
	if rej := checkDays(p, cons); rej != nil {
		return rej
	}
	if rej := checkText(p); rej != nil {
		return rej
	}
	return nil
}

// checkSplitFrequency enforces the documented split/frequency mapping:
// 1-3 days Full Body, 4 Upper/Lower, 5 PPL (or PPL + Upper/Lower for
// advanced operational levels), 6-7 PPL.
func checkSplitFrequency(cons rules.Constraints) *Rejection {
	ok := false
	switch {
	case cons.Frequency <= 3:
		ok = cons.Split == plan.SplitFullBody
	case cons.Frequency == 4:
		ok = cons.Split == plan.SplitUpperLower
	case cons.Frequency == 5:
		ok = cons.Split == plan.SplitPPL ||
			(cons.Split == plan.SplitPPLUpperLow && cons.Level.IsAdvanced())
	default:
		ok = cons.Split == plan.SplitPPL
	}
	if !ok {
		return &Rejection{
			Reason: rules.ReasonSplitFrequency,
			Detail: fmt.Sprintf("split %s is not valid for %d weekly sessions at level %s", cons.Split, cons.Frequency, cons.Level),
		}
	}
	return nil
}

func checkDays(p *plan.TrainingPlan, cons rules.Constraints) *Rejection {
	repFloor, repCeil := cons.Level.RepWindow()
	budget := cons.AvailableMinutes * 60

	for _, day := range p.WeeklySchedule {
		if len(day.Exercises) == 0 {
			return &Rejection{Reason: rules.ReasonEmptyDay, Detail: day.Day + " has no exercises"}
		}
		if len(day.Exercises) > cons.Rules.MaxExercisesPerSession {
			return &Rejection{
				Reason: rules.ReasonSessionFull,
				Detail: fmt.Sprintf("%s has %d exercises (cap %d)", day.Day, len(day.Exercises), cons.Rules.MaxExercisesPerSession),
			}
		}

		for _, ex := range day.Exercises {
			if ex.PrimaryMuscle == "" {
				return &Rejection{Reason: rules.ReasonMuscleNotAllowed, Detail: ex.Name + " has no primary muscle"}
			}
			if !plan.MuscleAllowed(day.Type, ex.PrimaryMuscle) {
				return &Rejection{
					Reason: rules.ReasonMuscleNotAllowed,
					Detail: fmt.Sprintf("%s targets %s, not allowed on a %s day", ex.Name, ex.PrimaryMuscle, day.Type),
				}
			}
			if len(ex.SecondaryMuscles) > 2 {
				return &Rejection{
					Reason: rules.ReasonSecondaryMuscles,
					Detail: fmt.Sprintf("%s lists %d secondary muscles", ex.Name, len(ex.SecondaryMuscles)),
				}
			}
			if ex.Sets < 1 {
				return &Rejection{
					Reason: rules.ReasonRepRangeIllegal,
					Detail: fmt.Sprintf("%s has %d sets", ex.Name, ex.Sets),
				}
			}
			if rej := checkRepRange(ex, repFloor, repCeil); rej != nil {
				return rej
			}
			if rej := checkJointSafety(ex, cons); rej != nil {
				return rej
			}
		}

		if rej := checkRequiredMuscles(day); rej != nil {
			return rej
		}

		if budget > 0 && engine.SessionSeconds(day.Exercises) > budget {
			return &Rejection{
				Reason: rules.ReasonSessionDuration,
				Detail: fmt.Sprintf("%s runs %ds, over the %d min budget", day.Day, engine.SessionSeconds(day.Exercises), cons.AvailableMinutes),
			}
		}
	}
	return nil
}

func checkRepRange(ex plan.Exercise, repFloor, repCeil int) *Rejection {
	min, max, err := engine.ParseRepRange(ex.Reps)
	if err != nil {
		return &Rejection{Reason: rules.ReasonRepRangeIllegal, Detail: ex.Name + ": " + err.Error()}
	}
	if min < repFloor || max > repCeil {
		return &Rejection{
			Reason: rules.ReasonRepRangeIllegal,
			Detail: fmt.Sprintf("%s reps %s outside legal window %d-%d", ex.Name, ex.Reps, repFloor, repCeil),
		}
	}
	// Very low rep ranges are reserved for heavy compounds.
	if ex.Role != catalog.RoleStructural && min < 6 {
		return &Rejection{
			Reason: rules.ReasonRepRangeIllegal,
			Detail: fmt.Sprintf("isolated %s uses heavy rep range %s", ex.Name, ex.Reps),
		}
	}
	return nil
}

// checkJointSafety is the second, independent joint check: defense in
// depth against generator bugs.
func checkJointSafety(ex plan.Exercise, cons rules.Constraints) *Rejection {
	type restriction struct {
		joint rules.Joint
		on    bool
	}
	for _, r := range []restriction{
		{rules.JointShoulder, cons.ShoulderRestricted},
		{rules.JointKnee, cons.KneeRestricted},
	} {
		if !r.on {
			continue
		}
		if sev, restricted := cons.Rules.JointSeverity(r.joint, ex.Pattern); restricted && sev == rules.SeverityHard {
			return &Rejection{
				Reason: rules.ReasonJointRestricted,
				Detail: fmt.Sprintf("%s (%s) violates the %s restriction", ex.Name, ex.Pattern, r.joint),
			}
		}
	}
	return nil
}

func checkRequiredMuscles(day plan.TrainingDay) *Rejection {
	for _, group := range plan.RequiredMuscles(day.Type) {
		found := false
		for _, ex := range day.Exercises {
			for _, m := range group {
				if ex.PrimaryMuscle == m {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			var names []string
			for _, m := range group {
				names = append(names, string(m))
			}
			return &Rejection{
				Reason: rules.ReasonRequiredMuscle,
				Detail: fmt.Sprintf("%s (%s) is missing %s", day.Day, day.Type, strings.Join(names, " ou ")),
			}
		}
	}
	return nil
}

func checkText(p *plan.TrainingPlan) *Rejection {
	fields := []string{p.Overview, p.Progression}
	for _, d := range p.WeeklySchedule {
		fields = append(fields, d.Description)
		for _, ex := range d.Exercises {
			fields = append(fields, ex.Notes)
		}
	}
	for _, f := range fields {
		lower := strings.ToLower(f)
		for _, banned := range bannedPhrases {
			if strings.Contains(lower, banned) {
				return &Rejection{
					Reason: rules.ReasonBannedPhrase,
					Detail: fmt.Sprintf("text contains banned phrasing %q", banned),
				}
			}
		}
	}
	return nil
}
