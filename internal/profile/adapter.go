package profile

import (
	"fmt"
	"strings"

	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// Keyword heuristics for the caloric-deficit flag. Matching is on the
// lowercased objective text.
var (
	deficitKeywords  = []string{"emagrecer", "perder", "queima", "definir", "secar"}
	massGainKeywords = []string{"ganhar", "massa", "hipertrofia"}
)

// recompositionIMC is the IMC threshold above which a mass-gain objective
// is treated as body recomposition and generates in deficit mode.
const recompositionIMC = 25.0

// Resolve turns a raw user profile into generation constraints: split,
// operational level, deficit mode, and the canonical rule table. It never
// fails; unresolvable inputs fall back to documented defaults and the
// decision is recorded in Notes.
func Resolve(p UserProfile) rules.Constraints {
	var notes []string

	freq := p.Frequency
	if freq < 1 || freq > 7 {
		notes = append(notes, fmt.Sprintf("frequência %d fora do intervalo 1-7; usando 3 dias", freq))
		freq = 3
	}

	declared, known := rules.ParseLevel(p.ActivityLevel)
	if !known {
		notes = append(notes, fmt.Sprintf("nível %q não reconhecido; usando %s", p.ActivityLevel, rules.DefaultLevel))
	}

	operational := rules.DowngradeForTime(declared, p.AvailableTimeMinutes)
	if operational != declared {
		notes = append(notes, fmt.Sprintf(
			"nível ajustado de %s para %s: sessões de %d min ficam abaixo do mínimo de %d min",
			declared, operational, p.AvailableTimeMinutes, declared.MinSessionMinutes()))
	}

	deficit := inDeficit(p)
	goal := resolveGoal(p.Objective)
	split := resolveSplit(p.Division, freq, operational)

	return rules.Constraints{
		Split:              split,
		Level:              operational,
		DeclaredLevel:      declared,
		Frequency:          freq,
		AvailableMinutes:   p.AvailableTimeMinutes,
		Location:           p.Location(),
		Deficit:            deficit,
		Goal:               goal,
		ShoulderRestricted: p.JointLimitations,
		KneeRestricted:     p.KneeLimitations,
		Rules:              rules.NewRuleTable(operational, deficit),
		Notes:              notes,
	}
}

// inDeficit computes the caloric-deficit flag: an explicit weight-loss
// objective, or a mass-gain objective on an IMC >= 25 profile (the
// body-recomposition case).
func inDeficit(p UserProfile) bool {
	obj := strings.ToLower(p.Objective)
	if obj == "" {
		return false
	}
	if containsAny(obj, deficitKeywords) {
		return true
	}
	return p.IMC >= recompositionIMC && containsAny(obj, massGainKeywords)
}

// resolveGoal normalizes the free-text objective. Weight loss wins over
// mass gain when both appear.
func resolveGoal(objective string) rules.Goal {
	obj := strings.ToLower(objective)
	switch {
	case containsAny(obj, deficitKeywords):
		return rules.GoalLoseWeight
	case containsAny(obj, massGainKeywords):
		return rules.GoalGainMass
	default:
		return rules.GoalMaintain
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// resolveSplit picks the weekly split. An explicit division wins when it is
// one of the valid splits; otherwise the frequency mapping applies:
// <=3 Full Body, 4 Upper/Lower, 5 PPL (PPL + Upper/Lower for advanced
// operational levels), >=6 PPL.
func resolveSplit(division string, freq int, level rules.Level) plan.Split {
	for _, s := range plan.ValidSplits() {
		if plan.Split(division) == s {
			return s
		}
	}
	switch {
	case freq <= 3:
		return plan.SplitFullBody
	case freq == 4:
		return plan.SplitUpperLower
	case freq == 5:
		if level.IsAdvanced() {
			return plan.SplitPPLUpperLow
		}
		return plan.SplitPPL
	default:
		return plan.SplitPPL
	}
}
