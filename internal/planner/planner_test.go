package planner

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/profile"
	"github.com/claude/planforge/internal/rules"
)

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cat, log, nil)
}

// TestGenerateAcceptedAcrossProfiles runs the full pipeline over a spread
// of realistic profiles and expects every plan to clear the gate.
func TestGenerateAcceptedAcrossProfiles(t *testing.T) {
	profiles := []profile.UserProfile{
		{ActivityLevel: "Sedentário", Frequency: 2, TrainingLocation: "casa"},
		{ActivityLevel: "Iniciante", Frequency: 3, AvailableTimeMinutes: 45},
		{ActivityLevel: "Moderado", Frequency: 4, AvailableTimeMinutes: 60, Objective: "ganhar massa"},
		{ActivityLevel: "Intermediário", Frequency: 5, AvailableTimeMinutes: 60},
		{ActivityLevel: "Avançado", Frequency: 5, AvailableTimeMinutes: 90},
		{ActivityLevel: "Avançado", Frequency: 6, AvailableTimeMinutes: 75, Objective: "emagrecer"},
		{ActivityLevel: "Atleta Alto Rendimento", Frequency: 7, AvailableTimeMinutes: 120},
		{ActivityLevel: "Idoso", Frequency: 2, TrainingLocation: "casa"},
		{ActivityLevel: "Limitado", Frequency: 2, JointLimitations: true, KneeLimitations: true},
		{ActivityLevel: "desconhecido", Frequency: 0}, // all fallbacks
	}

	p := newTestPlanner(t)
	for _, up := range profiles {
		result := p.Generate(up)
		if !result.Accepted() {
			t.Errorf("%s freq %d rejected: %v", up.ActivityLevel, up.Frequency, result.Rejection)
			continue
		}
		if len(result.Plan.WeeklySchedule) != result.Constraints.Frequency {
			t.Errorf("%s: schedule has %d days for frequency %d",
				up.ActivityLevel, len(result.Plan.WeeklySchedule), result.Constraints.Frequency)
		}
		if len(result.Diagnostics) != 0 {
			t.Errorf("%s: contract diagnostics: %v", up.ActivityLevel, result.Diagnostics)
		}
	}
}

// TestGenerateAcceptedAllLevelsFrequencies sweeps every activity level
// across every legal weekly frequency and expects an accepted plan with a
// full schedule each time. Generation is deterministic, so any rejection
// here is permanent for that profile.
func TestGenerateAcceptedAllLevelsFrequencies(t *testing.T) {
	levels := []rules.Level{
		rules.LevelSedentary, rules.LevelSenior, rules.LevelLimited,
		rules.LevelBeginner, rules.LevelModerate, rules.LevelIntermediate,
		rules.LevelAdvanced, rules.LevelAthlete, rules.LevelElite,
	}
	p := newTestPlanner(t)
	for _, level := range levels {
		for freq := 1; freq <= 7; freq++ {
			result := p.Generate(profile.UserProfile{
				ActivityLevel: string(level),
				Frequency:     freq,
			})
			if !result.Accepted() {
				t.Errorf("%s freq %d rejected: %v", level, freq, result.Rejection)
				continue
			}
			if len(result.Plan.WeeklySchedule) != freq {
				t.Errorf("%s freq %d: schedule has %d days", level, freq, len(result.Plan.WeeklySchedule))
			}
			for _, day := range result.Plan.WeeklySchedule {
				if len(day.Exercises) == 0 {
					t.Errorf("%s freq %d: %s is empty", level, freq, day.Day)
				}
			}
			if len(result.Diagnostics) != 0 {
				t.Errorf("%s freq %d: contract diagnostics: %v", level, freq, result.Diagnostics)
			}
		}
	}
}

// TestGenerateDeterministicThroughPipeline verifies determinism survives
// the corrector and the gate.
func TestGenerateDeterministicThroughPipeline(t *testing.T) {
	up := profile.UserProfile{
		ActivityLevel: "Intermediário", Frequency: 6, AvailableTimeMinutes: 60,
		Objective: "hipertrofia",
	}
	p := newTestPlanner(t)
	a := p.Generate(up)
	b := p.Generate(up)
	if !a.Accepted() || !b.Accepted() {
		t.Fatalf("rejections: %v, %v", a.Rejection, b.Rejection)
	}
	for i := range a.Plan.WeeklySchedule {
		if a.Plan.WeeklySchedule[i].Day != b.Plan.WeeklySchedule[i].Day {
			t.Fatal("day labels differ between runs")
		}
		ae, be := a.Plan.WeeklySchedule[i].Exercises, b.Plan.WeeklySchedule[i].Exercises
		if !reflect.DeepEqual(ae, be) {
			t.Fatalf("day %d differs between runs", i+1)
		}
	}
}

// TestGenerateRejectsInvalidDivision verifies an explicit division that
// contradicts the frequency mapping surfaces as a typed rejection.
func TestGenerateRejectsInvalidDivision(t *testing.T) {
	p := newTestPlanner(t)
	result := p.Generate(profile.UserProfile{
		ActivityLevel: "Moderado", Frequency: 3, Division: "PPL",
	})
	if result.Accepted() {
		t.Fatal("PPL at 3 weekly sessions should be rejected")
	}
	if result.Rejection.Reason != rules.ReasonSplitFrequency {
		t.Errorf("reason = %s, want %s", result.Rejection.Reason, rules.ReasonSplitFrequency)
	}
}

// TestGenerateSplitMatchesFrequency verifies the resolved split shape of
// the emitted schedule.
func TestGenerateSplitMatchesFrequency(t *testing.T) {
	p := newTestPlanner(t)

	result := p.Generate(profile.UserProfile{ActivityLevel: "Moderado", Frequency: 4, AvailableTimeMinutes: 60})
	if !result.Accepted() {
		t.Fatalf("rejected: %v", result.Rejection)
	}
	if result.Constraints.Split != plan.SplitUpperLower {
		t.Errorf("split = %s, want Upper/Lower", result.Constraints.Split)
	}
	types := []plan.DayType{}
	for _, d := range result.Plan.WeeklySchedule {
		types = append(types, d.Type)
	}
	want := []plan.DayType{plan.DayUpper, plan.DayLower, plan.DayUpper, plan.DayLower}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("day %d type = %s, want %s", i+1, types[i], want[i])
		}
	}
}

// TestGenerateCollectsPenalties verifies SOFT/FLEXIBLE quality events
// surface on the result for restricted profiles.
func TestGenerateCollectsPenalties(t *testing.T) {
	p := newTestPlanner(t)
	result := p.Generate(profile.UserProfile{
		ActivityLevel: "Limitado", Frequency: 2, JointLimitations: true, KneeLimitations: true,
	})
	if !result.Accepted() {
		t.Fatalf("rejected: %v", result.Rejection)
	}
	// A heavily restricted profile on the smallest level cannot hit every
	// ideal target; the shortfall must be visible, not silent.
	if len(result.Penalties) == 0 {
		t.Error("expected quality penalties for a heavily restricted profile")
	}
}
