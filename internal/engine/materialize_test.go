package engine

import (
	"testing"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

func consFor(level rules.Level, deficit bool, goal rules.Goal) rules.Constraints {
	return rules.Constraints{
		Level:   level,
		Deficit: deficit,
		Goal:    goal,
		Rules:   rules.NewRuleTable(level, deficit),
	}
}

func benchTemplate() catalog.Template {
	return catalog.Template{
		Name:          "Supino reto com barra",
		PrimaryMuscle: catalog.MuscleChest,
		Role:          catalog.RoleStructural,
		Pattern:       catalog.PatternHorizontalPush,
		Sets:          3,
		Reps:          "8-12",
		Rest:          "90s",
	}
}

func curlTemplate() catalog.Template {
	return catalog.Template{
		Name:          "Rosca direta",
		PrimaryMuscle: catalog.MuscleBiceps,
		Role:          catalog.RoleIsolated,
		Pattern:       catalog.PatternUnknown,
		Sets:          3,
		Reps:          "10-15",
		Rest:          "60s",
	}
}

// TestMaterializeDeficitForcesSingleSet verifies deficit mode caps every
// exercise at one set and shifts reps upward.
func TestMaterializeDeficitForcesSingleSet(t *testing.T) {
	ex := materialize(benchTemplate(), consFor(rules.LevelIntermediate, true, rules.GoalLoseWeight))
	if ex.Sets != 1 {
		t.Errorf("sets = %d, want 1", ex.Sets)
	}
	if ex.Reps != "12-12" {
		// Intermediário window is 8-12; the deficit shift clamps at the ceiling.
		t.Errorf("reps = %s, want 12-12", ex.Reps)
	}
}

// TestMaterializeStructuralBonus verifies structural lifts on large
// muscles get the extra set outside deficit.
func TestMaterializeStructuralBonus(t *testing.T) {
	ex := materialize(benchTemplate(), consFor(rules.LevelIntermediate, false, rules.GoalGainMass))
	if ex.Sets != 4 {
		t.Errorf("sets = %d, want 3 + structural bonus", ex.Sets)
	}

	// Isolation on a small muscle gets no bonus, only the min-set floor.
	ex = materialize(curlTemplate(), consFor(rules.LevelIntermediate, false, rules.GoalGainMass))
	if ex.Sets != 3 {
		t.Errorf("isolated sets = %d, want 3", ex.Sets)
	}
}

// TestMaterializeGainRepWindow verifies the mass-gain shift and the level
// clamp.
func TestMaterializeGainRepWindow(t *testing.T) {
	tmpl := curlTemplate()
	ex := materialize(tmpl, consFor(rules.LevelIntermediate, false, rules.GoalGainMass))
	// 10-15 narrowed to 10-12 by the gain shift, inside the 8-12 window.
	if ex.Reps != "10-12" {
		t.Errorf("reps = %s, want 10-12", ex.Reps)
	}
}

// TestMaterializeIsolatedRepFloor verifies isolation work never drops
// below six reps even at heavy-rep levels.
func TestMaterializeIsolatedRepFloor(t *testing.T) {
	tmpl := curlTemplate()
	tmpl.Reps = "4-8"
	ex := materialize(tmpl, consFor(rules.LevelElite, false, rules.GoalMaintain))
	min, _, err := ParseRepRange(ex.Reps)
	if err != nil {
		t.Fatalf("parsing %s: %v", ex.Reps, err)
	}
	if min < 6 {
		t.Errorf("isolated min reps = %d, want >= 6", min)
	}
}

// TestMaterializeClampsHighRepHolds verifies catalog ranges far above the
// level ceiling (timed core holds) come out inside the legal window on
// both bounds.
func TestMaterializeClampsHighRepHolds(t *testing.T) {
	plank := catalog.Template{
		Name:          "Prancha abdominal",
		PrimaryMuscle: catalog.MuscleAbs,
		Role:          catalog.RoleIsolated,
		Pattern:       catalog.PatternCoreStability,
		Sets:          3,
		Reps:          "30-60",
		Rest:          "45s",
	}
	for _, level := range []rules.Level{
		rules.LevelSedentary, rules.LevelModerate, rules.LevelIntermediate, rules.LevelElite,
	} {
		ex := materialize(plank, consFor(level, false, rules.GoalMaintain))
		min, max, err := ParseRepRange(ex.Reps)
		if err != nil {
			t.Fatalf("%s: parsing %s: %v", level, ex.Reps, err)
		}
		floor, ceil := level.RepWindow()
		if min < floor || min > ceil || max < floor || max > ceil {
			t.Errorf("%s: reps %s outside legal window %d-%d", level, ex.Reps, floor, ceil)
		}
	}
}

// TestParseRepRange verifies parsing and its error cases.
func TestParseRepRange(t *testing.T) {
	min, max, err := ParseRepRange("8-12")
	if err != nil || min != 8 || max != 12 {
		t.Errorf("ParseRepRange(8-12) = %d, %d, %v", min, max, err)
	}
	for _, bad := range []string{"", "12", "12-8", "0-5", "a-b"} {
		if _, _, err := ParseRepRange(bad); err == nil {
			t.Errorf("ParseRepRange(%q) accepted", bad)
		}
	}
}

// TestParseRestSeconds verifies both unit forms.
func TestParseRestSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"90s", 90},
		{"2min", 120},
		{"45", 45},
	}
	for _, c := range cases {
		got, err := ParseRestSeconds(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseRestSeconds(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
	}
	if _, err := ParseRestSeconds("logo"); err == nil {
		t.Error("ParseRestSeconds accepted garbage")
	}
}

// TestShrinkRestsRespectsFloor verifies the trim pass never prescribes
// rests below the floor.
func TestShrinkRestsRespectsFloor(t *testing.T) {
	exercises := []plan.Exercise{
		{Name: "A", Sets: 4, Rest: "120s"},
		{Name: "B", Sets: 4, Rest: "60s"},
	}
	shrinkRests(exercises, 600)
	for _, ex := range exercises {
		rest, err := ParseRestSeconds(ex.Rest)
		if err != nil {
			t.Fatalf("parsing rest %q: %v", ex.Rest, err)
		}
		if rest < restFloorSeconds {
			t.Errorf("%s rest %ds below floor %ds", ex.Name, rest, restFloorSeconds)
		}
	}
}

// TestSessionSeconds verifies the duration estimate.
func TestSessionSeconds(t *testing.T) {
	exercises := []plan.Exercise{
		{Sets: 3, Rest: "90s"},  // 3 * 120 = 360
		{Sets: 2, Rest: "1min"}, // 2 * 90 = 180
	}
	if got := SessionSeconds(exercises); got != 540 {
		t.Errorf("SessionSeconds = %d, want 540", got)
	}
}
