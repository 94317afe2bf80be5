// Package rules holds the rule contract that pre-authorizes every exercise
// placement: the operational-level tables, the canonical RuleTable, and the
// ApprovalContract consulted by the generator and re-checked by the
// validators.
package rules

// Level is the operational activity level used for generation. It may be a
// safety downgrade of the level the user declared when the available
// session time is below the level's floor.
type Level string

const (
	LevelSedentary    Level = "Sedentário"
	LevelBeginner     Level = "Iniciante"
	LevelModerate     Level = "Moderado"
	LevelIntermediate Level = "Intermediário"
	LevelAdvanced     Level = "Avançado"
	LevelAthlete      Level = "Atleta"
	LevelElite        Level = "Atleta Alto Rendimento"
	LevelSenior       Level = "Idoso"
	LevelLimited      Level = "Limitado"
)

// DefaultLevel is the documented fallback when the declared activity level
// is unrecognized. Generation stays total: bad input never aborts a plan.
const DefaultLevel = LevelModerate

// levelParams collects every per-level knob in one row so the adapter, the
// contract, and the validators read from the same table.
type levelParams struct {
	// MinSessionMinutes is the time floor; below it the level is downgraded.
	MinSessionMinutes int
	// MaxExercisesPerSession caps the day's exercise count (HARD).
	MaxExercisesPerSession int
	// MaxPerMusclePerDay caps exercises per primary muscle in a day (SOFT).
	MaxPerMusclePerDay int
	// RepFloor/RepCeil bound the legal rep window for the level.
	RepFloor, RepCeil int
	// VolumeFactor scales the base weekly series ceilings.
	VolumeFactor float64
	// MinExercisesPerMuscle/MaxExercisesPerMuscle bound the per-slot target
	// count before proportional allocation (FLEXIBLE).
	MinExercisesPerMuscle, MaxExercisesPerMuscle int
}

var levelTable = map[Level]levelParams{
	LevelSedentary:    {0, 4, 2, 12, 20, 0.5, 1, 2},
	LevelSenior:       {0, 4, 2, 12, 20, 0.5, 1, 2},
	LevelLimited:      {0, 3, 2, 12, 20, 0.4, 1, 1},
	LevelBeginner:     {0, 4, 2, 10, 15, 0.6, 1, 2},
	LevelModerate:     {30, 5, 2, 8, 15, 0.8, 1, 2},
	LevelIntermediate: {45, 6, 3, 8, 12, 1.0, 2, 3},
	LevelAdvanced:     {60, 7, 3, 6, 12, 1.2, 2, 3},
	LevelAthlete:      {75, 8, 4, 5, 12, 1.4, 2, 4},
	LevelElite:        {90, 9, 4, 4, 12, 1.6, 3, 4},
}

// downgradeLadder orders the time-gated levels from most to least demanding.
// A level whose session-time floor is not met falls to the next rung whose
// floor fits.
var downgradeLadder = []Level{
	LevelElite, LevelAthlete, LevelAdvanced, LevelIntermediate, LevelModerate,
}

// ParseLevel maps a declared activity level to a known Level, falling back
// to DefaultLevel for unrecognized input.
func ParseLevel(s string) (Level, bool) {
	l := Level(s)
	if _, ok := levelTable[l]; ok {
		return l, true
	}
	return DefaultLevel, false
}

// DowngradeForTime returns the operational level for the given declared
// level and available minutes. A zero or negative availableMinutes means
// the user did not constrain session time and no downgrade applies.
func DowngradeForTime(declared Level, availableMinutes int) Level {
	if availableMinutes <= 0 {
		return declared
	}
	p, ok := levelTable[declared]
	if !ok || availableMinutes >= p.MinSessionMinutes {
		return declared
	}
	start := -1
	for i, l := range downgradeLadder {
		if l == declared {
			start = i
			break
		}
	}
	if start < 0 {
		return declared
	}
	for _, l := range downgradeLadder[start+1:] {
		if availableMinutes >= levelTable[l].MinSessionMinutes {
			return l
		}
	}
	// Even the lowest gated rung does not fit; use the beginner profile.
	return LevelBeginner
}

// IsAdvanced reports whether the level unlocks the PPL + Upper/Lower split
// at five weekly sessions.
func (l Level) IsAdvanced() bool {
	return l == LevelAdvanced || l == LevelAthlete || l == LevelElite
}

// RepWindow returns the legal rep range for the level.
func (l Level) RepWindow() (floor, ceil int) {
	p := l.params()
	return p.RepFloor, p.RepCeil
}

// MaxExercisesPerSession returns the per-day exercise ceiling for the level.
func (l Level) MaxExercisesPerSession() int {
	return l.params().MaxExercisesPerSession
}

// VolumeBounds returns the per-muscle per-day exercise-count bounds used
// for slot sizing.
func (l Level) VolumeBounds() (min, max int) {
	p := l.params()
	return p.MinExercisesPerMuscle, p.MaxExercisesPerMuscle
}

// MinSessionMinutes returns the session-time floor for the level.
func (l Level) MinSessionMinutes() int {
	return l.params().MinSessionMinutes
}

func (l Level) params() levelParams {
	if p, ok := levelTable[l]; ok {
		return p
	}
	return levelTable[DefaultLevel]
}
