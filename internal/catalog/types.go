// Package catalog holds the static exercise catalog: immutable templates
// grouped by muscle, tagged with role, movement pattern, and equipment.
// The catalog is embedded at build time and its file order is the stable
// iteration order the generator relies on.
package catalog

// Muscle identifies a primary muscle group. Values match the Portuguese
// names used in user-facing plans.
type Muscle string

const (
	MuscleChest     Muscle = "peito"
	MuscleBack      Muscle = "costas"
	MuscleShoulders Muscle = "ombros"
	MuscleBiceps    Muscle = "bíceps"
	MuscleTriceps   Muscle = "tríceps"
	MuscleQuads     Muscle = "quadríceps"
	MusclePosterior Muscle = "posteriores"
	MuscleGlutes    Muscle = "glúteos"
	MuscleCalves    Muscle = "panturrilhas"
	MuscleAbs       Muscle = "abdômen"
)

// AllMuscles lists every muscle group in catalog order.
func AllMuscles() []Muscle {
	return []Muscle{
		MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
		MuscleQuads, MusclePosterior, MuscleGlutes, MuscleCalves, MuscleAbs,
	}
}

// MuscleSize buckets muscles by trainable volume. Large muscles get higher
// weekly ceilings and the structural set bonus.
type MuscleSize int

const (
	SizeSmall MuscleSize = iota
	SizeMedium
	SizeLarge
)

// SizeOf returns the size class for a muscle. Unknown muscles are small,
// which is the conservative choice for volume ceilings.
func SizeOf(m Muscle) MuscleSize {
	switch m {
	case MuscleChest, MuscleBack, MuscleQuads:
		return SizeLarge
	case MuscleShoulders, MusclePosterior, MuscleGlutes:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// MovementPattern classifies an exercise by the joint/movement it stresses.
// Patterns cap redundant stress within a day and drive joint restrictions.
type MovementPattern string

const (
	PatternHipDominant    MovementPattern = "hip_dominant"
	PatternKneeDominant   MovementPattern = "knee_dominant"
	PatternHorizontalPush MovementPattern = "horizontal_push"
	PatternVerticalPush   MovementPattern = "vertical_push"
	PatternOverhead       MovementPattern = "overhead_movement"
	PatternHorizontalPull MovementPattern = "horizontal_pull"
	PatternVerticalPull   MovementPattern = "vertical_pull"
	PatternUnilateral     MovementPattern = "unilateral"
	PatternCoreStability  MovementPattern = "core_stability"
	PatternSquat          MovementPattern = "squat"
	PatternDeepFlexion    MovementPattern = "deep_flexion"
	PatternImpact         MovementPattern = "impact"
	PatternUnknown        MovementPattern = "unknown"
)

// ParsePattern maps a raw string to a known pattern, falling back to
// PatternUnknown rather than failing. Unknown patterns are never counted
// against pattern ceilings.
func ParsePattern(s string) MovementPattern {
	switch MovementPattern(s) {
	case PatternHipDominant, PatternKneeDominant, PatternHorizontalPush,
		PatternVerticalPush, PatternOverhead, PatternHorizontalPull,
		PatternVerticalPull, PatternUnilateral, PatternCoreStability,
		PatternSquat, PatternDeepFlexion, PatternImpact:
		return MovementPattern(s)
	default:
		return PatternUnknown
	}
}

// Role distinguishes heavy multi-joint movements from isolation work.
type Role string

const (
	RoleStructural Role = "structural"
	RoleIsolated   Role = "isolated"
)

// Equipment describes where an exercise can be performed.
type Equipment string

const (
	EquipGym     Equipment = "gym"
	EquipHome    Equipment = "home"
	EquipBoth    Equipment = "both"
	EquipOutdoor Equipment = "outdoor"
)

// Location is the user's training location as received from the profile.
type Location string

const (
	LocationGym     Location = "academia"
	LocationHome    Location = "casa"
	LocationBoth    Location = "ambos"
	LocationOutdoor Location = "ar_livre"
)

// Allows reports whether an exercise with the given equipment tag can be
// performed at the location. An empty location defaults to gym.
func (l Location) Allows(e Equipment) bool {
	switch l {
	case LocationHome:
		return e == EquipHome || e == EquipBoth
	case LocationOutdoor:
		return e == EquipHome || e == EquipBoth || e == EquipOutdoor
	case LocationBoth:
		return true
	default: // academia, or unset
		return e == EquipGym || e == EquipBoth
	}
}

// Template is an immutable exercise definition owned by the catalog.
type Template struct {
	Name             string
	PrimaryMuscle    Muscle
	SecondaryMuscles []Muscle // at most 2
	Role             Role
	Pattern          MovementPattern
	Equipment        Equipment
	Sets             int
	Reps             string // "min-max"
	Rest             string // "90s"
	Hypertrophy      bool   // counts toward hypertrophy volume
}

// IsStructural reports whether the template is a structural (compound) lift.
func (t Template) IsStructural() bool {
	return t.Role == RoleStructural
}
