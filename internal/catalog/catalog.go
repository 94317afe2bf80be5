package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/exercises.yaml
var dataFS embed.FS

// Catalog is the loaded exercise catalog. Templates keep the order they
// appear in the data file, which makes generation deterministic.
type Catalog struct {
	templates []Template
	byMuscle  map[Muscle][]Template
}

type rawExercise struct {
	Name        string   `yaml:"name"`
	Muscle      string   `yaml:"muscle"`
	Secondary   []string `yaml:"secondary"`
	Role        string   `yaml:"role"`
	Pattern     string   `yaml:"pattern"`
	Equipment   string   `yaml:"equipment"`
	Sets        int      `yaml:"sets"`
	Reps        string   `yaml:"reps"`
	Rest        string   `yaml:"rest"`
	Hypertrophy bool     `yaml:"hypertrophy"`
}

type rawFile struct {
	Exercises []rawExercise `yaml:"exercises"`
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	data, err := dataFS.ReadFile("data/exercises.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a Catalog from YAML bytes. Exposed for tests that need a
// reduced catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(raw.Exercises) == 0 {
		return nil, fmt.Errorf("catalog contains no exercises")
	}

	c := &Catalog{byMuscle: make(map[Muscle][]Template)}
	for i, r := range raw.Exercises {
		t, err := r.toTemplate()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, r.Name, err)
		}
		c.templates = append(c.templates, t)
		c.byMuscle[t.PrimaryMuscle] = append(c.byMuscle[t.PrimaryMuscle], t)
	}
	return c, nil
}

func (r rawExercise) toTemplate() (Template, error) {
	if r.Name == "" {
		return Template{}, fmt.Errorf("missing name")
	}
	if r.Sets < 1 {
		return Template{}, fmt.Errorf("sets must be >= 1, got %d", r.Sets)
	}
	if len(r.Secondary) > 2 {
		return Template{}, fmt.Errorf("at most 2 secondary muscles, got %d", len(r.Secondary))
	}

	muscle := Muscle(r.Muscle)
	known := false
	for _, m := range AllMuscles() {
		if m == muscle {
			known = true
			break
		}
	}
	if !known {
		return Template{}, fmt.Errorf("unknown muscle %q", r.Muscle)
	}

	role := Role(r.Role)
	if role != RoleStructural && role != RoleIsolated {
		return Template{}, fmt.Errorf("unknown role %q", r.Role)
	}

	equip := Equipment(r.Equipment)
	switch equip {
	case EquipGym, EquipHome, EquipBoth, EquipOutdoor:
	default:
		return Template{}, fmt.Errorf("unknown equipment %q", r.Equipment)
	}

	var secondary []Muscle
	for _, s := range r.Secondary {
		secondary = append(secondary, Muscle(s))
	}

	return Template{
		Name:             r.Name,
		PrimaryMuscle:    muscle,
		SecondaryMuscles: secondary,
		Role:             role,
		Pattern:          ParsePattern(r.Pattern),
		Equipment:        equip,
		Sets:             r.Sets,
		Reps:             r.Reps,
		Rest:             r.Rest,
		Hypertrophy:      r.Hypertrophy,
	}, nil
}

// All returns every template in stable catalog order.
func (c *Catalog) All() []Template {
	return c.templates
}

// ForMuscle returns the templates whose primary muscle matches, in catalog
// order.
func (c *Catalog) ForMuscle(m Muscle) []Template {
	return c.byMuscle[m]
}

// ForMuscleAt filters a muscle's templates by training location, preserving
// order.
func (c *Catalog) ForMuscleAt(m Muscle, loc Location) []Template {
	var out []Template
	for _, t := range c.byMuscle[m] {
		if loc.Allows(t.Equipment) {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the template with the given name, if present.
func (c *Catalog) Find(name string) (Template, bool) {
	for _, t := range c.templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Len reports the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
