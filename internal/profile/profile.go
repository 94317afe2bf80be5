// Package profile resolves a raw user profile into the immutable
// generation constraints the engine works from.
package profile

import (
	"github.com/claude/planforge/internal/catalog"
)

// UserProfile is the input contract consumed from callers. Field names and
// enum values follow the client apps (Portuguese locale).
type UserProfile struct {
	ActivityLevel        string  `json:"activityLevel" yaml:"activityLevel"`
	Frequency            int     `json:"frequency" yaml:"frequency"`
	Division             string  `json:"division,omitempty" yaml:"division,omitempty"`
	AvailableTimeMinutes int     `json:"availableTimeMinutes,omitempty" yaml:"availableTimeMinutes,omitempty"`
	IMC                  float64 `json:"imc,omitempty" yaml:"imc,omitempty"`
	Gender               string  `json:"gender,omitempty" yaml:"gender,omitempty"`
	Age                  int     `json:"age,omitempty" yaml:"age,omitempty"`
	Objective            string  `json:"objective,omitempty" yaml:"objective,omitempty"`
	JointLimitations     bool    `json:"jointLimitations,omitempty" yaml:"jointLimitations,omitempty"`
	KneeLimitations      bool    `json:"kneeLimitations,omitempty" yaml:"kneeLimitations,omitempty"`
	TrainingLocation     string  `json:"trainingLocation,omitempty" yaml:"trainingLocation,omitempty"`
}

// Location normalizes the training location, defaulting to the gym.
func (p UserProfile) Location() catalog.Location {
	switch catalog.Location(p.TrainingLocation) {
	case catalog.LocationHome:
		return catalog.LocationHome
	case catalog.LocationBoth:
		return catalog.LocationBoth
	case catalog.LocationOutdoor:
		return catalog.LocationOutdoor
	default:
		return catalog.LocationGym
	}
}
