package history

import (
	"testing"

	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/profile"
)

func testProfile() profile.UserProfile {
	return profile.UserProfile{
		ActivityLevel:        "Intermediário",
		Frequency:            3,
		AvailableTimeMinutes: 60,
		Objective:            "ganhar massa muscular",
		TrainingLocation:     "academia",
	}
}

func testPlan() plan.TrainingPlan {
	return plan.TrainingPlan{
		Overview: "Plano Full Body",
		WeeklySchedule: []plan.TrainingDay{
			{Day: "Dia 1", Type: plan.DayFullBody, Exercises: []plan.Exercise{
				{Name: "Agachamento livre", PrimaryMuscle: "quadríceps", Sets: 3, Reps: "8-12", Rest: "90s"},
			}},
		},
		Progression: "Progressão linear",
	}
}

// TestHashProfileStable verifies that identical profiles hash to the same
// key and different profiles do not.
func TestHashProfileStable(t *testing.T) {
	a, err := HashProfile(testProfile())
	if err != nil {
		t.Fatalf("hashing profile: %v", err)
	}
	b, err := HashProfile(testProfile())
	if err != nil {
		t.Fatalf("hashing profile: %v", err)
	}
	if a != b {
		t.Errorf("same profile hashed to %s and %s", a, b)
	}

	other := testProfile()
	other.Frequency = 5
	c, err := HashProfile(other)
	if err != nil {
		t.Fatalf("hashing profile: %v", err)
	}
	if a == c {
		t.Error("different profiles produced the same hash")
	}
}

// TestRecordAndLookup verifies the round trip through the history store.
func TestRecordAndLookup(t *testing.T) {
	h, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}
	defer h.Close()

	up := testProfile()
	hash, err := HashProfile(up)
	if err != nil {
		t.Fatalf("hashing profile: %v", err)
	}

	if entry, err := h.Lookup(hash); err != nil || entry != nil {
		t.Fatalf("lookup before record = %v, %v; want nil, nil", entry, err)
	}

	err = h.Record(Entry{
		ProfileHash: hash,
		Profile:     up,
		Plan:        testPlan(),
		Split:       "Full Body",
		Level:       "Intermediário",
	})
	if err != nil {
		t.Fatalf("recording entry: %v", err)
	}

	entry, err := h.Lookup(hash)
	if err != nil {
		t.Fatalf("lookup after record: %v", err)
	}
	if entry == nil {
		t.Fatal("entry not found after record")
	}
	if entry.Split != "Full Body" {
		t.Errorf("split = %q, want Full Body", entry.Split)
	}
	if len(entry.Plan.WeeklySchedule) != 1 {
		t.Errorf("schedule days = %d, want 1", len(entry.Plan.WeeklySchedule))
	}
}

// TestRecordReplaces verifies re-recording the same profile overwrites
// the earlier entry.
func TestRecordReplaces(t *testing.T) {
	h, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}
	defer h.Close()

	up := testProfile()
	hash, err := HashProfile(up)
	if err != nil {
		t.Fatalf("hashing profile: %v", err)
	}

	for _, level := range []string{"Moderado", "Intermediário"} {
		if err := h.Record(Entry{ProfileHash: hash, Profile: up, Plan: testPlan(), Split: "Full Body", Level: level}); err != nil {
			t.Fatalf("recording entry: %v", err)
		}
	}

	recent, err := h.Recent(10)
	if err != nil {
		t.Fatalf("listing history: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("entries = %d, want 1", len(recent))
	}
	if recent[0].Level != "Intermediário" {
		t.Errorf("level = %q, want the replacement", recent[0].Level)
	}
}
