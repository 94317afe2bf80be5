package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/profile"
)

// PlanRow is a persisted generation result.
type PlanRow struct {
	ID        uuid.UUID           `json:"id"`
	Profile   profile.UserProfile `json:"profile"`
	Plan      plan.TrainingPlan   `json:"plan"`
	Split     string              `json:"split"`
	Level     string              `json:"level"`
	Deficit   bool                `json:"deficit"`
	Penalties int                 `json:"penalties"`
	CreatedAt time.Time           `json:"createdAt"`
}

// InsertPlan stores an accepted plan and returns its generated ID.
func (db *DB) InsertPlan(ctx context.Context, row PlanRow) (uuid.UUID, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	profileJSON, err := json.Marshal(row.Profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding profile: %w", err)
	}
	planJSON, err := json.Marshal(row.Plan)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding plan: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO plans (id, profile, plan, split, level, deficit, penalties)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		row.ID, profileJSON, planJSON, row.Split, row.Level, row.Deficit, row.Penalties)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting plan: %w", err)
	}
	return row.ID, nil
}

// GetPlan retrieves a stored plan by ID.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID) (*PlanRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, profile, plan, split, level, deficit, penalties, created_at
		 FROM plans WHERE id = $1`, id)

	var (
		r           PlanRow
		profileJSON []byte
		planJSON    []byte
	)
	if err := row.Scan(&r.ID, &profileJSON, &planJSON, &r.Split, &r.Level, &r.Deficit, &r.Penalties, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &r.Profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if err := json.Unmarshal(planJSON, &r.Plan); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	return &r, nil
}

// ListPlans returns the most recent plans, newest first.
func (db *DB) ListPlans(ctx context.Context, limit int) ([]PlanRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, profile, plan, split, level, deficit, penalties, created_at
		 FROM plans ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []PlanRow
	for rows.Next() {
		var (
			r           PlanRow
			profileJSON []byte
			planJSON    []byte
		)
		if err := rows.Scan(&r.ID, &profileJSON, &planJSON, &r.Split, &r.Level, &r.Deficit, &r.Penalties, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &r.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
		if err := json.Unmarshal(planJSON, &r.Plan); err != nil {
			return nil, fmt.Errorf("decoding plan: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
