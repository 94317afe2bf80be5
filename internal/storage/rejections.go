package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/claude/planforge/internal/profile"
	"github.com/claude/planforge/internal/rules"
)

// RejectionRow records a plan that failed the structural gate, kept for
// offline inspection of generator regressions.
type RejectionRow struct {
	ID        uuid.UUID             `json:"id"`
	Profile   profile.UserProfile   `json:"profile"`
	Reason    rules.RejectionReason `json:"reason"`
	Detail    string                `json:"detail"`
	CreatedAt time.Time             `json:"createdAt"`
}

// InsertRejection stores a rejected generation attempt.
func (db *DB) InsertRejection(ctx context.Context, row RejectionRow) (uuid.UUID, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	profileJSON, err := json.Marshal(row.Profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding profile: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO rejections (id, profile, reason, detail)
		 VALUES ($1,$2,$3,$4)`,
		row.ID, profileJSON, string(row.Reason), row.Detail)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting rejection: %w", err)
	}
	return row.ID, nil
}

// ListRejections returns recent rejections, newest first.
func (db *DB) ListRejections(ctx context.Context, limit int) ([]RejectionRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, profile, reason, detail, created_at
		 FROM rejections ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying rejections: %w", err)
	}
	defer rows.Close()

	var result []RejectionRow
	for rows.Next() {
		var (
			r           RejectionRow
			profileJSON []byte
			reason      string
		)
		if err := rows.Scan(&r.ID, &profileJSON, &reason, &r.Detail, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rejection: %w", err)
		}
		if err := json.Unmarshal(profileJSON, &r.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile: %w", err)
		}
		r.Reason = rules.RejectionReason(reason)
		result = append(result, r)
	}
	return result, rows.Err()
}
