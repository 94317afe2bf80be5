package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/claude/planforge/internal/events"
)

// InsertQualityEvents stores the soft-rule penalties recorded while
// generating a plan. The write is best effort: callers log and continue
// on failure.
func (db *DB) InsertQualityEvents(ctx context.Context, planID uuid.UUID, evs []events.Event) (int, error) {
	if len(evs) == 0 {
		return 0, nil
	}

	var (
		placeholders []string
		args         []any
	)
	for i, e := range evs {
		base := i * 5
		placeholders = append(placeholders, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, planID, string(e.Kind), e.Day, e.Exercise, e.Detail)
	}

	query := `INSERT INTO quality_events (plan_id, kind, day, exercise, detail) VALUES ` +
		strings.Join(placeholders, ",")

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting quality events: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CountQualityEvents returns how many penalties are recorded for a plan.
func (db *DB) CountQualityEvents(ctx context.Context, planID uuid.UUID) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM quality_events WHERE plan_id = $1`, planID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting quality events: %w", err)
	}
	return n, nil
}
