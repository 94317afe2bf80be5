package validate

import (
	"fmt"
	"log/slog"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// DiagnoseContract re-derives the per-muscle weekly totals, per-day
// exercise counts, and per-day motor-pattern counts from the emitted plan
// and asserts they stay within the contract's own limits. Mismatches are
// generator bugs: they are logged and returned for inspection but never
// block output.
func DiagnoseContract(p *plan.TrainingPlan, contract *rules.Contract, log *slog.Logger) []string {
	var findings []string
	report := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		findings = append(findings, msg)
		if log != nil {
			log.Warn("contract diagnostic", "finding", msg)
		}
	}

	if err := contract.WellFormed(); err != nil {
		report("contract malformed: %v", err)
	}

	rt := contract.Constraints().Rules

	for _, day := range p.WeeklySchedule {
		if len(day.Exercises) > rt.MaxExercisesPerSession {
			report("%s holds %d exercises, contract caps %d", day.Day, len(day.Exercises), rt.MaxExercisesPerSession)
		}

		patterns := make(map[catalog.MovementPattern]int)
		for _, ex := range day.Exercises {
			if ex.Pattern != catalog.PatternUnknown {
				patterns[rules.PatternKey(ex.Pattern)]++
			}
		}
		for pattern, count := range patterns {
			if limit, capped := rt.PatternLimit[pattern]; capped && count > limit {
				report("%s counts %d %s placements, contract caps %d", day.Day, count, pattern, limit)
			}
		}
	}

	for _, muscle := range catalog.AllMuscles() {
		total := p.TotalSets(muscle)
		if limit, ok := rt.WeeklySeriesLimit[muscle]; ok && total > limit {
			report("weekly series for %s reached %d, contract caps %d", muscle, total, limit)
		}
	}

	if rt.Deficit {
		for _, day := range p.WeeklySchedule {
			for _, ex := range day.Exercises {
				if ex.Sets != 1 {
					report("deficit mode but %s on %s has %d sets", ex.Name, day.Day, ex.Sets)
				}
			}
		}
	}

	return findings
}
