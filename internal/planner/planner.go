// Package planner runs the full generation pipeline as one synchronous,
// non-preemptible unit: profile resolution, generation, recurrence
// correction, the diagnostic contract check, and the structural gate.
package planner

import (
	"log/slog"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/engine"
	"github.com/claude/planforge/internal/events"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/profile"
	"github.com/claude/planforge/internal/rules"
	"github.com/claude/planforge/internal/validate"
)

// Result is the outcome of one generation request. Rejection is nil when
// the plan passed the structural gate.
type Result struct {
	Plan        plan.TrainingPlan
	Constraints rules.Constraints
	// Penalties are the SOFT/FLEXIBLE quality events recorded while
	// generating, for the fire-and-forget metrics sink.
	Penalties []events.Event
	// Diagnostics are contract-validator findings (generator bugs); they
	// never block the plan.
	Diagnostics []string
	Rejection   *validate.Rejection
}

// Accepted reports whether the plan passed the structural gate.
func (r Result) Accepted() bool {
	return r.Rejection == nil
}

// Planner owns the catalog and the observers shared across requests. Each
// call to Generate constructs its own isolated state; Planner itself is
// safe for concurrent use.
type Planner struct {
	catalog  *catalog.Catalog
	log      *slog.Logger
	observer events.Observer
}

// New creates a planner. The observer may be nil.
func New(cat *catalog.Catalog, log *slog.Logger, obs events.Observer) *Planner {
	if obs == nil {
		obs = events.Nop{}
	}
	return &Planner{catalog: cat, log: log, observer: obs}
}

// Generate runs the whole pipeline for one user profile. The core never
// retries: callers own regeneration policy.
func (p *Planner) Generate(up profile.UserProfile) Result {
	recorder := &events.Recorder{}
	obs := events.Multi{recorder, p.observer}

	cons := profile.Resolve(up)
	contract := rules.NewContract(cons)

	gen := engine.New(p.catalog, obs)
	tp := gen.Generate(cons)

	validate.CorrectRecurrences(&tp, obs)
	diagnostics := validate.DiagnoseContract(&tp, contract, p.log)
	rejection := validate.Structural(&tp, cons)

	var penalties []events.Event
	for _, e := range recorder.Events {
		if e.Kind == events.KindQualityPenalty || e.Kind == events.KindSlotShortfall {
			penalties = append(penalties, e)
		}
	}

	return Result{
		Plan:        tp,
		Constraints: cons,
		Penalties:   penalties,
		Diagnostics: diagnostics,
		Rejection:   rejection,
	}
}
