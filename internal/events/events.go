// Package events defines the typed event stream the generation engine
// emits. The engine publishes through an Observer and stays decoupled from
// any logging or metrics backend.
package events

import (
	"log/slog"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// Kind discriminates generation events.
type Kind string

const (
	KindPlacementAccepted Kind = "placement_accepted"
	KindPlacementRejected Kind = "placement_rejected"
	KindQualityPenalty    Kind = "quality_penalty"
	KindDayCorrected      Kind = "day_corrected"
	KindLevelDowngraded   Kind = "level_downgraded"
	KindSlotShortfall     Kind = "slot_shortfall"
	KindSessionTrimmed    Kind = "session_trimmed"
)

// Event is one generation decision. Fields are populated per Kind; unset
// fields are zero.
type Event struct {
	Kind     Kind
	Day      string
	DayType  plan.DayType
	Exercise string
	Muscle   catalog.Muscle
	Rule     rules.Severity
	Reason   rules.RejectionReason
	Detail   string
}

// Observer consumes generation events. Implementations must be cheap and
// non-blocking; the engine calls them inline.
type Observer interface {
	Publish(Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Publish(Event) {}

// SlogObserver writes events to a structured logger. HARD rejections log
// at Debug (they are normal control flow), penalties at Info.
type SlogObserver struct {
	Log *slog.Logger
}

func (o SlogObserver) Publish(e Event) {
	if o.Log == nil {
		return
	}
	attrs := []any{
		"kind", string(e.Kind),
		"day", e.Day,
	}
	if e.Exercise != "" {
		attrs = append(attrs, "exercise", e.Exercise)
	}
	if e.Muscle != "" {
		attrs = append(attrs, "muscle", string(e.Muscle))
	}
	if e.Reason != "" {
		attrs = append(attrs, "rule", e.Rule.String(), "reason", string(e.Reason))
	}
	if e.Detail != "" {
		attrs = append(attrs, "detail", e.Detail)
	}

	switch e.Kind {
	case KindPlacementRejected:
		o.Log.Debug("placement rejected", attrs...)
	case KindQualityPenalty, KindSlotShortfall, KindSessionTrimmed:
		o.Log.Info("generation quality signal", attrs...)
	case KindLevelDowngraded, KindDayCorrected:
		o.Log.Info("plan adjusted", attrs...)
	default:
		o.Log.Debug("generation event", attrs...)
	}
}

// Recorder buffers events in memory. Used by tests and by the server to
// count quality penalties per request.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many buffered events have the given kind.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Multi fans events out to several observers.
type Multi []Observer

func (m Multi) Publish(e Event) {
	for _, o := range m {
		o.Publish(e)
	}
}
