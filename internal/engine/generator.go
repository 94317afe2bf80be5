package engine

import (
	"fmt"
	"strings"

	"github.com/claude/planforge/internal/catalog"
	"github.com/claude/planforge/internal/events"
	"github.com/claude/planforge/internal/plan"
	"github.com/claude/planforge/internal/rules"
)

// Generator fills the days of the requested split from the catalog,
// consulting the approval contract before every placement. Generation is a
// single deterministic pass: no retries, no backtracking, no randomness.
type Generator struct {
	catalog  *catalog.Catalog
	observer events.Observer
}

// New creates a generator. A nil observer discards events.
func New(c *catalog.Catalog, obs events.Observer) *Generator {
	if obs == nil {
		obs = events.Nop{}
	}
	return &Generator{catalog: c, observer: obs}
}

// Generate produces the raw weekly plan for the resolved constraints.
// Recurring day types are generated once and replicated, with the weekly
// state charged for every recurrence up front, so the weekly ceilings hold
// for the synchronized plan the corrector emits.
func (g *Generator) Generate(cons rules.Constraints) plan.TrainingPlan {
	contract := rules.NewContract(cons)
	week := NewWeekState(cons.Rules)
	types := DaySequence(cons.Split, cons.Frequency)

	if cons.Level != cons.DeclaredLevel {
		g.observer.Publish(events.Event{
			Kind:   events.KindLevelDowngraded,
			Detail: fmt.Sprintf("%s -> %s", cons.DeclaredLevel, cons.Level),
		})
	}

	firstOfType := make(map[plan.DayType][]plan.Exercise)
	days := make([]plan.TrainingDay, 0, len(types))

	for i, dt := range types {
		label := fmt.Sprintf("Dia %d", i+1)

		if prev, seen := firstOfType[dt]; seen {
			copied := make([]plan.Exercise, len(prev))
			copy(copied, prev)
			days = append(days, plan.TrainingDay{
				Day: label, Type: dt, Exercises: copied, Description: describeDay(dt),
			})
			continue
		}

		day := NewDayState()
		occurrences := countOccurrences(types, dt)
		slots := daySlots(dt)
		for si := range slots {
			g.fillSlot(cons, contract, week, day, label, dt, slots, si, occurrences)
		}

		firstOfType[dt] = day.Exercises
		days = append(days, plan.TrainingDay{
			Day: label, Type: dt, Exercises: day.Exercises, Description: describeDay(dt),
		})
	}

	g.fitToTime(cons, days)

	return plan.TrainingPlan{
		Overview:       overviewText(cons),
		WeeklySchedule: days,
		Progression:    progressionText(cons),
	}
}

// fillSlot selects exercises for one muscle slot. Candidates are split
// into pattern-limited and pattern-free subsets, drawn limited-first;
// SOFT-flagged candidates are used only when the target cannot be met with
// clean ones. Shortfall is reported as a quality signal, never forced.
func (g *Generator) fillSlot(
	cons rules.Constraints,
	contract *rules.Contract,
	week *WeekState,
	day *DayState,
	label string,
	dt plan.DayType,
	slots []muscleSlot,
	slotIdx int,
	occurrences int,
) {
	slot := slots[slotIdx]
	ideal := targetFor(cons.Level, slot.Share)
	target := ideal

	// Reserve session room for required slots still to come.
	reserved := 0
	for _, s := range slots[slotIdx+1:] {
		if s.Required {
			reserved++
		}
	}
	if room := cons.Rules.MaxExercisesPerSession - len(day.Exercises) - reserved; target > room {
		target = room
	}

	// FLEXIBLE sizing: do not exhaust weekly capacity this plan still needs
	// for the other recurrences of this day type.
	if flex := contract.MaxExercisesForMuscle(slot.Muscle, week.Remaining(slot.Muscle), occurrences); target > flex {
		target = flex
	}
	if target < 1 && slot.Required {
		target = 1
	}
	if target < ideal {
		g.observer.Publish(events.Event{
			Kind: events.KindQualityPenalty, Day: label, DayType: dt,
			Muscle: slot.Muscle, Rule: rules.SeverityFlexible,
			Reason: rules.ReasonBelowIdealCount,
			Detail: fmt.Sprintf("target %d below ideal %d", target, ideal),
		})
	}
	if target < 1 {
		return
	}

	limited, free := g.partition(slot.Muscle, cons)
	ordered := append(append([]catalog.Template{}, limited...), free...)

	accepted := 0
	var softQueue []catalog.Template

	for _, t := range ordered {
		if accepted >= target {
			break
		}
		if day.Contains(t.Name) {
			continue
		}
		decision := contract.CanAddExercise(t, day.Context())
		if !decision.Allowed {
			g.publishRejection(label, dt, t, decision)
			continue
		}
		ex := materialize(t, cons)
		fitWeeklySets(week, cons.Rules, &ex, occurrences)
		if wd := week.CanAdd(contract, t.PrimaryMuscle, ex.Sets*occurrences); !wd.Allowed {
			g.publishRejection(label, dt, t, wd)
			continue
		}
		if decision.Penalized() {
			softQueue = append(softQueue, t)
			continue
		}
		g.accept(week, day, label, dt, ex, occurrences)
		accepted++
	}

	// No HARD-clean alternative filled the slot: fall back to SOFT-flagged
	// candidates and record the penalty.
	for _, t := range softQueue {
		if accepted >= target {
			break
		}
		if day.Contains(t.Name) {
			continue
		}
		decision := contract.CanAddExercise(t, day.Context())
		if !decision.Allowed {
			continue
		}
		ex := materialize(t, cons)
		fitWeeklySets(week, cons.Rules, &ex, occurrences)
		if wd := week.CanAdd(contract, t.PrimaryMuscle, ex.Sets*occurrences); !wd.Allowed {
			continue
		}
		g.accept(week, day, label, dt, ex, occurrences)
		accepted++
		g.observer.Publish(events.Event{
			Kind: events.KindQualityPenalty, Day: label, DayType: dt,
			Exercise: t.Name, Muscle: t.PrimaryMuscle,
			Rule: rules.SeveritySoft, Reason: decision.Reason, Detail: decision.Detail,
		})
	}

	if accepted < target {
		g.observer.Publish(events.Event{
			Kind: events.KindSlotShortfall, Day: label, DayType: dt,
			Muscle: slot.Muscle,
			Detail: fmt.Sprintf("placed %d of %d", accepted, target),
		})
	}
}

// partition splits a muscle's location-filtered candidates into
// pattern-limited and pattern-free subsets, both in catalog order.
func (g *Generator) partition(m catalog.Muscle, cons rules.Constraints) (limited, free []catalog.Template) {
	for _, t := range g.catalog.ForMuscleAt(m, cons.Location) {
		key := rules.PatternKey(t.Pattern)
		if _, capped := cons.Rules.PatternLimit[key]; capped {
			limited = append(limited, t)
		} else {
			free = append(free, t)
		}
	}
	return limited, free
}

func (g *Generator) accept(week *WeekState, day *DayState, label string, dt plan.DayType, ex plan.Exercise, occurrences int) {
	day.Update(ex)
	for i := 0; i < occurrences; i++ {
		week.Update(ex)
	}
	g.observer.Publish(events.Event{
		Kind: events.KindPlacementAccepted, Day: label, DayType: dt,
		Exercise: ex.Name, Muscle: ex.PrimaryMuscle,
	})
}

func (g *Generator) publishRejection(label string, dt plan.DayType, t catalog.Template, d rules.Decision) {
	g.observer.Publish(events.Event{
		Kind: events.KindPlacementRejected, Day: label, DayType: dt,
		Exercise: t.Name, Muscle: t.PrimaryMuscle,
		Rule: d.Severity, Reason: d.Reason, Detail: d.Detail,
	})
}

// fitWeeklySets lowers a prescription toward the per-exercise minimum when
// the weekly ceiling cannot absorb the full set count across every
// recurrence of the day type. Low-volume levels have ceilings below the
// cost of a full prescription, and reducing sets is always preferable to
// leaving a required muscle unplaced.
func fitWeeklySets(week *WeekState, rt rules.RuleTable, ex *plan.Exercise, occurrences int) {
	if occurrences < 1 {
		occurrences = 1
	}
	fit := week.Remaining(ex.PrimaryMuscle) / occurrences
	if fit >= rt.MinSetsPerExercise && ex.Sets > fit {
		ex.Sets = fit
	}
}

func countOccurrences(types []plan.DayType, dt plan.DayType) int {
	n := 0
	for _, t := range types {
		if t == dt {
			n++
		}
	}
	return n
}

func describeDay(dt plan.DayType) string {
	switch dt {
	case plan.DayPush:
		return "Empurrar: peito, ombros e tríceps"
	case plan.DayPull:
		return "Puxar: costas, bíceps e core"
	case plan.DayLegs:
		return "Pernas: quadríceps, posteriores e glúteos"
	case plan.DayUpper:
		return "Membros superiores"
	case plan.DayLower:
		return "Membros inferiores e core"
	default:
		return "Corpo inteiro"
	}
}

func overviewText(cons rules.Constraints) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plano %s com %d sessões semanais, nível %s, local %s.",
		cons.Split, cons.Frequency, cons.Level, cons.Location)
	if cons.Deficit {
		b.WriteString(" Modo de déficit calórico: volume semanal reduzido e uma série por exercício.")
	}
	if cons.ShoulderRestricted {
		b.WriteString(" Exercícios acima da cabeça foram excluídos por limitação de ombro.")
	}
	if cons.KneeRestricted {
		b.WriteString(" Agachamentos profundos e impacto foram excluídos por limitação de joelho.")
	}
	for _, n := range cons.Notes {
		b.WriteString(" ")
		b.WriteString(n)
		b.WriteString(".")
	}
	return b.String()
}

func progressionText(cons rules.Constraints) string {
	if cons.Deficit {
		return "Mantenha a carga e priorize a execução; ao sair do déficit, retome a progressão de séries antes de aumentar peso."
	}
	switch cons.Level {
	case rules.LevelAthlete, rules.LevelElite:
		return "Progrida em ondas: aumente 2,5% de carga ao fechar o topo da faixa de repetições em todas as séries por duas sessões seguidas."
	case rules.LevelAdvanced, rules.LevelIntermediate:
		return "Aumente a carga quando completar o topo da faixa de repetições em todas as séries; reduza 10% após duas sessões estagnadas."
	default:
		return "Domine a técnica primeiro: aumente repetições dentro da faixa antes de aumentar a carga."
	}
}
