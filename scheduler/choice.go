package scheduler

import (
	"psym/solver"
	vs "psym/valuesummary"
)

// Nondeterministic choice primitives. Every primitive restricts its
// outcome to a fresh sub-universe of pc, records the decision in the
// schedule at the current choice depth, and bumps the depth. In
// replay mode the outcome is constrained to the recorded decision
// instead of being minted fresh.

// NextBooleanChoices enumerates the two guarded outcomes.
func (s *Scheduler) NextBooleanChoices(pc solver.Guard) []vs.Summary {
	return []vs.Summary{
		vs.PrimUnder(pc, true),
		vs.PrimUnder(pc, false),
	}
}

// NextBoolean yields a symbolic boolean that is true under part of pc
// and false under the rest.
func (s *Scheduler) NextBoolean(pc solver.Guard) vs.Prim[bool] {
	chosen := s.pick(ChoiceBool, s.NextBooleanChoices(pc), pc)
	return chosen.(vs.Prim[bool])
}

// NextIntegerChoices enumerates the guarded candidates in [0, bound).
// A bound that is zero under some guard is treated as one under that
// guard; the source engine does the same, and the behavior is kept
// even though it may paper over callers asking for an empty range.
func (s *Scheduler) NextIntegerChoices(bound vs.Prim[int], pc solver.Guard) []vs.Summary {
	zero := bound.GetGuardFor(0)
	if !zero.IsZero() && !zero.IsFalse() {
		bound = vs.UpdateUnderGuard(bound, zero, vs.PrimUnder(zero, 1))
	}
	choices := []vs.Summary{}
	for i := 0; i < vs.IntMaxValue(bound); i++ {
		cond := vs.TrueGuard(vs.IntLessThan(i, bound))
		if cond.IsZero() || cond.IsFalse() {
			continue
		}
		choices = append(choices, vs.PrimUnder(cond.And(pc), i))
	}
	return choices
}

// NextInteger yields a symbolic choice covering [0, max(bound)).
func (s *Scheduler) NextInteger(bound vs.Prim[int], pc solver.Guard) vs.Prim[int] {
	chosen := s.pick(ChoiceInt, s.NextIntegerChoices(bound, pc), pc)
	return chosen.(vs.Prim[int])
}

// NextElementChoices enumerates the guarded elements of a list, set,
// or map summary. For maps the pick ranges over keys.
func (s *Scheduler) NextElementChoices(container vs.Summary, pc solver.Guard) []vs.Summary {
	c, ok := container.(vs.ElementContainer)
	if !ok {
		panic(&vs.InvariantError{Message: "nondeterministic element pick from a non-container summary"})
	}
	return c.ElementChoices(pc)
}

// NextElement yields a symbolic pick from the container's elements.
func (s *Scheduler) NextElement(container vs.Summary, pc solver.Guard) vs.Summary {
	return s.pick(ChoiceElement, s.NextElementChoices(container, pc), pc)
}

// pick combines candidates into one symbolic outcome, honoring replay
// constraints and recording the decision.
func (s *Scheduler) pick(kind ChoiceKind, choices []vs.Summary, pc solver.Guard) vs.Summary {
	var chosen vs.Summary
	if s.replayMode {
		if c := s.schedule.ChoiceAt(s.choiceDepth); c != nil && c.Taken != nil {
			chosen = c.Taken.Restrict(pc)
		}
	}
	if chosen == nil {
		chosen = vs.NondetChoice(s.ctx, choices)
		s.schedule.AddChoice(s.choiceDepth, kind, chosen)
	}
	s.coverage.RecordChoice(s.choiceDepth, len(choices))
	s.choiceDepth++
	return chosen
}
