package scheduler

import (
	"fmt"

	"psym/machine"
	vs "psym/valuesummary"
)

// enumerateConcreteStates walks the concrete states the symbolic
// source state stands for: pick one satisfiable shape of every
// machine's local state, hash it, exclude the selecting guard, and
// repeat until the universe is exhausted. With state caching on, the
// disjunction of guards leading to unseen states is remembered so the
// sender filter can prune candidates that only revisit old states.
//
// Returns the number of concrete states enumerated and how many of
// them were new.
func (s *Scheduler) enumerateConcreteStates(symState map[*machine.Machine][]vs.Summary) (int, int) {
	numConcrete := 0
	numDistinct := 0

	if s.cfg.UseStateCaching {
		f := s.ctx.False()
		s.distinctStateGuard = &f
		// Creation and sync steps are forced anyway, and choices
		// before the backtrack point were already credited; skipping
		// the enumeration keeps those steps unfiltered.
		if s.syncStep || s.createStep || s.choiceDepth <= s.backtrackDepth {
			t := s.ctx.True()
			s.distinctStateGuard = &t
			return 0, 0
		}
	}

	iterPc := s.ctx.True()
	alreadySeen := s.ctx.False()

	for !iterPc.IsFalse() {
		concreteStateGuard := s.ctx.True()
		globalState := [][]any{}
		progressed := false
		for _, m := range s.machines {
			state, ok := symState[m]
			if !ok {
				continue
			}
			machineState := []any{}
			for j, field := range state {
				gv := field.Concretize(iterPc)
				if gv == nil {
					if !progressed && j == 0 {
						return numConcrete, numDistinct
					}
					machineState = append(machineState, nil)
					continue
				}
				iterPc = gv.Guard
				concreteStateGuard = concreteStateGuard.And(gv.Guard)
				machineState = append(machineState, gv.Value)
			}
			if len(machineState) > 0 {
				globalState = append(globalState, machineState)
			}
			progressed = true
		}

		if len(globalState) > 0 {
			key := fmt.Sprint(globalState)
			numConcrete++
			s.totalStateCount++
			if _, seen := s.distinctStates[key]; seen {
				s.distinctStates[key]++
			} else {
				numDistinct++
				s.distinctStates[key] = 1
				s.distinctStatesList = append(s.distinctStatesList, key)
				if s.cfg.UseStateCaching {
					g := s.distinctStateGuard.Or(concreteStateGuard)
					s.distinctStateGuard = &g
				}
				if s.cfg.Verbosity > 4 {
					s.log.Debug("new state", "state", key)
				}
			}
		} else {
			// Nothing concretized; the remaining universe is empty.
			break
		}

		alreadySeen = alreadySeen.Or(iterPc)
		iterPc = alreadySeen.Not()
	}
	return numConcrete, numDistinct
}
