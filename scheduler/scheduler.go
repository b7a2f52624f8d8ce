package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"psym/config"
	"psym/fault"
	"psym/logger"
	"psym/machine"
	"psym/solver"
	"psym/statistics"
	vs "psym/valuesummary"
)

// Scheduler drives the program of communicating state machines
// through every reachable interleaving and value choice, compressing
// sets of executions under guards. It exclusively owns the machine
// arena, the per-kind counters, the schedule, and the statistics.
type Scheduler struct {
	ctx *solver.Context
	cfg config.Config
	log *slog.Logger

	program   machine.Program
	machines  []*machine.Machine
	counters  map[string]vs.Prim[int]
	monitors  []*machine.Monitor
	listeners map[*machine.Event][]*machine.Monitor
	start     *machine.Machine

	schedule *Schedule

	depth          int
	choiceDepth    int
	backtrackDepth int
	// Choice depth at the start of the previous step, used to credit
	// coverage; MaxInt until a step has run.
	preChoiceDepth int

	done              bool
	executionFinished bool
	createStep        bool
	syncStep          bool
	replayMode        bool

	receiverOrder   MessageOrder
	interleaveOrder MessageOrder

	// Source state captured at the start of the current step.
	srcState map[*machine.Machine][]vs.Summary

	distinctStates     map[string]int
	distinctStatesList []string
	distinctStateGuard *solver.Guard
	totalStateCount    int

	searchStats *statistics.SearchStats
	coverage    *statistics.CoverageStats
	timeMon     *statistics.TimeMonitor
	memMon      *statistics.MemoryMonitor
	statWriter  *statistics.StatWriter

	// Search outcome: "ok", "bug", "timeout", "memout", "fault".
	Result string
}

// New creates a scheduler for the program under the given
// configuration.
func New(ctx *solver.Context, cfg config.Config, p machine.Program, log *slog.Logger) *Scheduler {
	if log == nil {
		log = logger.New(cfg.Verbosity, nil)
	}
	s := &Scheduler{
		ctx:             ctx,
		cfg:             cfg,
		log:             log,
		program:         p,
		counters:        map[string]vs.Prim[int]{},
		preChoiceDepth:  math.MaxInt,
		receiverOrder:   ReceiverQueueOrder{},
		interleaveOrder: NewInterleaveOrder(),
		distinctStates:  map[string]int{},
		srcState:        map[*machine.Machine][]vs.Summary{},
		searchStats:     statistics.NewSearchStats(),
		coverage:        statistics.NewCoverageStats(),
		timeMon:         statistics.NewTimeMonitor(time.Duration(cfg.TimeLimitSeconds * float64(time.Second))),
		memMon:          statistics.NewMemoryMonitor(cfg.MemLimitMB),
		statWriter:      statistics.NewStatWriter(log),
	}
	s.schedule = NewSchedule(cfg.UseSleepSets)
	return s
}

// Context returns the solver context.
func (s *Scheduler) Context() *solver.Context { return s.ctx }

// Schedule returns the choice record.
func (s *Scheduler) Schedule() *Schedule { return s.schedule }

// SearchStats returns the collected search statistics.
func (s *Scheduler) SearchStats() *statistics.SearchStats { return s.searchStats }

// Coverage returns the per-choice-depth coverage counters.
func (s *Scheduler) Coverage() *statistics.CoverageStats { return s.coverage }

// Depth returns the current exploration depth.
func (s *Scheduler) Depth() int { return s.depth }

// ChoiceDepth returns the current choice depth.
func (s *Scheduler) ChoiceDepth() int { return s.choiceDepth }

// Machines returns the machine arena in creation order.
func (s *Scheduler) Machines() []*machine.Machine { return s.machines }

// TotalStates returns the number of concrete states enumerated.
func (s *Scheduler) TotalStates() int { return s.totalStateCount }

// TotalDistinctStates returns the number of distinct concrete states
// seen.
func (s *Scheduler) TotalDistinctStates() int { return len(s.distinctStates) }

// IsDone reports whether the search has terminated.
func (s *Scheduler) IsDone() bool {
	return s.done || s.depth == s.cfg.MaxStepBound
}

// IsFinishedExecution reports whether the current execution ran out
// of enabled senders or hit the step bound.
func (s *Scheduler) IsFinishedExecution() bool {
	return s.executionFinished || s.depth == s.cfg.MaxStepBound
}

// SetInterleaveOrder installs a configured interleave order for the
// filter reduction.
func (s *Scheduler) SetInterleaveOrder(o MessageOrder) { s.interleaveOrder = o }

// TrackClocks reports whether vector clocks are maintained: any
// clock-based reduction or explicit DPOR mode turns them on.
func (s *Scheduler) TrackClocks() bool {
	return s.cfg.UseReceiverQueueSemantics || s.cfg.IsDpor || s.cfg.UseSleepSets
}

// UseSleepSets reports whether sleep-set pruning is on.
func (s *Scheduler) UseSleepSets() bool { return s.cfg.UseSleepSets }

// MaxInternalSteps bounds one event-to-completion dispatch.
func (s *Scheduler) MaxInternalSteps() int { return s.cfg.MaxInternalSteps }

// Unblock wakes sleep-set entries for the clock; called on every
// send.
func (s *Scheduler) Unblock(clock machine.VectorClock) {
	s.schedule.Unblock(clock.Fingerprint(s.ctx.True()))
}

// AllocateMachine mints a machine of the given kind under pc: the
// per-kind counter picks the instance index and is bumped under pc.
func (s *Scheduler) AllocateMachine(pc solver.Guard, kind string, ctor func(index int) *machine.Machine) vs.Prim[*machine.Machine] {
	counter, ok := s.counters[kind]
	if !ok {
		counter = vs.NewPrim(s.ctx, 0)
	}
	guardedCount := vs.Restrict(counter, pc)
	index := vs.IntMaxValue(guardedCount)

	var m *machine.Machine
	if s.replayMode {
		m = s.schedule.MachineAt(kind, index)
	}
	if m == nil {
		m = ctor(index)
		s.schedule.MakeMachine(m, pc)
	}
	if !s.hasMachine(m) {
		s.machines = append(s.machines, m)
	}
	s.log.Debug("create machine", "machine", m.String())
	m.SetScheduler(s)
	if s.cfg.UseBagSemantics {
		m.UseBagSemantics()
	}

	guardedCount = vs.IntAdd(guardedCount, 1)
	s.counters[kind] = vs.UpdateUnderGuard(counter, pc, guardedCount)
	return vs.PrimUnder(pc, m)
}

func (s *Scheduler) hasMachine(m *machine.Machine) bool {
	for _, other := range s.machines {
		if other == m {
			return true
		}
	}
	return false
}

// Announce broadcasts an event to listening monitors only. A nil
// event tag is an invariant violation.
func (s *Scheduler) Announce(event vs.Prim[*machine.Event], payload vs.Union) {
	msg := machine.NewMessage(event, vs.Prim[*machine.Machine]{}, payload, machine.NewVectorClock(s.ctx.True()))
	if msg.HasNilEvent() {
		panic(&vs.InvariantError{Message: fmt.Sprintf("machine cannot announce a nil event: %s", msg)})
	}
	s.runMonitors(msg)
}

// startWith registers a machine as initially running and delivers its
// creation step immediately.
func (s *Scheduler) startWith(m *machine.Machine) {
	s.bumpCounter(m.Kind())
	s.machines = append(s.machines, m)
	s.log.Debug("create machine", "machine", m.String())
	m.SetScheduler(s)
	s.schedule.MakeMachine(m, s.ctx.True())

	s.performEffect(machine.NewMessage(
		vs.NewPrim(s.ctx, machine.CreateMachine),
		vs.NewPrim(s.ctx, m),
		vs.EmptyUnion(),
		machine.NewVectorClock(s.ctx.True()),
	))
}

// replayStartWith registers a machine during replay, reusing the
// handle the schedule recorded for the same allocation point.
func (s *Scheduler) replayStartWith(m *machine.Machine) {
	counter, ok := s.counters[m.Kind()]
	index := 0
	if ok {
		index = vs.IntMaxValue(counter)
	}
	s.bumpCounter(m.Kind())
	if recorded := s.schedule.MachineAt(m.Kind(), index); recorded != nil {
		m = recorded
	}
	if !s.hasMachine(m) {
		s.machines = append(s.machines, m)
	}
	s.log.Debug("create machine (replay)", "machine", m.String())
	m.SetScheduler(s)

	s.performEffect(machine.NewMessage(
		vs.NewPrim(s.ctx, machine.CreateMachine),
		vs.NewPrim(s.ctx, m),
		vs.EmptyUnion(),
		machine.NewVectorClock(s.ctx.True()),
	))
}

func (s *Scheduler) bumpCounter(kind string) {
	if counter, ok := s.counters[kind]; ok {
		s.counters[kind] = vs.IntAdd(counter, 1)
	} else {
		s.counters[kind] = vs.NewPrim(s.ctx, 1)
	}
}

// InitializeSearch starts the monitors and then the main machine.
func (s *Scheduler) InitializeSearch() {
	if s.depth != 0 {
		panic(&vs.InvariantError{Message: "search initialized twice"})
	}
	s.listeners = s.program.Listeners()
	s.monitors = append([]*machine.Monitor{}, s.program.Monitors()...)
	startMachine := func(m *machine.Machine) {
		if s.replayMode {
			s.replayStartWith(m)
		} else {
			s.startWith(m)
		}
	}
	for _, mon := range s.monitors {
		startMachine(&mon.Machine)
	}
	target := s.program.Start()
	startMachine(target)
	s.start = target
	s.depth++
}

// DoSearch runs the search to termination. The returned error is nil
// for a clean finish and a fault otherwise; faults panicking out of
// machine handlers are translated by the caller.
func (s *Scheduler) DoSearch() error {
	s.InitializeSearch()
	return s.PerformSearch()
}

// PerformSearch drives steps until the search is done, then checks
// liveness.
func (s *Scheduler) PerformSearch() error {
	for !s.IsDone() {
		if s.depth >= s.cfg.MaxStepBound {
			return &fault.BugFound{
				Message: fmt.Sprintf("maximum allowed depth %d exceeded", s.cfg.MaxStepBound),
				Guard:   s.ctx.True(),
			}
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	if s.done {
		s.searchStats.SetIterationCompleted()
	}
	return s.CheckLiveness()
}

// CheckLiveness returns a liveness fault for the first monitor found
// resting in a hot state when execution finished or hit the step
// bound; other hot monitors are not reported.
func (s *Scheduler) CheckLiveness() error {
	if !s.IsFinishedExecution() {
		return nil
	}
	for _, mon := range s.monitors {
		for _, hot := range mon.HotStates() {
			if hot.Guard.IsFalse() || !hot.Guard.IsSat() {
				continue
			}
			return &fault.Liveness{
				Monitor: mon.Kind(),
				State:   hot.State.Name,
				Guard:   hot.Guard,
				Partial: !s.executionFinished,
			}
		}
	}
	return nil
}

// Assert fails under the part of pc where cond is false.
func (s *Scheduler) Assert(cond vs.Prim[bool], message string, pc solver.Guard) {
	failing := pc.And(vs.FalseGuard(cond))
	if !failing.IsZero() && failing.IsSat() {
		panic(&fault.BugFound{Message: message, Guard: failing})
	}
}

// AssertProp fails outright when a concrete property does not hold.
func (s *Scheduler) AssertProp(cond bool, message string, g solver.Guard) {
	if !cond {
		panic(&fault.BugFound{Message: message, Guard: g})
	}
}

type guardedMachine struct {
	m *machine.Machine
	g solver.Guard
}

// NextSenderChoices computes the candidate senders for this step, in
// the fixed priority order: creation steps, then sync steps, then the
// general case with the enabled reductions applied.
func (s *Scheduler) NextSenderChoices() []vs.Summary {
	s.createStep = false
	s.syncStep = false

	// Prioritize machine-creation steps.
	for _, m := range s.machines {
		if m.Buffer().IsEmpty() {
			continue
		}
		initCond := vs.TrueGuard(m.Buffer().HasCreateMachineUnderGuard())
		if !initCond.IsZero() && !initCond.IsFalse() {
			s.createStep = true
			return []vs.Summary{vs.PrimUnder(initCond, m)}
		}
	}

	// Prioritize events marked synchronous.
	for _, m := range s.machines {
		if m.Buffer().IsEmpty() {
			continue
		}
		syncCond := vs.TrueGuard(m.Buffer().HasSyncEventUnderGuard())
		if !syncCond.IsZero() && !syncCond.IsFalse() {
			s.syncStep = true
			return []vs.Summary{vs.PrimUnder(syncCond, m)}
		}
	}

	// Purge messages addressed to halted machines.
	for _, m := range s.machines {
		for !m.Buffer().IsEmpty() {
			halted := vs.TrueGuard(m.Buffer().SatisfiesPredUnderGuard(machine.Message.TargetHalted))
			if halted.IsZero() || halted.IsFalse() {
				break
			}
			m.Buffer().Remove(halted)
		}
	}

	candidates := []guardedMachine{}
	for _, m := range s.machines {
		if m.Buffer().IsEmpty() {
			continue
		}
		canRun := vs.TrueGuard(m.Buffer().SatisfiesPredUnderGuard(machine.Message.CanRun))
		if !canRun.IsZero() && !canRun.IsFalse() {
			candidates = append(candidates, guardedMachine{m: m, g: canRun})
		}
	}

	if s.cfg.UseReceiverQueueSemantics {
		candidates = s.filterOrder(candidates, s.receiverOrder)
	}
	if s.cfg.UseFilters {
		candidates = s.filterOrder(candidates, s.interleaveOrder)
	}

	if s.cfg.UseStateCaching && s.distinctStateGuard != nil {
		candidates = s.filterDistinct(candidates)
	}

	s.executionFinished = len(candidates) == 0

	out := []vs.Summary{}
	for _, c := range candidates {
		out = append(out, vs.PrimUnder(c.g, c.m))
	}
	return s.filterSleep(out)
}

// filterOrder keeps only candidates whose head no other candidate's
// head strictly precedes under the order.
func (s *Scheduler) filterOrder(choices []guardedMachine, order MessageOrder) []guardedMachine {
	kept := []guardedMachine{}
	heads := []machine.Message{}
	for _, choice := range choices {
		current := choice.m.Buffer().Peek(choice.g)
		add := choice.g
		for i := range kept {
			later := vs.TrueGuard(order.LessThan(heads[i], current))
			if !later.IsZero() {
				add = add.And(later.Not())
			}
		}
		for i := range kept {
			remCond := vs.TrueGuard(order.LessThan(current, heads[i]))
			if remCond.IsZero() {
				continue
			}
			remCond = remCond.And(add)
			if remCond.IsFalse() {
				continue
			}
			kept[i].g = kept[i].g.And(remCond.Not())
			heads[i] = heads[i].Restrict(remCond.Not()).(machine.Message)
		}
		kept = append(kept, guardedMachine{m: choice.m, g: add})
		heads = append(heads, current.Restrict(add).(machine.Message))
	}
	out := []guardedMachine{}
	for _, c := range kept {
		if !c.g.IsFalse() {
			out = append(out, c)
		}
	}
	return out
}

// filterDistinct intersects candidate guards with the guard leading
// to unseen concrete states.
func (s *Scheduler) filterDistinct(choices []guardedMachine) []guardedMachine {
	out := []guardedMachine{}
	for _, c := range choices {
		g := c.g.And(*s.distinctStateGuard)
		if !g.IsFalse() {
			out = append(out, guardedMachine{m: c.m, g: g})
		}
	}
	return out
}

// filterSleep drops senders whose clock was already explored at this
// depth, and blocks the survivors so the next visit prunes them.
func (s *Scheduler) filterSleep(choices []vs.Summary) []vs.Summary {
	if !s.cfg.UseSleepSets {
		return choices
	}
	out := []vs.Summary{}
	for _, c := range choices {
		p := c.(vs.Prim[*machine.Machine])
		keep := vs.Prim[*machine.Machine]{}
		for _, e := range p.GetGuardedValues() {
			fp := senderFingerprint(e.Value, e.Guard)
			if s.schedule.IsBlocked(s.depth, fp) {
				continue
			}
			s.schedule.Block(s.depth, fp)
			keep = vs.Merge2(keep, vs.PrimUnder(e.Guard, e.Value))
		}
		if !keep.IsEmptyVS() {
			out = append(out, keep)
		}
	}
	return out
}

func senderFingerprint(m *machine.Machine, g solver.Guard) string {
	return m.String() + "|" + m.Clock().Fingerprint(g)
}

// NextSender picks one candidate sender symbolically and records it.
// No candidate means the execution ran out of work; nothing is
// recorded for that.
func (s *Scheduler) NextSender() vs.Prim[*machine.Machine] {
	choices := s.NextSenderChoices()
	if len(choices) == 0 {
		return vs.Prim[*machine.Machine]{}
	}
	chosen := s.pick(ChoiceSender, choices, s.ctx.True())
	return chosen.(vs.Prim[*machine.Machine])
}

// storeSrcState captures per-machine local state once per step.
func (s *Scheduler) storeSrcState() {
	if len(s.srcState) > 0 {
		return
	}
	for _, m := range s.machines {
		s.srcState[m] = m.GetLocalState()
	}
}

// Step advances the search by one scheduling decision. The order of
// sub-steps is fixed: capture, candidates, pick, dequeue, monitors,
// targets, stats.
func (s *Scheduler) Step() error {
	s.srcState = map[*machine.Machine][]vs.Summary{}

	numStates, numStatesDistinct := 0, 0
	numMessages, numMessagesMerged, numMessagesExplored := 0, 0, 0

	if s.cfg.CollectStats > 3 || s.cfg.UseStateCaching {
		s.storeSrcState()
		numStates, numStatesDistinct = s.enumerateConcreteStates(s.srcState)
	}

	if s.cfg.UseBacktrack {
		s.storeSrcState()
		s.schedule.SetFrame(s.makeFrame())
	}

	// Credit the previous step's choices with the states they led to.
	if s.preChoiceDepth != math.MaxInt {
		s.coverage.RewardStep(s.preChoiceDepth, minInt(s.schedule.Size(), s.choiceDepth), numStatesDistinct)
	}
	s.preChoiceDepth = s.choiceDepth

	choices := s.NextSender()

	if choices.IsEmptyVS() {
		s.done = true
		s.log.Info("execution finished", "depth", s.depth)
		return nil
	}

	if err := s.timeMon.CheckTimeout(); err != nil {
		return err
	}

	var effect machine.Message
	first := true
	for _, sender := range choices.GetGuardedValues() {
		removed := sender.Value.Buffer().Remove(sender.Guard)
		if s.cfg.CollectStats > 3 {
			numMessages += vs.CountConcrete(s.ctx.True(), removed)
		}
		if first {
			effect = removed
			first = false
		} else {
			effect = effect.Merge(removed).(machine.Message)
		}
	}
	if s.cfg.CollectStats > 3 {
		numMessagesMerged = vs.CountConcrete(s.ctx.True(), effect)
		numMessagesExplored = vs.CountConcrete(s.ctx.True(), effect.Target(), effect.Event())
	}

	s.log.Log(context.Background(), logger.LevelTrace, "schedule",
		"depth", s.depth, "effect", effect.String())

	s.performEffect(effect)

	if limit := s.memMon.LimitMB(); limit > 0 && s.memMon.MemSpentMB() > 0.8*limit {
		s.ctx.Cleanup()
	}
	if err := s.memMon.CheckLimit(); err != nil {
		return err
	}

	s.searchStats.AddDepthStatistics(s.depth, statistics.DepthStats{
		Depth:               s.depth,
		NumStates:           numStates,
		NumMessages:         numMessages,
		NumMessagesMerged:   numMessagesMerged,
		NumMessagesExplored: numMessagesExplored,
	})
	s.depth++
	return nil
}

func (s *Scheduler) makeFrame() *Frame {
	states := map[*machine.Machine][]vs.Summary{}
	for m, st := range s.srcState {
		states[m] = append([]vs.Summary{}, st...)
	}
	counters := map[string]vs.Prim[int]{}
	for k, v := range s.counters {
		counters[k] = v
	}
	return &Frame{
		Depth:           s.depth,
		ChoiceDepth:     s.choiceDepth,
		MachineStates:   states,
		MachineCounters: counters,
	}
}

// RestoreState resets the run to a backtrack frame: machine state is
// restored field by field, machines absent from the frame are reset,
// and the counters are restored verbatim.
func (s *Scheduler) RestoreState(f *Frame) {
	if f == nil {
		panic(&vs.InvariantError{Message: "restoring a nil backtrack frame"})
	}
	for m, st := range f.MachineStates {
		m.SetLocalState(st)
	}
	for _, m := range s.machines {
		if _, ok := f.MachineStates[m]; !ok {
			m.Reset()
		}
	}
	s.counters = map[string]vs.Prim[int]{}
	for k, v := range f.MachineCounters {
		s.counters[k] = v
	}
	s.Restore(f.Depth, f.ChoiceDepth)
	s.schedule.TruncateChoices(f.ChoiceDepth)
	s.backtrackDepth = f.ChoiceDepth
}

// Restore rewinds the depth counters without touching machine state.
func (s *Scheduler) Restore(depth, choiceDepth int) {
	s.depth = depth
	s.choiceDepth = choiceDepth
	s.preChoiceDepth = math.MaxInt
	s.done = false
	s.executionFinished = false
}

// Reset returns the scheduler to its pre-search shape.
func (s *Scheduler) Reset() {
	s.depth = 0
	s.choiceDepth = 0
	s.preChoiceDepth = math.MaxInt
	s.done = false
	s.executionFinished = false
	s.counters = map[string]vs.Prim[int]{}
	s.machines = nil
	s.srcState = map[*machine.Machine][]vs.Summary{}
}

// Reinitialize rebinds transient state after a restore: every machine
// the schedule knows points back at this scheduler.
func (s *Scheduler) Reinitialize() {
	s.srcState = map[*machine.Machine][]vs.Summary{}
	s.distinctStates = map[string]int{}
	s.distinctStatesList = nil
	s.distinctStateGuard = nil
	for _, m := range s.schedule.Machines() {
		m.SetScheduler(s)
	}
}

// EnterReplay switches the scheduler into replay mode: machine
// allocation reuses recorded handles and every choice is constrained
// to the recorded decision.
func (s *Scheduler) EnterReplay(recorded *Schedule) {
	s.schedule = recorded
	s.replayMode = true
	s.Reset()
	for _, m := range recorded.Machines() {
		m.Reset()
		m.SetScheduler(s)
	}
}

// runMonitors dispatches the message's events to every listening
// monitor, in stable monitor order.
func (s *Scheduler) runMonitors(msg machine.Message) {
	constraints := make([]solver.Guard, len(s.monitors))
	for _, e := range msg.Event().GetGuardedValues() {
		for _, listener := range s.listeners[e.Value] {
			for i, mon := range s.monitors {
				if mon == listener {
					constraints[i] = constraints[i].Or(e.Guard)
				}
			}
		}
	}
	for i, mon := range s.monitors {
		g := constraints[i]
		if g.IsZero() || g.IsFalse() {
			continue
		}
		mon.ProcessEventToCompletion(g, msg.Restrict(g).(machine.Message))
	}
}

// performEffect delivers a dequeued message: monitors first, then
// every guarded target machine.
func (s *Scheduler) performEffect(msg machine.Message) {
	s.runMonitors(msg)
	for _, target := range msg.Target().GetGuardedValues() {
		if target.Value == nil {
			continue
		}
		target.Value.ProcessEventToCompletion(target.Guard, msg.Restrict(target.Guard).(machine.Message))
	}
}

// PrintStats flushes the search statistics through the stat writer.
func (s *Scheduler) PrintStats() {
	total := s.searchStats.Total()
	timeUsed := s.timeMon.Runtime().Seconds()
	solverStats := s.ctx.Stats()

	s.statWriter.Logf("result", "%s", s.Result)
	s.statWriter.Logf("time-seconds", "%.1f", timeUsed)
	s.statWriter.Logf("memory-max-MB", "%.1f", s.memMon.MaxMemSpentMB())
	s.statWriter.Logf("memory-current-MB", "%.1f", s.memMon.MemSpentMB())
	s.statWriter.Logf("max-depth-explored", "%d", total.Depth)

	s.statWriter.Logf("time-create-guards-seconds", "%.1f", solverStats.TimeTotalCreate.Seconds())
	s.statWriter.Logf("time-solve-guards-seconds", "%.1f", solverStats.TimeTotalSolve.Seconds())
	s.statWriter.Logf("time-create-guards-max-seconds", "%.3f", solverStats.TimeMaxCreate.Seconds())
	s.statWriter.Logf("time-solve-guards-max-seconds", "%.3f", solverStats.TimeMaxSolve.Seconds())
	s.statWriter.Logf("#-vars", "%d", s.ctx.Engine().VarCount())
	s.statWriter.Logf("#-and-ops", "%d", solverStats.AndOps)
	s.statWriter.Logf("#-or-ops", "%d", solverStats.OrOps)
	s.statWriter.Logf("#-not-ops", "%d", solverStats.NotOps)
	s.statWriter.Logf("solver-#-sat-ops", "%d", solverStats.IsSatOps)
	s.statWriter.Logf("solver-#-sat-ops-sat", "%d", solverStats.IsSatTrue)
	s.statWriter.Logf("solver-%-sat-ops-sat", "%.1f", solverStats.IsSatPercent())

	s.statWriter.Logf("#-states", "%d", s.TotalStates())
	s.statWriter.Logf("#-distinct-states", "%d", s.TotalDistinctStates())
	s.statWriter.Logf("#-events", "%d", total.NumMessages)
	s.statWriter.Logf("#-events-merged", "%d", total.NumMessagesMerged)
	s.statWriter.Logf("#-events-explored", "%d", total.NumMessagesExplored)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
