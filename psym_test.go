package psym_test

import (
	"strings"
	"testing"

	"psym"
	"psym/config"
	"psym/examples"
	"psym/logger"
	"psym/scheduler"
	"psym/solver"
)

func newCtx(t *testing.T) *solver.Context {
	t.Helper()
	engine, err := solver.NewBDDEngine(2048)
	if err != nil {
		t.Fatalf("creating BDD engine: %v", err)
	}
	return solver.NewContext(engine)
}

func run(t *testing.T, name string, cfg config.Config) psym.Result {
	t.Helper()
	ctx := newCtx(t)
	builder, ok := examples.Registry()[name]
	if !ok {
		t.Fatalf("unknown example program %q", name)
	}
	return psym.RunSearch(ctx, cfg, builder(ctx), logger.Discard())
}

func TestEmptyProgramFinishesImmediately(t *testing.T) {
	cfg := config.Default()
	cfg.MaxStepBound = 1

	result := run(t, "empty", cfg)
	if result.Status != psym.StatusOk {
		t.Fatalf("expected ok, got %s (%v)", result.Status, result.Err)
	}
}

func TestPingReachesDepthThree(t *testing.T) {
	cfg := config.Default()
	cfg.MaxStepBound = 10

	result := run(t, "ping", cfg)
	if result.Status != psym.StatusOk {
		t.Fatalf("expected ok, got %s (%v)", result.Status, result.Err)
	}
	if depth := result.Scheduler.Depth(); depth != 3 {
		t.Errorf("expected depth 3 (create main, create node, deliver ping), got %d", depth)
	}
}

func TestBooleanForkSeesBothBranches(t *testing.T) {
	cfg := config.Default()
	cfg.MaxStepBound = 10
	cfg.UseStateCaching = true

	result := run(t, "boolfork", cfg)
	if result.Status != psym.StatusOk {
		t.Fatalf("expected ok, got %s (%v)", result.Status, result.Err)
	}
	if n := result.Scheduler.TotalDistinctStates(); n < 2 {
		t.Errorf("a symbolic boolean fork should produce at least 2 distinct states, got %d", n)
	}
}

func TestHotStateIsLivenessBug(t *testing.T) {
	cfg := config.Default()
	cfg.MaxStepBound = 10

	result := run(t, "hotstate", cfg)
	if result.Status != psym.StatusBug {
		t.Fatalf("expected bug, got %s", result.Status)
	}
	if result.Err == nil || !strings.Contains(result.Err.Error(), "hot state") {
		t.Errorf("liveness failure should mention the hot state, got %v", result.Err)
	}
	if result.Status.ExitCode() != 2 {
		t.Errorf("a bug should map to exit code 2")
	}
}

func TestSleepSetsPreserveDistinctStates(t *testing.T) {
	base := config.Default()
	base.MaxStepBound = 20
	base.UseStateCaching = true

	withoutSleep := base
	withSleep := base
	withSleep.UseSleepSets = true

	r1 := run(t, "twosenders", withoutSleep)
	r2 := run(t, "twosenders", withSleep)

	if r1.Status != psym.StatusOk || r2.Status != psym.StatusOk {
		t.Fatalf("expected ok in both configurations, got %s / %s", r1.Status, r2.Status)
	}
	d1 := r1.Scheduler.TotalDistinctStates()
	d2 := r2.Scheduler.TotalDistinctStates()
	if d1 != d2 {
		t.Errorf("sleep sets must not change the distinct-state count: %d vs %d", d1, d2)
	}
}

func TestBacktrackKeepsDistinctStateCount(t *testing.T) {
	cfg := config.Default()
	cfg.MaxStepBound = 20
	cfg.UseBacktrack = true
	cfg.UseStateCaching = true

	ctx := newCtx(t)
	program := examples.TwoSenders(ctx)
	sch := scheduler.New(ctx, cfg, program, logger.Discard())

	if err := sch.DoSearch(); err != nil {
		t.Fatalf("fresh search failed: %v", err)
	}
	fresh := sch.TotalDistinctStates()

	frame := sch.Schedule().FrameAt(2)
	if frame == nil {
		t.Fatalf("expected a backtrack frame at depth 2")
	}
	sch.RestoreState(frame)
	if err := sch.PerformSearch(); err != nil {
		t.Fatalf("resumed search failed: %v", err)
	}

	if again := sch.TotalDistinctStates(); again != fresh {
		t.Errorf("re-exploring from the frame should revisit only cached states: %d vs %d", again, fresh)
	}
}

func TestReplayReachesSameDepth(t *testing.T) {
	cfg := config.Default()
	cfg.MaxStepBound = 10

	ctx := newCtx(t)
	program := examples.Ping(ctx)

	first := scheduler.New(ctx, cfg, program, logger.Discard())
	if err := first.DoSearch(); err != nil {
		t.Fatalf("recording run failed: %v", err)
	}
	recordedDepth := first.Depth()

	second := scheduler.New(ctx, cfg, program, logger.Discard())
	second.EnterReplay(first.Schedule())
	if err := second.DoSearch(); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if second.Depth() != recordedDepth {
		t.Errorf("replay should reach the recorded depth %d, got %d", recordedDepth, second.Depth())
	}
}
