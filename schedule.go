package loom

import "time"

// Stage is one of the five fixed points in a tick where systems run,
// matching spec.md §6's fixed enum.
type Stage int

const (
	StageSetup Stage = iota
	StagePreUpdate
	StageUpdate
	StagePostUpdate
	StageShutdown
)

// ScheduleBuilder accumulates system sets per stage and compiles them into
// a Schedule. Grounded on original_source/src/schedule/builder.rs's
// ScheduleBuilder.
type ScheduleBuilder struct {
	threadCount int
	maxTail     int
	metrics     *Metrics

	systems [5][]SystemSet
}

// NewSchedule returns a builder configured with loom's default thread
// count and max tail (Config.DefaultThreadCount / Config.DefaultMaxTail).
func NewSchedule() *ScheduleBuilder {
	return &ScheduleBuilder{
		threadCount: Config.DefaultThreadCount,
		maxTail:     Config.DefaultMaxTail,
		metrics:     NewNopMetrics(),
	}
}

// SetThreadCount overrides the worker thread count (main thread is
// additional, not counted here).
func (b *ScheduleBuilder) SetThreadCount(n int) *ScheduleBuilder {
	b.threadCount = n
	return b
}

// SetMaxTail overrides the per-thread node-count slack the planner
// tolerates before deferring a system to a later pass.
func (b *ScheduleBuilder) SetMaxTail(k int) *ScheduleBuilder {
	b.maxTail = k
	return b
}

// SetMetrics attaches a Metrics the built Schedule records against.
func (b *ScheduleBuilder) SetMetrics(m *Metrics) *ScheduleBuilder {
	if m != nil {
		b.metrics = m
	}
	return b
}

// AddSystem registers set to run during stage.
func (b *ScheduleBuilder) AddSystem(stage Stage, set SystemSet) *ScheduleBuilder {
	b.systems[stage] = append(b.systems[stage], set)
	return b
}

// Build compiles every stage's system sets into an ExecutionPlan and
// returns a ready-to-run Schedule.
func (b *ScheduleBuilder) Build() *Schedule {
	roots := b.threadCount + 1
	return &Schedule{
		pool:       newWorkerPool(b.threadCount),
		threadRoot: roots,
		metrics:    b.metrics,
		setup:      planBuild(b.systems[StageSetup], roots, b.maxTail),
		preUpdate:  planBuild(b.systems[StagePreUpdate], roots, b.maxTail),
		update:     planBuild(b.systems[StageUpdate], roots, b.maxTail),
		postUpdate: planBuild(b.systems[StagePostUpdate], roots, b.maxTail),
		shutdown:   planBuild(b.systems[StageShutdown], roots, b.maxTail),
	}
}

// Schedule is a compiled, runnable set of per-stage execution plans.
// Grounded on original_source/src/schedule/mod.rs's Schedule.
type Schedule struct {
	pool       *workerPool
	threadRoot int
	metrics    *Metrics

	setup      *ExecutionPlan
	preUpdate  *ExecutionPlan
	update     *ExecutionPlan
	postUpdate *ExecutionPlan
	shutdown   *ExecutionPlan
}

// RunSetup runs the Setup stage once.
func (s *Schedule) RunSetup(w *World) {
	runStage(w, s.setup, s.pool, s.metrics)
	w.ApplyCommands()
}

// RunShutdown runs the Shutdown stage once.
func (s *Schedule) RunShutdown(w *World) {
	runStage(w, s.shutdown, s.pool, s.metrics)
	w.ApplyCommands()
	s.pool.close()
}

// Run executes PreUpdate -> Update -> PostUpdate, draining commands
// between each stage, matching spec.md §6's run(&mut world) contract.
func (s *Schedule) Run(w *World) {
	start := time.Now()
	runStage(w, s.preUpdate, s.pool, s.metrics)
	w.ApplyCommands()
	runStage(w, s.update, s.pool, s.metrics)
	w.ApplyCommands()
	runStage(w, s.postUpdate, s.pool, s.metrics)
	w.ApplyCommands()
	s.metrics.recordTick(time.Since(start).Seconds())
}
