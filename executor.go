package loom

import (
	"sync"

	"go.uber.org/zap"
)

// runStage walks plan's passes in order: within a pass, thread 0 (main)
// runs its assigned system sets in this goroutine while threads 1..N run
// theirs on pool; the pass does not advance until every thread's work for
// it has completed, which is the barrier rendezvous of spec.md §4.8.
//
// Rust's split_world hands workers a raw, unsynchronized pointer because
// the borrow checker otherwise forbids sharing &World across threads; Go
// has no such restriction; the shared *World is safe to read/mutate from
// every thread here because the static plan already guarantees no two
// concurrently-running system sets have conflicting footprints, and
// command queues (the only source of structural mutation) are only
// drained on main, between stages, never mid-pass.
func runStage(w *World, plan *ExecutionPlan, pool *workerPool, metrics *Metrics) {
	if plan.empty() {
		return
	}
	for _, ps := range plan.passes {
		var wg sync.WaitGroup
		if plan.threadCount > 1 {
			wg.Add(1)
			go func(ps pass) {
				defer wg.Done()
				jobs := make([]func(), plan.threadCount-1)
				for i := 1; i < plan.threadCount; i++ {
					sets := ps.perThread[i]
					if len(sets) == 0 {
						continue
					}
					jobs[i-1] = func() { runSets(sets, w, metrics) }
				}
				pool.scope(jobs)
			}(ps)
		}
		runSets(ps.perThread[0], w, metrics)
		wg.Wait()
	}
}

// runSets runs every system in every set, in order, on the calling
// goroutine. A system panic is recovered and logged (spec.md §4.9: "A
// system's run-time panic is caught and logged without poisoning the
// world"); a system that can't extract its parameters is counted as
// skipped.
func runSets(sets []SystemSet, w *World, metrics *Metrics) {
	for _, set := range sets {
		for _, sys := range set.members() {
			runOneSystem(sys, w, metrics)
		}
	}
}

func runOneSystem(sys System, w *World, metrics *Metrics) {
	defer func() {
		if r := recover(); r != nil {
			metrics.recordPanic()
			logger.Error("system panicked", zap.String("system", sys.Name()), zap.Any("recover", r))
		}
	}()
	if sys.Run(w) {
		metrics.recordExecuted()
	} else {
		metrics.recordSkip("extract_failed")
		logger.Debug("system skipped", zap.String("system", sys.Name()))
	}
}
