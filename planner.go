package loom

// pass is one barrier interval: the system sets assigned to each thread
// (index 0 is main) between the previous barrier and the next.
type pass struct {
	perThread [][]SystemSet // len == thread_count
}

// ExecutionPlan is a built, per-stage program: a sequence of passes, each
// followed by a barrier every thread rendezvous at before the next pass
// starts. Ported from original_source/src/schedule/graph.rs's
// ExecutionGraph, flattened from an arena-indexed linked list of nodes into
// a plain slice of passes — the arena exists in Rust to dodge a
// borrow-checker fight over shared Node ownership across roots; Go has no
// such constraint, so the plan is just "what each thread runs, pass by
// pass."
type ExecutionPlan struct {
	passes      []pass
	threadCount int
}

func (p *ExecutionPlan) empty() bool {
	return p == nil || len(p.passes) == 0
}

// planBuild implements the planning algorithm of spec.md §4.8 /
// original_source/src/schedule/builder.rs's GraphBuilder.build_graph_from:
// repeatedly bin-pack system sets onto threads by conflict count, subject
// to the max_tail fairness bound, emitting a barrier across all threads at
// the end of every pass.
func planBuild(sets []SystemSet, threadCount, maxTail int) *ExecutionPlan {
	plan := &ExecutionPlan{threadCount: threadCount}
	if len(sets) == 0 {
		return plan
	}

	pending := sets
	first := true

	for first || len(pending) > 0 {
		reserved := make([][]SystemSet, threadCount)
		sinceSync := make([]int, threadCount)
		var leftovers []SystemSet

		for _, set := range pending {
			footprint := set.footprintUnion()
			local := set.localityUnion()

			var conflicts []int
			for thread, sets := range reserved {
				if threadConflicts(sets, footprint) {
					conflicts = append(conflicts, thread)
				}
			}
			if local && !containsInt(conflicts, 0) {
				conflicts = append(conflicts, 0)
			}

			switch len(conflicts) {
			case 0:
				thread := threadWithFewestNodes(reserved)
				if tailTooLong(sinceSync, thread, maxTail) {
					leftovers = append(leftovers, set)
				} else {
					reserved[thread] = append(reserved[thread], set)
					sinceSync[thread]++
				}
			case 1:
				thread := conflicts[0]
				if tailTooLong(sinceSync, thread, maxTail) {
					leftovers = append(leftovers, set)
				} else {
					reserved[thread] = append(reserved[thread], set)
					sinceSync[thread]++
				}
			default:
				leftovers = append(leftovers, set)
			}
		}

		plan.passes = append(plan.passes, pass{perThread: reserved})
		pending = leftovers
		first = false
	}

	return plan
}

func threadConflicts(reserved []SystemSet, footprint []paramFootprint) bool {
	for _, set := range reserved {
		for _, a := range set.footprintUnion() {
			for _, b := range footprint {
				if footprintsConflict(a, b) {
					return true
				}
			}
		}
	}
	return false
}

// threadWithFewestNodes picks the lowest-indexed thread among those with
// the fewest nodes reserved since the last barrier (ties favor the lowest
// index, matching spec.md §4.8's tie-break rule).
func threadWithFewestNodes(reserved [][]SystemSet) int {
	best := 0
	for i, sets := range reserved {
		if len(sets) < len(reserved[best]) {
			best = i
		}
	}
	return best
}

// tailTooLong reports whether thread is the most-loaded thread since the
// last barrier (ties favor the highest index, matching spec.md §4.8's
// "worst tail" tie-break) and is already maxTail nodes ahead of the least
// loaded thread.
func tailTooLong(sinceSync []int, thread, maxTail int) bool {
	maxThread, max := 0, sinceSync[0]
	for i, n := range sinceSync {
		if n >= max {
			maxThread, max = i, n
		}
	}
	if thread != maxThread {
		return false
	}
	min := sinceSync[0]
	for _, n := range sinceSync {
		if n < min {
			min = n
		}
	}
	return max-min >= maxTail
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
