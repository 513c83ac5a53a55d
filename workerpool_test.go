package loom

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolScopeRunsAllJobs(t *testing.T) {
	pool := newWorkerPool(3)
	defer pool.close()

	var count int32
	pool.scope([]func(){
		func() { atomic.AddInt32(&count, 1) },
		func() { atomic.AddInt32(&count, 1) },
		func() { atomic.AddInt32(&count, 1) },
	})

	if got := atomic.LoadInt32(&count); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}

func TestWorkerPoolScopeToleratesNilJobs(t *testing.T) {
	pool := newWorkerPool(2)
	defer pool.close()

	var ran bool
	pool.scope([]func(){nil, func() { ran = true }})
	if !ran {
		t.Fatalf("expected the non-nil job to run")
	}
}

func TestWorkerPoolScopeRecoversPanickingJob(t *testing.T) {
	pool := newWorkerPool(1)
	defer pool.close()

	done := make(chan struct{})
	go func() {
		pool.scope([]func(){func() { panic("boom") }})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("scope did not return after a panicking job")
	}
}
