package loom

import "sync"

// workerPool is a fixed pool of goroutines, each owning one job-intake
// channel, matching original_source/src/thread_pool.rs's ThreadPool. The
// Rust type spawns real OS threads and joins them with a spin-free
// Drop-triggered wait on an Arc<AtomicUsize>; Go's scheduler already
// multiplexes goroutines onto OS threads, and sync.WaitGroup is the
// blocking join primitive the Rust counter is standing in for, so the port
// keeps the channel-per-worker shape but swaps the counter for a WaitGroup.
type workerPool struct {
	intake []chan func()
	stop   chan struct{}
	once   sync.Once
}

func newWorkerPool(threadCount int) *workerPool {
	p := &workerPool{
		intake: make([]chan func(), threadCount),
		stop:   make(chan struct{}),
	}
	for i := range p.intake {
		ch := make(chan func())
		p.intake[i] = ch
		go p.loop(ch)
	}
	return p
}

func (p *workerPool) loop(jobs chan func()) {
	for {
		select {
		case job := <-jobs:
			runRecovered(job)
		case <-p.stop:
			return
		}
	}
}

// close stops every worker goroutine. Safe to call more than once.
func (p *workerPool) close() {
	p.once.Do(func() { close(p.stop) })
}

// scope dispatches jobs[i] onto worker thread i and blocks until every
// dispatched job has run to completion (or panicked and been recovered).
// A nil entry in jobs means "no work for this thread this pass."
func (p *workerPool) scope(jobs []func()) {
	var wg sync.WaitGroup
	for i, job := range jobs {
		if job == nil {
			continue
		}
		wg.Add(1)
		j := job
		done := make(chan struct{})
		p.intake[i] <- func() {
			defer close(done)
			j()
		}
		go func() {
			<-done
			wg.Done()
		}()
	}
	wg.Wait()
}

func runRecovered(job func()) {
	defer func() { _ = recover() }()
	job()
}
