package worker

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/yamato/oerror"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range workerQueue {
		run(f)
	}
}

// run calls f, reporting a panic to sentry instead of taking the worker down with it.
func run(f func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			panicked = true
		}
	}()
	f()
	return false
}

// To be used by a function that may be CPU intensive.
func Submit(f func()) {
	workerQueue <- f
}

// Batch runs every job on the worker queue and waits for all of them to return. An error is
// returned if any of the jobs panicked. Batch must not be called from a job running on the queue: once
// every worker waits on a nested batch, none is left to run its jobs and the call never returns.
func Batch(jobs ...func()) error {
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	wg.Add(len(jobs))
	for _, job := range jobs {
		Submit(func() {
			defer wg.Done()
			if run(job) {
				failed.Add(1)
			}
		})
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		return oerror.New("%d of %d jobs panicked", n, len(jobs))
	}
	return nil
}
