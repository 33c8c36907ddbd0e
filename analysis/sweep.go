package analysis

import (
	"runtime"
	"sync"

	"github.com/p7r0x7/hortex"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// A Worker owns the scratch memory of one sweep goroutine; nothing in it is shared.
type Worker struct {
	ID       int
	presence *Presence
}

// Presence returns the worker's presence set, cleared. The set is allocated on first use and
// reused by every later task on the same worker.
func (w *Worker) Presence() *Presence {
	if w.presence == nil {
		w.presence = NewPresence()
	} else {
		w.presence.Reset()
	}
	return w.presence
}

type task struct {
	dex int
	v   hortex.Variant
}

// Sweep runs fn once per variant on up to jobs goroutines and returns the results in the order
// of variants. done, if not nil, is called from the caller's goroutine as each result arrives.
func Sweep[T any](variants []hortex.Variant, jobs int, fn func(*Worker, hortex.Variant) T,
	done func(int, T)) []T {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(variants) {
		jobs = len(variants)
	}

	type result struct {
		dex int
		val T
	}
	to, from := make(chan task, jobs), make(chan result, jobs)
	var summing sync.WaitGroup
	summing.Add(jobs)
	for i := 0; i < jobs; i++ {
		go func(w *Worker) {
			for t := range to {
				from <- result{t.dex, fn(w, t.v)}
			}
			summing.Done()
		}(&Worker{ID: i})
	}
	go func() {
		for i, v := range variants {
			to <- task{i, v}
		}
		close(to)
		summing.Wait()
		close(from)
	}()

	results := make([]T, len(variants))
	for r := range from {
		results[r.dex] = r.val
		if done != nil {
			done(r.dex, r.val)
		}
	}
	return results
}

// BijectivitySweep scans every variant over the whole domain.
func BijectivitySweep(variants []hortex.Variant, mode Mode, jobs int, done func(int, Report)) []Report {
	return Sweep(variants, jobs, func(w *Worker, v hortex.Variant) Report {
		return Scan(w.Presence(), v, mode, 0, Domain)
	}, done)
}
