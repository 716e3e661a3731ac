package console

import (
	"context"
	"sync"
	"time"
)

// Runner drives a Console in real time: inputs come from a channel, jobs run on their own
// goroutines and a single timer wakes the console at its next deadline.
type Runner struct {
	console *Console
	clock   Clock
}

// NewRunner returns a Runner over console.
func NewRunner(console *Console, clock Clock) *Runner {
	return &Runner{console: console, clock: clock}
}

// Run until ctx is done, or inputs is closed and the console has settled. Every batch of events is handed to emit from
// the Runner goroutine. Inputs received while a submission is being processed or revealed are queued and submitted in order once
// the console has settled; a clear is applied immediately and drops the queue. Jobs still in flight are cancelled and
// waited for before returning.
func (r *Runner) Run(ctx context.Context, inputs <-chan string, emit func([]Event)) error {
	jobCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	results := make(chan Result)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	flush := func() {
		if events := r.console.Drain(); len(events) > 0 {
			emit(events)
		}
	}

	submit := func(input string) {
		job := r.console.Submit(input)
		if job == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := job.Run(jobCtx)
			select {
			case results <- result:
			case <-jobCtx.Done():
			}
		}()
	}

	var queue []string
	r.console.Start()
	flush()
	closed := false
	for {
		for len(queue) > 0 && r.console.Settled() {
			input := queue[0]
			queue = queue[1:]
			submit(input)
			flush()
		}
		if closed && !r.console.Busy() && len(queue) == 0 {
			if _, ok := r.console.NextDeadline(); !ok {
				r.console.Stop()
				return nil
			}
		}
		if deadline, ok := r.console.NextDeadline(); ok {
			timer.Reset(max(deadline.Sub(r.clock.Now()), 0))
		} else {
			timer.Stop()
		}

		select {
		case <-ctx.Done():
			r.console.Stop()
			return ctx.Err()

		case input, ok := <-inputs:
			if !ok {
				closed, inputs = true, nil
				continue
			}
			if r.console.Queues(input) {
				queue = append(queue, input)
				continue
			}
			// Anything still queued was sent before this clear.
			queue = nil
			submit(input)

		case result := <-results:
			r.console.Complete(result)

		case <-timer.C:
			r.console.Advance(r.clock.Now())
		}
		flush()
	}
}
