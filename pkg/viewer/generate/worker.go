package generate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"terrainview/pkg/viewer/state"
)

// Worker runs the pipeline off the UI goroutine, one run at a time.
//
// Each started run gets a sequence number. Only the outcome of the latest
// started run is delivered by Poll or Wait; an outcome that arrives after a
// newer run was started (for example a cancelled run finishing late) is
// discarded.
type Worker struct {
	pipeline *Pipeline

	mu     sync.Mutex
	seq    uint64
	busy   bool
	cancel context.CancelFunc

	results chan Outcome
}

// NewWorker returns an idle worker for p.
func NewWorker(p *Pipeline) *Worker {
	return &Worker{
		pipeline: p,
		results:  make(chan Outcome, 8),
	}
}

// Start launches a run and returns its ID. It fails fast with ErrBusy when
// a run is in flight and with ErrPathsIncomplete when paths are not set.
func (w *Worker) Start(ctx context.Context, paths state.GeneratorPaths) (string, error) {
	if !paths.Complete() {
		return "", fmt.Errorf("%w: missing %s", ErrPathsIncomplete, strings.Join(paths.Missing(), ", "))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.busy {
		return "", ErrBusy
	}

	w.seq++
	seq := w.seq
	runID := uuid.NewString()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.busy = true

	log.Printf("run %s: starting %s", runID, paths.Command())

	go func() {
		defer cancel()
		o, err := w.pipeline.Run(jobCtx, paths)
		o.RunID = runID
		o.Seq = seq
		o.Err = err
		w.results <- o
	}()

	return runID, nil
}

// Busy reports whether a run is in flight.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Cancel kills the running process, if any. The worker is free to start a
// new run immediately; the cancelled run's outcome will be discarded.
func (w *Worker) Cancel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.busy {
		return false
	}
	w.cancel()
	w.busy = false
	// Bump the sequence so the cancelled run's outcome counts as stale.
	w.seq++
	return true
}

// Poll returns the latest run's outcome if it has arrived. It never blocks.
func (w *Worker) Poll() (Outcome, bool) {
	for {
		select {
		case o := <-w.results:
			if w.accept(o) {
				return o, true
			}
		default:
			return Outcome{}, false
		}
	}
}

// Wait blocks until the latest run's outcome arrives or ctx is done.
func (w *Worker) Wait(ctx context.Context) (Outcome, error) {
	for {
		select {
		case o := <-w.results:
			if w.accept(o) {
				return o, nil
			}
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}
}

// Close cancels any running job.
func (w *Worker) Close() {
	w.Cancel()
}

func (w *Worker) accept(o Outcome) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if o.Seq != w.seq {
		log.Printf("run %s: discarding stale result", o.RunID)
		return false
	}
	w.busy = false
	return true
}
