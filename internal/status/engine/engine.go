// Package engine runs the dispatch cycle: read a batch from the session,
// apply it to the store, render a snapshot.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/grovetools/ristate/errors"
	"github.com/grovetools/ristate/internal/status/dispatch"
	"github.com/grovetools/ristate/internal/status/render"
	"github.com/grovetools/ristate/internal/status/store"
	"github.com/sirupsen/logrus"
)

// Source produces batches of events. NextBatch blocks; Close unblocks it.
type Source interface {
	NextBatch() ([]dispatch.Event, error)
	Close() error
}

// CycleObserver is told how long each cycle spent applying and rendering.
type CycleObserver interface {
	ObserveCycle(time.Duration)
}

// Engine owns the store and drives every cycle from a single goroutine.
type Engine struct {
	source     Source
	store      *store.Store
	dispatcher *dispatch.Dispatcher
	renderer   *render.Renderer
	logger     *logrus.Entry
	observer   CycleObserver
}

// New creates an Engine. The dispatcher and renderer must share st.
func New(source Source, st *store.Store, d *dispatch.Dispatcher, r *render.Renderer, logger *logrus.Entry) *Engine {
	return &Engine{
		source:     source,
		store:      st,
		dispatcher: d,
		renderer:   r,
		logger:     logger,
	}
}

// SetObserver registers o to receive cycle timings.
func (e *Engine) SetObserver(o CycleObserver) {
	e.observer = o
}

// Run loops until ctx is cancelled or an error occurs. Cancellation closes
// the source and returns nil; every other error is returned.
func (e *Engine) Run(ctx context.Context) error {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			e.logger.Debug("Context cancelled, closing source")
			e.source.Close()
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	for cycle := 1; ; cycle++ {
		events, err := e.source.NextBatch()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		start := time.Now()
		if err := e.dispatcher.ApplyBatch(events); err != nil {
			return err
		}

		wrote, err := e.renderer.Render(e.store)
		if err != nil {
			return errors.OutputWrite(err)
		}
		if e.observer != nil {
			e.observer.ObserveCycle(time.Since(start))
		}

		e.logger.WithFields(logrus.Fields{
			"cycle":   cycle,
			"events":  len(events),
			"emitted": wrote,
		}).Debug("Cycle complete")
	}
}
