package picking

import (
	"fmt"
	"sync"

	"scenequery/internal/profiling"
	"scenequery/internal/scene"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl32"
)

// Callback receives the result of a deferred query. ok is false on a miss.
type Callback func(hit Hit, ok bool)

type pendingQuery struct {
	source   EntitySource
	ray      Ray
	callback Callback
}

// Service queues ray queries from any goroutine and answers them once per
// frame against the visible entities.
//
// Every query accepted by Enqueue gets exactly one callback: immediately
// when it has no scene, otherwise at the next FlushPending. A callback that
// panics during a flush is recovered and logged.
type Service struct {
	mu      sync.Mutex
	pending []pendingQuery
}

func NewService() *Service {
	return &Service{}
}

// Enqueue computes the ray under a pixel and queues it for the next flush.
func (s *Service) Enqueue(screenX, screenY, screenW, screenH float32, src EntitySource, projection, view mgl32.Mat4, callback Callback) {
	if missing(src) {
		s.rejectNoScene(callback)
		return
	}
	s.EnqueueRay(src, ScreenRay(screenX, screenY, screenW, screenH, projection, view), callback)
}

// EnqueueRay queues an already computed ray.
func (s *Service) EnqueueRay(src EntitySource, ray Ray, callback Callback) {
	if missing(src) {
		s.rejectNoScene(callback)
		return
	}

	s.mu.Lock()
	s.pending = append(s.pending, pendingQuery{source: src, ray: ray, callback: callback})
	s.mu.Unlock()

	queries.WithLabelValues(modeDeferred).Inc()
	pendingQueries.Inc()
}

func (s *Service) rejectNoScene(callback Callback) {
	logs.WithTag("query", "deferred").Debug("ray query without a scene")
	droppedQueries.WithLabelValues(reasonNoScene).Inc()
	if callback != nil {
		callback(Hit{}, false)
	}
}

// Pending returns the number of queued queries.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// FlushPending answers every queued query against visible and returns how
// many callbacks ran. Call once per frame after culling.
//
// The queue is swapped out under the lock and processed without it, so
// queries enqueued meanwhile, including from callbacks, wait for the next
// flush.
func (s *Service) FlushPending(visible []*scene.Entity) int {
	defer profiling.Track("picking.FlushPending")()

	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return 0
	}
	pendingQueries.Sub(float64(len(batch)))

	delivered := 0
	for _, q := range batch {
		if missing(q.source) {
			droppedQueries.WithLabelValues(reasonNoScene).Inc()
			continue
		}
		if q.callback == nil {
			droppedQueries.WithLabelValues(reasonNoCallback).Inc()
			continue
		}

		hit, ok := closest(visible, q.ray.Origin, q.ray.Direction)
		if ok {
			queryHits.WithLabelValues(modeDeferred).Inc()
		}
		deliver(q.callback, hit, ok)
		delivered++
	}

	logs.WithTag("queries", len(batch)).
		WithTag("delivered", delivered).
		WithTag("visible", len(visible)).
		Debug("pending ray queries flushed")
	return delivered
}

// deliver runs one callback. A panicking callback is logged and does not
// take the rest of the batch down with it.
func deliver(callback Callback, hit Hit, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			callbackPanics.Inc()
			logs.Error(errors.New("ray query callback panicked").
				WithTag("panic", fmt.Sprint(r)).
				WithTag("hit", ok))
		}
	}()
	callback(hit, ok)
}
