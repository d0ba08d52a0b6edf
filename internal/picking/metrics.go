package picking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeLabel   = "mode"
	reasonLabel = "reason"

	modeImmediate = "immediate"
	modeDeferred  = "deferred"

	reasonNoScene    = "no_scene"
	reasonNoCallback = "no_callback"
)

var (
	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picking_queries_total",
		Help: "The number of ray queries issued.",
	}, []string{
		modeLabel,
	})

	queryHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picking_hits_total",
		Help: "The number of ray queries that hit an entity.",
	}, []string{
		modeLabel,
	})

	droppedQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picking_dropped_queries_total",
		Help: "The number of deferred ray queries dropped without a result.",
	}, []string{
		reasonLabel,
	})

	callbackPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picking_callback_panics_total",
		Help: "The number of deferred ray query callbacks that panicked.",
	})

	pendingQueries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "picking_pending_queries",
		Help: "The number of deferred ray queries waiting for the next flush.",
	})
)
