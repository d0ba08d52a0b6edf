package culling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultLabel = "result"

var (
	classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "culling_classifications_total",
		Help: "The number of bounding volumes classified against the view frustum.",
	}, []string{
		resultLabel,
	})

	degeneratePlanes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "culling_degenerate_planes_total",
		Help: "The number of frustum planes left unnormalized because their normal was near zero.",
	})
)
