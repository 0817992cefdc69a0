package fertilizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "soilhub_recommendations_total",
	Help: "Number of fertilizer recommendations computed, by algorithm.",
}, []string{"algorithm"})
