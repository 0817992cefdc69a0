package drought

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	readingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soilhub_drought_readings_total",
		Help: "Number of drought readings recorded.",
	})

	alertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soilhub_drought_alerts_total",
		Help: "Number of drought alerts raised, by level.",
	}, []string{"level"})
)
