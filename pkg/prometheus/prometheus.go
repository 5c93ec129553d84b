package prometheus

import (
	"net/http"
	"sync"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registryOnce sync.Once
	registry     *prometheus.Registry
)

// Registry holds the runtime collectors and every quest board metric. The
// metric vectors are package globals, so they are registered only once.
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		for _, c := range common.PromGauges {
			registry.MustRegister(c)
		}
		for _, c := range common.PromCounters {
			registry.MustRegister(c)
		}
		for _, c := range common.PromHistograms {
			registry.MustRegister(c)
		}
	})

	return registry
}

func NewHandler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{Registry: Registry()})
}
