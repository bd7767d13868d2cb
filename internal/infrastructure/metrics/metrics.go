// Package metrics expone métricas Prometheus del almacén, el sondeo de notificaciones y las APIs de Google.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "allinstock"

// Metrics agrupa los collectors en un registro propio (no el global).
type Metrics struct {
	registry *prometheus.Registry

	storeOps      *prometheus.CounterVec
	storeDuration *prometheus.HistogramVec
	pollerTicks   *prometheus.CounterVec
	googleCalls   *prometheus.CounterVec
}

// New registra los collectors de la aplicación más los de runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Operaciones sobre el almacén documental por colección, operación y resultado.",
		}, []string{"collection", "op", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duración de las operaciones sobre el almacén documental.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		pollerTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "poll_ticks_total",
			Help:      "Recálculos del sondeo de notificaciones por resultado.",
		}, []string{"result"}),
		googleCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "google",
			Name:      "calls_total",
			Help:      "Llamadas a Gmail/Calendar por API y resultado.",
		}, []string{"api", "result"}),
	}
	m.registry.MustRegister(
		m.storeOps, m.storeDuration, m.pollerTicks, m.googleCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler sirve el registro en formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// PollTick cuenta un recálculo del sondeo de notificaciones.
func (m *Metrics) PollTick(err error) {
	if m == nil {
		return
	}
	m.pollerTicks.WithLabelValues(result(err)).Inc()
}

// GoogleCall cuenta una llamada a la API api ("gmail" | "calendar").
func (m *Metrics) GoogleCall(api string, err error) {
	if m == nil {
		return
	}
	m.googleCalls.WithLabelValues(api, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
