// Package metrics expone los contadores Prometheus de la API en un registro propio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	DocumentosGenerados *prometheus.CounterVec
	RenderDuration      *prometheus.HistogramVec
	EnviosSISGEN        *prometheus.CounterVec
	Correlativos        *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
}

// New crea y registra los colectores. Cada llamada usa un registro nuevo (tests independientes).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		DocumentosGenerados: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notaria_documentos_generados_total",
			Help: "Documentos .docx generados por tipo",
		}, []string{"tipo"}),
		RenderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notaria_documento_render_duration_seconds",
			Help:    "Duración del render de plantillas por tipo",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"tipo"}),
		EnviosSISGEN: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notaria_sisgen_envios_total",
			Help: "Envíos a SISGEN por resultado",
		}, []string{"estado"}),
		Correlativos: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notaria_correlativos_asignados_total",
			Help: "Correlativos asignados por serie",
		}, []string{"serie"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "notaria_http_requests_total",
			Help: "Requests HTTP por método y status",
		}, []string{"method", "status"}),
	}
}

// Handler handler HTTP de /metrics sobre el registro propio.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro (tests y colectores externos).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveDocumento registra un documento generado. Usar con time.Now() tomado al inicio del render.
func (m *Metrics) ObserveDocumento(tipo string, start time.Time) {
	if m == nil {
		return
	}
	m.DocumentosGenerados.WithLabelValues(tipo).Inc()
	m.RenderDuration.WithLabelValues(tipo).Observe(time.Since(start).Seconds())
}

// IncEnvioSISGEN cuenta un envío según su estado final.
func (m *Metrics) IncEnvioSISGEN(estado string) {
	if m == nil {
		return
	}
	m.EnviosSISGEN.WithLabelValues(estado).Inc()
}

// IncCorrelativo cuenta un correlativo asignado.
func (m *Metrics) IncCorrelativo(serie string) {
	if m == nil {
		return
	}
	m.Correlativos.WithLabelValues(serie).Inc()
}

// IncHTTP cuenta un request atendido.
func (m *Metrics) IncHTTP(method, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, status).Inc()
}
