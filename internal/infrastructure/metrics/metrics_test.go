package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDocumento(t *testing.T) {
	m := New()
	m.ObserveDocumento("poder", time.Now())
	m.ObserveDocumento("poder", time.Now())
	m.ObserveDocumento("carta", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocumentosGenerados.WithLabelValues("poder")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentosGenerados.WithLabelValues("carta")))
}

func TestMetricsNil_NoPanic(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDocumento("poder", time.Now())
		m.IncEnvioSISGEN("ACEPTADO")
		m.IncCorrelativo("K")
		m.IncHTTP("GET", "200")
	})
}

func TestHandler_ExponeContadores(t *testing.T) {
	m := New()
	m.IncCorrelativo("PV")
	m.IncEnvioSISGEN("SIMULADO")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `notaria_correlativos_asignados_total{serie="PV"} 1`)
	assert.Contains(t, string(body), `notaria_sisgen_envios_total{estado="SIMULADO"} 1`)
}

func TestNew_RegistrosIndependientes(t *testing.T) {
	a, b := New(), New()
	a.IncCorrelativo("K")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Correlativos.WithLabelValues("K")))
}
