package sisgen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/notaria-api/internal/application/apptest"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	infrasisgen "github.com/jhoicas/notaria-api/internal/infrastructure/sisgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitterFake responde siempre lo mismo y cuenta las llamadas.
type submitterFake struct {
	mu       sync.Mutex
	llamadas int
	res      *infrasisgen.SubmitResult
	err      error
}

func (s *submitterFake) Submit(_ context.Context, doc []byte) (*infrasisgen.SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.llamadas++
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.res
	return &cp, nil
}

type contador struct {
	mu sync.Mutex
	m  map[string]int
}

func (c *contador) IncEnvioSISGEN(estado string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[estado]++
}

func fecha(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func nuevoStore() *apptest.Store {
	s := apptest.NewStore()
	s.Notaria = &entity.Notaria{ID: "n1", Nombre: "Notaría Pérez", Notario: "Juan Pérez Soto", CodigoSISGEN: "N0150"}
	s.AddCliente(entity.Cliente{
		ID: "c-juan", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "12345678",
		Nombres: "Juan", ApellidoPaterno: "Quispe", Sexo: entity.SexoMasculino,
	})
	s.AddCliente(entity.Cliente{
		ID: "c-maria", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "87654321",
		Nombres: "María", ApellidoPaterno: "Flores", Sexo: entity.SexoFemenino,
	})
	return s
}

// escritura kardex K completo para exportar.
func escritura(s *apptest.Store, id, numero string) *entity.Kardex {
	k := &entity.Kardex{
		ID: id, Numero: numero, Serie: "K", Anio: 2026, TipoKardex: entity.KardexEscrituras, ActoCodigo: "CV",
		FechaIngreso: *fecha(2026, 10, 1), NumeroEscritura: "1520", FechaEscritura: fecha(2026, 10, 5),
		FolioInicial: 100, FolioFinal: 104, Estado: entity.KardexFirmado, SISGENEstado: entity.SISGENNoEnviado,
	}
	s.Kardex[id] = k
	s.Contratantes = append(s.Contratantes,
		&entity.Contratante{ID: id + "-1", KardexID: id, ClienteID: "c-juan", CondicionCodigo: "VENDEDOR", Intervencion: entity.IntervencionPropio},
		&entity.Contratante{ID: id + "-2", KardexID: id, ClienteID: "c-maria", CondicionCodigo: "COMPRADOR", Intervencion: entity.IntervencionPropio},
	)
	return k
}

func nuevoOrchestrator(s *apptest.Store, env string, sub infrasisgen.Submitter) (*Orchestrator, *contador) {
	m := &contador{m: map[string]int{}}
	o := NewOrchestrator(
		apptest.KardexRepo{S: s},
		apptest.CatalogoRepo{S: s},
		apptest.NotariaRepo{S: s},
		apptest.EnvioRepo{S: s},
		infrasisgen.NewXMLBuilderService(),
		sub,
		Config{Env: env, Concurrency: 4},
		nil,
	).WithMetrics(m)
	return o, m
}

func exportar(ids ...string) dto.SISGENExportRequest {
	return dto.SISGENExportRequest{KardexIDs: ids}
}

// ── búsqueda ─────────────────────────────────────────────

func TestSearch_Observaciones(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	s.Kardex["k2"] = &entity.Kardex{
		ID: "k2", Numero: "N000001-2026", TipoKardex: entity.KardexNoContencioso, ActoCodigo: "RP",
		NumeroEscritura: "1521", FechaEscritura: fecha(2026, 10, 6), Estado: entity.KardexFirmado,
	}
	s.Kardex["k3"] = &entity.Kardex{
		ID: "k3", Numero: "K000009-2026", TipoKardex: entity.KardexEscrituras, ActoCodigo: "CV",
		NumeroEscritura: "1600", FechaEscritura: fecha(2026, 12, 1),
	}
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)

	res, err := o.Search(context.Background(), dto.SISGENBusquedaRequest{Desde: "2026-10-01", Hasta: "2026-10-31"})
	require.NoError(t, err)
	require.Len(t, res, 2)

	assert.Equal(t, "K000001-2026", res[0].Numero)
	assert.True(t, res[0].Exportable)
	assert.Empty(t, res[0].Observaciones)
	assert.Equal(t, "2026-10-05", res[0].FechaEscritura)

	assert.Equal(t, "N000001-2026", res[1].Numero)
	assert.False(t, res[1].Exportable)
	obs := strings.Join(res[1].Observaciones, "|")
	assert.Contains(t, obs, "no tiene código SISGEN")
	assert.Contains(t, obs, "no tiene contratantes")
	assert.Contains(t, obs, "folios")
}

func TestSearch_FechasInvalidas(t *testing.T) {
	o, _ := nuevoOrchestrator(nuevoStore(), infrasisgen.EnvDev, nil)

	_, err := o.Search(context.Background(), dto.SISGENBusquedaRequest{Desde: "2026-10-31", Hasta: "2026-10-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = o.Search(context.Background(), dto.SISGENBusquedaRequest{Desde: "31/10/2026", Hasta: "2026-11-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestObservaciones_ContratanteIncompleto(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	s.Clientes["c-maria"].Sexo = ""
	s.Clientes["c-juan"].NumeroDocumento = ""
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)

	p, err := o.preparar(context.Background(), s.Kardex["k1"])
	require.NoError(t, err)
	obs := p.observaciones()
	assert.Contains(t, obs, "Juan Quispe no tiene documento de identidad")
	assert.Contains(t, obs, "María Flores no tiene sexo registrado")
}

func TestObservaciones_VehicularSinVehiculo(t *testing.T) {
	s := nuevoStore()
	k := escritura(s, "k1", "V000001-2026")
	k.TipoKardex = entity.KardexVehicular
	k.ActoCodigo = "TV"
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)

	p, err := o.preparar(context.Background(), k)
	require.NoError(t, err)
	assert.Equal(t, []string{"el kardex vehicular no tiene vehículo registrado"}, p.observaciones())
}

// ── exportación ──────────────────────────────────────────

func TestExport_DevSimulado(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	o, m := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)

	resp, err := o.Export(context.Background(), "u1", exportar("k1"))
	require.NoError(t, err)
	require.Len(t, resp.Resultados, 1)

	r := resp.Resultados[0]
	assert.Equal(t, entity.EnvioSimulado, r.Estado)
	assert.Len(t, r.Digest, 64)
	assert.NotEmpty(t, r.EnvioID)
	assert.Equal(t, 1, resp.Enviados)
	assert.Equal(t, entity.SISGENEnviado, s.Kardex["k1"].SISGENEstado)
	require.Len(t, s.Envios, 1)
	assert.Equal(t, "u1", s.Envios[0].UsuarioID)
	assert.Contains(t, s.Envios[0].XML, "<documentoNotarial")
	assert.Equal(t, 1, m.m[entity.EnvioSimulado])
}

func TestExport_AceptadoYLuegoSinCambios(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	sub := &submitterFake{res: &infrasisgen.SubmitResult{Aceptado: true, Codigo: "0", Mensaje: "OK", NumeroRegistro: "R-99"}}
	o, m := nuevoOrchestrator(s, infrasisgen.EnvTest, sub)
	ctx := context.Background()

	resp, err := o.Export(ctx, "u1", exportar("k1"))
	require.NoError(t, err)
	assert.Equal(t, entity.EnvioAceptado, resp.Resultados[0].Estado)
	assert.Equal(t, "R-99", resp.Resultados[0].NumeroRegistro)

	resp, err = o.Export(ctx, "u1", exportar("k1"))
	require.NoError(t, err)
	assert.Equal(t, entity.EnvioSinCambios, resp.Resultados[0].Estado)
	assert.Equal(t, "R-99", resp.Resultados[0].NumeroRegistro)
	assert.Equal(t, 1, sub.llamadas, "no debe reenviar un XML idéntico")
	assert.Len(t, s.Envios, 1)
	assert.Equal(t, 1, m.m[entity.EnvioSinCambios])

	// un cambio en el kardex vuelve a enviar
	s.Kardex["k1"].FolioFinal = 105
	resp, err = o.Export(ctx, "u1", exportar("k1"))
	require.NoError(t, err)
	assert.Equal(t, entity.EnvioAceptado, resp.Resultados[0].Estado)
	assert.Equal(t, 2, sub.llamadas)
}

func TestExport_ObservadoYFault(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	sub := &submitterFake{res: &infrasisgen.SubmitResult{Codigo: "12", Mensaje: "acto no corresponde", Observaciones: []string{"revisar acto"}}}
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvProd, sub)

	resp, err := o.Export(context.Background(), "u1", exportar("k1"))
	require.NoError(t, err)
	r := resp.Resultados[0]
	assert.Equal(t, entity.EnvioObservado, r.Estado)
	assert.Equal(t, "12", r.Codigo)
	assert.Equal(t, []string{"revisar acto"}, r.Observaciones)
	assert.Equal(t, 1, resp.Fallidos)
	assert.Equal(t, entity.SISGENObservado, s.Kardex["k1"].SISGENEstado)

	sub.res = &infrasisgen.SubmitResult{Fault: true, Codigo: "soap:Server", Mensaje: "credenciales inválidas"}
	resp, err = o.Export(context.Background(), "u1", exportar("k1"))
	require.NoError(t, err)
	assert.Equal(t, entity.EnvioObservado, resp.Resultados[0].Estado)
	assert.Equal(t, "credenciales inválidas", resp.Resultados[0].Mensaje)
}

func TestExport_TransporteCaido(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	escritura(s, "k2", "K000002-2026")
	sub := &submitterFake{err: errors.New("soap: llamada HTTP fallida: connection refused")}
	o, m := nuevoOrchestrator(s, infrasisgen.EnvTest, sub)

	resp, err := o.Export(context.Background(), "u1", exportar("k1", "k2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSISGENUnavailable))
	require.NotNil(t, resp)
	assert.Equal(t, 2, resp.Fallidos)
	for _, r := range resp.Resultados {
		assert.Equal(t, entity.EnvioError, r.Estado)
		assert.Contains(t, r.Mensaje, "connection refused")
	}
	assert.Equal(t, entity.SISGENError, s.Kardex["k1"].SISGENEstado)
	assert.Len(t, s.Envios, 2)
	assert.Equal(t, 2, m.m[entity.EnvioError])
}

func TestExport_OrdenYFallasIndependientes(t *testing.T) {
	s := nuevoStore()
	ids := []string{}
	for _, n := range []string{"1", "2", "3", "4", "5", "6"} {
		escritura(s, "k"+n, "K00000"+n+"-2026")
		ids = append(ids, "k"+n)
	}
	s.Kardex["k3"].Estado = entity.KardexAnulado
	s.Kardex["k5"].FolioInicial = 0
	ids = append([]string{"no-existe"}, ids...)
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)

	resp, err := o.Export(context.Background(), "u1", exportar(ids...))
	require.NoError(t, err)
	require.Len(t, resp.Resultados, len(ids))
	for i, r := range resp.Resultados {
		assert.Equal(t, ids[i], r.KardexID)
	}
	assert.Equal(t, "kardex no encontrado", resp.Resultados[0].Mensaje)
	assert.Equal(t, entity.EnvioError, resp.Resultados[3].Estado)
	assert.Equal(t, "el kardex está anulado", resp.Resultados[3].Mensaje)
	assert.Equal(t, "datos incompletos para SISGEN", resp.Resultados[5].Mensaje)
	assert.Equal(t, 4, resp.Enviados)
	assert.Equal(t, 3, resp.Fallidos)
	assert.Equal(t, entity.SISGENNoEnviado, s.Kardex["k5"].SISGENEstado)
}

func TestExport_SinNotariaOSinCliente(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	s.Notaria.CodigoSISGEN = ""
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)
	_, err := o.Export(context.Background(), "u1", exportar("k1"))
	assert.True(t, errors.Is(err, domain.ErrMissingData))

	o, _ = nuevoOrchestrator(nuevoStore(), infrasisgen.EnvProd, nil)
	_, err = o.Export(context.Background(), "u1", exportar("k1"))
	assert.True(t, errors.Is(err, domain.ErrSISGENUnavailable))
}

// ── consulta ─────────────────────────────────────────────

func TestPreviewXMLYHistorial(t *testing.T) {
	s := nuevoStore()
	escritura(s, "k1", "K000001-2026")
	o, _ := nuevoOrchestrator(s, infrasisgen.EnvDev, nil)
	ctx := context.Background()

	xml, err := o.PreviewXML(ctx, "k1")
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<kardex>K000001-2026</kardex>")
	assert.Contains(t, string(xml), "<codigo>N0150</codigo>")

	_, err = o.PreviewXML(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = o.Export(ctx, "u1", exportar("k1"))
	require.NoError(t, err)
	hist, err := o.History(ctx, "k1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.EnvioSimulado, hist[0].Estado)

	hist, err = o.History(ctx, "otro", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, hist)
}
