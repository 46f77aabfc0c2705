package resumen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/notaria-api/internal/application/apptest"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dia(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func kardex(s *apptest.Store, id, tipo string, ingreso time.Time, importe, moneda string) *entity.Kardex {
	k := &entity.Kardex{
		ID: id, TipoKardex: tipo, FechaIngreso: ingreso, Importe: decimal.RequireFromString(importe),
		Moneda: moneda, Estado: entity.KardexEnProceso, SISGENEstado: entity.SISGENNoEnviado,
	}
	s.Kardex[id] = k
	return k
}

func nuevo(s *apptest.Store) *UseCase {
	uc := NewUseCase(apptest.ResumenRepo{S: s})
	uc.now = func() time.Time { return time.Date(2026, 10, 19, 11, 30, 0, 0, time.Local) }
	return uc
}

func TestResumen_MesEnCurso(t *testing.T) {
	s := apptest.NewStore()
	kardex(s, "k1", "K", dia(2026, 10, 19), "1000.50", "PEN")
	kardex(s, "k2", "K", dia(2026, 10, 2), "200", "USD")
	kardex(s, "k3", "V", dia(2026, 10, 19), "15000", "PEN")
	kardex(s, "k4", "K", dia(2026, 9, 30), "999", "PEN")
	anulado := kardex(s, "k5", "K", dia(2026, 10, 3), "50", "PEN")
	anulado.Estado = entity.KardexAnulado

	firmado := kardex(s, "k6", "N", dia(2026, 8, 1), "0", "PEN")
	firmado.NumeroEscritura = "120"
	f := dia(2026, 8, 2)
	firmado.FechaEscritura = &f
	observado := kardex(s, "k7", "K", dia(2026, 8, 1), "0", "PEN")
	observado.NumeroEscritura = "121"
	observado.FechaEscritura = &f
	observado.SISGENEstado = entity.SISGENObservado

	s.Permisos["p1"] = &entity.PermisoViaje{ID: "p1", FechaIngreso: dia(2026, 10, 5)}
	s.Poderes["d1"] = &entity.Poder{ID: "d1", FechaIngreso: dia(2026, 9, 5)}
	s.Cartas["c1"] = &entity.Carta{ID: "c1", FechaIngreso: dia(2026, 10, 31)}
	s.Libros["l1"] = &entity.Libro{ID: "l1", FechaIngreso: dia(2026, 10, 1)}

	got, err := nuevo(s).Get(context.Background(), dto.ResumenRequest{})
	require.NoError(t, err)

	assert.Equal(t, "OCTUBRE 2026", got.Periodo)
	assert.Equal(t, "2026-10-01", got.Desde)
	assert.Equal(t, "2026-10-31", got.Hasta)
	assert.Equal(t, 2, got.KardexHoy)
	assert.Equal(t, 3, got.KardexTotal)
	require.Len(t, got.Kardex, 2)
	assert.Equal(t, "K", got.Kardex[0].TipoKardex)
	assert.Equal(t, 2, got.Kardex[0].Cantidad)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(got.Kardex[0].CuantiaPEN))
	assert.True(t, decimal.NewFromInt(200).Equal(got.Kardex[0].CuantiaUSD))
	assert.Equal(t, "V", got.Kardex[1].TipoKardex)

	assert.Equal(t, 1, got.PermisosViaje)
	assert.Equal(t, 0, got.Poderes)
	assert.Equal(t, 1, got.Cartas)
	assert.Equal(t, 1, got.Libros)

	assert.Equal(t, 1, got.SISGENPendientes)
	assert.Equal(t, 1, got.SISGENObservados)
	assert.Equal(t, 0, got.SISGENConError)
}

func TestResumen_MesPedido(t *testing.T) {
	s := apptest.NewStore()
	kardex(s, "k1", "K", dia(2026, 2, 28), "10", "PEN")

	got, err := nuevo(s).Get(context.Background(), dto.ResumenRequest{Anio: 2026, Mes: 2})
	require.NoError(t, err)
	assert.Equal(t, "FEBRERO 2026", got.Periodo)
	assert.Equal(t, "2026-02-28", got.Hasta)
	assert.Equal(t, 1, got.KardexTotal)
	assert.Zero(t, got.KardexHoy)
}

type repoFalla struct {
	apptest.ResumenRepo
}

func (repoFalla) EstadoSISGEN(context.Context) (repository.ConteoSISGEN, error) {
	return repository.ConteoSISGEN{}, errors.New("conexión cerrada")
}

func TestResumen_PropagaError(t *testing.T) {
	uc := NewUseCase(repoFalla{apptest.ResumenRepo{S: apptest.NewStore()}})
	_, err := uc.Get(context.Background(), dto.ResumenRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estado SISGEN")
}
