// Package resumen arma el resumen de actividad mensual de la notaría
// (kardex por tipo, extraprotocolares y pendientes SISGEN).
package resumen

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// UseCase resumen de actividad.
//
// Fuente de datos: ResumenRepository (consultas read-only).
type UseCase struct {
	repo repository.ResumenRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ResumenRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Get construye el resumen del mes pedido (por defecto el mes en curso).
//
// Cuatro consultas en paralelo:
//  1. KardexPorTipo(hoy)  → KardexHoy
//  2. KardexPorTipo(mes)  → Kardex, KardexTotal
//  3. Extraprotocolares(mes)
//  4. EstadoSISGEN()      → pendientes, observados y con error (sin rango)
func (uc *UseCase) Get(ctx context.Context, in dto.ResumenRequest) (*dto.ResumenResponse, error) {
	now := uc.now()
	anio, mes := now.Year(), now.Month()
	if in.Anio > 0 {
		anio = in.Anio
	}
	if in.Mes > 0 {
		mes = time.Month(in.Mes)
	}

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	hoyInicio := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hoyFin := hoyInicio.Add(24*time.Hour - time.Nanosecond)
	mesInicio := time.Date(anio, mes, 1, 0, 0, 0, 0, now.Location())
	mesFin := mesInicio.AddDate(0, 1, 0).Add(-time.Nanosecond)

	type kardexResult struct {
		rows []repository.KardexPorTipo
		err  error
	}
	type extraResult struct {
		c   repository.ConteoExtraprotocolar
		err error
	}
	type sisgenResult struct {
		c   repository.ConteoSISGEN
		err error
	}

	hoyCh := make(chan kardexResult, 1)
	mesCh := make(chan kardexResult, 1)
	extraCh := make(chan extraResult, 1)
	sisgenCh := make(chan sisgenResult, 1)

	go func() {
		rows, err := uc.repo.KardexPorTipo(ctx, hoyInicio, hoyFin)
		hoyCh <- kardexResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.KardexPorTipo(ctx, mesInicio, mesFin)
		mesCh <- kardexResult{rows, err}
	}()
	go func() {
		c, err := uc.repo.Extraprotocolares(ctx, mesInicio, mesFin)
		extraCh <- extraResult{c, err}
	}()
	go func() {
		c, err := uc.repo.EstadoSISGEN(ctx)
		sisgenCh <- sisgenResult{c, err}
	}()

	hoy := <-hoyCh
	delMes := <-mesCh
	extra := <-extraCh
	sis := <-sisgenCh

	if hoy.err != nil {
		return nil, fmt.Errorf("resumen: kardex de hoy: %w", hoy.err)
	}
	if delMes.err != nil {
		return nil, fmt.Errorf("resumen: kardex del mes: %w", delMes.err)
	}
	if extra.err != nil {
		return nil, fmt.Errorf("resumen: extraprotocolares: %w", extra.err)
	}
	if sis.err != nil {
		return nil, fmt.Errorf("resumen: estado SISGEN: %w", sis.err)
	}

	out := &dto.ResumenResponse{
		Periodo:          fmt.Sprintf("%s %d", gramatica.Mes(mes), anio),
		Desde:            mesInicio.Format(dto.LayoutFecha),
		Hasta:            mesFin.Format(dto.LayoutFecha),
		Kardex:           make([]dto.KardexPorTipoResponse, 0, len(delMes.rows)),
		PermisosViaje:    extra.c.PermisosViaje,
		Poderes:          extra.c.Poderes,
		Cartas:           extra.c.Cartas,
		Libros:           extra.c.Libros,
		SISGENPendientes: sis.c.Pendientes,
		SISGENObservados: sis.c.Observados,
		SISGENConError:   sis.c.ConError,
	}
	for _, r := range hoy.rows {
		out.KardexHoy += r.Cantidad
	}
	for _, r := range delMes.rows {
		out.KardexTotal += r.Cantidad
		out.Kardex = append(out.Kardex, dto.KardexPorTipoResponse{
			TipoKardex: r.TipoKardex,
			Cantidad:   r.Cantidad,
			CuantiaPEN: r.CuantiaPEN.Round(2),
			CuantiaUSD: r.CuantiaUSD.Round(2),
		})
	}
	return out, nil
}
