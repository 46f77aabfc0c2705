package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// ResumenRepo resumen de actividad calculado sobre el store.
type ResumenRepo struct{ S *Store }

func enRango(t, desde, hasta time.Time) bool {
	return !t.Before(desde) && !t.After(hasta)
}

func (r ResumenRepo) KardexPorTipo(_ context.Context, desde, hasta time.Time) ([]repository.KardexPorTipo, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	por := map[string]*repository.KardexPorTipo{}
	for _, k := range r.S.Kardex {
		if k.Estado == entity.KardexAnulado || !enRango(k.FechaIngreso, desde, hasta) {
			continue
		}
		row, ok := por[k.TipoKardex]
		if !ok {
			row = &repository.KardexPorTipo{TipoKardex: k.TipoKardex}
			por[k.TipoKardex] = row
		}
		row.Cantidad++
		switch k.Moneda {
		case gramatica.MonedaSoles:
			row.CuantiaPEN = row.CuantiaPEN.Add(k.Importe)
		case gramatica.MonedaDolares:
			row.CuantiaUSD = row.CuantiaUSD.Add(k.Importe)
		}
	}
	out := make([]repository.KardexPorTipo, 0, len(por))
	for _, row := range por {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TipoKardex < out[j].TipoKardex })
	return out, nil
}

func (r ResumenRepo) Extraprotocolares(_ context.Context, desde, hasta time.Time) (repository.ConteoExtraprotocolar, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var c repository.ConteoExtraprotocolar
	for _, p := range r.S.Permisos {
		if enRango(p.FechaIngreso, desde, hasta) {
			c.PermisosViaje++
		}
	}
	for _, p := range r.S.Poderes {
		if enRango(p.FechaIngreso, desde, hasta) {
			c.Poderes++
		}
	}
	for _, x := range r.S.Cartas {
		if enRango(x.FechaIngreso, desde, hasta) {
			c.Cartas++
		}
	}
	for _, l := range r.S.Libros {
		if enRango(l.FechaIngreso, desde, hasta) {
			c.Libros++
		}
	}
	return c, nil
}

func (r ResumenRepo) EstadoSISGEN(_ context.Context) (repository.ConteoSISGEN, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var c repository.ConteoSISGEN
	for _, k := range r.S.Kardex {
		if k.Estado == entity.KardexAnulado || k.NumeroEscritura == "" || k.FechaEscritura == nil {
			continue
		}
		switch k.SISGENEstado {
		case entity.SISGENNoEnviado, "":
			c.Pendientes++
		case entity.SISGENObservado:
			c.Observados++
		case entity.SISGENError:
			c.ConError++
		}
	}
	return c, nil
}
