package apptest

import (
	"context"
	"sort"

	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// KardexRepo repositorio en memoria de kardex, contratantes y vehículos.
type KardexRepo struct{ S *Store }

func (r KardexRepo) Create(_ context.Context, k *entity.Kardex) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, x := range r.S.Kardex {
		if x.Numero == k.Numero {
			return domain.ErrDuplicate
		}
	}
	cp := *k
	r.S.Kardex[k.ID] = &cp
	return nil
}

func (r KardexRepo) GetByID(_ context.Context, id string) (*entity.Kardex, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if k, ok := r.S.Kardex[id]; ok {
		cp := *k
		return &cp, nil
	}
	return nil, nil
}

func (r KardexRepo) List(_ context.Context, f repository.KardexFilter) ([]*entity.Kardex, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	all := make([]*entity.Kardex, 0, len(r.S.Kardex))
	for _, k := range r.S.Kardex {
		if f.TipoKardex != "" && k.TipoKardex != f.TipoKardex {
			continue
		}
		if f.Anio != 0 && k.Anio != f.Anio {
			continue
		}
		if f.Estado != "" && k.Estado != f.Estado {
			continue
		}
		if !contiene(f.Q, k.Numero, k.NumeroEscritura, k.Contrato) {
			continue
		}
		cp := *k
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Numero > all[j].Numero })
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

func (r KardexRepo) Update(_ context.Context, k *entity.Kardex) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Kardex[k.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *k
	r.S.Kardex[k.ID] = &cp
	return nil
}

func (r KardexRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Kardex[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Kardex, id)
	delete(r.S.Vehiculos, id)
	kept := r.S.Contratantes[:0]
	for _, c := range r.S.Contratantes {
		if c.KardexID != id {
			kept = append(kept, c)
		}
	}
	r.S.Contratantes = kept
	return nil
}

func (r KardexRepo) UpdateSISGENEstado(_ context.Context, id, estado string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	k, ok := r.S.Kardex[id]
	if !ok {
		return domain.ErrNotFound
	}
	k.SISGENEstado = estado
	return nil
}

func (r KardexRepo) SearchSISGEN(_ context.Context, s repository.SISGENSearch) ([]*entity.Kardex, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.Kardex
	for _, k := range r.S.Kardex {
		if k.FechaEscritura == nil || k.NumeroEscritura == "" || k.EsAnulado() {
			continue
		}
		if k.FechaEscritura.Before(s.Desde) || k.FechaEscritura.After(s.Hasta) {
			continue
		}
		if s.TipoKardex != "" && k.TipoKardex != s.TipoKardex {
			continue
		}
		if s.EstadoSISGEN != "" && k.SISGENEstado != s.EstadoSISGEN {
			continue
		}
		cp := *k
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

// AddContratante respeta la unicidad (kardex, cliente, condición).
func (r KardexRepo) AddContratante(_ context.Context, c *entity.Contratante) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, x := range r.S.Contratantes {
		if x.KardexID == c.KardexID && x.ClienteID == c.ClienteID && x.CondicionCodigo == c.CondicionCodigo {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.S.Contratantes = append(r.S.Contratantes, &cp)
	return nil
}

func (r KardexRepo) DeleteContratante(_ context.Context, kardexID, contratanteID string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for i, c := range r.S.Contratantes {
		if c.KardexID == kardexID && c.ID == contratanteID {
			r.S.Contratantes = append(r.S.Contratantes[:i], r.S.Contratantes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r KardexRepo) ListContratantes(_ context.Context, kardexID string) ([]*entity.ContratanteDetalle, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var out []*entity.ContratanteDetalle
	for _, c := range r.S.Contratantes {
		if c.KardexID != kardexID {
			continue
		}
		d := &entity.ContratanteDetalle{Contratante: *c}
		if cl, ok := r.S.Clientes[c.ClienteID]; ok {
			d.Cliente = *cl
		}
		if co, ok := r.S.Condiciones[c.CondicionCodigo]; ok {
			d.Condicion = *co
		}
		if c.RepresentaA != "" {
			if rep, ok := r.S.Clientes[c.RepresentaA]; ok {
				cp := *rep
				d.Representado = &cp
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (r KardexRepo) GetVehiculo(_ context.Context, kardexID string) (*entity.Vehiculo, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if v, ok := r.S.Vehiculos[kardexID]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r KardexRepo) SaveVehiculo(_ context.Context, v *entity.Vehiculo) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *v
	r.S.Vehiculos[v.KardexID] = &cp
	return nil
}
