package apptest

import (
	"context"
	"sort"

	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

func (s *Store) conClientes(ps []entity.Participante) []entity.Participante {
	out := make([]entity.Participante, 0, len(ps))
	for _, p := range ps {
		x := entity.Participante{ClienteID: p.ClienteID, Rol: p.Rol}
		if c, ok := s.Clientes[p.ClienteID]; ok {
			cp := *c
			x.Cliente = &cp
		}
		out = append(out, x)
	}
	return out
}

// ── permisos de viaje ────────────────────────────────────

// PermisoRepo repositorio en memoria de permisos de viaje.
type PermisoRepo struct{ S *Store }

func (r PermisoRepo) Create(_ context.Context, p *entity.PermisoViaje) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *p
	r.S.Permisos[p.ID] = &cp
	return nil
}

func (r PermisoRepo) GetByID(_ context.Context, id string) (*entity.PermisoViaje, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	p, ok := r.S.Permisos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Participantes = r.S.conClientes(p.Participantes)
	return &cp, nil
}

func (r PermisoRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.PermisoViaje, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var all []*entity.PermisoViaje
	for _, p := range r.S.Permisos {
		if contiene(f.Q, p.Numero, p.Destino) {
			cp := *p
			cp.Participantes = nil
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Numero > all[j].Numero })
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

func (r PermisoRepo) Update(_ context.Context, p *entity.PermisoViaje) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Permisos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.S.Permisos[p.ID] = &cp
	return nil
}

func (r PermisoRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Permisos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Permisos, id)
	return nil
}

// ── poderes ──────────────────────────────────────────────

// PoderRepo repositorio en memoria de poderes.
type PoderRepo struct{ S *Store }

func (r PoderRepo) Create(_ context.Context, p *entity.Poder) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *p
	r.S.Poderes[p.ID] = &cp
	return nil
}

func (r PoderRepo) GetByID(_ context.Context, id string) (*entity.Poder, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	p, ok := r.S.Poderes[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Participantes = r.S.conClientes(p.Participantes)
	return &cp, nil
}

func (r PoderRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Poder, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var all []*entity.Poder
	for _, p := range r.S.Poderes {
		if contiene(f.Q, p.Numero, p.Tipo) {
			cp := *p
			cp.Participantes = nil
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Numero > all[j].Numero })
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

func (r PoderRepo) Update(_ context.Context, p *entity.Poder) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Poderes[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.S.Poderes[p.ID] = &cp
	return nil
}

func (r PoderRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Poderes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Poderes, id)
	return nil
}

// ── cartas ───────────────────────────────────────────────

// CartaRepo repositorio en memoria de cartas notariales.
type CartaRepo struct{ S *Store }

func (r CartaRepo) Create(_ context.Context, c *entity.Carta) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *c
	r.S.Cartas[c.ID] = &cp
	return nil
}

func (r CartaRepo) GetByID(_ context.Context, id string) (*entity.Carta, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if c, ok := r.S.Cartas[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r CartaRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Carta, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var all []*entity.Carta
	for _, c := range r.S.Cartas {
		if contiene(f.Q, c.Numero, c.RemitenteNombre, c.DestinatarioNombre) {
			cp := *c
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Numero > all[j].Numero })
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

func (r CartaRepo) Update(_ context.Context, c *entity.Carta) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Cartas[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.S.Cartas[c.ID] = &cp
	return nil
}

func (r CartaRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Cartas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Cartas, id)
	return nil
}

// ── libros ───────────────────────────────────────────────

// LibroRepo repositorio en memoria de legalizaciones de libros.
type LibroRepo struct{ S *Store }

func (r LibroRepo) Create(_ context.Context, l *entity.Libro) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *l
	r.S.Libros[l.ID] = &cp
	return nil
}

func (r LibroRepo) GetByID(_ context.Context, id string) (*entity.Libro, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if l, ok := r.S.Libros[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r LibroRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Libro, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var all []*entity.Libro
	for _, l := range r.S.Libros {
		if contiene(f.Q, l.Numero, l.TipoLibro) {
			cp := *l
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Numero > all[j].Numero })
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

func (r LibroRepo) Update(_ context.Context, l *entity.Libro) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Libros[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.S.Libros[l.ID] = &cp
	return nil
}

func (r LibroRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Libros[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Libros, id)
	return nil
}

// ── documentos y envíos ──────────────────────────────────

// DocumentoRepo repositorio en memoria de documentos generados.
type DocumentoRepo struct{ S *Store }

func (r DocumentoRepo) Create(_ context.Context, d *entity.DocumentoGenerado) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *d
	r.S.Documentos = append(r.S.Documentos, &cp)
	return nil
}

func (r DocumentoRepo) GetByID(_ context.Context, id string) (*entity.DocumentoGenerado, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, d := range r.S.Documentos {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r DocumentoRepo) List(_ context.Context, f repository.DocumentoFilter) ([]*entity.DocumentoGenerado, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var all []*entity.DocumentoGenerado
	for i := len(r.S.Documentos) - 1; i >= 0; i-- {
		d := r.S.Documentos[i]
		if (f.Tipo == "" || d.Tipo == f.Tipo) && (f.ReferenciaID == "" || d.ReferenciaID == f.ReferenciaID) {
			cp := *d
			all = append(all, &cp)
		}
	}
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

// EnvioRepo repositorio en memoria del historial SISGEN.
type EnvioRepo struct{ S *Store }

func (r EnvioRepo) Create(_ context.Context, e *entity.EnvioSISGEN) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *e
	r.S.Envios = append(r.S.Envios, &cp)
	return nil
}

func (r EnvioRepo) ListByKardex(_ context.Context, kardexID string, limit, offset int) ([]*entity.EnvioSISGEN, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	var all []*entity.EnvioSISGEN
	for i := len(r.S.Envios) - 1; i >= 0; i-- {
		e := r.S.Envios[i]
		if kardexID == "" || e.KardexID == kardexID {
			cp := *e
			all = append(all, &cp)
		}
	}
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r EnvioRepo) LastAceptado(_ context.Context, kardexID string) (*entity.EnvioSISGEN, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for i := len(r.S.Envios) - 1; i >= 0; i-- {
		e := r.S.Envios[i]
		if e.KardexID == kardexID && e.Estado == entity.EnvioAceptado {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}
