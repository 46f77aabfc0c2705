package apptest

import (
	"context"
	"sort"

	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// ClienteRepo repositorio en memoria de clientes.
type ClienteRepo struct{ S *Store }

// AddCliente inserta un cliente directamente (arrange de tests).
func (s *Store) AddCliente(c entity.Cliente) *entity.Cliente {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := c
	s.Clientes[c.ID] = &cp
	return &cp
}

func (r ClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, x := range r.S.Clientes {
		if x.TipoDocumento == c.TipoDocumento && x.NumeroDocumento == c.NumeroDocumento {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.S.Clientes[c.ID] = &cp
	return nil
}

func (r ClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if c, ok := r.S.Clientes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r ClienteRepo) GetByDocumento(_ context.Context, tipo, numero string) (*entity.Cliente, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, c := range r.S.Clientes {
		if c.TipoDocumento == tipo && c.NumeroDocumento == numero {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r ClienteRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Cliente, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make(map[string]*entity.Cliente, len(ids))
	for _, id := range ids {
		if c, ok := r.S.Clientes[id]; ok {
			cp := *c
			out[id] = &cp
		}
	}
	return out, nil
}

func (r ClienteRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Cliente, int, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	all := make([]*entity.Cliente, 0, len(r.S.Clientes))
	for _, c := range r.S.Clientes {
		if contiene(f.Q, c.NombreCompleto(), c.NumeroDocumento) {
			cp := *c
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].NombreCompleto() < all[j].NombreCompleto() })
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], len(all), nil
}

func (r ClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Clientes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.S.Clientes[c.ID] = &cp
	return nil
}

func (r ClienteRepo) Delete(_ context.Context, id string) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Clientes[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.S.Contratantes {
		if c.ClienteID == id || c.RepresentaA == id {
			return domain.ErrConflict
		}
	}
	delete(r.S.Clientes, id)
	return nil
}
