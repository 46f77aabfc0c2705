// Package apptest repositorios en memoria para los tests de la capa de aplicación.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/gramatica"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	Users        map[string]*entity.User
	Clientes     map[string]*entity.Cliente
	Condiciones  map[string]*entity.Condicion
	Actos        map[string]*entity.TipoActo
	Kardex       map[string]*entity.Kardex
	Contratantes []*entity.Contratante
	Vehiculos    map[string]*entity.Vehiculo
	Permisos     map[string]*entity.PermisoViaje
	Poderes      map[string]*entity.Poder
	Cartas       map[string]*entity.Carta
	Libros       map[string]*entity.Libro
	Notaria      *entity.Notaria
	Documentos   []*entity.DocumentoGenerado
	Envios       []*entity.EnvioSISGEN

	// FailTx hace fallar la siguiente transacción con este error.
	FailTx error
}

// NewStore crea un store con el catálogo básico de condiciones y actos.
func NewStore() *Store {
	s := &Store{
		Users:       map[string]*entity.User{},
		Clientes:    map[string]*entity.Cliente{},
		Condiciones: map[string]*entity.Condicion{},
		Actos:       map[string]*entity.TipoActo{},
		Kardex:      map[string]*entity.Kardex{},
		Vehiculos:   map[string]*entity.Vehiculo{},
		Permisos:    map[string]*entity.PermisoViaje{},
		Poderes:     map[string]*entity.Poder{},
		Cartas:      map[string]*entity.Carta{},
		Libros:      map[string]*entity.Libro{},
	}
	for _, c := range []entity.Condicion{
		{Codigo: "VENDEDOR", Masculino: "VENDEDOR", Femenino: "VENDEDORA", PluralMasculino: "VENDEDORES", PluralFemenino: "VENDEDORAS", Lado: entity.LadoOtorgante, CodigoSISGEN: "001"},
		{Codigo: "COMPRADOR", Masculino: "COMPRADOR", Femenino: "COMPRADORA", PluralMasculino: "COMPRADORES", PluralFemenino: "COMPRADORAS", Lado: entity.LadoBeneficiario, CodigoSISGEN: "002"},
		{Codigo: "SOLICITANTE", Masculino: "SOLICITANTE", Femenino: "SOLICITANTE", PluralMasculino: "SOLICITANTES", PluralFemenino: "SOLICITANTES", Lado: entity.LadoOtorgante, CodigoSISGEN: "010"},
		{Codigo: "CAUSANTE", Masculino: "CAUSANTE", Femenino: "CAUSANTE", PluralMasculino: "CAUSANTES", PluralFemenino: "CAUSANTES", Lado: entity.LadoInterviniente, CodigoSISGEN: "011"},
		{Codigo: "CONYUGE", Masculino: "CÓNYUGE", Femenino: "CÓNYUGE", PluralMasculino: "CÓNYUGES", PluralFemenino: "CÓNYUGES", Lado: entity.LadoInterviniente, CodigoSISGEN: "020"},
	} {
		c := c
		s.Condiciones[c.Codigo] = &c
	}
	for _, a := range []entity.TipoActo{
		{Codigo: "CV", Descripcion: "COMPRAVENTA", TipoKardex: entity.KardexEscrituras, CodigoSISGEN: "0101", Activo: true},
		{Codigo: "TV", Descripcion: "TRANSFERENCIA VEHICULAR", TipoKardex: entity.KardexVehicular, CodigoSISGEN: "0501", Plantilla: "transferencia_vehicular.docx", Activo: true},
		{Codigo: "SI", Descripcion: "SUCESIÓN INTESTADA", TipoKardex: entity.KardexNoContencioso, CodigoSISGEN: "0301", Activo: true},
		{Codigo: "RP", Descripcion: "RECTIFICACIÓN DE PARTIDA", TipoKardex: entity.KardexNoContencioso, Activo: true},
		{Codigo: "HIP", Descripcion: "HIPOTECA", TipoKardex: entity.KardexGarantias, CodigoSISGEN: "0401", Activo: false},
	} {
		a := a
		s.Actos[a.Codigo] = &a
	}
	return s
}

// Repos agrupa los repositorios en memoria sobre un mismo store.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Correlativo: correlativoRepo{s},
		Kardex:      KardexRepo{s},
		Permisos:    PermisoRepo{s},
		Poderes:     PoderRepo{s},
		Cartas:      CartaRepo{s},
		Libros:      LibroRepo{s},
	}
}

// Run implementa repository.TxRunner sin aislamiento real.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := s.FailTx; err != nil {
		s.FailTx = nil
		return err
	}
	return fn(s.Repos())
}

type correlativoRepo struct{ s *Store }

// Next MAX(secuencia)+1 de la serie en el año, como el repositorio PostgreSQL.
func (r correlativoRepo) Next(_ context.Context, tabla, serie string, anio int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	max := 0
	check := func(s string, a, seq int) {
		if s == serie && a == anio && seq > max {
			max = seq
		}
	}
	switch tabla {
	case repository.TablaKardex:
		for _, k := range r.s.Kardex {
			check(k.Serie, k.Anio, k.Secuencia)
		}
	case repository.TablaPermisos:
		for _, p := range r.s.Permisos {
			check(p.Serie, p.Anio, p.Secuencia)
		}
	case repository.TablaPoderes:
		for _, p := range r.s.Poderes {
			check(p.Serie, p.Anio, p.Secuencia)
		}
	case repository.TablaCartas:
		for _, c := range r.s.Cartas {
			check(c.Serie, c.Anio, c.Secuencia)
		}
	case repository.TablaLibros:
		for _, l := range r.s.Libros {
			check(l.Serie, l.Anio, l.Secuencia)
		}
	}
	return max + 1, nil
}

func page(n, limit, offset int) (int, int) {
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

func contiene(q string, campos ...string) bool {
	if q == "" {
		return true
	}
	q = gramatica.Normalizar(q)
	for _, c := range campos {
		if strings.Contains(gramatica.Normalizar(c), q) {
			return true
		}
	}
	return false
}

// ── usuarios ─────────────────────────────────────────────

// UserRepo repositorio en memoria de usuarios.
type UserRepo struct{ S *Store }

func (r UserRepo) Create(_ context.Context, u *entity.User) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, x := range r.S.Users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.S.Users[u.ID] = &cp
	return nil
}

func (r UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if u, ok := r.S.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	for _, u := range r.S.Users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── notaría ──────────────────────────────────────────────

// NotariaRepo repositorio en memoria de la notaría.
type NotariaRepo struct{ S *Store }

func (r NotariaRepo) Get(context.Context) (*entity.Notaria, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if r.S.Notaria == nil {
		return nil, nil
	}
	cp := *r.S.Notaria
	return &cp, nil
}

func (r NotariaRepo) Save(_ context.Context, n *entity.Notaria) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	cp := *n
	r.S.Notaria = &cp
	return nil
}

// ── catálogos ────────────────────────────────────────────

// CatalogoRepo repositorio en memoria de condiciones y actos.
type CatalogoRepo struct{ S *Store }

func (r CatalogoRepo) ListCondiciones(context.Context) ([]*entity.Condicion, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*entity.Condicion, 0, len(r.S.Condiciones))
	for _, c := range r.S.Condiciones {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (r CatalogoRepo) GetCondicion(_ context.Context, codigo string) (*entity.Condicion, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if c, ok := r.S.Condiciones[codigo]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r CatalogoRepo) ListTiposActo(_ context.Context, tipoKardex string) ([]*entity.TipoActo, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	out := make([]*entity.TipoActo, 0, len(r.S.Actos))
	for _, a := range r.S.Actos {
		if tipoKardex == "" || a.TipoKardex == tipoKardex {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

func (r CatalogoRepo) GetTipoActo(_ context.Context, codigo string) (*entity.TipoActo, error) {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if a, ok := r.S.Actos[codigo]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r CatalogoRepo) CreateTipoActo(_ context.Context, t *entity.TipoActo) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Actos[t.Codigo]; ok {
		return domain.ErrDuplicate
	}
	cp := *t
	r.S.Actos[t.Codigo] = &cp
	return nil
}

func (r CatalogoRepo) UpdateTipoActo(_ context.Context, t *entity.TipoActo) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	if _, ok := r.S.Actos[t.Codigo]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.S.Actos[t.Codigo] = &cp
	return nil
}

var (
	_ repository.TxRunner               = (*Store)(nil)
	_ repository.UserRepository         = UserRepo{}
	_ repository.NotariaRepository      = NotariaRepo{}
	_ repository.CatalogoRepository     = CatalogoRepo{}
	_ repository.ClienteRepository      = ClienteRepo{}
	_ repository.KardexRepository       = KardexRepo{}
	_ repository.PermisoViajeRepository = PermisoRepo{}
	_ repository.PoderRepository        = PoderRepo{}
	_ repository.CartaRepository        = CartaRepo{}
	_ repository.LibroRepository        = LibroRepo{}
	_ repository.DocumentoRepository    = DocumentoRepo{}
	_ repository.EnvioSISGENRepository  = EnvioRepo{}
)
