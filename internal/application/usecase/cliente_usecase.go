package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
	"github.com/jhoicas/notaria-api/pkg/sisgen"
)

// ClienteUseCase aplica reglas de negocio para clientes (personas naturales y jurídicas).
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso con el puerto de persistencia.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create registra un cliente. Devuelve domain.ErrDuplicate si el documento ya existe.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c := &entity.Cliente{}
	if err := applyCliente(c, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDocumento(ctx, c.TipoDocumento, c.NumeroDocumento)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return entityToClienteResponse(c), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return entityToClienteResponse(c), nil
}

// GetByDocumento busca por tipo y número de documento.
func (uc *ClienteUseCase) GetByDocumento(ctx context.Context, tipo, numero string) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByDocumento(ctx, strings.ToUpper(tipo), strings.TrimSpace(numero))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return entityToClienteResponse(c), nil
}

// List lista clientes; q busca sin distinguir tildes ni mayúsculas.
func (uc *ClienteUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.ClienteResponse], error) {
	p.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(p))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToClienteResponse(c))
	}
	return dto.NewList(items, p, total), nil
}

// Update reemplaza los datos del cliente.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.ClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	tipo, numero := c.TipoDocumento, c.NumeroDocumento
	if err := applyCliente(c, in); err != nil {
		return nil, err
	}
	if c.TipoDocumento != tipo || c.NumeroDocumento != numero {
		other, err := uc.repo.GetByDocumento(ctx, c.TipoDocumento, c.NumeroDocumento)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != c.ID {
			return nil, domain.ErrDuplicate
		}
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return entityToClienteResponse(c), nil
}

// Delete elimina un cliente; ErrConflict si interviene en algún registro.
func (uc *ClienteUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// applyCliente copia el request al cliente y valida las reglas por tipo de persona.
func applyCliente(c *entity.Cliente, in dto.ClienteRequest) error {
	fn, err := fechaOpcional("fecha_nacimiento", in.FechaNacimiento)
	if err != nil {
		return err
	}
	c.TipoPersona = in.TipoPersona
	c.TipoDocumento = strings.ToUpper(in.TipoDocumento)
	c.NumeroDocumento = strings.TrimSpace(in.NumeroDocumento)
	c.ApellidoPaterno = strings.TrimSpace(in.ApellidoPaterno)
	c.ApellidoMaterno = strings.TrimSpace(in.ApellidoMaterno)
	c.Nombres = strings.TrimSpace(in.Nombres)
	c.RazonSocial = strings.TrimSpace(in.RazonSocial)
	c.Sexo = in.Sexo
	c.EstadoCivil = in.EstadoCivil
	c.Nacionalidad = in.Nacionalidad
	c.Profesion = in.Profesion
	c.Direccion = in.Direccion
	c.Ubigeo = in.Ubigeo
	c.Distrito = in.Distrito
	c.Provincia = in.Provincia
	c.Departamento = in.Departamento
	c.Telefono = in.Telefono
	c.Email = in.Email
	c.FechaNacimiento = fn

	if err := sisgen.ValidateDocumento(c.TipoDocumento, c.NumeroDocumento); err != nil {
		return invalid("%v", err)
	}
	switch c.TipoPersona {
	case entity.PersonaNatural:
		if c.Nombres == "" || c.ApellidoPaterno == "" {
			return invalid("persona natural requiere nombres y apellido_paterno")
		}
		if c.Sexo == "" {
			return invalid("persona natural requiere sexo")
		}
		c.RazonSocial = ""
		if c.Nacionalidad == "" {
			c.Nacionalidad = "PERUANO"
		}
	case entity.PersonaJuridica:
		if c.RazonSocial == "" {
			return invalid("persona jurídica requiere razon_social")
		}
		if c.TipoDocumento != sisgen.DocRUC {
			return invalid("persona jurídica se identifica con RUC")
		}
		c.Sexo = ""
		c.EstadoCivil = ""
		c.FechaNacimiento = nil
	}
	return nil
}

func entityToClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	if c == nil {
		return nil
	}
	return &dto.ClienteResponse{
		ID:              c.ID,
		TipoPersona:     c.TipoPersona,
		TipoDocumento:   c.TipoDocumento,
		NumeroDocumento: c.NumeroDocumento,
		NombreCompleto:  c.NombreCompleto(),
		ApellidoPaterno: c.ApellidoPaterno,
		ApellidoMaterno: c.ApellidoMaterno,
		Nombres:         c.Nombres,
		RazonSocial:     c.RazonSocial,
		Sexo:            c.Sexo,
		EstadoCivil:     c.EstadoCivil,
		Nacionalidad:    c.Nacionalidad,
		Profesion:       c.Profesion,
		Direccion:       c.Direccion,
		Ubigeo:          c.Ubigeo,
		Distrito:        c.Distrito,
		Provincia:       c.Provincia,
		Departamento:    c.Departamento,
		Telefono:        c.Telefono,
		Email:           c.Email,
		FechaNacimiento: dto.FormatFecha(c.FechaNacimiento),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
