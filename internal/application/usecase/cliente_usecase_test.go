package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/notaria-api/internal/application/apptest"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personaNatural() dto.ClienteRequest {
	return dto.ClienteRequest{
		TipoPersona:     "N",
		TipoDocumento:   "DNI",
		NumeroDocumento: "45781236",
		Nombres:         "María Elena",
		ApellidoPaterno: "Quispe",
		ApellidoMaterno: "Huamán",
		Sexo:            "F",
		EstadoCivil:     "CASADO",
		FechaNacimiento: "1985-03-12",
	}
}

func TestClienteCreate_PersonaNatural(t *testing.T) {
	uc := NewClienteUseCase(apptest.ClienteRepo{S: apptest.NewStore()})

	c, err := uc.Create(context.Background(), personaNatural())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "María Elena Quispe Huamán", c.NombreCompleto)
	assert.Equal(t, "PERUANO", c.Nacionalidad)
	assert.Equal(t, "1985-03-12", c.FechaNacimiento)
}

func TestClienteCreate_DocumentoDuplicado(t *testing.T) {
	uc := NewClienteUseCase(apptest.ClienteRepo{S: apptest.NewStore()})
	ctx := context.Background()

	_, err := uc.Create(ctx, personaNatural())
	require.NoError(t, err)
	_, err = uc.Create(ctx, personaNatural())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClienteCreate_Validaciones(t *testing.T) {
	uc := NewClienteUseCase(apptest.ClienteRepo{S: apptest.NewStore()})
	ctx := context.Background()

	sinSexo := personaNatural()
	sinSexo.Sexo = ""
	_, err := uc.Create(ctx, sinSexo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	dniCorto := personaNatural()
	dniCorto.NumeroDocumento = "1234"
	_, err = uc.Create(ctx, dniCorto)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	juridicaConDNI := dto.ClienteRequest{TipoPersona: "J", TipoDocumento: "DNI", NumeroDocumento: "45781236", RazonSocial: "ACME SAC"}
	_, err = uc.Create(ctx, juridicaConDNI)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rucInvalido := dto.ClienteRequest{TipoPersona: "J", TipoDocumento: "RUC", NumeroDocumento: "20100070971", RazonSocial: "ACME SAC"}
	_, err = uc.Create(ctx, rucInvalido)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	juridica := dto.ClienteRequest{TipoPersona: "J", TipoDocumento: "RUC", NumeroDocumento: "20100070970", RazonSocial: "ACME SAC", Sexo: "M"}
	c, err := uc.Create(ctx, juridica)
	require.NoError(t, err)
	assert.Empty(t, c.Sexo, "las personas jurídicas no llevan sexo")
}

func TestClienteUpdate_CambioDeDocumentoDuplicado(t *testing.T) {
	uc := NewClienteUseCase(apptest.ClienteRepo{S: apptest.NewStore()})
	ctx := context.Background()

	a, err := uc.Create(ctx, personaNatural())
	require.NoError(t, err)
	otro := personaNatural()
	otro.NumeroDocumento = "10203040"
	b, err := uc.Create(ctx, otro)
	require.NoError(t, err)

	in := personaNatural()
	_, err = uc.Update(ctx, b.ID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	in.Profesion = "ABOGADA"
	upd, err := uc.Update(ctx, a.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "ABOGADA", upd.Profesion)

	_, err = uc.Update(ctx, "no-existe", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClienteListYDocumento(t *testing.T) {
	uc := NewClienteUseCase(apptest.ClienteRepo{S: apptest.NewStore()})
	ctx := context.Background()
	_, err := uc.Create(ctx, personaNatural())
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.PageRequest{Q: "quispe"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)

	c, err := uc.GetByDocumento(ctx, "dni", "45781236")
	require.NoError(t, err)
	assert.Equal(t, "45781236", c.NumeroDocumento)

	_, err = uc.GetByDocumento(ctx, "DNI", "00000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
