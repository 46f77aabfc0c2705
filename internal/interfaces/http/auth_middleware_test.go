package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	infrasisgen "github.com/jhoicas/notaria-api/internal/infrastructure/sisgen"
	pkgjwt "github.com/jhoicas/notaria-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "notaria-api-test"
	testExpMin    = 60
)

// tokenForRole JWT firmado con el secreto de los tests, listo para el header Authorization.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// idInexistente UUID válido que no existe en el store; el guard responde antes que el handler.
const idInexistente = "99999999-9999-4999-8999-999999999999"

func TestBorrados_SoloAdmin(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)

	rutas := []string{
		"/api/clientes/", "/api/kardex/", "/api/permisos-viaje/",
		"/api/poderes/", "/api/cartas/", "/api/libros/",
	}
	for _, ruta := range rutas {
		for _, rol := range []string{entity.RoleNotario, entity.RoleAbogado, entity.RoleDigitador} {
			resp := ts.call(t, http.MethodDelete, ruta+idInexistente, tokenForRole(t, rol), nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s como %s", ruta, rol)
			assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
		}
		resp := ts.call(t, http.MethodDelete, ruta+idInexistente, tokenForRole(t, entity.RoleAdmin), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "admin pasa el guard: %s", ruta)
	}

	digitador := tokenForRole(t, entity.RoleDigitador)
	cli := decode[dto.ClienteResponse](t, ts.call(t, http.MethodPost, "/api/clientes", digitador, juanRequest()))
	resp := ts.call(t, http.MethodDelete, "/api/clientes/"+cli.ID, tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNotaria_GuardarSoloAdminONotario(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	body := dto.NotariaRequest{Nombre: "NOTARÍA PÉREZ", Notario: "JUAN PÉREZ SOTO"}

	for _, rol := range []string{entity.RoleAbogado, entity.RoleDigitador} {
		resp := ts.call(t, http.MethodPut, "/api/notaria", tokenForRole(t, rol), body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, rol)
	}
	for _, rol := range []string{entity.RoleNotario, entity.RoleAdmin} {
		resp := ts.call(t, http.MethodPut, "/api/notaria", tokenForRole(t, rol), body)
		require.Equal(t, http.StatusOK, resp.StatusCode, rol)
		assert.Equal(t, "JUAN PÉREZ SOTO", decode[dto.NotariaResponse](t, resp).Notario)
	}

	// la lectura está abierta a cualquier rol
	resp := ts.call(t, http.MethodGet, "/api/notaria", tokenForRole(t, entity.RoleDigitador), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSISGENExport_SoloAdminONotario(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	body := dto.SISGENExportRequest{KardexIDs: []string{"no-es-uuid"}}

	for _, rol := range []string{entity.RoleAbogado, entity.RoleDigitador} {
		resp := ts.call(t, http.MethodPost, "/api/sisgen/envios", tokenForRole(t, rol), body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, rol)
	}
	// el notario pasa el guard y llega a la validación del body
	resp := ts.call(t, http.MethodPost, "/api/sisgen/envios", tokenForRole(t, entity.RoleNotario), body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	// la búsqueda y el historial no exigen rol
	resp = ts.call(t, http.MethodPost, "/api/sisgen/busqueda", tokenForRole(t, entity.RoleDigitador),
		dto.SISGENBusquedaRequest{Desde: "2026-10-01", Hasta: "2026-10-31"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMe_DevuelveUsuarioDelToken(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)

	resp := ts.call(t, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleAdmin), dto.RegisterRequest{
		Email: "abogada@notaria.pe", Password: "clave-abogada-1", Name: "Rosa Huamán", Role: entity.RoleAbogado,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "abogada@notaria.pe", Password: "clave-abogada-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)

	resp = ts.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, login.User.ID, me.ID)
	assert.Equal(t, entity.RoleAbogado, me.Role)

	// token bien firmado de un usuario que no existe
	resp = ts.call(t, http.MethodGet, "/api/auth/me", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokensRechazados(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)

	sinRol, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)
	vencido, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	casos := []struct {
		nombre string
		header string
		codigo string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token vencido", "Bearer " + vencido, "INVALID_TOKEN"},
		{"token sin rol en ruta con guard", "Bearer " + sinRol, "MISSING_ROLE"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			resp := ts.call(t, http.MethodDelete, "/api/kardex/"+idInexistente, c.header, nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, c.codigo, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}
