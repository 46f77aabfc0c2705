package http_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/notaria-api/internal/application/apptest"
	"github.com/jhoicas/notaria-api/internal/application/auth"
	"github.com/jhoicas/notaria-api/internal/application/documentos"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/application/resumen"
	appsisgen "github.com/jhoicas/notaria-api/internal/application/sisgen"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/infrastructure/docx"
	"github.com/jhoicas/notaria-api/internal/infrastructure/pdf"
	infrasisgen "github.com/jhoicas/notaria-api/internal/infrastructure/sisgen"
	"github.com/jhoicas/notaria-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/notaria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/notaria-api/pkg/jwt"
)

const (
	adminEmail    = "admin@notaria.pe"
	adminPassword = "clave-segura-123"
)

type testServer struct {
	app   *fiber.App
	store *apptest.Store
}

// newTestServer arma la API completa sobre repositorios en memoria.
func newTestServer(t *testing.T, sisgenEnv string, sub infrasisgen.Submitter) *testServer {
	t.Helper()
	s := apptest.NewStore()
	s.Notaria = &entity.Notaria{
		ID: "n1", Nombre: "Notaría Pérez", Notario: "Juan Pérez Soto", RUC: "20100070970",
		Direccion: "Av. Larco 100", Distrito: "Miraflores", Provincia: "Lima", Departamento: "Lima", CodigoSISGEN: "N0150",
	}

	authUC := auth.NewAuthUseCase(apptest.UserRepo{S: s}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	_, err := authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	plantillas := fstest.MapFS{
		documentos.PlantillaCarta: &fstest.MapFile{Data: plantillaDocx(t, "{{ REMITENTE }} A {{ DESTINATARIO }}")},
	}
	docs := documentos.NewService(documentos.Deps{
		Kardex:     apptest.KardexRepo{S: s},
		Catalogos:  apptest.CatalogoRepo{S: s},
		Permisos:   apptest.PermisoRepo{S: s},
		Poderes:    apptest.PoderRepo{S: s},
		Cartas:     apptest.CartaRepo{S: s},
		Libros:     apptest.LibroRepo{S: s},
		Clientes:   apptest.ClienteRepo{S: s},
		Notaria:    apptest.NotariaRepo{S: s},
		Documentos: apptest.DocumentoRepo{S: s},
		Templates:  docx.NewTemplateStore(plantillas),
		Engine:     docx.NewEngine(),
		Storage:    store,
	})
	orch := appsisgen.NewOrchestrator(
		apptest.KardexRepo{S: s},
		apptest.CatalogoRepo{S: s},
		apptest.NotariaRepo{S: s},
		apptest.EnvioRepo{S: s},
		infrasisgen.NewXMLBuilderService(),
		sub,
		appsisgen.Config{Env: sisgenEnv, Concurrency: 2},
		nil,
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(apptest.UserRepo{S: s}),
		ClienteUC:  usecase.NewClienteUseCase(apptest.ClienteRepo{S: s}),
		CatalogoUC: usecase.NewCatalogoUseCase(apptest.CatalogoRepo{S: s}),
		NotariaUC:  usecase.NewNotariaUseCase(apptest.NotariaRepo{S: s}),
		KardexUC: usecase.NewKardexUseCase(
			apptest.KardexRepo{S: s}, apptest.CatalogoRepo{S: s}, apptest.ClienteRepo{S: s},
			apptest.NotariaRepo{S: s}, s, pdf.NewCaratulaGenerator(),
		),
		PermisoUC:  usecase.NewPermisoViajeUseCase(apptest.PermisoRepo{S: s}, apptest.ClienteRepo{S: s}, s),
		PoderUC:    usecase.NewPoderUseCase(apptest.PoderRepo{S: s}, apptest.ClienteRepo{S: s}, s),
		CartaUC:    usecase.NewCartaUseCase(apptest.CartaRepo{S: s}, s),
		LibroUC:    usecase.NewLibroUseCase(apptest.LibroRepo{S: s}, apptest.ClienteRepo{S: s}, s),
		Documentos: docs,
		SISGEN:     orch,
		Resumen:    resumen.NewUseCase(apptest.ResumenRepo{S: s}),
		JWTSecret:  testJWTSecret,
	})
	return &testServer{app: app, store: s}
}

func plantillaDocx(t *testing.T, texto string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>` + texto + `</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// call ejecuta la petición con el token dado ("" = sin Authorization).
func (ts *testServer) call(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func juanRequest() dto.ClienteRequest {
	return dto.ClienteRequest{
		TipoPersona: "N", TipoDocumento: "DNI", NumeroDocumento: "12345678",
		Nombres: "Juan", ApellidoPaterno: "Quispe", ApellidoMaterno: "Mamani", Sexo: "M", EstadoCivil: "SOLTERO",
	}
}

// ── auth ─────────────────────────────────────────────────

func TestLogin_YMe(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)

	resp := ts.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleAdmin, login.User.Role)

	resp = ts.call(t, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, adminEmail, me.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)

	resp := ts.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)

	resp = ts.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@notaria.pe", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_SoloAdmin(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	nuevo := dto.RegisterRequest{Email: "digitador@notaria.pe", Password: "12345678", Role: entity.RoleDigitador}

	resp := ts.call(t, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleDigitador), nuevo)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleAdmin), nuevo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.RoleDigitador, decode[dto.UserResponse](t, resp).Role)

	resp = ts.call(t, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleAdmin), nuevo)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	resp := ts.call(t, http.MethodGet, "/api/clientes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── clientes ─────────────────────────────────────────────

func TestClientes_CRUD(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleDigitador)

	resp := ts.call(t, http.MethodPost, "/api/clientes", tok, juanRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	juan := decode[dto.ClienteResponse](t, resp)
	require.NotEmpty(t, juan.ID)

	resp = ts.call(t, http.MethodPost, "/api/clientes", tok, juanRequest())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.call(t, http.MethodGet, "/api/clientes/documento/DNI/12345678", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, juan.ID, decode[dto.ClienteResponse](t, resp).ID)

	resp = ts.call(t, http.MethodGet, "/api/clientes?q=quispe&limit=5", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[dto.ClienteResponse]](t, resp)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 5, list.Page.Limit)

	resp = ts.call(t, http.MethodDelete, "/api/clientes/"+juan.ID, tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin elimina")

	resp = ts.call(t, http.MethodDelete, "/api/clientes/"+juan.ID, tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.call(t, http.MethodGet, "/api/clientes/"+juan.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestClientes_ErroresDeValidacion(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleDigitador)

	resp := ts.call(t, http.MethodPost, "/api/clientes", tok, map[string]string{"tipo_documento": "XYZ"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Details, "tipo_persona: es requerido")
	assert.Contains(t, e.Details, "tipo_documento: debe ser uno de: DNI, RUC, CE, PAS, CPP")

	// reglas de negocio del caso de uso: DNI de 8 dígitos
	in := juanRequest()
	in.NumeroDocumento = "123"
	resp = ts.call(t, http.MethodPost, "/api/clientes", tok, in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/clientes", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tok)
	raw, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)

	resp = ts.call(t, http.MethodGet, "/api/clientes?limit=1000", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── kardex ───────────────────────────────────────────────

func TestKardex_ContratantesVehiculoYCaratula(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleAbogado)

	juan := decode[dto.ClienteResponse](t, ts.call(t, http.MethodPost, "/api/clientes", tok, juanRequest()))
	maria := decode[dto.ClienteResponse](t, ts.call(t, http.MethodPost, "/api/clientes", tok, dto.ClienteRequest{
		TipoPersona: "N", TipoDocumento: "DNI", NumeroDocumento: "87654321", Nombres: "María", ApellidoPaterno: "Flores", Sexo: "F",
	}))

	resp := ts.call(t, http.MethodPost, "/api/kardex", tok, dto.KardexRequest{TipoKardex: "V", ActoCodigo: "TV", FechaIngreso: "2026-10-19"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	k := decode[dto.KardexResponse](t, resp)
	assert.Equal(t, "V000001-2026", k.Numero)
	assert.Equal(t, entity.SISGENNoEnviado, k.SISGENEstado)

	resp = ts.call(t, http.MethodPost, "/api/kardex/"+k.ID+"/contratantes", tok, dto.ContratanteRequest{ClienteID: juan.ID, CondicionCodigo: "VENDEDOR"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.call(t, http.MethodPost, "/api/kardex/"+k.ID+"/contratantes", tok, dto.ContratanteRequest{ClienteID: maria.ID, CondicionCodigo: "COMPRADOR"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.call(t, http.MethodPut, "/api/kardex/"+k.ID+"/vehiculo", tok, dto.VehiculoRequest{Placa: "abc-123", Marca: "TOYOTA"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ABC-123", decode[dto.VehiculoResponse](t, resp).Placa)

	resp = ts.call(t, http.MethodGet, "/api/kardex/"+k.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	det := decode[dto.KardexResponse](t, resp)
	assert.Len(t, det.Contratantes, 2)
	require.NotNil(t, det.Vehiculo)

	resp = ts.call(t, http.MethodGet, "/api/kardex/"+k.ID+"/caratula", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "caratula-V000001-2026.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = ts.call(t, http.MethodGet, "/api/kardex?tipo_kardex=V&anio=2026", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ListResponse[dto.KardexResponse]](t, resp).Page.Total)

	resp = ts.call(t, http.MethodGet, "/api/kardex?tipo_kardex=X", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKardex_ContratanteSinRepresentado(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleAbogado)
	k := decode[dto.KardexResponse](t, ts.call(t, http.MethodPost, "/api/kardex", tok, dto.KardexRequest{TipoKardex: "K", ActoCodigo: "CV"}))

	resp := ts.call(t, http.MethodPost, "/api/kardex/"+k.ID+"/contratantes", tok, dto.ContratanteRequest{
		ClienteID: "11111111-1111-4111-8111-111111111111", CondicionCodigo: "VENDEDOR", Intervencion: "REPRESENTACION",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Details, "representa_a: es requerido en este caso")
}

func TestKardex_BusquedaIgnoraTildes(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleAbogado)

	resp := ts.call(t, http.MethodPost, "/api/kardex", tok, dto.KardexRequest{TipoKardex: "K", ActoCodigo: "CV", Contrato: "DONACIÓN DE INMUEBLE"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.call(t, http.MethodPost, "/api/kardex", tok, dto.KardexRequest{TipoKardex: "K", ActoCodigo: "CV"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, q := range []string{"donacion", url.QueryEscape("donación"), url.QueryEscape("DONACIÓN")} {
		resp = ts.call(t, http.MethodGet, "/api/kardex?q="+q, tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decode[dto.ListResponse[dto.KardexResponse]](t, resp)
		require.Equal(t, 1, list.Page.Total, q)
		assert.Equal(t, "DONACIÓN DE INMUEBLE", list.Items[0].Contrato)
	}
}

// ── documentos ───────────────────────────────────────────

func TestDocumentos_CartaGeneraYDescarga(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleDigitador)

	resp := ts.call(t, http.MethodPost, "/api/cartas", tok, dto.CartaRequest{
		RemitenteNombre: "Juan Quispe", DestinatarioNombre: "Inmobiliaria Sur", DestinatarioDireccion: "Av. Arequipa 123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	carta := decode[dto.CartaResponse](t, resp)

	resp = ts.call(t, http.MethodPost, "/api/documentos/carta/"+carta.ID, tok, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentoResponse](t, resp)
	assert.Equal(t, entity.DocCarta, doc.Tipo)
	assert.Empty(t, doc.Missing)
	// con disco local la URL de descarga es la propia ruta de la API
	assert.Equal(t, "/api/documentos/"+doc.ID+"/descarga", doc.DownloadURL)

	resp = ts.call(t, http.MethodGet, doc.DownloadURL, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, documentos.ContentTypeDocx, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), doc.Filename)
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	resp = ts.call(t, http.MethodGet, "/api/documentos?tipo=carta&referencia_id="+carta.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.ListResponse[dto.DocumentoResponse]](t, resp).Items, 1)

	resp = ts.call(t, http.MethodGet, "/api/documentos/plantillas/"+documentos.PlantillaCarta+"/placeholders", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t, []string{"REMITENTE", "DESTINATARIO"}, decode[dto.PlaceholdersResponse](t, resp).Placeholders)
}

func TestDocumentos_Errores(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleDigitador)

	resp := ts.call(t, http.MethodPost, "/api/documentos/poder/no-existe", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.call(t, http.MethodGet, "/api/documentos/plantillas/inexistente.docx/placeholders", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	// sin datos de la notaría no se puede generar
	resp = ts.call(t, http.MethodPost, "/api/cartas", tok, dto.CartaRequest{
		RemitenteNombre: "Juan", DestinatarioNombre: "Pedro", DestinatarioDireccion: "Jr. Lima 1",
	})
	carta := decode[dto.CartaResponse](t, resp)
	ts.store.Notaria = nil
	resp = ts.call(t, http.MethodPost, "/api/documentos/carta/"+carta.ID, tok, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "MISSING_DATA", decode[dto.ErrorResponse](t, resp).Code)
}

// ── sisgen ───────────────────────────────────────────────

const kardexSISGEN = "11111111-1111-4111-8111-111111111111"

func escrituraFirmada(s *apptest.Store) {
	s.AddCliente(entity.Cliente{
		ID: "c-juan", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "12345678",
		Nombres: "Juan", ApellidoPaterno: "Quispe", Sexo: entity.SexoMasculino,
	})
	s.AddCliente(entity.Cliente{
		ID: "c-maria", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "87654321",
		Nombres: "María", ApellidoPaterno: "Flores", Sexo: entity.SexoFemenino,
	})
	escritura := time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local)
	s.Kardex[kardexSISGEN] = &entity.Kardex{
		ID: kardexSISGEN, Numero: "K000001-2026", Serie: "K", Anio: 2026, TipoKardex: entity.KardexEscrituras, ActoCodigo: "CV",
		FechaIngreso: escritura, NumeroEscritura: "1520", FechaEscritura: &escritura,
		FolioInicial: 100, FolioFinal: 104, Estado: entity.KardexFirmado, SISGENEstado: entity.SISGENNoEnviado,
	}
	s.Contratantes = append(s.Contratantes,
		&entity.Contratante{ID: "ct1", KardexID: kardexSISGEN, ClienteID: "c-juan", CondicionCodigo: "VENDEDOR", Intervencion: entity.IntervencionPropio},
		&entity.Contratante{ID: "ct2", KardexID: kardexSISGEN, ClienteID: "c-maria", CondicionCodigo: "COMPRADOR", Intervencion: entity.IntervencionPropio},
	)
}

func TestSISGEN_BusquedaExportYHistorial(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	escrituraFirmada(ts.store)
	tok := tokenForRole(t, entity.RoleNotario)

	resp := ts.call(t, http.MethodPost, "/api/sisgen/busqueda", tok, dto.SISGENBusquedaRequest{Desde: "2026-10-01", Hasta: "2026-10-31"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decode[[]dto.SISGENKardexResult](t, resp)
	require.Len(t, found, 1)
	assert.True(t, found[0].Exportable, found[0].Observaciones)

	resp = ts.call(t, http.MethodPost, "/api/sisgen/envios", tokenForRole(t, entity.RoleDigitador), dto.SISGENExportRequest{KardexIDs: []string{kardexSISGEN}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, "/api/sisgen/envios", tok, dto.SISGENExportRequest{KardexIDs: []string{kardexSISGEN}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.SISGENExportResponse](t, resp)
	require.Len(t, out.Resultados, 1)
	assert.Equal(t, entity.EnvioSimulado, out.Resultados[0].Estado)

	resp = ts.call(t, http.MethodGet, "/api/sisgen/envios?kardex_id="+kardexSISGEN, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.EnvioSISGENResponse](t, resp), 1)

	resp = ts.call(t, http.MethodGet, "/api/sisgen/kardex/"+kardexSISGEN+"/xml", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	xml, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(xml), "<documentoNotarial")
}

func TestSISGEN_ValidacionDeEntrada(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleNotario)

	resp := ts.call(t, http.MethodPost, "/api/sisgen/busqueda", tok, dto.SISGENBusquedaRequest{Desde: "2026-10-31", Hasta: "2026-10-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, "/api/sisgen/envios", tok, dto.SISGENExportRequest{KardexIDs: []string{"no-uuid"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.call(t, http.MethodGet, "/api/sisgen/envios", tok, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Details, "kardex_id: es requerido")
}

type submitterCaido struct{}

func (submitterCaido) Submit(context.Context, []byte) (*infrasisgen.SubmitResult, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func TestSISGEN_ServicioCaidoDevuelve502ConResultados(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvTest, submitterCaido{})
	escrituraFirmada(ts.store)

	resp := ts.call(t, http.MethodPost, "/api/sisgen/envios", tokenForRole(t, entity.RoleAdmin), dto.SISGENExportRequest{KardexIDs: []string{kardexSISGEN}})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	out := decode[dto.SISGENExportResponse](t, resp)
	require.Len(t, out.Resultados, 1)
	assert.Equal(t, entity.EnvioError, out.Resultados[0].Estado)
	assert.Equal(t, 1, out.Fallidos)
}

func TestCatalogos_TiposActo(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	admin := tokenForRole(t, entity.RoleAdmin)
	digitador := tokenForRole(t, entity.RoleDigitador)

	resp := ts.call(t, http.MethodGet, "/api/tipos-acto?tipo_kardex=v", digitador, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	actos := decode[[]dto.TipoActoResponse](t, resp)
	require.Len(t, actos, 1)
	assert.Equal(t, "TV", actos[0].Codigo)

	resp = ts.call(t, http.MethodGet, "/api/condiciones", digitador, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[[]dto.CondicionResponse](t, resp))

	nuevo := dto.TipoActoRequest{Codigo: "don", Descripcion: "DONACIÓN", TipoKardex: "K", CodigoSISGEN: "0102"}
	resp = ts.call(t, http.MethodPost, "/api/tipos-acto", digitador, nuevo)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.call(t, http.MethodPost, "/api/tipos-acto", admin, nuevo)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "DON", decode[dto.TipoActoResponse](t, resp).Codigo)

	resp = ts.call(t, http.MethodPost, "/api/tipos-acto", admin, nuevo)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	malo := nuevo
	malo.Codigo, malo.TipoKardex = "OTRO", "X"
	resp = ts.call(t, http.MethodPost, "/api/tipos-acto", admin, malo)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Details, "tipo_kardex: debe ser uno de: K, V, N, G, T")

	resp = ts.call(t, http.MethodPut, "/api/tipos-acto/NOEXISTE", admin, nuevo)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResumen_MesPedido(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok := tokenForRole(t, entity.RoleDigitador)

	resp := ts.call(t, http.MethodPost, "/api/kardex", tok, dto.KardexRequest{TipoKardex: "K", ActoCodigo: "CV", FechaIngreso: "2026-03-10"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.call(t, http.MethodGet, "/api/resumen?anio=2026&mes=3", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ResumenResponse](t, resp)
	assert.Equal(t, "MARZO 2026", out.Periodo)
	assert.Equal(t, 1, out.KardexTotal)
	require.Len(t, out.Kardex, 1)
	assert.Equal(t, "K", out.Kardex[0].TipoKardex)

	resp = ts.call(t, http.MethodGet, "/api/resumen?mes=13", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJWT_TokenDeOtroSecreto(t *testing.T) {
	ts := newTestServer(t, infrasisgen.EnvDev, nil)
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := ts.call(t, http.MethodGet, "/api/notaria", "Bearer "+tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
