package documentos

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jhoicas/notaria-api/internal/application/apptest"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/infrastructure/docx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── dobles ───────────────────────────────────────────────

type memStorage struct {
	mu      sync.Mutex
	objetos map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{objetos: map[string][]byte{}} }

func (m *memStorage) Put(_ context.Context, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objetos[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.objetos[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (m *memStorage) DownloadURL(_ context.Context, key string) (string, error) {
	return "https://storage.test/" + key, nil
}

// plantillasStub plantillas disponibles por nombre; el contenido es el propio nombre.
type plantillasStub map[string]bool

func (p plantillasStub) Load(name string) ([]byte, error) {
	if !p[name] {
		return nil, domain.ErrTemplateNotFound
	}
	return []byte(name), nil
}

func (p plantillasStub) First(names ...string) (string, error) {
	for _, n := range names {
		if n != "" && p[n] {
			return n, nil
		}
	}
	return "", domain.ErrTemplateNotFound
}

// motorStub guarda el último contexto recibido.
type motorStub struct {
	ctx map[string]string
}

func (m *motorStub) Render(tpl []byte, ctx map[string]string) (*docx.Result, error) {
	m.ctx = ctx
	return &docx.Result{Document: tpl}, nil
}

func (m *motorStub) Placeholders([]byte) ([]string, error) { return nil, nil }

type metricasStub map[string]int

func (m metricasStub) ObserveDocumento(tipo string, _ time.Time) { m[tipo]++ }

// ── fixture ──────────────────────────────────────────────

var hoy = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func fecha(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type fixture struct {
	store   *apptest.Store
	storage *memStorage
	motor   *motorStub
	metrics metricasStub
	svc     *Service
}

func newFixture(t *testing.T, plantillas ...string) *fixture {
	t.Helper()
	s := apptest.NewStore()
	s.Notaria = &entity.Notaria{
		ID: "n1", Nombre: "Notaría Pérez", Notario: "Juan Pérez Soto", Colegiatura: "123",
		RUC: "20100070970", Direccion: "Av. Larco 100", Distrito: "Miraflores", Provincia: "Lima", Departamento: "Lima",
	}
	disponibles := plantillasStub{}
	for _, p := range plantillas {
		disponibles[p] = true
	}
	f := &fixture{store: s, storage: newMemStorage(), motor: &motorStub{}, metrics: metricasStub{}}
	f.svc = NewService(Deps{
		Kardex:     apptest.KardexRepo{S: s},
		Catalogos:  apptest.CatalogoRepo{S: s},
		Permisos:   apptest.PermisoRepo{S: s},
		Poderes:    apptest.PoderRepo{S: s},
		Cartas:     apptest.CartaRepo{S: s},
		Libros:     apptest.LibroRepo{S: s},
		Clientes:   apptest.ClienteRepo{S: s},
		Notaria:    apptest.NotariaRepo{S: s},
		Documentos: apptest.DocumentoRepo{S: s},
		Templates:  disponibles,
		Engine:     f.motor,
		Storage:    f.storage,
		Metrics:    f.metrics,
	})
	f.svc.now = func() time.Time { return hoy }
	return f
}

func (f *fixture) personas() (juan, maria, pedro, empresa *entity.Cliente) {
	juan = f.store.AddCliente(entity.Cliente{
		ID: "c-juan", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "12345678",
		Nombres: "Juan", ApellidoPaterno: "Quispe", ApellidoMaterno: "Mamani", Sexo: entity.SexoMasculino,
		EstadoCivil: "SOLTERO", Nacionalidad: "PERUANO", Direccion: "Jr. Cusco 200", Distrito: "Lima",
	})
	maria = f.store.AddCliente(entity.Cliente{
		ID: "c-maria", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "87654321",
		Nombres: "María", ApellidoPaterno: "Flores", Sexo: entity.SexoFemenino, EstadoCivil: "CASADO", Nacionalidad: "PERUANO",
	})
	pedro = f.store.AddCliente(entity.Cliente{
		ID: "c-pedro", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "11112222",
		Nombres: "Pedro", ApellidoPaterno: "Ramos", Sexo: entity.SexoMasculino, Nacionalidad: "PERUANO",
	})
	empresa = f.store.AddCliente(entity.Cliente{
		ID: "c-empresa", TipoPersona: entity.PersonaJuridica, TipoDocumento: "RUC", NumeroDocumento: "20100070970",
		RazonSocial: "Autos del Sur S.A.C.", Direccion: "Av. Arequipa 500", Distrito: "Lince",
	})
	return
}

func (f *fixture) kardex(id, tipo, acto, numero string) *entity.Kardex {
	k := &entity.Kardex{
		ID: id, Numero: numero, Serie: tipo, Anio: 2026, Secuencia: 1, TipoKardex: tipo, ActoCodigo: acto,
		FechaIngreso: hoy, NumeroEscritura: "1520", FolioInicial: 10, FolioFinal: 12, Estado: entity.KardexEnProceso,
	}
	f.store.Kardex[id] = k
	return k
}

func (f *fixture) contratante(kardexID, clienteID, condicion, representaA, partida string) {
	f.store.Contratantes = append(f.store.Contratantes, &entity.Contratante{
		ID: kardexID + "-" + clienteID, KardexID: kardexID, ClienteID: clienteID, CondicionCodigo: condicion,
		RepresentaA: representaA, PartidaPoder: partida,
	})
}

// ── vehicular ────────────────────────────────────────────

func (f *fixture) transferencia() *entity.Kardex {
	juan, maria, pedro, empresa := f.personas()
	k := f.kardex("k-v", entity.KardexVehicular, "TV", "V000001-2026")
	f.contratante(k.ID, juan.ID, "VENDEDOR", "", "")
	f.contratante(k.ID, maria.ID, "VENDEDOR", "", "")
	f.contratante(k.ID, pedro.ID, "COMPRADOR", empresa.ID, "11002233")
	f.store.Vehiculos[k.ID] = &entity.Vehiculo{
		KardexID: k.ID, Placa: "ABC-123", Marca: "Toyota", Modelo: "Yaris", AnioFabricacion: 2020,
		Precio: decimal.RequireFromString("20000.50"), Moneda: "PEN", FormaPago: entity.FormaPagoContado, MedioPago: "DEPOSITO_CUENTA",
	}
	return k
}

func TestVehicular_Genera(t *testing.T) {
	f := newFixture(t, PlantillaVehicular)
	k := f.transferencia()

	res, err := f.svc.Vehicular(context.Background(), "u1", k.ID)
	require.NoError(t, err)

	c := f.motor.ctx
	assert.Equal(t, "LOS VENDEDORES", c["VENDEDOR_ART"])
	assert.Equal(t, "N", c["VENDEDOR_N"])
	assert.Equal(t, "2", c["VENDEDOR_CANT"])
	assert.Equal(t, "JUAN QUISPE MAMANI Y MARÍA FLORES", c["VENDEDOR_NOMBRES"])
	assert.Contains(t, c["VENDEDOR"], "DON JUAN QUISPE MAMANI, DE NACIONALIDAD PERUANO, IDENTIFICADO CON DOCUMENTO NACIONAL DE IDENTIDAD N° 12345678, DE ESTADO CIVIL SOLTERO")
	assert.Contains(t, c["VENDEDOR"], "DOÑA MARÍA FLORES, DE NACIONALIDAD PERUANA, IDENTIFICADA CON")
	assert.Contains(t, c["VENDEDOR"], "DE ESTADO CIVIL CASADA")

	assert.Equal(t, "LA COMPRADORA", c["COMPRADOR_ART"])
	assert.Equal(t, "A LA", c["COMPRADOR_AL"])
	assert.Contains(t, c["COMPRADOR"], "AUTOS DEL SUR S.A.C., CON RUC N° 20100070970, CON DOMICILIO EN AV. AREQUIPA 500, DISTRITO DE LINCE")
	assert.Contains(t, c["COMPRADOR"], "DEBIDAMENTE REPRESENTADA POR DON PEDRO RAMOS")
	assert.Contains(t, c["COMPRADOR"], "SEGÚN PODER INSCRITO EN LA PARTIDA 11002233")

	assert.Equal(t, "ABC-123", c["PLACA"])
	assert.Equal(t, "TOYOTA", c["MARCA"])
	assert.Equal(t, "2020", c["ANIO_FABRICACION"])
	assert.Equal(t, "20,000.50", c["PRECIO"])
	assert.Equal(t, "VEINTE MIL CON 50/100", c["PRECIO_LETRAS"])
	assert.Equal(t, "SOLES", c["MONEDA"])
	assert.Equal(t, "S/", c["SIMBOLO_MONEDA"])
	assert.Equal(t, "AL CONTADO", c["FORMA_PAGO"])
	assert.Equal(t, "DEPOSITO CUENTA", c["MEDIO_PAGO"])
	assert.Equal(t, "V000001-2026", c["KARDEX"])
	assert.Equal(t, "1520", c["ESCRITURA"])
	assert.Equal(t, "10", c["FOLIO_INICIAL"])
	assert.Equal(t, "NOTARÍA PÉREZ", c["NOTARIA"])
	assert.Equal(t, "19 DE OCTUBRE DE 2026", c["FECHA"])
	assert.Equal(t, "DIECINUEVE DE OCTUBRE DE DOS MIL VEINTISÉIS", c["FECHA_LETRAS"])
	assert.Equal(t, "2026", c["ANIO"])

	assert.Equal(t, "documentos/vehicular/2026/V000001-2026-"+res.ID+".docx", res.StorageKey)
	assert.Equal(t, "vehicular_V000001-2026.docx", res.Filename)
	assert.Equal(t, "https://storage.test/"+res.StorageKey, res.DownloadURL)
	assert.Empty(t, res.Missing)
	assert.Contains(t, f.storage.objetos, res.StorageKey)
	require.Len(t, f.store.Documentos, 1)
	assert.Equal(t, "u1", f.store.Documentos[0].GeneradoPor)
	assert.Equal(t, 1, f.metrics[entity.DocVehicular])
}

func TestVehicular_FaltanDatos(t *testing.T) {
	f := newFixture(t, PlantillaVehicular)
	k := f.transferencia()

	delete(f.store.Vehiculos, k.ID)
	_, err := f.svc.Vehicular(context.Background(), "u1", k.ID)
	assert.True(t, errors.Is(err, domain.ErrMissingData))

	f2 := newFixture(t, PlantillaVehicular)
	k2 := f2.transferencia()
	f2.store.Contratantes = f2.store.Contratantes[:2] // sin comprador
	_, err = f2.svc.Vehicular(context.Background(), "u1", k2.ID)
	assert.True(t, errors.Is(err, domain.ErrMissingData))
	assert.Empty(t, f2.store.Documentos)
}

func TestVehicular_TipoIncorrectoYNoExiste(t *testing.T) {
	f := newFixture(t, PlantillaVehicular)
	k := f.kardex("k-k", entity.KardexEscrituras, "CV", "K000001-2026")

	_, err := f.svc.Vehicular(context.Background(), "u1", k.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.svc.Vehicular(context.Background(), "u1", "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGenerar_SinNotaria(t *testing.T) {
	f := newFixture(t, PlantillaVehicular)
	k := f.transferencia()
	f.store.Notaria = nil

	_, err := f.svc.Vehicular(context.Background(), "u1", k.ID)
	assert.True(t, errors.Is(err, domain.ErrMissingData))
}

func TestGenerar_SinPlantilla(t *testing.T) {
	f := newFixture(t)
	k := f.transferencia()

	_, err := f.svc.Vehicular(context.Background(), "u1", k.ID)
	assert.True(t, errors.Is(err, domain.ErrTemplateNotFound))
}

// ── no contencioso ───────────────────────────────────────

func TestNoContencioso_GrupoPorCondicion(t *testing.T) {
	f := newFixture(t, PlantillaNoContencioso, "no_contencioso_si.docx")
	juan, maria, _, _ := f.personas()
	k := f.kardex("k-n", entity.KardexNoContencioso, "SI", "N000001-2026")
	f.contratante(k.ID, maria.ID, "SOLICITANTE", "", "")
	f.contratante(k.ID, juan.ID, "CAUSANTE", "", "")

	res, err := f.svc.NoContencioso(context.Background(), "u1", k.ID)
	require.NoError(t, err)

	c := f.motor.ctx
	assert.Equal(t, "LA SOLICITANTE", c["SOLICITANTE_ART"])
	assert.Equal(t, "EL CAUSANTE", c["CAUSANTE_ART"])
	assert.Equal(t, "SUCESIÓN INTESTADA", c["ACTO"])
	assert.Equal(t, "N000001-2026", c["KARDEX"])
	assert.Equal(t, "no_contencioso_si.docx", res.Plantilla)
}

func TestNoContencioso_PlantillaGenerica(t *testing.T) {
	f := newFixture(t, PlantillaNoContencioso)
	_, maria, _, _ := f.personas()
	k := f.kardex("k-n", entity.KardexNoContencioso, "RP", "N000002-2026")
	f.contratante(k.ID, maria.ID, "SOLICITANTE", "", "")

	res, err := f.svc.NoContencioso(context.Background(), "u1", k.ID)
	require.NoError(t, err)
	assert.Equal(t, PlantillaNoContencioso, res.Plantilla)
	assert.Equal(t, "documentos/no-contencioso/2026/N000002-2026-"+res.ID+".docx", res.StorageKey)
	assert.Equal(t, "no_contencioso_N000002-2026.docx", res.Filename)
}

func TestNoContencioso_SinIntervinientes(t *testing.T) {
	f := newFixture(t, PlantillaNoContencioso)
	k := f.kardex("k-n", entity.KardexNoContencioso, "SI", "N000001-2026")

	_, err := f.svc.NoContencioso(context.Background(), "u1", k.ID)
	assert.True(t, errors.Is(err, domain.ErrMissingData))
}

// ── extraprotocolares ────────────────────────────────────

func TestPermisoViaje_Genera(t *testing.T) {
	f := newFixture(t, "permiso_viaje_exterior.docx")
	_, maria, _, _ := f.personas()
	menor := f.store.AddCliente(entity.Cliente{
		ID: "c-menor", TipoPersona: entity.PersonaNatural, TipoDocumento: "DNI", NumeroDocumento: "77778888",
		Nombres: "Luis", ApellidoPaterno: "Flores", Sexo: entity.SexoMasculino, FechaNacimiento: fecha(2016, 5, 1),
	})
	f.store.Permisos["p1"] = &entity.PermisoViaje{
		ID: "p1", Numero: "PV000001-2026", Anio: 2026, Tipo: entity.PermisoExterior, FechaIngreso: hoy,
		Destino: "Chile", MedioTransporte: "aéreo", FechaSalida: fecha(2026, 11, 20),
		Participantes: []entity.Participante{
			{ClienteID: maria.ID, Rol: entity.RolOtorgante},
			{ClienteID: menor.ID, Rol: entity.RolMenor},
		},
	}

	res, err := f.svc.PermisoViaje(context.Background(), "u1", "p1")
	require.NoError(t, err)

	c := f.motor.ctx
	assert.Equal(t, "MADRE", c["OTORGANTE_LABEL"])
	assert.Equal(t, "LA MADRE", c["OTORGANTE_ART"])
	assert.Equal(t, "HIJO", c["MENOR_HIJO"])
	assert.Equal(t, "DE 10 AÑOS DE EDAD", c["MENOR_EDADES"])
	assert.Contains(t, c["MENOR"], "DON LUIS FLORES")
	assert.Contains(t, c["MENOR"], ", DE 10 AÑOS DE EDAD")
	assert.Equal(t, "", c["ACOMPANANTE"])
	assert.Equal(t, "", c["ACOMPANANTE_ART"])
	assert.Equal(t, "CHILE", c["DESTINO"])
	assert.Equal(t, "AÉREO", c["MEDIO_TRANSPORTE"])
	assert.Equal(t, "20 DE NOVIEMBRE DE 2026", c["FECHA_SALIDA"])
	assert.Equal(t, "VEINTE DE NOVIEMBRE DE DOS MIL VEINTISÉIS", c["FECHA_SALIDA_LETRAS"])
	assert.Equal(t, "", c["FECHA_RETORNO"])
	assert.Equal(t, "permiso_viaje_exterior.docx", res.Plantilla)
	assert.Equal(t, "documentos/permiso-viaje/2026/PV000001-2026-"+res.ID+".docx", res.StorageKey)
}

func TestEdad(t *testing.T) {
	assert.Equal(t, "", edad(-1))
	assert.Equal(t, "DE 1 AÑO DE EDAD", edad(1))
	assert.Equal(t, "DE 0 AÑOS DE EDAD", edad(0))
}

func TestPoder_PlantillaPorTipoYAlternativa(t *testing.T) {
	f := newFixture(t, PlantillaPoder, "poder_bancario.docx")
	juan, maria, _, _ := f.personas()
	f.store.Poderes["pd1"] = &entity.Poder{
		ID: "pd1", Numero: "PD000001-2026", Anio: 2026, Tipo: entity.PoderONP, FechaIngreso: hoy,
		Facultades: "  cobrar pensiones  ",
		Participantes: []entity.Participante{
			{ClienteID: juan.ID, Rol: entity.RolPoderdante},
			{ClienteID: maria.ID, Rol: entity.RolApoderado},
		},
	}

	res, err := f.svc.Poder(context.Background(), "u1", "pd1")
	require.NoError(t, err)
	assert.Equal(t, PlantillaPoder, res.Plantilla)

	c := f.motor.ctx
	assert.Equal(t, "EL PODERDANTE", c["PODERDANTE_ART"])
	assert.Equal(t, "LA APODERADA", c["APODERADO_ART"])
	assert.Equal(t, "cobrar pensiones", c["FACULTADES"])
	assert.Equal(t, "ONP", c["TIPO_PODER"])
	assert.Equal(t, "INDEFINIDA", c["VIGENCIA"])

	f.store.Poderes["pd1"].Tipo = entity.PoderBancario
	f.store.Poderes["pd1"].VigenciaHasta = fecha(2027, 10, 19)
	res, err = f.svc.Poder(context.Background(), "u1", "pd1")
	require.NoError(t, err)
	assert.Equal(t, "poder_bancario.docx", res.Plantilla)
	assert.Equal(t, "HASTA EL 19 DE OCTUBRE DE 2027", f.motor.ctx["VIGENCIA"])
	assert.Len(t, f.store.Documentos, 2)
}

func TestPoder_SinApoderado(t *testing.T) {
	f := newFixture(t, PlantillaPoder)
	juan, _, _, _ := f.personas()
	f.store.Poderes["pd1"] = &entity.Poder{
		ID: "pd1", Numero: "PD000001-2026", Anio: 2026, Tipo: entity.PoderGeneral, FechaIngreso: hoy,
		Participantes: []entity.Participante{{ClienteID: juan.ID, Rol: entity.RolPoderdante}},
	}
	_, err := f.svc.Poder(context.Background(), "u1", "pd1")
	assert.True(t, errors.Is(err, domain.ErrMissingData))
}

func TestCarta_ConservaContenido(t *testing.T) {
	f := newFixture(t, PlantillaCarta)
	f.store.Cartas["cn1"] = &entity.Carta{
		ID: "cn1", Numero: "CN000001-2026", Anio: 2026, FechaIngreso: hoy,
		RemitenteNombre: "Juan Quispe", RemitenteDocumento: "12345678",
		DestinatarioNombre: "Inmobiliaria Sol", DestinatarioDireccion: "Calle Uno 1", DestinatarioDistrito: "Surco",
		Contenido: "Señores:\nPor medio de la presente les comunico...", Resultado: entity.CartaPendiente,
	}

	_, err := f.svc.Carta(context.Background(), "u1", "cn1")
	require.NoError(t, err)

	c := f.motor.ctx
	assert.Equal(t, "JUAN QUISPE", c["REMITENTE"])
	assert.Equal(t, "INMOBILIARIA SOL", c["DESTINATARIO"])
	assert.Equal(t, "SURCO", c["DESTINATARIO_DISTRITO"])
	assert.Equal(t, "Señores:\nPor medio de la presente les comunico...", c["CONTENIDO"])
	assert.Equal(t, "PENDIENTE DE DILIGENCIA", c["RESULTADO"])
	assert.Equal(t, "", c["FECHA_DILIGENCIA"])

	f.store.Cartas["cn1"].Resultado = entity.CartaBajoPuerta
	f.store.Cartas["cn1"].FechaDiligencia = fecha(2026, 10, 20)
	_, err = f.svc.Carta(context.Background(), "u1", "cn1")
	require.NoError(t, err)
	assert.Equal(t, "DEJADA BAJO PUERTA", f.motor.ctx["RESULTADO"])
	assert.Equal(t, "20 DE OCTUBRE DE 2026", f.motor.ctx["FECHA_DILIGENCIA"])
}

func TestLibro_Genera(t *testing.T) {
	f := newFixture(t, PlantillaLibro)
	_, _, _, empresa := f.personas()
	f.store.Libros["lb1"] = &entity.Libro{
		ID: "lb1", Numero: "LB000001-2026", Anio: 2026, ClienteID: empresa.ID, TipoLibro: "Libro de actas",
		NumeroLibro: 2, Folios: 200, TipoLegalizacion: entity.LegalizacionHojasSueltas, FechaIngreso: hoy,
	}

	res, err := f.svc.Libro(context.Background(), "u1", "lb1")
	require.NoError(t, err)

	c := f.motor.ctx
	assert.Equal(t, "AUTOS DEL SUR S.A.C.", c["RAZON_SOCIAL"])
	assert.Equal(t, "20100070970", c["RUC"])
	assert.Equal(t, "LIBRO DE ACTAS", c["TIPO_LIBRO"])
	assert.Equal(t, "2", c["NUMERO_LIBRO"])
	assert.Equal(t, "SEGUNDO", c["NUMERO_LIBRO_LETRAS"])
	assert.Equal(t, "200", c["FOLIOS"])
	assert.Equal(t, "DOSCIENTOS", c["FOLIOS_LETRAS"])
	assert.Equal(t, "HOJAS SUELTAS", c["TIPO_LEGALIZACION"])
	assert.Equal(t, "libro_LB000001-2026.docx", res.Filename)
}

func TestExtraprotocolar_NoExiste(t *testing.T) {
	f := newFixture(t, PlantillaCarta, PlantillaLibro, PlantillaPoder)
	ctx := context.Background()

	_, err := f.svc.Carta(ctx, "u1", "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.Libro(ctx, "u1", "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.Poder(ctx, "u1", "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.PermisoViaje(ctx, "u1", "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ── con el motor .docx real ──────────────────────────────

func plantillaDocx(t *testing.T, cuerpo string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		cuerpo + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestCarta_MotorRealYDescarga(t *testing.T) {
	f := newFixture(t)
	tpl := plantillaDocx(t, `<w:p><w:r><w:t>{{ REMITENTE }} / {{ NO_EXISTE }}</w:t></w:r></w:p>`)
	f.svc.Templates = docx.NewTemplateStore(fstest.MapFS{PlantillaCarta: &fstest.MapFile{Data: tpl}})
	f.svc.Engine = docx.NewEngine()
	f.store.Cartas["cn1"] = &entity.Carta{ID: "cn1", Numero: "CN000001-2026", Anio: 2026, FechaIngreso: hoy, RemitenteNombre: "Juan"}
	ctx := context.Background()

	res, err := f.svc.Carta(ctx, "u1", "cn1")
	require.NoError(t, err)
	assert.Equal(t, []string{"NO_EXISTE"}, res.Missing)

	data, filename, err := f.svc.Download(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "carta_CN000001-2026.docx", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))

	got, err := f.svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"NO_EXISTE"}, got.Missing)

	ph, err := f.svc.Placeholders(ctx, PlantillaCarta)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"REMITENTE", "NO_EXISTE"}, ph.Placeholders)

	_, _, err = f.svc.Download(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList_FiltraPorTipo(t *testing.T) {
	f := newFixture(t, PlantillaCarta, PlantillaVehicular)
	k := f.transferencia()
	f.store.Cartas["cn1"] = &entity.Carta{ID: "cn1", Numero: "CN000001-2026", Anio: 2026, FechaIngreso: hoy}
	ctx := context.Background()

	_, err := f.svc.Vehicular(ctx, "u1", k.ID)
	require.NoError(t, err)
	_, err = f.svc.Carta(ctx, "u1", "cn1")
	require.NoError(t, err)

	out, err := f.svc.List(ctx, dto.DocumentoListRequest{Tipo: entity.DocCarta})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "cn1", out.Items[0].ReferenciaID)
	assert.Equal(t, 1, out.Page.Total)
}

// storageSinURL backend que no firma URLs, como el disco local.
type storageSinURL struct{ *memStorage }

func (storageSinURL) DownloadURL(context.Context, string) (string, error) { return "", nil }

func TestCarta_RegenerarConservaVersiones(t *testing.T) {
	f := newFixture(t)
	tpl := plantillaDocx(t, `<w:p><w:r><w:t>{{ RESULTADO }}</w:t></w:r></w:p>`)
	f.svc.Templates = docx.NewTemplateStore(fstest.MapFS{PlantillaCarta: &fstest.MapFile{Data: tpl}})
	f.svc.Engine = docx.NewEngine()
	f.store.Cartas["cn1"] = &entity.Carta{ID: "cn1", Numero: "CN000001-2026", Anio: 2026, FechaIngreso: hoy, Resultado: entity.CartaPendiente}
	ctx := context.Background()

	primera, err := f.svc.Carta(ctx, "u1", "cn1")
	require.NoError(t, err)
	f.store.Cartas["cn1"].Resultado = entity.CartaBajoPuerta
	segunda, err := f.svc.Carta(ctx, "u1", "cn1")
	require.NoError(t, err)

	assert.NotEqual(t, primera.StorageKey, segunda.StorageKey)
	assert.Len(t, f.storage.objetos, 2)

	viejo, _, err := f.svc.Download(ctx, primera.ID)
	require.NoError(t, err)
	nuevo, _, err := f.svc.Download(ctx, segunda.ID)
	require.NoError(t, err)
	assert.NotEqual(t, viejo, nuevo, "cada registro descarga su propia versión")
}

func TestDownloadURL_SinFirmaUsaRutaDeLaAPI(t *testing.T) {
	f := newFixture(t, PlantillaCarta)
	f.svc.Storage = storageSinURL{f.storage}
	f.store.Cartas["cn1"] = &entity.Carta{ID: "cn1", Numero: "CN000001-2026", Anio: 2026, FechaIngreso: hoy}
	ctx := context.Background()

	res, err := f.svc.Carta(ctx, "u1", "cn1")
	require.NoError(t, err)
	assert.Equal(t, "/api/documentos/"+res.ID+"/descarga", res.DownloadURL)

	got, err := f.svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.DownloadURL, got.DownloadURL)

	out, err := f.svc.List(ctx, dto.DocumentoListRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, res.DownloadURL, out.Items[0].DownloadURL)
}
