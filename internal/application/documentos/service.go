// Package documentos genera los .docx de cada tipo de documento a partir de plantillas
// y registra el resultado en el almacenamiento de objetos.
package documentos

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/notaria-api/internal/application/dto"
	"github.com/jhoicas/notaria-api/internal/domain"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
	"github.com/jhoicas/notaria-api/internal/domain/repository"
	"github.com/jhoicas/notaria-api/internal/infrastructure/docx"
	"github.com/jhoicas/notaria-api/internal/infrastructure/storage"
	"github.com/jhoicas/notaria-api/pkg/logger"
)

// ContentTypeDocx tipo MIME de los documentos generados.
const ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Templates fuente de plantillas por nombre de archivo.
type Templates interface {
	Load(name string) ([]byte, error)
	First(names ...string) (string, error)
}

// Engine motor de reemplazo de marcadores.
type Engine interface {
	Render(template []byte, ctx map[string]string) (*docx.Result, error)
	Placeholders(template []byte) ([]string, error)
}

// Metrics observa los documentos generados; *metrics.Metrics lo implementa.
type Metrics interface {
	ObserveDocumento(tipo string, start time.Time)
}

type nopMetrics struct{}

func (nopMetrics) ObserveDocumento(string, time.Time) {}

// Deps dependencias del servicio.
type Deps struct {
	Kardex     repository.KardexRepository
	Catalogos  repository.CatalogoRepository
	Permisos   repository.PermisoViajeRepository
	Poderes    repository.PoderRepository
	Cartas     repository.CartaRepository
	Libros     repository.LibroRepository
	Clientes   repository.ClienteRepository
	Notaria    repository.NotariaRepository
	Documentos repository.DocumentoRepository
	Templates  Templates
	Engine     Engine
	Storage    storage.ObjectStorage
	Metrics    Metrics
	Log        *logger.Logger
}

// Service generación de documentos: un método por tipo de documento.
type Service struct {
	Deps
	log *logger.Logger
	now func() time.Time
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Service{Deps: d, log: log.Component("documentos"), now: time.Now}
}

// generacion datos de una generación concreta.
type generacion struct {
	tipo         string
	referenciaID string
	numero       string
	anio         int
	plantillas   []string // candidatas en orden de preferencia
	contexto     contexto
	userID       string
}

// generar resuelve la plantilla, renderiza, guarda en storage y registra el documento.
func (s *Service) generar(ctx context.Context, g generacion) (*dto.DocumentoResponse, error) {
	nombre, err := s.Templates.First(g.plantillas...)
	if err != nil {
		return nil, err
	}
	tpl, err := s.Templates.Load(nombre)
	if err != nil {
		return nil, err
	}

	start := s.now()
	res, err := s.Engine.Render(tpl, g.contexto)
	if err != nil {
		return nil, fmt.Errorf("documentos: render %s: %w", nombre, err)
	}
	s.Metrics.ObserveDocumento(g.tipo, start)

	id := uuid.New().String()
	key := storageKey(g.tipo, g.anio, g.numero, id)
	if err := s.Storage.Put(ctx, key, ContentTypeDocx, res.Document); err != nil {
		return nil, fmt.Errorf("documentos: guardar %s: %w", key, err)
	}

	doc := &entity.DocumentoGenerado{
		ID:           id,
		Tipo:         g.tipo,
		ReferenciaID: g.referenciaID,
		Plantilla:    nombre,
		StorageKey:   key,
		Filename:     fmt.Sprintf("%s_%s.docx", strings.ReplaceAll(g.tipo, "-", "_"), g.numero),
		Size:         int64(len(res.Document)),
		Faltantes:    res.Missing,
		GeneradoPor:  g.userID,
		CreatedAt:    s.now(),
	}
	if err := s.Documentos.Create(ctx, doc); err != nil {
		return nil, err
	}
	if len(res.Missing) > 0 {
		s.log.Warn().Str("tipo", g.tipo).Str("numero", g.numero).Strs("faltantes", res.Missing).Msg("plantilla con marcadores sin valor")
	}
	s.log.Info().Str("tipo", g.tipo).Str("numero", g.numero).Str("plantilla", nombre).Int64("bytes", doc.Size).Msg("documento generado")
	return s.toResponse(ctx, doc), nil
}

// storageKey documentos/<tipo>/<anio>/<numero>-<id>.docx; cada generación conserva su archivo.
func storageKey(tipo string, anio int, numero, id string) string {
	return path.Join("documentos", tipo, fmt.Sprint(anio), numero+"-"+id+".docx")
}

// descargaPath ruta de la API que sirve el documento cuando el storage no firma URLs.
func descargaPath(id string) string {
	return "/api/documentos/" + id + "/descarga"
}

// List lista documentos generados.
func (s *Service) List(ctx context.Context, in dto.DocumentoListRequest) (*dto.ListResponse[dto.DocumentoResponse], error) {
	in.DefaultPage()
	list, total, err := s.Documentos.List(ctx, repository.DocumentoFilter{
		Tipo:         in.Tipo,
		ReferenciaID: in.ReferenciaID,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentoResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentoResponse(d, ""))
	}
	return dto.NewList(items, in.PageRequest, total), nil
}

// Get devuelve el registro del documento con su URL de descarga.
func (s *Service) Get(ctx context.Context, id string) (*dto.DocumentoResponse, error) {
	d, err := s.Documentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return s.toResponse(ctx, d), nil
}

// Download devuelve el contenido del .docx y su nombre de archivo.
func (s *Service) Download(ctx context.Context, id string) ([]byte, string, error) {
	d, err := s.Documentos.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := s.Storage.Get(ctx, d.StorageKey)
	if err != nil {
		return nil, "", err
	}
	return data, d.Filename, nil
}

// Placeholders claves usadas por una plantilla.
func (s *Service) Placeholders(_ context.Context, nombre string) (*dto.PlaceholdersResponse, error) {
	tpl, err := s.Templates.Load(nombre)
	if err != nil {
		return nil, err
	}
	keys, err := s.Engine.Placeholders(tpl)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return &dto.PlaceholdersResponse{Plantilla: nombre, Placeholders: keys}, nil
}

func (s *Service) toResponse(ctx context.Context, d *entity.DocumentoGenerado) *dto.DocumentoResponse {
	url, err := s.Storage.DownloadURL(ctx, d.StorageKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", d.StorageKey).Msg("no se pudo firmar la URL de descarga")
		url = ""
	}
	return toDocumentoResponse(d, url)
}

func toDocumentoResponse(d *entity.DocumentoGenerado, url string) *dto.DocumentoResponse {
	if url == "" {
		url = descargaPath(d.ID)
	}
	missing := d.Faltantes
	if missing == nil {
		missing = []string{}
	}
	return &dto.DocumentoResponse{
		ID:           d.ID,
		Tipo:         d.Tipo,
		ReferenciaID: d.ReferenciaID,
		Plantilla:    d.Plantilla,
		Filename:     d.Filename,
		StorageKey:   d.StorageKey,
		Size:         d.Size,
		Missing:      missing,
		DownloadURL:  url,
		GeneradoPor:  d.GeneradoPor,
		CreatedAt:    d.CreatedAt,
	}
}

func faltan(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMissingData, fmt.Sprintf(format, args...))
}
