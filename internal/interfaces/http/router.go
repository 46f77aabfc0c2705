package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/notaria-api/internal/application/auth"
	"github.com/jhoicas/notaria-api/internal/application/documentos"
	"github.com/jhoicas/notaria-api/internal/application/resumen"
	"github.com/jhoicas/notaria-api/internal/application/sisgen"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
	"github.com/jhoicas/notaria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	ClienteUC  *usecase.ClienteUseCase
	CatalogoUC *usecase.CatalogoUseCase
	NotariaUC  *usecase.NotariaUseCase
	KardexUC   *usecase.KardexUseCase
	PermisoUC  *usecase.PermisoViajeUseCase
	PoderUC    *usecase.PoderUseCase
	CartaUC    *usecase.CartaUseCase
	LibroUC    *usecase.LibroUseCase
	Documentos *documentos.Service
	SISGEN     *sisgen.Orchestrator
	Resumen    *resumen.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)
	notario := RequireRole(entity.RoleAdmin, entity.RoleNotario)

	protected.Post("/auth/register", admin, authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/documento/:tipo/:numero", clienteHandler.GetByDocumento)
	clientes.Get("/:id", clienteHandler.Get)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", admin, clienteHandler.Delete)

	// Catálogos
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	protected.Get("/condiciones", catalogoHandler.ListCondiciones)
	protected.Get("/tipos-acto", catalogoHandler.ListTiposActo)
	protected.Post("/tipos-acto", admin, catalogoHandler.CreateTipoActo)
	protected.Put("/tipos-acto/:codigo", admin, catalogoHandler.UpdateTipoActo)

	// Notaría
	notariaHandler := NewNotariaHandler(deps.NotariaUC)
	protected.Get("/notaria", notariaHandler.Get)
	protected.Put("/notaria", notario, notariaHandler.Save)

	// Kardex
	kardex := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC)
	kardex.Post("/", kardexHandler.Create)
	kardex.Get("/", kardexHandler.List)
	kardex.Get("/:id", kardexHandler.Get)
	kardex.Put("/:id", kardexHandler.Update)
	kardex.Delete("/:id", admin, kardexHandler.Delete)
	kardex.Post("/:id/contratantes", kardexHandler.AddContratante)
	kardex.Delete("/:id/contratantes/:contratanteId", kardexHandler.DeleteContratante)
	kardex.Put("/:id/vehiculo", kardexHandler.SaveVehiculo)
	kardex.Get("/:id/caratula", kardexHandler.Caratula)

	// Extraprotocolares
	registro(protected.Group("/permisos-viaje"), NewPermisoViajeHandler(deps.PermisoUC), admin)
	registro(protected.Group("/poderes"), NewPoderHandler(deps.PoderUC), admin)
	registro(protected.Group("/libros"), NewLibroHandler(deps.LibroUC), admin)
	cartaHandler := NewCartaHandler(deps.CartaUC)
	cartas := protected.Group("/cartas")
	registro(cartas, cartaHandler.RegistroHandler, admin)
	cartas.Put("/:id/diligencia", cartaHandler.Diligencia)

	// Documentos generados
	docs := protected.Group("/documentos")
	docHandler := NewDocumentoHandler(deps.Documentos)
	docs.Get("/", docHandler.List)
	docs.Get("/plantillas/:nombre/placeholders", docHandler.Placeholders)
	docs.Post("/vehicular/:id", docHandler.Vehicular)
	docs.Post("/no-contencioso/:id", docHandler.NoContencioso)
	docs.Post("/permiso-viaje/:id", docHandler.PermisoViaje)
	docs.Post("/poder/:id", docHandler.Poder)
	docs.Post("/carta/:id", docHandler.Carta)
	docs.Post("/libro/:id", docHandler.Libro)
	docs.Get("/:id", docHandler.Get)
	docs.Get("/:id/descarga", docHandler.Download)

	// SISGEN
	sis := protected.Group("/sisgen")
	sisgenHandler := NewSISGENHandler(deps.SISGEN)
	sis.Post("/busqueda", sisgenHandler.Search)
	sis.Post("/envios", notario, sisgenHandler.Export)
	sis.Get("/envios", sisgenHandler.History)
	sis.Get("/kardex/:id/xml", sisgenHandler.PreviewXML)

	// Resumen de actividad
	protected.Get("/resumen", NewResumenHandler(deps.Resumen).Get)
}

type crudHandler interface {
	Create(*fiber.Ctx) error
	List(*fiber.Ctx) error
	Get(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
}

// registro rutas CRUD estándar; el borrado pasa por deleteGuard.
func registro(g fiber.Router, h crudHandler, deleteGuard fiber.Handler) {
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", deleteGuard, h.Delete)
}
