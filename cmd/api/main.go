package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/notaria-api/internal/application/auth"
	"github.com/jhoicas/notaria-api/internal/application/documentos"
	"github.com/jhoicas/notaria-api/internal/application/resumen"
	appsisgen "github.com/jhoicas/notaria-api/internal/application/sisgen"
	"github.com/jhoicas/notaria-api/internal/application/usecase"
	"github.com/jhoicas/notaria-api/internal/infrastructure/docx"
	"github.com/jhoicas/notaria-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/notaria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/notaria-api/internal/infrastructure/postgres"
	infrasisgen "github.com/jhoicas/notaria-api/internal/infrastructure/sisgen"
	"github.com/jhoicas/notaria-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/notaria-api/internal/interfaces/http"
	"github.com/jhoicas/notaria-api/pkg/config"
	"github.com/jhoicas/notaria-api/pkg/logger"

	_ "github.com/jhoicas/notaria-api/docs"
)

// @title                      Notaría API
// @version                    1.0
// @description                API del sistema notarial: clientes, kardex, extraprotocolares, documentos .docx y exportación SISGEN.
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sisgen_env", cfg.SISGEN.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New()

	userRepo := postgres.NewUserRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	catalogoRepo := postgres.NewCatalogoRepository(pool)
	notariaRepo := postgres.NewNotariaRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	permisoRepo := postgres.NewPermisoViajeRepository(pool)
	poderRepo := postgres.NewPoderRepository(pool)
	cartaRepo := postgres.NewCartaRepository(pool)
	libroRepo := postgres.NewLibroRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	envioRepo := postgres.NewEnvioSISGENRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	// Usuario admin inicial: el alta de usuarios solo la hace un admin.
	if created, err := authUC.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin inicial")
	} else if created {
		log.Info().Str("email", cfg.App.AdminEmail).Msg("usuario admin creado")
	}

	kardexUC := usecase.NewKardexUseCase(
		kardexRepo, catalogoRepo, clienteRepo, notariaRepo, txRunner,
		infrapdf.NewCaratulaGenerator(),
	).WithMetrics(m)

	objectStorage, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}
	docService := documentos.NewService(documentos.Deps{
		Kardex:     kardexRepo,
		Catalogos:  catalogoRepo,
		Permisos:   permisoRepo,
		Poderes:    poderRepo,
		Cartas:     cartaRepo,
		Libros:     libroRepo,
		Clientes:   clienteRepo,
		Notaria:    notariaRepo,
		Documentos: documentoRepo,
		Templates:  docx.NewDirTemplateStore(cfg.Templates.Dir),
		Engine:     docx.NewEngine(),
		Storage:    objectStorage,
		Metrics:    m,
		Log:        log,
	})

	// Cliente SOAP SISGEN: solo en "test" o "prod". En "dev" el orquestador simula el envío.
	var sisgenSubmitter infrasisgen.Submitter
	if cfg.SISGEN.Env != infrasisgen.EnvDev {
		client, err := infrasisgen.NewSOAPClient(cfg.SISGEN)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente SOAP SISGEN")
		}
		sisgenSubmitter = client
	}
	sisgenOrchestrator := appsisgen.NewOrchestrator(
		kardexRepo, catalogoRepo, notariaRepo, envioRepo,
		infrasisgen.NewXMLBuilderService(), sisgenSubmitter,
		appsisgen.Config{Env: cfg.SISGEN.Env, Concurrency: cfg.SISGEN.Concurrency},
		log,
	).WithMetrics(m)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.SISGEN.Timeout + 30*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Notaría API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(userRepo),
		ClienteUC:  usecase.NewClienteUseCase(clienteRepo),
		CatalogoUC: usecase.NewCatalogoUseCase(catalogoRepo),
		NotariaUC:  usecase.NewNotariaUseCase(notariaRepo),
		KardexUC:   kardexUC,
		PermisoUC:  usecase.NewPermisoViajeUseCase(permisoRepo, clienteRepo, txRunner).WithMetrics(m),
		PoderUC:    usecase.NewPoderUseCase(poderRepo, clienteRepo, txRunner).WithMetrics(m),
		CartaUC:    usecase.NewCartaUseCase(cartaRepo, txRunner).WithMetrics(m),
		LibroUC:    usecase.NewLibroUseCase(libroRepo, clienteRepo, txRunner).WithMetrics(m),
		Documentos: docService,
		SISGEN:     sisgenOrchestrator,
		Resumen:    resumen.NewUseCase(postgres.NewResumenRepository(pool)),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
