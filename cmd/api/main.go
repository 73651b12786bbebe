package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/admin-panel-api/internal/application/notify"
	"github.com/jhoicas/admin-panel-api/internal/application/records"
	"github.com/jhoicas/admin-panel-api/internal/application/session"
	"github.com/jhoicas/admin-panel-api/internal/application/settings"
	"github.com/jhoicas/admin-panel-api/internal/application/view"
	"github.com/jhoicas/admin-panel-api/internal/domain/entity"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/remote"
	"github.com/jhoicas/admin-panel-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/admin-panel-api/internal/interfaces/http"
	"github.com/jhoicas/admin-panel-api/pkg/config"
	"github.com/jhoicas/admin-panel-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("demo", cfg.App.AllowDemo).
		Msg("iniciando aplicación")

	// Storage local del dispositivo: un JSON por clave o una tabla kv en SQLite.
	var kv storage.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		kv, err = storage.NewSQLiteStore(cfg.Storage.Path)
	default:
		kv, err = storage.NewFileStore(cfg.Storage.Path)
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("abriendo storage local")
	}
	defer kv.Close()

	sessions := session.New(kv, log, cfg.App.AllowDemo)
	recs := records.New(kv, log)
	prefs := settings.New(kv, log)
	notifier := notify.NewCenter(log)

	remoteClient := remote.NewClient(cfg.Remote.BaseURL, time.Duration(cfg.Remote.TimeoutSeconds)*time.Second, log)
	snap := remote.NewSnapshot(remoteClient)

	engine := view.NewEngine(
		func() []entity.Record { return snap.Get().Data },
		recs.List,
		time.Duration(cfg.Search.DebounceMillis)*time.Millisecond,
	)
	defer engine.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Admin Panel API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions: sessions,
		Records:  recs,
		Snapshot: snap,
		Engine:   engine,
		Notifier: notifier,
		Prefs:    prefs,
		JWT: httpRouter.JWTSettings{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		AllowDemo: cfg.App.AllowDemo,
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
