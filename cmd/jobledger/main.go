package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/jobledger/internal/bootstrap"
	httpRouter "github.com/jhoicas/jobledger/internal/interfaces/http"
	"github.com/jhoicas/jobledger/pkg/config"
	"github.com/jhoicas/jobledger/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	ucs, err := bootstrap.Wire(ctx, store, cfg.Settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar casos de uso")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		JobUC:      ucs.Jobs,
		SettingsUC: ucs.Settings,
		InvoiceUC:  ucs.Invoices,
		DocumentUC: ucs.Documents,
		OverviewUC: ucs.Overview,
		BackupUC:   ucs.Backup,
		Log:        log.Component("http"),
		LocalOnly:  true,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
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
