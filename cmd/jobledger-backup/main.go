// jobledger-backup exporta o restaura la copia JSON del almacenamiento configurado.
//
// Uso:
//
//	jobledger-backup export [archivo.json]   (sin archivo: salida estándar)
//	jobledger-backup restore archivo.json    (reemplaza todos los datos)
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/jobledger/internal/application/backup"
	"github.com/jhoicas/jobledger/internal/bootstrap"
	"github.com/jhoicas/jobledger/pkg/config"
	"github.com/jhoicas/jobledger/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})

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

	switch os.Args[1] {
	case "export":
		var w io.Writer = os.Stdout
		if len(os.Args) > 2 {
			f, err := os.Create(os.Args[2])
			if err != nil {
				log.Fatal().Err(err).Msg("crear archivo")
			}
			defer f.Close()
			w = f
		}
		if err := ucs.Backup.WriteJSON(ctx, w); err != nil {
			log.Fatal().Err(err).Msg("exportar copia")
		}
		log.Info().Msg("copia exportada")
	case "restore":
		if len(os.Args) < 3 {
			usage()
		}
		f, err := os.Open(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir archivo")
		}
		defer f.Close()
		b, err := backup.Decode(f)
		if err != nil {
			log.Fatal().Err(err).Msg("leer copia")
		}
		res, err := ucs.Backup.WipeAndRestore(ctx, b)
		if err != nil {
			log.Fatal().Err(err).Msg("restaurar copia")
		}
		fmt.Fprintf(os.Stderr, "Restaurado: %d trabajos, %d registros, %d facturas\n", res.Jobs, res.Entries, res.Invoices)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Uso: jobledger-backup export [archivo] | restore <archivo>")
	os.Exit(2)
}
