// import_expenses carga gastos operativos de una tienda desde un CSV.
//
// Uso: go run ./cmd/import_expenses -store <id> [-encoding auto|utf8|cp1251] [-dry-run] gastos.csv
// Todo el archivo entra en una sola transacción: una fila rechazada no deja importaciones parciales.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/seller-analytics/pkg/config"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

func main() {
	storeID := flag.String("store", "", "id de la tienda (obligatorio)")
	encoding := flag.String("encoding", "auto", "codificación del archivo: auto, utf8, cp1251")
	dryRun := flag.Bool("dry-run", false, "solo valida, no escribe")
	flag.Parse()

	if *storeID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_expenses -store <id> [-encoding auto|utf8|cp1251] [-dry-run] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log = log.Child(log.With().Str("store_id", *storeID).Str("file", flag.Arg(0)))

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir csv")
	}
	defer f.Close()

	expenses, err := parseExpenses(f, *storeID, *encoding, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("csv inválido")
	}
	if *dryRun {
		log.Info().Int("rows", len(expenses)).Msg("dry-run: archivo válido")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store, err := postgres.NewStoreRepository(pool).GetByID(ctx, *storeID)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar tienda")
	}
	if store == nil {
		log.Fatal().Err(domain.ErrStoreNotFound).Msg("tienda inexistente")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar transacción")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repo := postgres.NewExpenseRepository(tx)
	for i, e := range expenses {
		if err := repo.Create(ctx, e); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Fatal().Int("row", i+2).Str("name", e.Name).Msg("gasto duplicado")
			}
			log.Fatal().Err(err).Int("row", i+2).Msg("insertar gasto")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("confirmar transacción")
	}

	log.Info().Int("rows", len(expenses)).Msg("gastos importados")
}
