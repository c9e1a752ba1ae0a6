package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/swapnilyadv/CloneX/config"
	"github.com/swapnilyadv/CloneX/internal/storage/postgres"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker migrate [dir]")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "migrate":
		dir := "migrations"
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		runMigrate(ctx, dir)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, dir string) {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.NewConnection(ctx, dbCfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	applied, err := applyMigrations(ctx, db, os.DirFS(dir))
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("[migrate] applied %d file(s) from %s", applied, dir)
}
