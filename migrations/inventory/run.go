package main

import (
	"embed"

	"github.com/ghuser/fieldops/pkg/config"
	"github.com/ghuser/fieldops/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS, "goose_inventory_version"); err != nil {
		panic(err)
	}
}
