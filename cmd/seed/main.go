package main

import (
	"context"
	"os"

	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/catalog/postgres"
	"github.com/marcelsud/local-library/config"
	"github.com/marcelsud/local-library/fixtures"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

/* seed loads a fixtures file into the PostgreSQL catalog
 * Usage: go run cmd/seed/main.go --file fixtures.yaml [--reset]
 */

func main() {
	file := flag.String("file", "fixtures.yaml", "fixtures file to load")
	reset := flag.Bool("reset", false, "drop and recreate the tables first")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "seed").Logger()

	cfg, err := config.GetConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}
	if err := cfg.ValidatePostgres(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	loader := fixtures.NewLoader()
	if err := loader.Load(*file); err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("invalid fixtures")
	}

	ctx := context.Background()
	repo, err := postgres.NewRepository(cfg.PostgresConnectionString())
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to PostgreSQL")
	}
	defer repo.Close(ctx)

	if *reset {
		if err := repo.DropTables(ctx); err != nil {
			logger.Fatal().Err(err).Msg("dropping tables")
		}
	}
	if err := repo.CreateTables(ctx); err != nil {
		logger.Fatal().Err(err).Msg("creating tables")
	}

	res, err := loader.Apply(ctx, catalog.NewService(repo))
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding catalog")
	}
	logger.Info().
		Int("genres", res.Genres).
		Int("languages", res.Languages).
		Int("authors", res.Authors).
		Int("books", res.Books).
		Int("instances", res.Instances).
		Msg("catalog seeded")
}
