// Command importer loads the ingredient and tag catalogs from CSV files.
//
//	INGREDIENTS_CSV=data/ingredients.csv TAGS_CSV=data/tags.csv importer
//
// Rows already present are skipped, so the command can be rerun.
package main

import (
	"context"
	"os"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/logging"
	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/spf13/viper"
)

func main() {
	viper.SetDefault("INGREDIENTS_CSV", "data/ingredients.csv")
	viper.SetDefault("TAGS_CSV", "data/tags.csv")
	viper.AutomaticEnv()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(database.Config{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseDSN})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	catalog := services.NewCatalogService(repositories.NewGORMCatalogRepository(db))
	ctx := context.Background()

	if err := importIngredients(ctx, catalog, viper.GetString("INGREDIENTS_CSV")); err != nil {
		logging.Fatal().Err(err).Msg("ingredient import failed")
	}
	if err := importTags(ctx, catalog, viper.GetString("TAGS_CSV")); err != nil {
		logging.Fatal().Err(err).Msg("tag import failed")
	}
}

func importIngredients(ctx context.Context, catalog *services.CatalogService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := ReadIngredients(f)
	if err != nil {
		return err
	}
	added, err := catalog.ImportIngredients(ctx, rows)
	if err != nil {
		return err
	}
	logging.Info().Str("file", path).Int("rows", len(rows)).Int64("added", added).Msg("ingredients imported")
	return nil
}

func importTags(ctx context.Context, catalog *services.CatalogService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := ReadTags(f)
	if err != nil {
		return err
	}
	added, err := catalog.ImportTags(ctx, rows)
	if err != nil {
		return err
	}
	logging.Info().Str("file", path).Int("rows", len(rows)).Int64("added", added).Msg("tags imported")
	return nil
}
