package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/importer"
)

func main() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	impCfg, err := config.LoadImporter()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read importer configuration")
	}

	amount := flag.Int("amount", impCfg.BatchSize, "Number of questions to request from Open Trivia DB")
	baseURL := flag.String("base-url", impCfg.BaseURL, "Open Trivia DB base URL (defaults to OPENTDB_BASE_URL)")
	difficulty := flag.String("difficulty", impCfg.Difficulty, "easy, medium or hard; empty for any (defaults to IMPORTER_DIFFICULTY)")
	flag.Parse()

	pg, err := config.LoadPostgres()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read database configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, pg.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("host", pg.Host).Int("port", pg.Port).Msg("failed to connect to database")
	}
	defer pool.Close()

	client, err := importer.NewOpenTDBClient(*baseURL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("base_url", *baseURL).Msg("invalid Open Trivia DB url")
	}

	q := queries.New(pool)
	questions := repository.NewQuestionRepository(q)
	categories := repository.NewCategoryRepository(q)
	svc := catalog.NewService(questions, categories, nil, catalog.ServiceOptions{})

	imp := importer.New(client, svc, categories, log.Logger, importer.Options{Difficulty: *difficulty})
	res, err := imp.Import(ctx, *amount)
	if err != nil {
		log.Fatal().Err(err).Int("imported", res.Imported).Msg("import failed")
	}
	log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import finished")
}
