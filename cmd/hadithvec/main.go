// Copyright 2025 Sanad Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sanadlabs/hadithvec/ai"
	"github.com/sanadlabs/hadithvec/ai/googleai"
	"github.com/sanadlabs/hadithvec/checkpoint"
	"github.com/sanadlabs/hadithvec/config"
	"github.com/sanadlabs/hadithvec/core"
	"github.com/sanadlabs/hadithvec/corpus"
	"github.com/sanadlabs/hadithvec/ingest"
	"github.com/sanadlabs/hadithvec/store"
	"github.com/sanadlabs/hadithvec/store/pgvector"
	"github.com/sanadlabs/hadithvec/store/qdrant"
)

func main() {
	app := &cli.App{
		Name:  "hadithvec",
		Usage: "Hadith corpus ingestion into a vector store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a dotenv file (defaults to .env if present)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Read the hadith CSV and insert documents into the vector store",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "csv",
						Aliases: []string{"f"},
						Usage:   "Path to the hadith CSV file",
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Vector collection name",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to insert in each batch",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for a failing batch",
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
					},
					&cli.DurationFlag{
						Name:  "batch-delay",
						Usage: "Pause between consecutive batches",
					},
					&cli.StringFlag{
						Name:  "checkpoint",
						Usage: "Path of the insertion progress file",
					},
					&cli.BoolFlag{
						Name:  "individual",
						Usage: "Insert documents one at a time instead of in batches",
					},
					&cli.BoolFlag{
						Name:  "no-resume",
						Usage: "Ignore any existing checkpoint and start from the first batch",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a similarity search against the collection",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Vector collection name",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"k"},
						Usage:   "Number of hits to return",
						Value:   5,
					},
				},
			},
			{
				Name:   "ping",
				Usage:  "Verify the vector store connection with a test insert and search",
				Action: pingCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Flags win over environment values.
	if c.IsSet("csv") {
		cfg.CSVPath = c.String("csv")
	}
	if c.IsSet("collection") {
		cfg.CollectionName = c.String("collection")
	}
	if c.IsSet("batch-size") {
		cfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("max-retries") {
		cfg.MaxRetries = c.Int("max-retries")
	}
	if c.IsSet("retry-delay") {
		cfg.RetryBaseDelay = c.Duration("retry-delay")
	}
	if c.IsSet("batch-delay") {
		cfg.BatchDelay = c.Duration("batch-delay")
	}
	if c.IsSet("checkpoint") {
		cfg.CheckpointPath = c.String("checkpoint")
	}
	if c.Bool("individual") {
		cfg.UseBatchInsert = false
	}
	if c.Bool("no-resume") {
		cfg.Resume = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reader := corpus.NewReader()
	hadiths, skipped, err := reader.ReadFile(cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}
	docs := corpus.DocumentsFromHadiths(hadiths)

	vs, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer vs.Close(context.Background())

	fmt.Fprintf(os.Stderr, "Corpus: %s (%d documents, %d rows skipped)\n", cfg.CSVPath, len(docs), skipped)
	fmt.Fprintf(os.Stderr, "Collection: %s (%s)\n", cfg.CollectionName, cfg.Backend)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", cfg.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	pipeline, err := ingest.NewPipeline(vs, checkpoint.NewStore(cfg.CheckpointPath), cfg.PipelineConfig(), os.Stderr)
	if err != nil {
		return err
	}

	start := time.Now()
	if !cfg.UseBatchInsert {
		summary, err := pipeline.RunIndividual(ctx, docs)
		if err != nil {
			return fmt.Errorf("individual insertion interrupted: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Inserted %d/%d documents (%d failed) in %s\n",
			summary.SuccessfulDocuments, summary.TotalDocuments,
			summary.FailedDocuments, time.Since(start).Round(time.Second))
		return nil
	}

	summary, err := pipeline.Run(ctx, docs, cfg.Resume)
	if err != nil {
		// The checkpoint carries the resume point for the next run.
		return fmt.Errorf("batch insertion interrupted: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Inserted %d/%d batches (%d failed) in %s\n",
		summary.SuccessfulBatches, summary.TotalBatches,
		summary.FailedBatches, time.Since(start).Round(time.Second))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a search query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	ctx := context.Background()
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("collection") {
		cfg.CollectionName = c.String("collection")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	vs, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer vs.Close(context.Background())

	results, err := vs.SimilaritySearch(ctx, query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: [%0.3f] %s\n", i, hit.Score, hit.Document.Content)
	}
	return nil
}

func pingCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	vs, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer vs.Close(context.Background())

	probe := core.Document{
		Content:  "test connection",
		Metadata: map[string]any{"source": "ping"},
	}
	if err := vs.AddDocuments(ctx, []core.Document{probe}); err != nil {
		return fmt.Errorf("test insert failed: %w", err)
	}

	results, err := vs.SimilaritySearch(ctx, "test connection", 1)
	if err != nil {
		return fmt.Errorf("test search failed: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("test document not found after insert")
	}

	fmt.Printf("Connection OK: %s (%s)\n", cfg.CollectionName, cfg.Backend)
	return nil
}

// loadConfig loads the environment-sourced configuration, honoring the
// global --env-file flag.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore builds the embedder and the configured vector store backend.
func openStore(ctx context.Context, cfg *config.Config) (store.VectorStore, error) {
	embedder, err := googleai.NewEmbedder(ctx, ai.NewConfig(
		ai.WithAPIKey(cfg.GoogleAPIKey),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	switch cfg.Backend {
	case config.BackendQdrant:
		vs, err := qdrant.NewStore(ctx, qdrant.Config{
			Host:           cfg.QdrantHost,
			Port:           cfg.QdrantPort,
			CollectionName: cfg.CollectionName,
			VectorSize:     cfg.EmbeddingDimensions,
			Embedder:       embedder,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open qdrant store: %w", err)
		}
		return vs, nil
	default:
		vs, err := pgvector.NewStore(ctx, pgvector.Config{
			ConnectionURL:  cfg.PostgresURL,
			CollectionName: cfg.CollectionName,
			Embedder:       embedder,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open pgvector store: %w", err)
		}
		return vs, nil
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
