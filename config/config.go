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

// Package config loads runtime configuration from the process environment,
// optionally seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sanadlabs/hadithvec/ai"
	"github.com/sanadlabs/hadithvec/checkpoint"
	"github.com/sanadlabs/hadithvec/ingest"
)

// Vector store backends.
const (
	BackendPgvector = "pgvector"
	BackendQdrant   = "qdrant"
)

// Config is the full runtime configuration of the ingester.
type Config struct {
	// PostgresURL is the pgvector connection string. Required when the
	// backend is pgvector.
	PostgresURL string

	// GoogleAPIKey authenticates against the Gemini embedding API.
	GoogleAPIKey string

	// CollectionName is the vector collection documents land in.
	CollectionName string

	// CSVPath is the corpus file read by the ingest command.
	CSVPath string

	// Backend selects the vector store implementation.
	Backend string

	// QdrantHost and QdrantPort locate the qdrant gRPC endpoint.
	QdrantHost string
	QdrantPort int

	// EmbeddingModel and EmbeddingDimensions describe the embedding space.
	EmbeddingModel      string
	EmbeddingDimensions int

	// CheckpointPath is where insertion progress is persisted.
	CheckpointPath string

	// UseBatchInsert selects batch mode; individual mode otherwise.
	UseBatchInsert bool

	// Resume continues from an existing checkpoint when one is present.
	Resume bool

	BatchSize      int
	MaxRetries     int
	RetryBaseDelay time.Duration
	BatchDelay     time.Duration
}

// Load reads configuration from the environment. When dotenvPath is
// non-empty that file must exist; otherwise a ".env" in the working
// directory is applied if present. Real environment variables always win
// over dotenv values.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", dotenvPath, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		CollectionName: envString("COLLECTION_NAME", "rag_ahadees"),
		CSVPath:        envString("CSV_FILE_PATH", "all_hadiths_clean.csv"),
		Backend:        envString("VECTOR_BACKEND", BackendPgvector),
		QdrantHost:     envString("QDRANT_HOST", "localhost"),
		EmbeddingModel: envString("EMBEDDING_MODEL", ai.DefaultEmbeddingModel),
		CheckpointPath: envString("CHECKPOINT_PATH", checkpoint.DefaultPath),
		UseBatchInsert: envBool("USE_BATCH_INSERT", true),
		Resume:         envBool("RESUME", true),
		RetryBaseDelay: envDuration("RETRY_BASE_DELAY", 2*time.Second),
		BatchDelay:     envDuration("BATCH_DELAY", 500*time.Millisecond),
	}

	var err error
	if cfg.QdrantPort, err = envInt("QDRANT_PORT", 6334); err != nil {
		return nil, err
	}
	if cfg.EmbeddingDimensions, err = envInt("EMBEDDING_DIMENSIONS", 3072); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = envInt("BATCH_SIZE", ingest.DefaultBatchSize); err != nil {
		return nil, err
	}
	if cfg.MaxRetries, err = envInt("MAX_RETRIES", 3); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration is complete enough to run against the
// selected backend.
func (c *Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}

	switch c.Backend {
	case BackendPgvector:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the pgvector backend")
		}
	case BackendQdrant:
		if c.QdrantHost == "" {
			return fmt.Errorf("QDRANT_HOST is required for the qdrant backend")
		}
		if c.QdrantPort <= 0 {
			return fmt.Errorf("QDRANT_PORT must be positive, got %d", c.QdrantPort)
		}
	default:
		return fmt.Errorf("unknown vector backend %q (expected %q or %q)",
			c.Backend, BackendPgvector, BackendQdrant)
	}

	if c.CollectionName == "" {
		return fmt.Errorf("COLLECTION_NAME cannot be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("MAX_RETRIES must be positive, got %d", c.MaxRetries)
	}
	if c.EmbeddingDimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", c.EmbeddingDimensions)
	}
	return nil
}

// PipelineConfig translates the environment values into an ingest
// pipeline configuration.
func (c *Config) PipelineConfig() *ingest.Config {
	cfg := ingest.DefaultConfig()
	cfg.BatchSize = c.BatchSize
	cfg.MaxRetries = c.MaxRetries
	cfg.RetryBaseDelay = c.RetryBaseDelay
	cfg.BatchDelay = c.BatchDelay
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
