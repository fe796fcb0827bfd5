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


package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sanadlabs/hadithvec/checkpoint"
	"github.com/sanadlabs/hadithvec/core"
	"github.com/sanadlabs/hadithvec/store"
)

const (
	// DefaultBatchSize is the default number of documents per batch.
	DefaultBatchSize = 25

	// DefaultCheckpointEvery is how many successful batches pass between
	// checkpoint writes.
	DefaultCheckpointEvery = 10
)

// Config holds configuration for the insertion pipeline.
type Config struct {
	// BatchSize is the number of documents submitted per store call.
	BatchSize int

	// MaxRetries is the total number of attempts for a failing batch.
	MaxRetries int

	// RetryBaseDelay is the wait before the first retry; it doubles on
	// each further retry.
	RetryBaseDelay time.Duration

	// BatchDelay is the fixed pause after every batch, successful or not,
	// to bound load on the store.
	BatchDelay time.Duration

	// CheckpointEvery is how many successful batches pass between
	// checkpoint writes.
	CheckpointEvery int
}

// DefaultConfig returns a Config with the defaults the corpus was
// originally ingested with.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:       DefaultBatchSize,
		MaxRetries:      3,
		RetryBaseDelay:  2 * time.Second,
		BatchDelay:      500 * time.Millisecond,
		CheckpointEvery: DefaultCheckpointEvery,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be greater than 0, got %d", c.BatchSize)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max retries must be greater than 0, got %d", c.MaxRetries)
	}
	if c.CheckpointEvery <= 0 {
		return fmt.Errorf("checkpoint interval must be greater than 0, got %d", c.CheckpointEvery)
	}
	if c.RetryBaseDelay < 0 || c.BatchDelay < 0 {
		return fmt.Errorf("delays cannot be negative")
	}
	return nil
}

// Pipeline delivers documents to the vector store in ordered batches with
// retry, pacing, checkpointing and resume.
type Pipeline struct {
	store       store.VectorStore
	checkpoints *checkpoint.Store
	config      *Config
	progress    io.Writer
	logger      *slog.Logger
}

// NewPipeline creates an insertion pipeline.
// progress: where to write progress output (typically os.Stderr)
func NewPipeline(vs store.VectorStore, checkpoints *checkpoint.Store, config *Config, progress io.Writer) (*Pipeline, error) {
	if vs == nil {
		return nil, ErrStoreRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointStoreRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Pipeline{
		store:       vs,
		checkpoints: checkpoints,
		config:      config,
		progress:    progress,
		logger:      slog.Default().With("component", "ingest-pipeline"),
	}, nil
}

// Summary reports the outcome of a batch run.
type Summary struct {
	// TotalBatches is the number of batches the corpus partitions into.
	TotalBatches int

	// StartBatch is the first batch index attempted; nonzero when the run
	// resumed from a checkpoint.
	StartBatch int

	// Cumulative counts, including any portion completed before a resume.
	SuccessfulBatches int
	FailedBatches     int
}

// Partition splits documents into contiguous batches of batchSize; the
// last batch may be smaller. A non-positive batchSize falls back to the
// default.
func Partition(docs []core.Document, batchSize int) [][]core.Document {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var batches [][]core.Document
	for i := 0; i < len(docs); i += batchSize {
		end := i + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[i:end])
	}
	return batches
}

// Run delivers documents to the store in ordered batches.
//
// When resume is true and a checkpoint exists, batches below the
// checkpoint's current batch are skipped and the cumulative counters
// continue from it; an unreadable checkpoint degrades to a fresh run with
// a warning. Exhausting all retries marks a batch failed and the run moves
// on. On completion of all batches the checkpoint is deleted regardless of
// per-batch outcomes. Cancellation writes a checkpoint at the stopping
// point and returns the context error; batch failures surface only through
// the summary.
func (p *Pipeline) Run(ctx context.Context, docs []core.Document, resume bool) (*Summary, error) {
	batches := Partition(docs, p.config.BatchSize)
	total := len(batches)

	start, successful, failed := 0, 0, 0
	if resume {
		cp, err := p.checkpoints.Load()
		switch {
		case err != nil:
			p.logger.Warn("could not load progress, starting from the first batch", "err", err)
		case cp != nil:
			start = cp.CurrentBatch
			successful = cp.SuccessfulBatches
			failed = cp.FailedBatches
			if start > total {
				p.logger.Warn("checkpoint is beyond the corpus, nothing left to do",
					"checkpointBatch", start, "totalBatches", total)
				start = total
			}
			p.logger.Info("resuming from checkpoint",
				"batch", start, "successful", successful, "failed", failed)
		}
	}

	p.logger.Info("starting batch insertion",
		"documents", len(docs), "batchSize", p.config.BatchSize,
		"totalBatches", total, "startBatch", start)

	tracker := NewProgressTracker(p.progress, total, 1)
	tracker.Start()
	tracker.Update(start)

	summary := &Summary{TotalBatches: total, StartBatch: start}

	for i := start; i < total; i++ {
		err := RetryWithBackoff(ctx, func() error {
			return p.store.AddDocuments(ctx, batches[i])
		}, p.config.MaxRetries, p.config.RetryBaseDelay)

		if ctx.Err() != nil {
			// Interrupted mid-batch: record the resume point before leaving.
			p.saveProgress(i, successful, failed)
			summary.SuccessfulBatches = successful
			summary.FailedBatches = failed
			return summary, ctx.Err()
		}

		if err != nil {
			failed++
			p.logger.Error("batch failed after all attempts",
				"batch", i, "size", len(batches[i]),
				"attempts", p.config.MaxRetries, "err", err)
		} else {
			successful++
			if successful%p.config.CheckpointEvery == 0 {
				p.saveProgress(i+1, successful, failed)
			}
		}

		tracker.Increment(1)

		// Fixed pacing after every batch regardless of outcome.
		if err := sleep(ctx, p.config.BatchDelay); err != nil {
			p.saveProgress(i+1, successful, failed)
			summary.SuccessfulBatches = successful
			summary.FailedBatches = failed
			return summary, err
		}
	}

	tracker.Finish()

	if err := p.checkpoints.Clear(); err != nil {
		p.logger.Warn("could not remove progress file", "err", err)
	}

	summary.SuccessfulBatches = successful
	summary.FailedBatches = failed
	p.logger.Info("batch insertion complete",
		"successful", successful, "failed", failed, "totalBatches", total)
	return summary, nil
}

// saveProgress writes a checkpoint at a batch boundary. Failures are
// warnings: losing a checkpoint only costs re-doing work on resume.
func (p *Pipeline) saveProgress(nextBatch, successful, failed int) {
	err := p.checkpoints.Save(&core.Checkpoint{
		CurrentBatch:      nextBatch,
		SuccessfulBatches: successful,
		FailedBatches:     failed,
	})
	if err != nil {
		p.logger.Warn("could not save progress", "err", err)
	}
}
