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


// Package checkpoint persists batch-insertion progress to a small versioned
// JSON file at a well-known path, enabling an interrupted run to resume.
//
// The file is written atomically (temp file + rename) and only at batch
// boundaries, so a crash can never leave a checkpoint pointing inside a
// batch. It stays human-readable on purpose: operators read it to decide
// whether to re-run.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/sanadlabs/hadithvec/core"
)

// DefaultPath is the well-known progress file, relative to the working
// directory.
const DefaultPath = "insertion_progress.json"

// Store reads and writes the progress checkpoint file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a checkpoint store for the given path.
// An empty path selects DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{
		path:   path,
		logger: slog.Default().With("component", "checkpoint"),
	}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Save persists a checkpoint atomically. The schema version and timestamp
// are stamped here so callers only supply progress counts.
func (s *Store) Save(cp *core.Checkpoint) error {
	cp.SchemaVersion = core.CheckpointSchemaVersion
	cp.Timestamp = time.Now().UTC()

	if err := core.ValidateCheckpoint(cp); err != nil {
		return err
	}

	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}

	s.logger.Debug("progress saved",
		"batch", cp.CurrentBatch,
		"successful", cp.SuccessfulBatches,
		"failed", cp.FailedBatches)
	return nil
}

// Load reads the checkpoint if one exists.
// Returns nil, nil when no checkpoint file is present.
// A corrupt or version-mismatched file is an error; callers treat it as a
// warning and start fresh.
func (s *Store) Load() (*core.Checkpoint, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp core.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	if err := core.ValidateCheckpoint(&cp); err != nil {
		return nil, err
	}

	return &cp, nil
}

// Clear removes the checkpoint file. Removing an absent file is not an
// error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
