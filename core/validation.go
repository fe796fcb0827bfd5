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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//
// NOT validated:
//   - Metadata (sentinel defaults are legal values; an empty map is fine)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}

// ValidateCheckpoint validates a Checkpoint according to domain rules.
//
// Validation rules:
//   - SchemaVersion must be a known version
//   - CurrentBatch must not be negative
//   - Batch counters must not be negative
func ValidateCheckpoint(cp *Checkpoint) error {
	if cp == nil {
		return fmt.Errorf("%w: checkpoint is nil", ErrInvalidCheckpoint)
	}

	if cp.SchemaVersion != CheckpointSchemaVersion {
		return fmt.Errorf("%w: unknown schema version %d", ErrInvalidCheckpoint, cp.SchemaVersion)
	}

	if cp.CurrentBatch < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCheckpoint, ErrNegativeBatchIndex)
	}

	if cp.SuccessfulBatches < 0 || cp.FailedBatches < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCheckpoint, ErrNegativeBatchCount)
	}

	return nil
}
