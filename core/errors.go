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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidCheckpoint indicates a Checkpoint failed validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrNegativeBatchIndex indicates a checkpoint batch index below zero.
	ErrNegativeBatchIndex = errors.New("batch index cannot be negative")

	// ErrNegativeBatchCount indicates a negative batch counter.
	ErrNegativeBatchCount = errors.New("batch counts cannot be negative")
)
