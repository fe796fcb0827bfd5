package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for documents in the vector store.
// It is derived from document content so that re-ingesting the same
// corpus produces the same IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces the identical ID, which lets
// store backends upsert instead of duplicating on re-runs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceUnknown is the sentinel used when a row carries no source.
const SourceUnknown = "Unknown"

// Hadith is a single row of the corpus file. It exists only for the
// duration of the read; the pipeline consumes Documents, not rows.
type Hadith struct {
	Source        string // collection the hadith belongs to (e.g. "Sahih Bukhari")
	HadithNumber  int
	ChapterNumber int
	Chapter       string
	ChainIndex    string // comma-separated narrator chain indices
	TextArabic    string
	TextEnglish   string
}

// Document is the unit persisted to the vector store: the bilingual
// content plus the row's metadata. Immutable once mapped.
type Document struct {
	Content  string
	Metadata map[string]any
}

// SearchResult is a similarity-search hit with its relevance score.
type SearchResult struct {
	Document Document
	Score    float32
}

// CheckpointSchemaVersion is the current schema version of the persisted
// progress checkpoint. Loaders must reject versions they do not know.
const CheckpointSchemaVersion = 1

// Checkpoint records batch-level insertion progress so an interrupted run
// can resume. It always reflects a batch boundary, never a partial batch.
type Checkpoint struct {
	SchemaVersion int `json:"version"`

	// CurrentBatch is the 0-based index of the next unprocessed batch.
	CurrentBatch int `json:"current_batch"`

	// Cumulative counts across the whole run, including any portion
	// completed before a resume.
	SuccessfulBatches int `json:"successful_batches"`
	FailedBatches     int `json:"failed_batches"`

	Timestamp time.Time `json:"timestamp"`
}
