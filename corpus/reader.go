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


package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sanadlabs/hadithvec/core"
)

// Column names as they appear in the corpus file header.
const (
	colSource        = "source"
	colHadithNumber  = "hadith_no"
	colChapterNumber = "chapter_no"
	colChapter       = "chapter"
	colChainIndex    = "chain_indx"
	colTextArabic    = "text_ar"
	colTextEnglish   = "text_en"
)

// ErrEmptyCorpus indicates the corpus file has no header row.
var ErrEmptyCorpus = errors.New("corpus file is empty")

// Reader loads hadith rows from a CSV corpus file.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a corpus reader.
func NewReader() *Reader {
	return &Reader{
		logger: slog.Default().With("component", "corpus-reader"),
	}
}

// ReadFile loads all rows from the corpus file at path.
// Malformed records are skipped and counted in skipped; they never abort
// the read. An unreadable file or a missing header is an error.
func (r *Reader) ReadFile(path string) (rows []core.Hadith, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	rows, skipped, err = r.Read(f)
	if err != nil {
		return nil, skipped, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}

	r.logger.Info("loaded corpus file", "path", path, "rows", len(rows), "skipped", skipped)
	return rows, skipped, nil
}

// Read loads all rows from CSV data. The first record must be a header row
// naming the columns; unknown columns are ignored and missing optional
// columns default per row to their sentinels.
func (r *Reader) Read(src io.Reader) ([]core.Hadith, int, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // rows may be ragged; missing cells default

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, ErrEmptyCorpus
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var (
		rows    []core.Hadith
		skipped int
		line    int
	)
	for {
		line++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed record: report and keep going.
			skipped++
			r.logger.Warn("skipping malformed record", "line", line, "error", err)
			continue
		}

		rows = append(rows, core.Hadith{
			Source:        cell(record, index, colSource),
			HadithNumber:  intCell(record, index, colHadithNumber),
			ChapterNumber: intCell(record, index, colChapterNumber),
			Chapter:       cell(record, index, colChapter),
			ChainIndex:    cell(record, index, colChainIndex),
			TextArabic:    cell(record, index, colTextArabic),
			TextEnglish:   cell(record, index, colTextEnglish),
		})
	}

	return rows, skipped, nil
}

// cell returns the named column of a record, or "" when the column is
// absent from the header or the record is too short.
func cell(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// intCell parses the named column as an integer. Missing or unparseable
// cells take the documented sentinel 0. The corpus exports numeric columns
// both as plain integers and as float-formatted strings, so both forms
// are accepted.
func intCell(record []string, index map[string]int, name string) int {
	raw := cell(record, index, name)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}
