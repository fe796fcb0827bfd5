// Package corpus reads the hadith corpus file and maps its rows into
// documents ready for vector-store insertion.
//
// The reader is deliberately tolerant: structurally malformed records are
// skipped and counted rather than aborting the run, and missing optional
// cells take documented sentinel values (0 for numeric fields, "Unknown"
// for the source, the empty string for other text fields).
package corpus
