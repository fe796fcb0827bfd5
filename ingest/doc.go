// Package ingest implements the batch insertion pipeline: it partitions
// documents into contiguous batches, submits them to the vector store in
// strictly increasing order, retries failed batches with exponential
// backoff, paces submissions with a fixed inter-batch delay, checkpoints
// progress periodically, and resumes from the last checkpoint after an
// interruption.
//
// Individual batch failures never abort a run; they are counted and
// reported in the final summary so operators can decide whether to re-run.
// A degraded one-document-at-a-time mode is available for small corpora
// and debugging.
package ingest
