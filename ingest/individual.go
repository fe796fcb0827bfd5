package ingest

import (
	"context"

	"github.com/sanadlabs/hadithvec/core"
)

// IndividualSummary reports the outcome of one-at-a-time insertion.
type IndividualSummary struct {
	TotalDocuments      int
	SuccessfulDocuments int
	FailedDocuments     int
}

// RunIndividual inserts documents one at a time: no batching, no retry,
// no checkpointing. A failing document is logged and skipped; the loop
// continues. Intended for small corpora and debugging.
func (p *Pipeline) RunIndividual(ctx context.Context, docs []core.Document) (*IndividualSummary, error) {
	p.logger.Info("starting individual insertion", "documents", len(docs))

	summary := &IndividualSummary{TotalDocuments: len(docs)}

	tracker := NewProgressTracker(p.progress, len(docs), 1)
	tracker.Start()

	for i, doc := range docs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		if err := p.store.AddDocuments(ctx, []core.Document{doc}); err != nil {
			summary.FailedDocuments++
			p.logger.Error("failed to insert document", "index", i, "err", err)
		} else {
			summary.SuccessfulDocuments++
		}

		tracker.Increment(1)
	}

	tracker.Finish()
	p.logger.Info("individual insertion complete",
		"successful", summary.SuccessfulDocuments, "failed", summary.FailedDocuments)
	return summary, nil
}
