package engine

import (
	"context"

	"melicalc/internal/history"
	"melicalc/internal/metrics"
)

// BatchItem is the outcome for one line of a batch run. Err is set when
// the item could not be evaluated; the rest of the batch continues.
type BatchItem struct {
	Input      string
	Evaluation *Evaluation
	Err        error
}

// ProgressFunc is called after each batch item with its position and
// outcome.
type ProgressFunc func(index, total int, item BatchItem)

// EvaluateBatch evaluates each input in order. Items run strictly
// sequentially so the rate limiter sees a steady request stream.
// Failures are isolated per item and recorded as failed history rows.
func (e *Evaluator) EvaluateBatch(ctx context.Context, raws []string, params Params, progress ProgressFunc) []BatchItem {
	items := make([]BatchItem, 0, len(raws))
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			items = append(items, BatchItem{Input: raw, Err: err})
			continue
		}

		ev, err := e.Evaluate(ctx, raw, params)
		item := BatchItem{Input: raw, Evaluation: ev, Err: err}
		if err != nil {
			metrics.BatchItemsTotal.WithLabelValues("failed").Inc()
			e.store.Append(history.Entry{
				Timestamp:  e.nowFunc(),
				SourceLink: raw,
				Status:     history.StatusFailed,
				FailReason: err.Error(),
			})
			e.log.Warn("batch item failed", "input", raw, "err", err)
		} else {
			metrics.BatchItemsTotal.WithLabelValues("ok").Inc()
		}
		items = append(items, item)

		if progress != nil {
			progress(i, len(raws), item)
		}
	}
	return items
}
