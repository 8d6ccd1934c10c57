package action

import "context"

// ItemFailure records why one identifier of a batch failed.
type ItemFailure struct {
	ID      string
	Message string
}

// BatchReport summarizes a sweep.
type BatchReport struct {
	Total     int
	Succeeded int
	Failures  []ItemFailure
}

// Complete reports whether every item succeeded.
func (r BatchReport) Complete() bool {
	return len(r.Failures) == 0
}

// RunBatch calls fn for each id, one at a time in order. A failing item does
// not stop the sweep; msg converts its error to display text. Once ctx is
// done the remaining items are recorded as failed without being attempted.
func RunBatch(ctx context.Context, ids []string, fn func(ctx context.Context, id string) error, msg func(error) string) BatchReport {
	report := BatchReport{Total: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, ItemFailure{ID: id, Message: msg(err)})
			continue
		}
		if err := fn(ctx, id); err != nil {
			report.Failures = append(report.Failures, ItemFailure{ID: id, Message: msg(err)})
			continue
		}
		report.Succeeded++
	}
	return report
}
