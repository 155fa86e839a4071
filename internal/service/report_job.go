package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NewReportJob returns a cron job that logs the catalog summary and warns
// about each orphaned prompt.
func NewReportJob(reports *ReportService, log *zap.Logger, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		summary, err := reports.Summary(ctx)
		if err != nil {
			log.Error("catalog report failed", zap.Error(err))
			return
		}
		log.Info("catalog report", zap.Stringer("summary", summary))
		if summary.Orphaned == 0 {
			return
		}

		orphans, err := reports.Orphans(ctx)
		if err != nil {
			log.Error("orphan lookup failed", zap.Error(err))
			return
		}
		for _, p := range orphans {
			log.Warn("orphaned prompt",
				zap.Uint("prompt_id", p.ID),
				zap.String("name", p.Name),
				zap.Uintp("category_id", p.CategoryID),
			)
		}
	}
}
