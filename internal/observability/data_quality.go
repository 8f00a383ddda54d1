package observability

import (
	"context"
	"strings"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

// ReportPlanRepairs counts and logs the repairs normalization applied to an
// incoming plan. An empty report is a no-op.
func ReportPlanRepairs(ctx context.Context, log *logger.Logger, stage string, rep plan.Report) {
	if rep.Empty() {
		return
	}
	stage = strings.TrimSpace(stage)
	if stage == "" {
		stage = "unknown"
	}

	counts := map[plan.IssueCode]int{}
	for _, issue := range rep.Issues {
		counts[issue.Code]++
		Current().IncRepair(stage, string(issue.Code))
	}
	if log == nil {
		return
	}

	samples := rep.Strings()
	if len(samples) > 3 {
		samples = samples[:3]
	}
	kv := []interface{}{
		"stage", stage,
		"repairs", len(rep.Issues),
		"codes", counts,
		"samples", samples,
	}
	log = log.WithContext(ctx)
	if rep.Has(plan.IssueMalformedPlan) || rep.Has(plan.IssueSlidesMalformed) {
		log.Warn("plan repaired from malformed input", kv...)
		return
	}
	log.Info("plan normalized with repairs", kv...)
}
