package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/observability"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
	"github.com/yungbote/deckgen-backend/internal/platform/openai"
	"github.com/yungbote/deckgen-backend/internal/platform/promptstyle"
)

// fallbackExcerptRunes bounds how much of the input a fallback plan quotes.
const fallbackExcerptRunes = 200

// Draft is a raw plan produced from free text. Fallback is set when the
// completion step failed and the plan was synthesized from the input.
type Draft struct {
	Raw      any
	Fallback bool
	Reason   string
}

type PlanService interface {
	DraftPlan(ctx context.Context, content string) (Draft, error)
}

type planService struct {
	log    *logger.Logger
	client openai.Client
}

// NewPlanService builds the text-to-plan step. A nil client is allowed: every
// draft is then a fallback plan.
func NewPlanService(log *logger.Logger, client openai.Client) PlanService {
	serviceLog := log.With("service", "PlanService")
	if client == nil {
		serviceLog.Warn("no completion client configured; drafts will use fallback plans")
	}
	return &planService{log: serviceLog, client: client}
}

func (s *planService) DraftPlan(ctx context.Context, content string) (Draft, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Draft{}, ErrEmptyContent
	}
	ctx, span := observability.Tracer("services").Start(ctx, "plan.draft")
	defer span.End()
	start := time.Now()

	raw, err := s.complete(ctx, content)
	if err != nil {
		if ctx.Err() != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "canceled")
			return Draft{}, ctx.Err()
		}
		observability.Current().ObserveStage("draft", "fallback", time.Since(start))
		span.SetAttributes(attribute.Bool("plan.fallback", true))
		s.log.WithContext(ctx).Warn("completion failed, using fallback plan", "error", err.Error())
		return Draft{Raw: FallbackPlan(content), Fallback: true, Reason: err.Error()}, nil
	}
	observability.Current().ObserveStage("draft", "ok", time.Since(start))
	return Draft{Raw: raw}, nil
}

func (s *planService) complete(ctx context.Context, content string) (any, error) {
	if s.client == nil {
		return nil, ErrCompletionUnavailable
	}
	text, err := s.client.GenerateText(ctx, planSystemPrompt, promptstyle.ApplyUser(planUserPrompt(content), content))
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	obj, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}
	raw, err := plan.Decode(obj)
	if err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return raw, nil
}

// FallbackPlan is the two-slide plan used when no completion is available:
// a title slide and a content slide quoting the start of the input.
func FallbackPlan(content string) plan.Object {
	excerpt := strings.TrimSpace(content)
	if utf8.RuneCountInString(excerpt) > fallbackExcerptRunes {
		excerpt = string([]rune(excerpt)[:fallbackExcerptRunes]) + "..."
	}
	return plan.ObjectOf(
		"title", plan.DefaultTitle,
		"objective", "情報共有",
		"slides", []any{
			plan.ObjectOf(
				"slide_number", 1,
				"title", "タイトル",
				"type", string(plan.TitleSlide),
				"content", plan.ObjectOf(
					plan.KeyMainMessage, plan.DefaultTitle,
					plan.KeySubtitle, "自動生成された資料",
				),
			),
			plan.ObjectOf(
				"slide_number", 2,
				"title", "内容",
				"type", string(plan.ContentSlide),
				"content", plan.ObjectOf(
					plan.KeyMainMessage, excerpt,
					plan.KeySupportingPoints, []any{
						"詳細な分析が必要",
						"追加検討事項の整理",
						"次のステップの明確化",
					},
				),
			),
		},
	)
}
