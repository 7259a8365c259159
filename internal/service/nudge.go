package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nexus-service/internal/model"
	"nexus-service/internal/store"
	"nexus-service/pkg/textgen"
	"nexus-service/prometheus"

	"go.uber.org/zap"
)

const (
	GeneralNudgeMessage  = "Stay hydrated and take regular breaks!"
	FallbackNudgeMessage = "Remember to stay hydrated and take a 5-minute break every hour!"

	coachPersona = "You are a wellness and productivity coach. Based on the user's data, provide ONE short, " +
		"actionable health or productivity nudge (2-3 sentences max). Be specific and encouraging. " +
		"Focus on what they can improve right now."

	contextWellnessLogs = 5
	contextActiveTasks  = 5
	maxTitleRunes       = 80
	maxContextRunes     = 2000
)

// NudgeResult is a served nudge and whether it was stored in the history
type NudgeResult struct {
	Nudge     model.Nudge
	Persisted bool
}

// NudgeService produces coaching nudges. It never fails the caller: any
// problem with the external generator degrades to a fixed fallback message.
type NudgeService struct {
	stores    *store.Stores
	dashboard *DashboardService
	generator textgen.Generator
	timeout   time.Duration
	log       *zap.Logger
}

// NewNudgeService creates a NudgeService. A nil generator behaves like textgen.Noop.
func NewNudgeService(stores *store.Stores, dashboard *DashboardService, generator textgen.Generator, timeout time.Duration, log *zap.Logger) *NudgeService {
	if generator == nil {
		generator = textgen.Noop{}
	}
	return &NudgeService{
		stores:    stores,
		dashboard: dashboard,
		generator: generator,
		timeout:   timeout,
		log:       log,
	}
}

// Generate builds a nudge for ownerID
func (s *NudgeService) Generate(ctx context.Context, ownerID string) NudgeResult {
	log := s.log.With(zap.String("user_id", ownerID))

	summary, err := s.renderContext(ctx, ownerID)
	if err != nil {
		log.Error("Failed to gather nudge context", zap.Error(err))
		return s.static(model.NudgeCategoryFallback)
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.generator.Generate(genCtx, textgen.Prompt{
		System: coachPersona,
		User:   "Analyze my data and give me a personalized nudge:\n" + summary,
	})
	if errors.Is(err, textgen.ErrNotConfigured) {
		return s.static(model.NudgeCategoryGeneral)
	}
	if err == nil && strings.TrimSpace(reply) == "" {
		err = textgen.ErrEmptyReply
	}
	if err != nil {
		prometheus.ObserveTextGen("error", time.Since(start))
		log.Error("Text generation failed, serving fallback nudge", zap.Error(err))
		return s.static(model.NudgeCategoryFallback)
	}
	prometheus.ObserveTextGen("ok", time.Since(start))

	nudge := model.Nudge{
		Message:  strings.TrimSpace(reply),
		Category: model.NudgeCategoryAI,
	}
	if err := s.stores.Nudges.Create(ctx, ownerID, &nudge); err != nil {
		log.Error("Failed to store nudge, serving fallback nudge", zap.Error(err))
		return s.static(model.NudgeCategoryFallback)
	}

	prometheus.RecordNudge(model.NudgeCategoryAI)
	log.Info("AI nudge generated", zap.String("nudge_id", nudge.ID))
	return NudgeResult{Nudge: nudge, Persisted: true}
}

// History returns the caller's persisted nudges, newest first
func (s *NudgeService) History(ctx context.Context, ownerID string) ([]model.Nudge, error) {
	nudges, err := s.stores.Nudges.History(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("nudge history: %w", err)
	}
	return nudges, nil
}

func (s *NudgeService) static(category string) NudgeResult {
	message := FallbackNudgeMessage
	if category == model.NudgeCategoryGeneral {
		message = GeneralNudgeMessage
	}
	prometheus.RecordNudge(category)
	return NudgeResult{Nudge: model.Nudge{
		Message:   message,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}}
}

// renderContext summarises the caller's data for the generator
func (s *NudgeService) renderContext(ctx context.Context, ownerID string) (string, error) {
	stats, err := s.dashboard.Stats(ctx, ownerID)
	if err != nil {
		return "", err
	}
	logs, err := s.stores.Wellness.Recent(ctx, ownerID, contextWellnessLogs)
	if err != nil {
		return "", err
	}
	tasks, err := s.stores.Tasks.ListActive(ctx, ownerID, contextActiveTasks)
	if err != nil {
		return "", err
	}
	return RenderContext(stats, logs, tasks), nil
}

// RenderContext formats the dashboard snapshot, recent wellness logs and
// active tasks as the user message body. Titles and the whole text are
// truncated so a single prompt stays small.
func RenderContext(stats *Stats, logs []model.WellnessLog, tasks []model.Task) string {
	var b strings.Builder
	b.WriteString("User Stats:\n")
	fmt.Fprintf(&b, "- Tasks: %d/%d completed\n", stats.Tasks.Completed, stats.Tasks.Total)
	fmt.Fprintf(&b, "- Study consistency: %d%% across %d plans\n", stats.Study.Consistency, stats.Study.ActivePlans)
	fmt.Fprintf(&b, "- Resources saved: %d\n", stats.Resources.Total)
	fmt.Fprintf(&b, "- Today's water: %s glasses\n", formatNumber(stats.Wellness.TodayWater))
	fmt.Fprintf(&b, "- Today's pomodoros: %d\n", stats.Wellness.TodayPomodoros)

	b.WriteString("\nRecent wellness logs: [")
	for i, l := range logs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{type: %s, value: %s}", l.LogType, formatNumber(l.Value))
	}
	b.WriteString("]\nActive tasks: [")
	for i, t := range tasks {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{title: %q, priority: %s}", truncate(t.Title, maxTitleRunes), t.Priority)
	}
	b.WriteString("]")

	return truncate(b.String(), maxContextRunes)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
