package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/engine"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/export"
)

// Validation errors surfaced to handlers as 400s.
var (
	ErrMemberRequired = errors.New("user_id is required")
	ErrInvalidMode    = errors.New(`mode must be "taps" or "connections"`)
)

// Hour spans accepted by the bucketed views.
const (
	defaultRadarHours   = 24
	defaultNetworkHours = 168
	maxHours            = 24 * 366
)

// CommunityService fetches the export and assembles analytics views from it.
// Each call performs exactly one fetch; all computation is in-memory.
type CommunityService struct {
	source    export.Source
	assembler *engine.Assembler
	logger    *slog.Logger
}

// NewCommunityService wires a service over the given source and assembler.
func NewCommunityService(source export.Source, assembler *engine.Assembler, logger *slog.Logger) *CommunityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommunityService{source: source, assembler: assembler, logger: logger}
}

func (s *CommunityService) fetch(ctx context.Context, view string) (domain.Export, error) {
	exp, err := s.source.Fetch(ctx)
	if err != nil {
		return domain.Export{}, fmt.Errorf("fetch export for %s: %w", view, err)
	}
	s.logger.Debug("export fetched",
		"view", view,
		"taps", len(exp.Taps),
		"members", len(exp.Members),
		"dropped_taps", exp.DroppedTaps,
	)
	return exp, nil
}

func clampHours(hours, fallback int) int {
	if hours <= 0 {
		return fallback
	}
	if hours > maxHours {
		return maxHours
	}
	return hours
}

// Weekly produces the weekly recap view.
func (s *CommunityService) Weekly(ctx context.Context, p engine.WeeklyParams) (engine.WeeklyPayload, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return engine.WeeklyPayload{}, ErrMemberRequired
	}
	exp, err := s.fetch(ctx, "weekly")
	if err != nil {
		return engine.WeeklyPayload{}, err
	}
	return s.assembler.Weekly(exp, p), nil
}

// Radar produces the hourly personal-activity view.
func (s *CommunityService) Radar(ctx context.Context, p engine.RadarParams) (engine.RadarPayload, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return engine.RadarPayload{}, ErrMemberRequired
	}
	p.Hours = clampHours(p.Hours, defaultRadarHours)
	exp, err := s.fetch(ctx, "radar")
	if err != nil {
		return engine.RadarPayload{}, err
	}
	return s.assembler.Radar(exp, p), nil
}

// Network produces the hourly network-activity view.
func (s *CommunityService) Network(ctx context.Context, p engine.NetworkParams) (engine.NetworkPayload, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return engine.NetworkPayload{}, ErrMemberRequired
	}
	if !engine.ValidBucketMode(string(p.Mode)) {
		return engine.NetworkPayload{}, ErrInvalidMode
	}
	p.Hours = clampHours(p.Hours, defaultNetworkHours)
	exp, err := s.fetch(ctx, "network")
	if err != nil {
		return engine.NetworkPayload{}, err
	}
	return s.assembler.Network(exp, p), nil
}

// Quests produces the weekly quest-progress view.
func (s *CommunityService) Quests(ctx context.Context, p engine.QuestsParams) (engine.QuestsPayload, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return engine.QuestsPayload{}, ErrMemberRequired
	}
	exp, err := s.fetch(ctx, "quests")
	if err != nil {
		return engine.QuestsPayload{}, err
	}
	return s.assembler.Quests(exp, p), nil
}

// Health produces the relationship health view.
func (s *CommunityService) Health(ctx context.Context, p engine.HealthParams) (engine.HealthPayload, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return engine.HealthPayload{}, ErrMemberRequired
	}
	exp, err := s.fetch(ctx, "health")
	if err != nil {
		return engine.HealthPayload{}, err
	}
	return s.assembler.Health(exp, p), nil
}
