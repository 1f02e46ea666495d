package server

import (
	"context"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/export"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// SourceHealthService verifies export source reachability as part of health
// checks.
type SourceHealthService struct {
	Source export.Source
}

// Probe implements the HealthService interface.
func (s SourceHealthService) Probe(ctx context.Context) error {
	if s.Source == nil {
		return nil
	}
	return s.Source.Ping(ctx)
}
