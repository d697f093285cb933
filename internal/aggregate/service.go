package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cvgen-backend/cv/model"
	"cvgen-backend/cv/normalize"
	"cvgen-backend/cv/registry"
	"cvgen-backend/internal/shared/metrics"
	"cvgen-backend/internal/shared/telemetry"
)

// Service assembles the aggregate CV model for a subject. Every category
// fetch is independent; one slow or broken endpoint never blocks the rest.
type Service struct {
	Client *Client
}

// NewService builds an aggregation service over the given record client.
func NewService(client *Client) *Service {
	return &Service{Client: client}
}

// Aggregate fetches the subject profile plus every record category
// concurrently and merges the results into a fresh model. The previous
// model, if any, is not patched; callers replace it wholesale.
//
// A failed category fetch degrades to an empty sequence and one aggregated
// warning. Only a failed profile fetch fails the whole call, because a CV
// without its subject cannot anchor anything.
func (s *Service) Aggregate(ctx context.Context, subjectID string) (*model.AggregateModel, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject id required")
	}
	start := time.Now()

	subject, err := s.Client.FetchSubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("fetch subject profile: %w", err)
	}

	type result struct {
		section registry.Section
		records []model.DisplayRecord
		err     error
	}

	sections := fetchableSections()
	results := make([]result, len(sections))
	var wg sync.WaitGroup

	// All fetches are issued before any completion is awaited, so the
	// aggregation costs one round trip bounded by the slowest endpoint.
	for i, section := range sections {
		wg.Add(1)
		go func(i int, section registry.Section) {
			defer wg.Done()
			raws, err := s.Client.FetchCategory(ctx, section, subjectID)
			if err != nil {
				results[i] = result{section: section, err: err}
				return
			}
			records := make([]model.DisplayRecord, 0, len(raws))
			for _, raw := range raws {
				records = append(records, section.Normalize(raw, normalize.DefaultFallback))
			}
			results[i] = result{section: section, records: records}
		}(i, section)
	}
	wg.Wait()

	m := &model.AggregateModel{
		Subject: subject,
		Records: make(map[model.Category][]model.DisplayRecord, len(sections)),
	}
	for _, res := range results {
		if res.err != nil {
			m.Records[res.section.Category] = nil
			m.Warnings = append(m.Warnings, fmt.Sprintf("%s unavailable: %v", res.section.Category, res.err))
			continue
		}
		m.Records[res.section.Category] = res.records
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveAggregateDurationMs(durationMs)
	telemetry.Info("aggregate.complete", map[string]any{
		"subject_id":  subjectID,
		"categories":  len(sections),
		"warnings":    len(m.Warnings),
		"duration_ms": durationMs,
	})
	return m, nil
}

// fetchableSections excludes the profile layout: the personal section is
// populated from the subject itself, not a record endpoint.
func fetchableSections() []registry.Section {
	out := make([]registry.Section, 0, len(registry.Sections()))
	for _, section := range registry.Sections() {
		if section.Layout == registry.LayoutProfile {
			continue
		}
		out = append(out, section)
	}
	return out
}
