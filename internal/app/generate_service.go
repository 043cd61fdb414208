package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmrzaf/jsonfixture/internal/domain"
	"github.com/mmrzaf/jsonfixture/internal/fixture"
	"github.com/mmrzaf/jsonfixture/internal/generators"
	"github.com/mmrzaf/jsonfixture/internal/hashing"
	"github.com/mmrzaf/jsonfixture/internal/infra/repos/profiles"
	"github.com/mmrzaf/jsonfixture/internal/infra/repos/runs"
	"github.com/mmrzaf/jsonfixture/internal/jsontext"
	"github.com/mmrzaf/jsonfixture/internal/logging"
	"github.com/mmrzaf/jsonfixture/internal/registry"
	"github.com/mmrzaf/jsonfixture/internal/validation"
)

type GenerateService struct {
	profileRepo profiles.Repository
	runRepo     runs.Repository
	keyRegistry *registry.KeyNamerRegistry
	validator   *validation.Validator
	logger      *logging.Logger
}

// NewGenerateService wires the service. runRepo may be nil, in which case
// runs are not recorded.
func NewGenerateService(
	profileRepo profiles.Repository,
	runRepo runs.Repository,
	keyRegistry *registry.KeyNamerRegistry,
	logger *logging.Logger,
) *GenerateService {
	return &GenerateService{
		profileRepo: profileRepo,
		runRepo:     runRepo,
		keyRegistry: keyRegistry,
		validator:   validation.NewValidator(keyRegistry),
		logger:      logger.WithComponent("generate"),
	}
}

// ResolveProfile picks the base profile for req and applies its overrides.
func (s *GenerateService) ResolveProfile(req *domain.GenerateRequest) (*domain.Profile, error) {
	var profile *domain.Profile
	var err error

	switch {
	case req.Profile != nil:
		cp := *req.Profile
		profile = &cp
	case req.ProfilePath != "":
		profile, err = s.profileRepo.GetByPath(req.ProfilePath)
	case req.ProfileName != "":
		profile, err = s.profileRepo.Get(req.ProfileName)
	default:
		profile = domain.DefaultProfile()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if req.Count != nil {
		profile.Count = *req.Count
	}
	if req.Output != "" {
		profile.Output = req.Output
	}
	if req.Seed != nil {
		profile.Seed = *req.Seed
	}
	if req.Style != "" {
		profile.Style = req.Style
	}
	if req.Keys != "" {
		profile.Keys = req.Keys
	}
	if req.Delimiter != "" {
		profile.Delimiter = req.Delimiter
	}

	if err := s.validator.ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	s.logger.Debugw("profile resolved", map[string]any{
		"profile": profile.Name,
		"count":   profile.Count,
		"seed":    profile.Seed,
		"style":   profile.Style,
		"keys":    profile.Keys,
	})
	return profile, nil
}

func (s *GenerateService) newGenerator(profile *domain.Profile) (*generators.Generator, jsontext.Style, error) {
	keys, err := s.keyRegistry.Get(profile.Keys)
	if err != nil {
		return nil, jsontext.Style{}, err
	}
	style, err := jsontext.ParseStyle(profile.Style)
	if err != nil {
		return nil, jsontext.Style{}, err
	}
	gen := generators.New(profile.Seed,
		generators.WithLimits(profile.Limits),
		generators.WithKeyNamer(keys),
	)
	return gen, style, nil
}

// Generate writes the fixture file described by req. The returned run is
// non-nil whenever generation started, including on write failure.
func (s *GenerateService) Generate(req *domain.GenerateRequest, progress fixture.Progress) (*domain.Run, error) {
	profile, err := s.ResolveProfile(req)
	if err != nil {
		return nil, err
	}

	configHash, err := hashing.HashProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to hash profile: %w", err)
	}

	gen, style, err := s.newGenerator(profile)
	if err != nil {
		return nil, err
	}

	run := &domain.Run{
		ID:          uuid.NewString(),
		ProfileName: profile.Name,
		Output:      profile.Output,
		Count:       profile.Count,
		Seed:        profile.Seed,
		ConfigHash:  configHash,
		Status:      domain.RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if s.runRepo != nil {
		if err := s.runRepo.Create(run); err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
	}

	s.logger.Infow("run.started", map[string]any{
		"run_id":  run.ID,
		"profile": profile.Name,
		"output":  profile.Output,
		"count":   profile.Count,
		"seed":    profile.Seed,
	})

	stats := generators.NewStats()
	opts := []fixture.Option{
		fixture.WithWrapper(fixture.RawStringWrapper(profile.Delimiter)),
		fixture.WithStyle(style),
		fixture.WithStats(stats),
	}
	if progress != nil {
		opts = append(opts, fixture.WithProgress(progress))
	}

	written, err := fixture.NewWriter(gen, opts...).WriteFile(profile.Output, profile.Count)
	if err != nil {
		s.logger.Errorw("run.failed", map[string]any{"run_id": run.ID, "error": err.Error()})
		s.finish(run, domain.RunStatusFailed, nil, err.Error())
		return run, fmt.Errorf("failed to write %s: %w", profile.Output, err)
	}

	completed := time.Now().UTC()
	runStats := &domain.RunStats{
		Documents:       stats.Documents,
		BytesWritten:    written,
		DurationSeconds: completed.Sub(run.StartedAt).Seconds(),
		KindCounts:      stats.KindCounts,
		MaxDepth:        stats.MaxDepth,
	}
	s.finish(run, domain.RunStatusSuccess, runStats, "")

	s.logger.Infow("run.completed", map[string]any{
		"run_id":   run.ID,
		"docs":     runStats.Documents,
		"bytes":    runStats.BytesWritten,
		"duration": runStats.DurationSeconds,
	})
	return run, nil
}

func (s *GenerateService) finish(run *domain.Run, status domain.RunStatus, stats *domain.RunStats, errMsg string) {
	now := time.Now().UTC()
	run.Status = status
	run.CompletedAt = &now
	run.Error = errMsg
	if stats != nil {
		statsJSON, _ := json.Marshal(stats)
		run.Stats = statsJSON
	}
	if s.runRepo == nil {
		return
	}
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Error("Failed to update run %s: %v", run.ID, err)
	}
}

// Sample generates n documents in memory with the resolved profile and
// returns their JSON text. No file is written and no run is recorded.
func (s *GenerateService) Sample(req *domain.GenerateRequest, n int) ([][]byte, error) {
	profile, err := s.ResolveProfile(req)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("count must be >= 0, got %d", n)
	}
	gen, style, err := s.newGenerator(profile)
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, jsontext.Marshal(gen.GenerateDocument(), style))
	}
	return docs, nil
}

func (s *GenerateService) GetRun(id string) (*domain.Run, error) {
	if s.runRepo == nil {
		return nil, fmt.Errorf("run history is disabled")
	}
	return s.runRepo.Get(id)
}

func (s *GenerateService) ListRuns(limit int, status string) ([]*domain.Run, error) {
	if s.runRepo == nil {
		return nil, fmt.Errorf("run history is disabled")
	}
	return s.runRepo.List(limit, status)
}
