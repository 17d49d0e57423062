package dashboards

import (
	"fmt"

	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/widgets"
)

// Service persists the canonical widget set for a project. Every write runs
// the input through the widget normalizer and lands as a single atomic
// upsert keyed by project, so concurrent saves cannot interleave a read and
// a stale write. Persistence failures surface unchanged; there is no retry.
type Service struct {
	repo     repository.DashboardRepository
	projects repository.ProjectRepository
}

// NewService creates a dashboard service from injected repositories.
func NewService(repo repository.DashboardRepository, projects repository.ProjectRepository) *Service {
	return &Service{repo: repo, projects: projects}
}

// Widgets returns the stored widget set for a project. Nil means the project
// has no dashboard configuration yet; an empty slice means it is configured
// with zero widgets.
func (s *Service) Widgets(projectID uint) ([]string, error) {
	return s.repo.GetWidgets(projectID)
}

// HasDashboard reports whether a configuration row exists for the project.
func (s *Service) HasDashboard(projectID uint) (bool, error) {
	return s.repo.Exists(projectID)
}

// ApplySelectedWidgets normalizes the caller-supplied identifiers (synonym
// resolution, dedup, unknown-drop) and upserts the resulting canonical set.
func (s *Service) ApplySelectedWidgets(projectID uint, widgetIDs []string) ([]string, error) {
	normalized := widgets.NormalizeStrings(widgetIDs)
	if err := s.repo.Upsert(projectID, normalized); err != nil {
		return nil, fmt.Errorf("failed to save dashboard for project %d: %w", projectID, err)
	}
	return normalized, nil
}

// ApplyIndustryDefaults computes the default bundle for the industry, unions
// it with any caller-supplied extras and upserts the result. It also records
// the industry on the project's profile.
func (s *Service) ApplyIndustryDefaults(projectID uint, industry string, extras ...string) ([]string, error) {
	effective := widgets.NormalizeIndustry(widgets.IndustryKey(industry))
	bundle := widgets.DefaultsForIndustry(effective)

	combined := make([]string, 0, len(bundle.All)+len(extras))
	for _, id := range bundle.All {
		combined = append(combined, string(id))
	}
	combined = append(combined, extras...)

	normalized := widgets.NormalizeStrings(combined)
	if err := s.repo.Upsert(projectID, normalized); err != nil {
		return nil, fmt.Errorf("failed to apply industry defaults for project %d: %w", projectID, err)
	}

	if err := s.projects.SetIndustry(projectID, string(effective)); err != nil {
		return nil, fmt.Errorf("failed to record industry for project %d: %w", projectID, err)
	}

	return normalized, nil
}
