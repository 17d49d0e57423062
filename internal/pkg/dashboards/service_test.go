package dashboards

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.IndustryProfile{},
		&models.Dashboard{},
	))

	return NewService(
		repository.NewDashboardRepository(db),
		repository.NewProjectRepository(db),
	), db
}

func TestWidgetsNilBeforeFirstSave(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Widgets(1)
	require.NoError(t, err)
	assert.Nil(t, got, "no configuration row should read as nil, not empty")

	exists, err := svc.HasDashboard(1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplySelectedWidgetsNormalizesAndPersists(t *testing.T) {
	svc, _ := newTestService(t)

	saved, err := svc.ApplySelectedWidgets(7, []string{"budget", "contacts-list", "contacts-list"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"budget-overview", "project-contacts"}, saved)

	exists, err := svc.HasDashboard(7)
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := svc.Widgets(7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"budget-overview", "project-contacts"}, stored)
}

func TestApplySelectedWidgetsReplacesWholeSet(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ApplySelectedWidgets(3, []string{"timeline", "doc-repo"})
	require.NoError(t, err)

	saved, err := svc.ApplySelectedWidgets(3, []string{"budget-overview"})
	require.NoError(t, err)
	assert.Equal(t, []string{"budget-overview"}, saved)

	stored, err := svc.Widgets(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"budget-overview"}, stored)
}

func TestApplySelectedWidgetsEmptyListIsNotNil(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ApplySelectedWidgets(4, nil)
	require.NoError(t, err)

	stored, err := svc.Widgets(4)
	require.NoError(t, err)
	assert.NotNil(t, stored, "configured-with-zero-widgets must read as empty, not nil")
	assert.Empty(t, stored)
}

func TestApplyIndustryDefaultsUnknownBehavesLikeGeneral(t *testing.T) {
	svc, _ := newTestService(t)

	general, err := svc.ApplyIndustryDefaults(10, "general")
	require.NoError(t, err)

	unknown, err := svc.ApplyIndustryDefaults(11, "unknown-industry")
	require.NoError(t, err)

	assert.ElementsMatch(t, general, unknown)
}

func TestApplyIndustryDefaultsWithExtrasAndProfile(t *testing.T) {
	svc, db := newTestService(t)

	saved, err := svc.ApplyIndustryDefaults(20, "construction", "meeting-notes")
	require.NoError(t, err)
	assert.Contains(t, saved, "project-photos")
	assert.Contains(t, saved, "delay-tracker")
	assert.Contains(t, saved, "meeting-minutes")

	var profile models.IndustryProfile
	require.NoError(t, db.Where("project_id = ?", 20).First(&profile).Error)
	assert.Equal(t, "construction", profile.Industry)
}

func TestUpsertKeyedByProjectLeavesSingleRow(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.ApplySelectedWidgets(30, []string{"timeline"})
	require.NoError(t, err)
	_, err = svc.ApplySelectedWidgets(30, []string{"gantt-chart", "budget"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Dashboard{}).Where("project_id = ?", 30).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
