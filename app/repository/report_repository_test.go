package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
)

func newReportTestRepo(t *testing.T) (ReportRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Report{}))
	return NewReportRepository(db), db
}

func TestCountByOrganizationThisMonthScopesToCalendarMonth(t *testing.T) {
	repo, db := newReportTestRepo(t)

	mine := models.Project{OrganizationID: 1, Name: "Rollout", Status: models.PROJECT_STATUS_ACTIVE, CreatedBy: 1}
	require.NoError(t, db.Create(&mine).Error)
	foreign := models.Project{OrganizationID: 2, Name: "Elsewhere", Status: models.PROJECT_STATUS_ACTIVE, CreatedBy: 2}
	require.NoError(t, db.Create(&foreign).Error)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	reports := []models.Report{
		{ProjectID: mine.ID, Kind: models.REPORT_KIND_STATUS_SUMMARY, CreatedAt: monthStart},
		{ProjectID: mine.ID, Kind: models.REPORT_KIND_ACTION_ITEMS, CreatedAt: now},
		{ProjectID: mine.ID, Kind: models.REPORT_KIND_MEETING_MINUTES, CreatedAt: monthStart.Add(-time.Hour)},
		{ProjectID: foreign.ID, Kind: models.REPORT_KIND_STATUS_SUMMARY, CreatedAt: now},
	}
	for i := range reports {
		require.NoError(t, db.Create(&reports[i]).Error)
	}

	count, err := repo.CountByOrganizationThisMonth(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "last month's drafts and foreign organizations must not count")
}
