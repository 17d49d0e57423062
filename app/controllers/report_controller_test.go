package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/aiassist"
	"github.com/stratushq/stratus/internal/pkg/dashboards"
	"github.com/stratushq/stratus/internal/pkg/tiers"
	"github.com/stratushq/stratus/internal/pkg/usercontext"
)

var (
	ctrlDBOnce sync.Once
	ctrlDB     *gorm.DB
)

// controllerTestDB backs the global repositories with an in-memory database.
// The repository factory is a process-wide singleton, so every controller
// test shares this database and works on its own organization.
func controllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctrlDBOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err != nil {
			panic(err)
		}
		if err := db.AutoMigrate(
			&models.User{},
			&models.Organization{},
			&models.OrganizationMember{},
			&models.Project{},
			&models.IndustryProfile{},
			&models.Dashboard{},
			&models.Report{},
			&models.Document{},
		); err != nil {
			panic(err)
		}
		repository.InitializeFactory(db)
		repos := repository.GetGlobalRepositories()
		InitializeProjectController(dashboards.NewService(repos.Dashboard, repos.Project))
		ctrlDB = db
	})
	return ctrlDB
}

// authedTestApp mounts the handlers behind a middleware that injects the
// given user context, the way the session middleware does in production.
func authedTestApp(ctx usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, ctx)
		return c.Next()
	})
	app.Post("/api/projects", HandleProjectCreate)
	app.Post("/api/projects/:uuid/reports", HandleReportDraft)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestReportDraftQuotaRenewsAtMonthRollover(t *testing.T) {
	db := controllerTestDB(t)

	drafting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"draft":"## Status\nall green","model":"test"}`)
	}))
	defer drafting.Close()
	InitializeReportController(aiassist.NewClient(drafting.URL, ""))
	defer InitializeReportController(nil)

	org := models.Organization{Name: "Quota Org", Slug: "quota-org", Plan: "starter"}
	require.NoError(t, db.Create(&org).Error)
	project := models.Project{OrganizationID: org.ID, Name: "Quota Project", Status: models.PROJECT_STATUS_ACTIVE, CreatedBy: 1}
	require.NoError(t, db.Create(&project).Error)

	starter, ok := tiers.ByID("starter")
	require.True(t, ok)
	for i := 0; i < starter.AIRequestQuota; i++ {
		report := models.Report{ProjectID: project.ID, Kind: models.REPORT_KIND_STATUS_SUMMARY, RequestedBy: 1}
		require.NoError(t, db.Create(&report).Error)
	}

	app := authedTestApp(usercontext.UserContext{
		UserID: 1, Username: "pm", OrganizationID: org.ID,
		OrgRole: models.ORG_ROLE_OWNER, Plan: "starter", IsLoggedIn: true,
	})
	target := "/api/projects/" + project.UUID + "/reports"
	body := `{"kind":"status_summary","text":"weekly notes"}`

	resp, err := app.Test(jsonRequest("POST", target, body), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "quota spent this month must reject the draft")

	// Pushing every draft into the previous month frees the allowance again.
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	require.NoError(t, db.Model(&models.Report{}).
		Where("project_id = ?", project.ID).
		Update("created_at", monthStart.Add(-time.Hour)).Error)

	resp, err = app.Test(jsonRequest("POST", target, body), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, "a new month must renew the draft allowance")
}
