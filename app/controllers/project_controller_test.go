package controllers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/internal/pkg/usercontext"
)

func TestProjectCreateCapUsesStoredPlanNotSessionCopy(t *testing.T) {
	db := controllerTestDB(t)

	org := models.Organization{Name: "Downgraded Org", Slug: "downgraded-org", Plan: "starter"}
	require.NoError(t, db.Create(&org).Error)
	for i := 0; i < 2; i++ {
		project := models.Project{OrganizationID: org.ID, Name: fmt.Sprintf("Existing %d", i+1), Status: models.PROJECT_STATUS_ACTIVE, CreatedBy: 1}
		require.NoError(t, db.Create(&project).Error)
	}

	// The session still carries the plan from before a downgrade in another
	// member's session. The cap check must follow the organization row.
	app := authedTestApp(usercontext.UserContext{
		UserID: 1, Username: "pm", OrganizationID: org.ID,
		OrgRole: models.ORG_ROLE_OWNER, Plan: "enterprise", IsLoggedIn: true,
	})

	resp, err := app.Test(jsonRequest("POST", "/api/projects", `{"name":"One Too Many"}`), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "quota_exceeded", body.Error)
}
