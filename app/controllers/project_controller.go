package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/dashboards"
	"github.com/stratushq/stratus/internal/pkg/metrics/counter"
	"github.com/stratushq/stratus/internal/pkg/tiers"
	"github.com/stratushq/stratus/internal/pkg/usercontext"
)

var dashboardService *dashboards.Service

// InitializeProjectController wires the dashboard service used when projects
// are created or deleted.
func InitializeProjectController(svc *dashboards.Service) {
	dashboardService = svc
}

type createProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Industry    string   `json:"industry"`
	Widgets     []string `json:"widgets"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// HandleProjectList returns the organization's projects, paginated.
func HandleProjectList(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	repos := repository.GetGlobalRepositories()
	projects, err := repos.Project.GetByOrganization(ctx.OrganizationID, (page-1)*limit, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load projects")
	}
	total, err := repos.Project.CountByOrganization(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load projects")
	}

	return c.JSON(fiber.Map{
		"projects": projects,
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}

// HandleProjectCreate creates a project and seeds its dashboard with the
// industry default widget bundle. The project cap of the current plan is
// enforced before anything is written.
func HandleProjectCreate(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repos := repository.GetGlobalRepositories()

	tier, err := planTier(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check project quota")
	}
	if tier.MaxProjects != tiers.Unlimited {
		count, err := repos.Project.CountByOrganization(ctx.OrganizationID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check project quota")
		}
		if count >= int64(tier.MaxProjects) {
			return jsonError(c, fiber.StatusForbidden, "quota_exceeded", "project limit for your plan reached, upgrade to add more projects")
		}
	}

	project := &models.Project{
		OrganizationID: ctx.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		Industry:       req.Industry,
		Status:         models.PROJECT_STATUS_ACTIVE,
		CreatedBy:      ctx.UserID,
	}
	if err := project.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := repos.Project.Create(project); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not create project")
	}

	widgets, err := dashboardService.ApplyIndustryDefaults(project.ID, req.Industry, req.Widgets...)
	if err != nil {
		log.Errorf("could not seed dashboard for project %d: %v", project.ID, err)
	} else if err := counter.AddWidgetSave(ctx.OrganizationID); err != nil {
		log.Warnf("could not count widget save for org %d: %v", ctx.OrganizationID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"project": project,
		"widgets": widgets,
	})
}

// HandleProjectGet returns one project including its widget configuration.
func HandleProjectGet(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	widgets, err := dashboardService.Widgets(project.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load dashboard")
	}

	return c.JSON(fiber.Map{
		"project": project,
		"widgets": widgets,
	})
}

// HandleProjectUpdate changes name, description or status.
func HandleProjectUpdate(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if err := project.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Project.Update(project); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not update project")
	}

	return c.JSON(fiber.Map{"project": project})
}

// HandleProjectDelete removes a project together with its dashboard row.
func HandleProjectDelete(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Dashboard.Delete(project.ID); err != nil {
		log.Warnf("could not delete dashboard for project %d: %v", project.ID, err)
	}
	if err := repos.Project.Delete(project.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not delete project")
	}

	return c.JSON(fiber.Map{"message": "project deleted"})
}

// projectForOrg resolves the :uuid route param to a project and verifies it
// belongs to the caller's organization. Foreign projects read as not found.
func projectForOrg(c *fiber.Ctx, ctx usercontext.UserContext) (*models.Project, error) {
	repos := repository.GetGlobalRepositories()
	project, err := repos.Project.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "not_found", "project not found")
		}
		return nil, jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load project")
	}
	if project.OrganizationID != ctx.OrganizationID {
		return nil, jsonError(c, fiber.StatusNotFound, "not_found", "project not found")
	}
	return project, nil
}
