package apiv1

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/dashboards"
	"github.com/stratushq/stratus/internal/pkg/usercontext"
)

// APIServer serves the public v1 endpoints. Authentication is enforced via
// the API key middleware attached in the router.
type APIServer struct {
	dashboards *dashboards.Service
}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	repos := repository.GetGlobalRepositories()
	return &APIServer{
		dashboards: dashboards.NewService(repos.Dashboard, repos.Project),
	}
}

// RegisterHandlers attaches the v1 endpoints to the given route group.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/projects", s.GetProjects)
	router.Get("/projects/:uuid/dashboard", s.GetDashboard)
	router.Put("/projects/:uuid/dashboard", s.PutDashboard)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// GetProjects lists the projects of the key owner's organization.
func (s *APIServer) GetProjects(c *fiber.Ctx) error {
	ctx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	projects, err := repos.Project.GetByOrganization(ctx.OrganizationID, 0, 100)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_server_error", "message": "could not load projects",
		})
	}

	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectSummary{
			UUID:        p.UUID,
			Name:        p.Name,
			Description: p.Description,
			Industry:    p.Industry,
			Status:      p.Status,
		})
	}

	return c.JSON(fiber.Map{"projects": out})
}

// GetDashboard returns the widget configuration for a project by UUID.
func (s *APIServer) GetDashboard(c *fiber.Ctx) error {
	project, err := s.projectForKeyOwner(c)
	if err != nil {
		return err
	}

	stored, err := s.dashboards.Widgets(project.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_server_error", "message": "could not load dashboard",
		})
	}

	return c.JSON(DashboardConfig{
		ProjectUUID: project.UUID,
		Configured:  stored != nil,
		Widgets:     stored,
	})
}

// PutDashboard replaces the widget configuration for a project by UUID. The
// submitted identifiers are normalized; unknown ones are dropped.
func (s *APIServer) PutDashboard(c *fiber.Ctx) error {
	project, err := s.projectForKeyOwner(c)
	if err != nil {
		return err
	}

	var req PutDashboardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "bad_request", "message": "invalid request body",
		})
	}

	saved, err := s.dashboards.ApplySelectedWidgets(project.ID, req.Widgets)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_server_error", "message": "could not save dashboard",
		})
	}

	return c.JSON(DashboardConfig{
		ProjectUUID: project.UUID,
		Configured:  true,
		Widgets:     saved,
	})
}

func (s *APIServer) projectForKeyOwner(c *fiber.Ctx) (*models.Project, error) {
	ctx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	project, err := repos.Project.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "not_found", "message": "project not found",
			})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal_server_error", "message": "could not load project",
		})
	}
	if project.OrganizationID != ctx.OrganizationID {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not_found", "message": "project not found",
		})
	}
	return project, nil
}
