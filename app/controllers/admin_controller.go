package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/metrics/counter"
)

type updateAppSettingsRequest struct {
	SiteTitle       *string `json:"site_title"`
	SiteDescription *string `json:"site_description"`
	SignupEnabled   *bool   `json:"signup_enabled"`
	AIAssistEnabled *bool   `json:"ai_assist_enabled"`
}

// HandleAdminSettingsGet returns the application settings.
func HandleAdminSettingsGet(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	settings, err := repos.Setting.Get()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load settings")
	}
	return c.JSON(fiber.Map{"settings": settings})
}

// HandleAdminSettingsUpdate applies a partial update to the application
// settings and persists them.
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	var req updateAppSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	current, err := repos.Setting.Get()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load settings")
	}

	updated := &models.AppSettings{
		SiteTitle:       current.SiteTitle,
		SiteDescription: current.SiteDescription,
		SignupEnabled:   current.SignupEnabled,
		AIAssistEnabled: current.AIAssistEnabled,
	}
	if req.SiteTitle != nil {
		updated.SiteTitle = *req.SiteTitle
	}
	if req.SiteDescription != nil {
		updated.SiteDescription = *req.SiteDescription
	}
	if req.SignupEnabled != nil {
		updated.SignupEnabled = *req.SignupEnabled
	}
	if req.AIAssistEnabled != nil {
		updated.AIAssistEnabled = *req.AIAssistEnabled
	}

	if err := repos.Setting.Save(updated); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	return c.JSON(fiber.Map{"settings": updated})
}

// HandleAdminFlushCounters drains the pending usage counters from redis into
// the organizations table. Usage stats and quota checks read the flushed
// values, so operators can force a flush here between deploy-time flushes.
func HandleAdminFlushCounters(c *fiber.Ctx) error {
	if err := counter.FlushAll(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "counter flush failed")
	}
	return c.JSON(fiber.Map{"message": "counters flushed"})
}
