package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/stratushq/stratus/internal/pkg/metrics/counter"
	"github.com/stratushq/stratus/internal/pkg/widgets"
)

type saveWidgetsRequest struct {
	Widgets []string `json:"widgets"`
}

type applyDefaultsRequest struct {
	Industry string   `json:"industry"`
	Extras   []string `json:"extras"`
}

// HandleDashboardGet returns the project's stored widget configuration.
// "configured" distinguishes a never-saved dashboard from one saved with
// zero widgets.
func HandleDashboardGet(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	stored, err := dashboardService.Widgets(project.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load dashboard")
	}

	return c.JSON(fiber.Map{
		"project_id": project.ID,
		"configured": stored != nil,
		"widgets":    stored,
	})
}

// HandleDashboardPut replaces the project's widget set with the normalized
// form of the submitted identifiers.
func HandleDashboardPut(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	var req saveWidgetsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	saved, err := dashboardService.ApplySelectedWidgets(project.ID, req.Widgets)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not save dashboard")
	}

	if err := counter.AddWidgetSave(ctx.OrganizationID); err != nil {
		log.Warnf("could not count widget save for org %d: %v", ctx.OrganizationID, err)
	}

	return c.JSON(fiber.Map{
		"project_id": project.ID,
		"widgets":    saved,
	})
}

// HandleDashboardApplyDefaults resets the dashboard to the industry's default
// bundle, optionally extended with extra widgets, and records the industry on
// the project profile.
func HandleDashboardApplyDefaults(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	var req applyDefaultsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	saved, err := dashboardService.ApplyIndustryDefaults(project.ID, req.Industry, req.Extras...)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not apply industry defaults")
	}

	if err := counter.AddWidgetSave(ctx.OrganizationID); err != nil {
		log.Warnf("could not count widget save for org %d: %v", ctx.OrganizationID, err)
	}

	return c.JSON(fiber.Map{
		"project_id": project.ID,
		"industry":   string(widgets.NormalizeIndustry(widgets.IndustryKey(req.Industry))),
		"widgets":    saved,
	})
}

// HandleWidgetCatalog lists the canonical widgets and the per-industry
// default bundles.
func HandleWidgetCatalog(c *fiber.Ctx) error {
	industries := []widgets.IndustryKey{
		widgets.IndustryGeneral,
		widgets.IndustrySoftware,
		widgets.IndustryFinancial,
		widgets.IndustryPharma,
		widgets.IndustryConstruction,
		widgets.IndustryManufacturing,
	}

	bundles := make(map[string]widgets.Bundle, len(industries))
	for _, key := range industries {
		bundles[string(key)] = widgets.DefaultsForIndustry(key)
	}

	return c.JSON(fiber.Map{
		"widgets": widgets.All(),
		"bundles": bundles,
	})
}
