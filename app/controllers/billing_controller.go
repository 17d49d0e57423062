package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/cache"
	"github.com/stratushq/stratus/internal/pkg/session"
	"github.com/stratushq/stratus/internal/pkg/tiers"
)

// usageCacheTTL bounds how stale a usage snapshot may be served.
const usageCacheTTL = time.Minute

func usageCacheKey(orgID uint) string {
	return fmt.Sprintf("org:usage:%d", orgID)
}

type changePlanRequest struct {
	Plan string `json:"plan"`
}

// HandleTiersList returns the public subscription catalog.
func HandleTiersList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tiers": tiers.Catalog,
		"scale": tiers.Scale,
	})
}

// HandleUsage returns the live usage snapshot for the caller's organization,
// including an upgrade recommendation when any resource runs hot.
func HandleUsage(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	if cached, err := cache.Get(usageCacheKey(ctx.OrganizationID)); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	repos := repository.GetGlobalRepositories()

	org, err := repos.Organization.GetByID(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load organization")
	}

	tier, ok := tiers.ByID(org.Plan)
	if !ok {
		tier, _ = tiers.ByID("starter")
	}

	users, err := repos.Organization.CountMembers(org.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not compute usage")
	}
	projects, err := repos.Project.CountByOrganization(org.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not compute usage")
	}
	storageBytes, err := repos.Document.SumSizeByOrganization(org.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not compute usage")
	}
	reportsThisMonth, err := repos.Report.CountByOrganizationThisMonth(org.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not compute usage")
	}

	// The AI side of the snapshot is the calendar-month draft count; the
	// flushed organization column keeps the lifetime total.
	usage := tiers.Compute(tier, users, projects, storageBytes, reportsThisMonth)

	payload, err := json.Marshal(fiber.Map{
		"usage":             usage,
		"ai_requests_total": org.AIRequestsUsed,
		"widget_saves":      org.WidgetSaves,
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not compute usage")
	}
	if err := cache.Set(usageCacheKey(org.ID), string(payload), usageCacheTTL); err != nil {
		log.Warnf("could not cache usage snapshot for org %d: %v", org.ID, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandlePlanChange switches the organization to another catalog tier. The
// scaling tier is contract-only and cannot be self-selected.
func HandlePlanChange(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	var req changePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	tier, ok := tiers.ByID(req.Plan)
	if !ok {
		return jsonError(c, fiber.StatusUnprocessableEntity, "unknown_plan", "unknown subscription plan")
	}
	if tier.ID == tiers.Scale.ID {
		return jsonError(c, fiber.StatusUnprocessableEntity, "contact_sales", "the scale plan requires a custom contract")
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Organization.UpdatePlan(ctx.OrganizationID, tier.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not change plan")
	}

	if err := cache.Delete(usageCacheKey(ctx.OrganizationID)); err != nil {
		log.Warnf("could not drop cached usage snapshot for org %d: %v", ctx.OrganizationID, err)
	}

	// Keep the cached plan in the session in step with the database.
	if sess, err := session.GetSessionStore().Get(c); err == nil {
		sess.Set(ORG_PLAN, tier.ID)
		if err := sess.Save(); err != nil {
			log.Warnf("could not refresh session plan for org %d: %v", ctx.OrganizationID, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "plan changed",
		"plan":    tier.ID,
	})
}
