package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/tiers"
	"github.com/stratushq/stratus/internal/pkg/usercontext"
)

// Session keys shared between controllers and middleware.
const (
	AUTH_KEY      string = "authenticated"
	USER_ID       string = "user_id"
	USER_NAME     string = "username"
	USER_IS_ADMIN string = "isAdmin"
	ORG_ID        string = "org_id"
	ORG_ROLE      string = "org_role"
	ORG_PLAN      string = "org_plan"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func requireUser(c *fiber.Ctx) (usercontext.UserContext, error) {
	ctx := usercontext.GetUserContext(c)
	if !ctx.IsLoggedIn {
		return ctx, jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}
	return ctx, nil
}

// planTier resolves the organization's active tier from the database. The
// session carries a plan copy too, but that copy goes stale when another
// member changes the plan, so quota checks must not rely on it. Unknown
// plans fall back to starter.
func planTier(orgID uint) (tiers.Tier, error) {
	org, err := repository.GetGlobalRepositories().Organization.GetByID(orgID)
	if err != nil {
		return tiers.Tier{}, err
	}
	tier, ok := tiers.ByID(org.Plan)
	if !ok {
		tier, _ = tiers.ByID("starter")
	}
	return tier, nil
}
