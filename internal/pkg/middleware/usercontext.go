package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stratushq/stratus/app/controllers"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/session"
	"github.com/stratushq/stratus/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext for every
// request: identity, organization membership and the organization's plan.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth uses its own fiber session store on the OAuth routes; skip our
	// app session there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)
	isAdmin := sess.Get(controllers.USER_IS_ADMIN)

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin != nil && isAdmin.(bool),
	}

	// Tenancy with session-first strategy: resolve the organization once,
	// cache it in the session for subsequent requests.
	if orgID, ok := sess.Get(controllers.ORG_ID).(uint); ok && orgID != 0 {
		userCtx.OrganizationID = orgID
		userCtx.OrgRole = session.GetSessionValue(c, controllers.ORG_ROLE)
		userCtx.Plan = session.GetSessionValue(c, controllers.ORG_PLAN)
	} else {
		orgRepo := repository.GetGlobalFactory().GetOrganizationRepository()
		if org, member, err := orgRepo.GetForUser(userCtx.UserID); err == nil {
			userCtx.OrganizationID = org.ID
			userCtx.OrgRole = member.Role
			userCtx.Plan = org.Plan
			sess.Set(controllers.ORG_ID, org.ID)
			sess.Set(controllers.ORG_ROLE, member.Role)
			sess.Set(controllers.ORG_PLAN, org.Plan)
			_ = sess.Save()
		}
	}

	usercontext.SetUserContext(c, userCtx)

	return c.Next()
}
