package usercontext

import "github.com/gofiber/fiber/v2"

const (
	// KeyUserContext is the fiber.Ctx local holding the UserContext.
	KeyUserContext = "USER_CONTEXT"
	// KeyFromProtected marks requests carrying an authenticated session.
	KeyFromProtected = "FROM_PROTECTED"
	// KeyIsAdmin marks requests from platform administrators.
	KeyIsAdmin = "USER_IS_ADMIN"
)

// UserContext is the resolved identity and tenancy for one request.
type UserContext struct {
	UserID         uint
	Username       string
	OrganizationID uint
	OrgRole        string
	Plan           string
	IsLoggedIn     bool
	IsAdmin        bool
}

// GetUserContext returns the context set by the middleware, or an anonymous
// one when none was set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(KeyUserContext).(UserContext); ok {
		return ctx
	}
	return UserContext{}
}

// SetUserContext stores the resolved context on the request.
func SetUserContext(c *fiber.Ctx, ctx UserContext) {
	c.Locals(KeyUserContext, ctx)
	c.Locals(KeyFromProtected, ctx.IsLoggedIn)
	c.Locals(KeyIsAdmin, ctx.IsAdmin)
}
