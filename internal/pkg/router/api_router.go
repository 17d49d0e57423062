package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/stratushq/stratus/internal/api/v1"
	"github.com/stratushq/stratus/internal/pkg/constants"
	"github.com/stratushq/stratus/internal/pkg/middleware"
)

type ApiRouter struct {
}

// InstallRouter attaches the public, API-key authenticated v1 surface.
func (h ApiRouter) InstallRouter(app *fiber.App) {
	v1 := app.Group(constants.APIv1Route, limiter.New(), middleware.APIKeyAuthMiddleware())

	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
