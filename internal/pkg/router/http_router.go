package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/stratushq/stratus/app/controllers"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/aiassist"
	"github.com/stratushq/stratus/internal/pkg/constants"
	"github.com/stratushq/stratus/internal/pkg/dashboards"
	"github.com/stratushq/stratus/internal/pkg/middleware"
	"github.com/stratushq/stratus/internal/pkg/oauth"
	"github.com/stratushq/stratus/internal/pkg/session"
	"github.com/stratushq/stratus/internal/pkg/storage"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	repos := repository.GetGlobalRepositories()
	controllers.InitializeProjectController(dashboards.NewService(repos.Dashboard, repos.Project))

	aiClient, err := aiassist.NewClientFromEnv()
	if err != nil {
		log.Warnf("[Router] AI drafting disabled: %v", err)
	}
	controllers.InitializeReportController(aiClient)

	storageCfg, err := storage.LoadConfig()
	if err != nil {
		log.Warnf("[Router] invalid object storage config: %v", err)
	}
	var storageClient *storage.Client
	if storageCfg != nil && storageCfg.IsEnabled() {
		storageClient, err = storage.NewClient(storageCfg)
		if err != nil {
			log.Warnf("[Router] object storage disabled: %v", err)
		}
	}
	controllers.InitializeDocumentController(storageClient, storageCfg)

	h.registerPublicRoutes(app)
	h.registerIntegrationRoutes(app)
	h.registerAppRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.PublicRoute, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "stratus", "status": "ok"})
	})

	app.Post("/register", controllers.HandleRegister)
	app.Post("/login", controllers.HandleLogin)
	app.Post("/logout", controllers.HandleLogout)
	app.Get("/activate/:token", controllers.HandleActivate)

	app.Get("/api/tiers", controllers.HandleTiersList)
	app.Get("/api/widgets", controllers.HandleWidgetCatalog)
}

// registerIntegrationRoutes wires the OAuth provider flows. These paths are
// excluded from the UserContext middleware; the controllers resolve the
// session themselves.
func (h HttpRouter) registerIntegrationRoutes(app *fiber.App) {
	auth := app.Group(constants.AuthRoute)
	auth.Get("/:provider", controllers.HandleIntegrationConnect)
	auth.Get("/:provider/callback", controllers.HandleIntegrationCallback)
}

func (h HttpRouter) registerAppRoutes(app *fiber.App) {
	api := app.Group(constants.APIRoute, middleware.RequireAuth)

	api.Get("/me", controllers.HandleMe)

	api.Get("/organization", controllers.HandleOrganizationGet)
	api.Get("/organization/members", controllers.HandleMemberList)
	api.Post("/organization/members", middleware.RequireOrgManager, controllers.HandleMemberInvite)
	api.Put("/organization/members/:userID", middleware.RequireOrgManager, controllers.HandleMemberRoleChange)
	api.Delete("/organization/members/:userID", middleware.RequireOrgManager, controllers.HandleMemberRemove)

	api.Get("/projects", controllers.HandleProjectList)
	api.Post("/projects", controllers.HandleProjectCreate)
	api.Get("/projects/:uuid", controllers.HandleProjectGet)
	api.Put("/projects/:uuid", controllers.HandleProjectUpdate)
	api.Delete("/projects/:uuid", controllers.HandleProjectDelete)

	api.Get("/projects/:uuid/dashboard", controllers.HandleDashboardGet)
	api.Put("/projects/:uuid/dashboard", controllers.HandleDashboardPut)
	api.Post("/projects/:uuid/dashboard/defaults", controllers.HandleDashboardApplyDefaults)

	api.Get("/projects/:uuid/reports", controllers.HandleReportList)
	api.Post("/projects/:uuid/reports", controllers.HandleReportDraft)
	api.Delete("/projects/:uuid/reports/:id", controllers.HandleReportDelete)

	api.Get("/projects/:uuid/documents", controllers.HandleDocumentList)
	api.Post("/projects/:uuid/documents", controllers.HandleDocumentUpload)
	api.Get("/projects/:uuid/documents/:docUUID", controllers.HandleDocumentDownload)
	api.Delete("/projects/:uuid/documents/:docUUID", controllers.HandleDocumentDelete)

	api.Get("/billing/usage", controllers.HandleUsage)
	api.Put("/billing/plan", middleware.RequireOrgManager, controllers.HandlePlanChange)

	api.Get("/integrations", controllers.HandleIntegrationList)
	api.Delete("/integrations/:provider", controllers.HandleIntegrationUnlink)

	api.Get("/settings/api-key", controllers.HandleAPIKeyStatus)
	api.Post("/settings/api-key", controllers.HandleAPIKeyIssue)
	api.Delete("/settings/api-key", controllers.HandleAPIKeyRevoke)

	admin := api.Group("/admin", middleware.RequireAdmin)
	admin.Get("/settings", controllers.HandleAdminSettingsGet)
	admin.Put("/settings", controllers.HandleAdminSettingsUpdate)
	admin.Post("/flush-counters", controllers.HandleAdminFlushCounters)
}
