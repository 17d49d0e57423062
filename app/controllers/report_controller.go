package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/aiassist"
	"github.com/stratushq/stratus/internal/pkg/metrics/counter"
	"github.com/stratushq/stratus/internal/pkg/tiers"
)

var aiClient *aiassist.Client

// InitializeReportController wires the drafting client. A nil client keeps
// the endpoints up but answers 503 for draft requests.
func InitializeReportController(client *aiassist.Client) {
	aiClient = client
}

type draftReportRequest struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// HandleReportDraft runs the source text through the drafting function for
// the requested kind and persists the result. The monthly AI quota of the
// organization's plan is checked against the calendar-month draft count
// first, so the allowance renews at month rollover.
func HandleReportDraft(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	settings := models.GetAppSettings()
	if settings != nil && !settings.IsAIAssistEnabled() {
		return jsonError(c, fiber.StatusServiceUnavailable, "ai_assist_disabled", "AI drafting is currently disabled")
	}
	if aiClient == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "ai_assist_disabled", "AI drafting is not configured")
	}

	var req draftReportRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if !models.IsValidReportKind(req.Kind) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "unknown_kind", "unsupported report kind")
	}
	if strings.TrimSpace(req.Text) == "" {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "text must not be empty")
	}

	repos := repository.GetGlobalRepositories()

	tier, err := planTier(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check AI quota")
	}
	if tier.AIRequestQuota != tiers.Unlimited {
		used, err := repos.Report.CountByOrganizationThisMonth(ctx.OrganizationID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check AI quota")
		}
		if used >= int64(tier.AIRequestQuota) {
			return jsonError(c, fiber.StatusForbidden, "quota_exceeded", "monthly AI draft quota reached, upgrade to draft more reports")
		}
	}

	draftReq := aiassist.DraftRequest{
		ProjectName: project.Name,
		Text:        req.Text,
	}

	var resp *aiassist.DraftResponse
	switch req.Kind {
	case models.REPORT_KIND_STATUS_SUMMARY:
		resp, err = aiClient.StatusSummary(c.Context(), draftReq)
	case models.REPORT_KIND_MEETING_MINUTES:
		resp, err = aiClient.MeetingMinutes(c.Context(), draftReq)
	case models.REPORT_KIND_ACTION_ITEMS:
		resp, err = aiClient.ActionItems(c.Context(), draftReq)
	}
	if err != nil {
		log.Errorf("drafting %s for project %d failed: %v", req.Kind, project.ID, err)
		return jsonError(c, fiber.StatusBadGateway, "draft_failed", "the drafting service did not return a result")
	}

	report := &models.Report{
		ProjectID:   project.ID,
		Kind:        req.Kind,
		SourceText:  req.Text,
		Draft:       resp.Draft,
		RequestedBy: ctx.UserID,
	}
	if err := repos.Report.Create(report); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not save report")
	}

	if err := counter.AddAIRequest(ctx.OrganizationID); err != nil {
		log.Warnf("could not count AI request for org %d: %v", ctx.OrganizationID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report})
}

// HandleReportList returns the drafts stored for a project.
func HandleReportList(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
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
	reports, err := repos.Report.GetByProject(project.ID, (page-1)*limit, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load reports")
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"page":    page,
		"limit":   limit,
	})
}

// HandleReportDelete removes one stored draft.
func HandleReportDelete(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid report id")
	}

	repos := repository.GetGlobalRepositories()
	report, err := repos.Report.GetByID(uint(id))
	if err != nil || report.ProjectID != project.ID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "report not found")
	}
	if err := repos.Report.Delete(report.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not delete report")
	}

	return c.JSON(fiber.Map{"message": "report deleted"})
}
