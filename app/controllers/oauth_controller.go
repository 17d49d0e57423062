package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/internal/pkg/database"
	"github.com/stratushq/stratus/internal/pkg/session"
)

// sessionUserID reads the logged-in user straight from the fiber session.
// The user-context middleware does not run on /auth/* routes because the
// provider flow carries its own gorilla cookie store, so the controllers
// here resolve the session themselves.
func sessionUserID(c *fiber.Ctx) uint {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return 0
	}
	if auth, ok := sess.Get(AUTH_KEY).(bool); !ok || !auth {
		return 0
	}
	if id, ok := sess.Get(USER_ID).(uint); ok {
		return id
	}
	return 0
}

// HandleIntegrationConnect starts the provider flow for the :provider param.
func HandleIntegrationConnect(c *fiber.Ctx) error {
	provider := c.Params("provider")
	if models.KindForProvider(provider) == "" {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown integration provider")
	}
	if sessionUserID(c) == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}
	return gothfiber.BeginAuthHandler(c)
}

// HandleIntegrationCallback completes the provider flow and links the
// external account to the logged-in user. Tokens are refreshed when the
// account is already linked.
func HandleIntegrationCallback(c *fiber.Ctx) error {
	userID := sessionUserID(c)
	if userID == 0 {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "login required")
	}

	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "connecting the integration failed"}
		return flash.WithError(c, fm).Redirect("/integrations")
	}

	kind := models.KindForProvider(u.Provider)
	if kind == "" {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown integration provider")
	}

	db := database.GetDB()

	var exp *time.Time
	if !u.ExpiresAt.IsZero() {
		t := u.ExpiresAt
		exp = &t
	}

	var pa models.ProviderAccount
	res := db.Where("provider = ? AND provider_user_id = ?", u.Provider, u.UserID).First(&pa)
	switch {
	case errors.Is(res.Error, gorm.ErrRecordNotFound):
		pa = models.ProviderAccount{
			UserID:         userID,
			Provider:       u.Provider,
			ProviderUserID: u.UserID,
			Kind:           kind,
			AccessToken:    u.AccessToken,
			RefreshToken:   u.RefreshToken,
			ExpiresAt:      exp,
		}
		if err := db.Create(&pa).Error; err != nil {
			fm := fiber.Map{"type": "error", "message": "could not link the integration"}
			return flash.WithError(c, fm).Redirect("/integrations")
		}
	case res.Error == nil:
		if pa.UserID != userID {
			fm := fiber.Map{"type": "error", "message": "this account is already linked to another user"}
			return flash.WithError(c, fm).Redirect("/integrations")
		}
		pa.AccessToken = u.AccessToken
		pa.RefreshToken = u.RefreshToken
		pa.ExpiresAt = exp
		if err := db.Save(&pa).Error; err != nil {
			fm := fiber.Map{"type": "error", "message": "could not refresh the integration tokens"}
			return flash.WithError(c, fm).Redirect("/integrations")
		}
	default:
		fm := fiber.Map{"type": "error", "message": "could not link the integration"}
		return flash.WithError(c, fm).Redirect("/integrations")
	}

	fm := fiber.Map{"type": "success", "message": u.Provider + " connected"}
	return flash.WithSuccess(c, fm).Redirect("/integrations")
}

// HandleIntegrationList returns the caller's linked provider accounts.
func HandleIntegrationList(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	var accounts []models.ProviderAccount
	if err := database.GetDB().Where("user_id = ?", ctx.UserID).Find(&accounts).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load integrations")
	}

	return c.JSON(fiber.Map{"integrations": accounts})
}

// HandleIntegrationUnlink removes one linked provider account.
func HandleIntegrationUnlink(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	provider := c.Params("provider")
	if models.KindForProvider(provider) == "" {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown integration provider")
	}

	res := database.GetDB().
		Where("user_id = ? AND provider = ?", ctx.UserID, provider).
		Delete(&models.ProviderAccount{})
	if res.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not unlink the integration")
	}
	if res.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "not_found", "integration is not linked")
	}

	return c.JSON(fiber.Map{"message": provider + " disconnected"})
}
