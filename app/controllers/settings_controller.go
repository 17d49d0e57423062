package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/internal/pkg/database"
)

// HandleAPIKeyStatus returns the key metadata without the secret.
func HandleAPIKeyStatus(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, ctx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load settings")
	}

	return c.JSON(fiber.Map{
		"active":       settings.HasActiveAPIKey(),
		"prefix":       settings.APIKeyPrefix,
		"created_at":   settings.APIKeyCreatedAt,
		"last_used_at": settings.APIKeyLastUsedAt,
	})
}

// HandleAPIKeyIssue mints a fresh API key. The raw secret is returned exactly
// once; only its hash is stored. Issuing replaces any previous key.
func HandleAPIKeyIssue(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, ctx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load settings")
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not generate API key")
	}
	if err := db.Save(settings).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not save API key")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"api_key": rawKey,
		"prefix":  settings.APIKeyPrefix,
		"message": "store this key now, it will not be shown again",
	})
}

// HandleAPIKeyRevoke invalidates the current API key.
func HandleAPIKeyRevoke(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, ctx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load settings")
	}
	if !settings.HasActiveAPIKey() {
		return jsonError(c, fiber.StatusNotFound, "not_found", "no active API key")
	}

	settings.RevokeAPIKey()
	if err := db.Save(settings).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not revoke API key")
	}

	return c.JSON(fiber.Map{"message": "API key revoked"})
}
