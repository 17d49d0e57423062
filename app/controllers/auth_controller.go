package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/database"
	"github.com/stratushq/stratus/internal/pkg/hcaptcha"
	"github.com/stratushq/stratus/internal/pkg/mail"
	"github.com/stratushq/stratus/internal/pkg/session"
)

type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
	CaptchaToken     string `json:"captcha_token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a user together with their organization and sends
// the activation mail.
func HandleRegister(c *fiber.Ctx) error {
	settings := models.GetAppSettings()
	if settings != nil && !settings.IsSignupEnabled() {
		return jsonError(c, fiber.StatusForbidden, "signup_disabled", "registration is currently disabled")
	}

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if hcaptcha.IsEnabled() {
		ok, err := hcaptcha.Verify(req.CaptchaToken)
		if err != nil || !ok {
			return jsonError(c, fiber.StatusBadRequest, "captcha_failed", "captcha verification failed")
		}
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := user.GenerateActivationToken(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not create activation token")
	}

	orgName := strings.TrimSpace(req.OrganizationName)
	if orgName == "" {
		orgName = fmt.Sprintf("%s's Workspace", user.Name)
	}

	repos := repository.GetGlobalRepositories()
	db := database.GetDB()

	err = db.Transaction(func(tx *gorm.DB) error {
		txRepos := repository.NewRepositories(tx)
		if err := txRepos.User.Create(user); err != nil {
			return err
		}
		org := &models.Organization{
			Name:    orgName,
			Slug:    uniqueOrgSlug(txRepos, orgName),
			Plan:    "starter",
			OwnerID: user.ID,
		}
		if err := txRepos.Organization.Create(org); err != nil {
			return err
		}
		return txRepos.Organization.AddMember(&models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           models.ORG_ROLE_OWNER,
		})
	})
	if err != nil {
		if _, lookupErr := repos.User.GetByEmail(user.Email); lookupErr == nil {
			return jsonError(c, fiber.StatusConflict, "email_taken", "an account with this email already exists")
		}
		log.Errorf("registration failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "registration failed")
	}

	if err := mail.SendInvitation(user.Email, orgName, user.ActivationToken); err != nil {
		log.Warnf("could not send activation mail to %s: %v", user.Email, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "account created, check your email to activate it",
	})
}

// HandleActivate flips an account to active via its activation token.
func HandleActivate(c *fiber.Ctx) error {
	token := c.Params("token")
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "invalid activation token")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "activation failed")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "activation failed")
	}

	return c.JSON(fiber.Map{"message": "account activated"})
}

// HandleLogin authenticates the user and establishes the session.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		// Do not reveal which half of the credential pair failed.
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "inactive", "account is not activated")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "session error")
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.Role == models.ROLE_ADMIN)

	if org, member, err := repos.Organization.GetForUser(user.ID); err == nil {
		sess.Set(ORG_ID, org.ID)
		sess.Set(ORG_ROLE, member.Role)
		sess.Set(ORG_PLAN, org.Plan)
	}

	if err := sess.Save(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "session error")
	}

	database.GetDB().Model(user).Update("last_login_at", time.Now())

	return c.JSON(fiber.Map{
		"message": "logged in",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// HandleLogout destroys the session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// HandleMe returns the resolved identity and tenancy for the session.
func HandleMe(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user_id":         ctx.UserID,
		"username":        ctx.Username,
		"organization_id": ctx.OrganizationID,
		"org_role":        ctx.OrgRole,
		"plan":            ctx.Plan,
		"is_admin":        ctx.IsAdmin,
	})
}

// uniqueOrgSlug derives a slug from the name and appends a counter until it
// is free.
func uniqueOrgSlug(repos *repository.Repositories, name string) string {
	base := models.MakeSlug(name)
	slug := base
	for i := 2; ; i++ {
		taken, err := repos.Organization.SlugExists(slug)
		if err != nil || !taken {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
