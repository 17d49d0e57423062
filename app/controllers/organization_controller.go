package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/mail"
	"github.com/stratushq/stratus/internal/pkg/tiers"
)

type inviteMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// HandleOrganizationGet returns the caller's organization.
func HandleOrganizationGet(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	org, err := repos.Organization.GetByID(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load organization")
	}

	return c.JSON(fiber.Map{"organization": org})
}

// HandleMemberList returns the organization's members.
func HandleMemberList(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	members, err := repos.Organization.ListMembers(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load members")
	}

	return c.JSON(fiber.Map{"members": members})
}

// HandleMemberInvite adds a user to the organization by email. Unknown
// addresses get a pending account plus an activation mail. The member cap of
// the current plan is enforced first.
func HandleMemberInvite(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	var req inviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	role := req.Role
	if role == "" {
		role = models.ORG_ROLE_MEMBER
	}
	if role != models.ORG_ROLE_ADMIN && role != models.ORG_ROLE_MEMBER {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_role", "role must be admin or member")
	}

	repos := repository.GetGlobalRepositories()

	org, err := repos.Organization.GetByID(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load organization")
	}

	// The cap check uses the stored plan, not the session copy, which can be
	// stale after a plan change in another member's session.
	tier, ok := tiers.ByID(org.Plan)
	if !ok {
		tier, _ = tiers.ByID("starter")
	}
	if tier.MaxUsers != tiers.Unlimited {
		count, err := repos.Organization.CountMembers(ctx.OrganizationID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check member quota")
		}
		if count >= int64(tier.MaxUsers) {
			return jsonError(c, fiber.StatusForbidden, "quota_exceeded", "member limit for your plan reached, upgrade to invite more people")
		}
	}

	user, err := repos.User.GetByEmail(req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = createPendingUser(repos, req.Email)
		if err != nil {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
		}
		if mailErr := mail.SendInvitation(user.Email, org.Name, user.ActivationToken); mailErr != nil {
			log.Warnf("could not send invitation mail to %s: %v", user.Email, mailErr)
		}
	} else if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not look up user")
	}

	if _, err := repos.Organization.GetMember(ctx.OrganizationID, user.ID); err == nil {
		return jsonError(c, fiber.StatusConflict, "already_member", "user is already a member")
	}

	member := &models.OrganizationMember{
		OrganizationID: ctx.OrganizationID,
		UserID:         user.ID,
		Role:           role,
		InvitedBy:      ctx.UserID,
	}
	if err := repos.Organization.AddMember(member); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not add member")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"member": member})
}

// HandleMemberRoleChange updates a member's role. The owner role is bound to
// the organization record and cannot be granted or taken here.
func HandleMemberRoleChange(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	userID, err := strconv.ParseUint(c.Params("userID"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid user id")
	}

	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Role != models.ORG_ROLE_ADMIN && req.Role != models.ORG_ROLE_MEMBER {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_role", "role must be admin or member")
	}

	repos := repository.GetGlobalRepositories()
	member, err := repos.Organization.GetMember(ctx.OrganizationID, uint(userID))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "member not found")
	}
	if member.Role == models.ORG_ROLE_OWNER {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "the owner role cannot be changed")
	}

	member.Role = req.Role
	if err := repos.Organization.AddMember(member); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not update member")
	}

	return c.JSON(fiber.Map{"member": member})
}

// HandleMemberRemove removes a member from the organization.
func HandleMemberRemove(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}

	userID, err := strconv.ParseUint(c.Params("userID"), 10, 32)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid user id")
	}

	repos := repository.GetGlobalRepositories()
	member, err := repos.Organization.GetMember(ctx.OrganizationID, uint(userID))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "member not found")
	}
	if member.Role == models.ORG_ROLE_OWNER {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "the owner cannot be removed")
	}

	if err := repos.Organization.RemoveMember(ctx.OrganizationID, uint(userID)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not remove member")
	}

	return c.JSON(fiber.Map{"message": "member removed"})
}

// createPendingUser creates an inactive account for an invited address. The
// random placeholder password is replaced when the invitee activates.
func createPendingUser(repos *repository.Repositories, email string) (*models.User, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	user, err := models.CreateUser(email, email, hex.EncodeToString(buf))
	if err != nil {
		return nil, err
	}
	if err := user.GenerateActivationToken(); err != nil {
		return nil, err
	}
	if err := repos.User.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
