package handlers

import (
	"strconv"

	"github.com/WNVissie/Shiftroster/internal/adapters/http/middleware"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/core/services"
	"github.com/WNVissie/Shiftroster/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReferenceHandler handles master data endpoints: roles, areas of
// responsibility, skills and shift types
type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(referenceService *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// ============================================================
// Roles
// ============================================================

// ListRoles returns all roles
// @Summary List roles
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /roles [get]
func (h *ReferenceHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.referenceService.ListRoles(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	out := make([]*models.RoleResponse, len(roles))
	for i, role := range roles {
		out[i] = role.ToResponse()
	}
	return response.Success(c, "", out)
}

// CreateRole creates a role
// @Summary Create a role
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RoleInput true "Role"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roles [post]
func (h *ReferenceHandler) CreateRole(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var input services.RoleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	role, err := h.referenceService.CreateRole(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Role created", role.ToResponse())
}

// UpdateRole updates a role
// @Summary Update a role
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Param body body services.RoleInput true "Role"
// @Success 200 {object} response.Response
// @Router /roles/{id} [put]
func (h *ReferenceHandler) UpdateRole(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}
	var input services.RoleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	role, err := h.referenceService.UpdateRole(c.UserContext(), principal, id, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Role updated", role.ToResponse())
}

// DeleteRole deletes an unused role
// @Summary Delete a role
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roles/{id} [delete]
func (h *ReferenceHandler) DeleteRole(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}
	if err := h.referenceService.DeleteRole(c.UserContext(), principal, id); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Role deleted", nil)
}

// ============================================================
// Areas of responsibility
// ============================================================

// ListAreas returns all areas
// @Summary List areas of responsibility
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /areas [get]
func (h *ReferenceHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.referenceService.ListAreas(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", areas)
}

// CreateArea creates an area
// @Summary Create an area
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AreaInput true "Area"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /areas [post]
func (h *ReferenceHandler) CreateArea(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var input services.AreaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	area, err := h.referenceService.CreateArea(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Area created", area)
}

// UpdateArea updates an area
// @Summary Update an area
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Area ID"
// @Param body body services.AreaInput true "Area"
// @Success 200 {object} response.Response
// @Router /areas/{id} [put]
func (h *ReferenceHandler) UpdateArea(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid area ID")
	}
	var input services.AreaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	area, err := h.referenceService.UpdateArea(c.UserContext(), principal, id, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Area updated", area)
}

// DeleteArea deletes an unused area
// @Summary Delete an area
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Param id path int true "Area ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /areas/{id} [delete]
func (h *ReferenceHandler) DeleteArea(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid area ID")
	}
	if err := h.referenceService.DeleteArea(c.UserContext(), principal, id); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Area deleted", nil)
}

// ============================================================
// Skills
// ============================================================

// ListSkills returns all skills
// @Summary List skills
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /skills [get]
func (h *ReferenceHandler) ListSkills(c *fiber.Ctx) error {
	skills, err := h.referenceService.ListSkills(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", skills)
}

// CreateSkill creates a skill
// @Summary Create a skill
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SkillInput true "Skill"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /skills [post]
func (h *ReferenceHandler) CreateSkill(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var input services.SkillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	skill, err := h.referenceService.CreateSkill(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Skill created", skill)
}

// UpdateSkill updates a skill
// @Summary Update a skill
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Param body body services.SkillInput true "Skill"
// @Success 200 {object} response.Response
// @Router /skills/{id} [put]
func (h *ReferenceHandler) UpdateSkill(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid skill ID")
	}
	var input services.SkillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	skill, err := h.referenceService.UpdateSkill(c.UserContext(), principal, id, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Skill updated", skill)
}

// DeleteSkill deletes an unused skill
// @Summary Delete a skill
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /skills/{id} [delete]
func (h *ReferenceHandler) DeleteSkill(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid skill ID")
	}
	if err := h.referenceService.DeleteSkill(c.UserContext(), principal, id); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Skill deleted", nil)
}

// ============================================================
// Shift types
// ============================================================

// ListShiftTypes returns all shift types
// @Summary List shift types
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /shift-types [get]
func (h *ReferenceHandler) ListShiftTypes(c *fiber.Ctx) error {
	shiftTypes, err := h.referenceService.ListShiftTypes(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", shiftTypes)
}

// CreateShiftType creates a shift type
// @Summary Create a shift type
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ShiftTypeInput true "Shift type"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /shift-types [post]
func (h *ReferenceHandler) CreateShiftType(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var input services.ShiftTypeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	shiftType, err := h.referenceService.CreateShiftType(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Shift type created", shiftType)
}

// UpdateShiftType updates a shift type
// @Summary Update a shift type
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shift type ID"
// @Param body body services.ShiftTypeInput true "Shift type"
// @Success 200 {object} response.Response
// @Router /shift-types/{id} [put]
func (h *ReferenceHandler) UpdateShiftType(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shift type ID")
	}
	var input services.ShiftTypeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	shiftType, err := h.referenceService.UpdateShiftType(c.UserContext(), principal, id, &input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Shift type updated", shiftType)
}

// DeleteShiftType deletes an unused shift type
// @Summary Delete a shift type
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Param id path int true "Shift type ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /shift-types/{id} [delete]
func (h *ReferenceHandler) DeleteShiftType(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shift type ID")
	}
	if err := h.referenceService.DeleteShiftType(c.UserContext(), principal, id); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Shift type deleted", nil)
}
