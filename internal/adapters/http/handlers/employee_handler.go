package handlers

import (
	"strconv"

	"github.com/WNVissie/Shiftroster/internal/adapters/http/middleware"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/core/services"
	"github.com/WNVissie/Shiftroster/internal/pkg/pagination"
	"github.com/WNVissie/Shiftroster/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List returns employees matching the filters
// @Summary List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param role_id query int false "Filter by role"
// @Param area_id query int false "Filter by area"
// @Param skill_id query int false "Filter by skill"
// @Param search query string false "Name, surname, email or employee number"
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListEmployeeInput{
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.Limit,
	}
	if v := c.QueryInt("role_id"); v > 0 {
		id := uint(v)
		input.RoleID = &id
	}
	if v := c.QueryInt("area_id"); v > 0 {
		id := uint(v)
		input.AreaID = &id
	}
	if v := c.QueryInt("skill_id"); v > 0 {
		id := uint(v)
		input.SkillID = &id
	}

	employees, total, err := h.employeeService.List(c.UserContext(), input)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.EmployeeResponse, len(employees))
	for i, employee := range employees {
		out[i] = employee.ToResponse()
	}

	return response.SuccessWithMeta(c, "", out, pagination.GetMeta(params, total))
}

// Get returns one employee
// @Summary Get an employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.Get(c.UserContext(), uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "", employee.ToResponse())
}

// Create registers a new employee record
// @Summary Create an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEmployeeInput true "Employee data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Create(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, "Employee created", employee.ToResponse())
}

// Update applies a partial update to an employee
// @Summary Update an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.UpdateEmployeeInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.UserContext(), principal, uint(id), &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Employee updated", employee.ToResponse())
}

// Delete removes an employee
// @Summary Delete an employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.UserContext(), principal, uint(id)); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Employee deleted", nil)
}

// AddSkill attaches a skill to an employee
// @Summary Assign a skill
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.AddSkillInput true "Skill assignment"
// @Success 200 {object} response.Response
// @Router /employees/{id}/skills [post]
func (h *EmployeeHandler) AddSkill(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.AddSkillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.AddSkill(c.UserContext(), principal, uint(id), &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Skill assigned", employee.ToResponse())
}

// RemoveSkill detaches a skill from an employee
// @Summary Remove a skill
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param skillID path int true "Skill ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/skills/{skillID} [delete]
func (h *EmployeeHandler) RemoveSkill(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}
	skillID, err := strconv.ParseUint(c.Params("skillID"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid skill ID")
	}

	if err := h.employeeService.RemoveSkill(c.UserContext(), principal, uint(id), uint(skillID)); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Skill removed", nil)
}
