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

// LeaveHandler handles leave request endpoints
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// List returns leave requests visible to the caller
// @Summary List leave requests
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /leave [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	input := &services.ListLeaveInput{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		LeaveType: c.Query("leave_type"),
		Status:    c.Query("status"),
		Offset:    params.Offset,
		Limit:     params.Limit,
	}
	if v := c.QueryInt("employee_id"); v > 0 {
		id := uint(v)
		input.EmployeeID = &id
	}

	leaves, total, err := h.leaveService.List(c.UserContext(), principal, input)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.LeaveRequestResponse, len(leaves))
	for i, leave := range leaves {
		out[i] = leave.ToResponse()
	}

	return response.SuccessWithMeta(c, "", out, pagination.GetMeta(params, total))
}

// Create files a leave request for the caller
// @Summary Request leave
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLeaveInput true "Leave request"
// @Success 201 {object} response.Response
// @Router /leave [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateLeaveInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.Create(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, "Leave requested", leave.ToResponse())
}

// SetStatus approves or rejects a leave request
// @Summary Decide a leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Param body body services.DecisionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leave/{id}/approve [post]
func (h *LeaveHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid leave request ID")
	}

	var input services.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leave, err := h.leaveService.SetStatus(c.UserContext(), principal, uint(id), &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Leave request "+string(leave.Status), leave.ToResponse())
}

// Delete withdraws a pending leave request
// @Summary Withdraw a leave request
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leave request ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /leave/{id} [delete]
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid leave request ID")
	}

	if err := h.leaveService.Delete(c.UserContext(), principal, uint(id)); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Leave request withdrawn", nil)
}
