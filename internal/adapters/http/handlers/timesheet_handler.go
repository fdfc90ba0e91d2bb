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

// TimesheetHandler handles timesheet endpoints
type TimesheetHandler struct {
	timesheetService *services.TimesheetService
}

// NewTimesheetHandler creates a new timesheet handler
func NewTimesheetHandler(timesheetService *services.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheetService: timesheetService}
}

// List returns timesheets visible to the caller
// @Summary List timesheets
// @Tags Timesheets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /timesheets [get]
func (h *TimesheetHandler) List(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	input := &services.ListTimesheetInput{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Status:    c.Query("status"),
		Offset:    params.Offset,
		Limit:     params.Limit,
	}
	if v := c.QueryInt("employee_id"); v > 0 {
		id := uint(v)
		input.EmployeeID = &id
	}

	timesheets, total, err := h.timesheetService.List(c.UserContext(), principal, input)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.TimesheetResponse, len(timesheets))
	for i, ts := range timesheets {
		out[i] = ts.ToResponse()
	}

	return response.SuccessWithMeta(c, "", out, pagination.GetMeta(params, total))
}

// Create records a timesheet against an approved roster entry
// @Summary Record a timesheet
// @Tags Timesheets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTimesheetInput true "Timesheet data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /timesheets [post]
func (h *TimesheetHandler) Create(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateTimesheetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	timesheet, err := h.timesheetService.Create(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, "Timesheet recorded", timesheet.ToResponse())
}

// SetStatus approves or rejects a timesheet
// @Summary Decide a timesheet
// @Tags Timesheets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Timesheet ID"
// @Param body body services.DecisionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /timesheets/{id}/approve [post]
func (h *TimesheetHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid timesheet ID")
	}

	var input services.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	timesheet, err := h.timesheetService.SetStatus(c.UserContext(), principal, uint(id), &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Timesheet "+string(timesheet.Status), timesheet.ToResponse())
}

// Delete removes a pending timesheet
// @Summary Delete a timesheet
// @Tags Timesheets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Timesheet ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /timesheets/{id} [delete]
func (h *TimesheetHandler) Delete(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid timesheet ID")
	}

	if err := h.timesheetService.Delete(c.UserContext(), principal, uint(id)); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Timesheet deleted", nil)
}
