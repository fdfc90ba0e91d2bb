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

// RosterHandler handles roster endpoints
type RosterHandler struct {
	rosterService *services.RosterService
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// List returns roster entries visible to the caller
// @Summary List roster entries
// @Tags Roster
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Param employee_id query int false "Filter by employee"
// @Param shift_type_id query int false "Filter by shift type"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /roster [get]
func (h *RosterHandler) List(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	input := &services.ListRosterInput{
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
	if v := c.QueryInt("shift_type_id"); v > 0 {
		id := uint(v)
		input.ShiftTypeID = &id
	}

	entries, total, err := h.rosterService.List(c.UserContext(), principal, input)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.RosterEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = entry.ToResponse()
	}

	return response.SuccessWithMeta(c, "", out, pagination.GetMeta(params, total))
}

// Get returns one roster entry
// @Summary Get a roster entry
// @Tags Roster
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /roster/{id} [get]
func (h *RosterHandler) Get(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid roster entry ID")
	}

	entry, err := h.rosterService.Get(c.UserContext(), principal, uint(id))
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "", entry.ToResponse())
}

// Create creates a pending roster entry
// @Summary Create a roster entry
// @Tags Roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateRosterInput true "Entry data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roster [post]
func (h *RosterHandler) Create(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateRosterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.rosterService.Create(c.UserContext(), principal, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Created(c, "Roster entry created", entry.ToResponse())
}

// BulkCreateRequest represents a bulk roster creation request
type BulkCreateRequest struct {
	Entries []*services.CreateRosterInput `json:"entries"`
}

// CreateBulk creates many roster entries atomically
// @Summary Bulk create roster entries
// @Description All entries are validated first; any failure rejects the whole batch
// @Tags Roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkCreateRequest true "Entries"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /roster/bulk [post]
func (h *RosterHandler) CreateBulk(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req BulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entries, err := h.rosterService.CreateBulk(c.UserContext(), principal, req.Entries)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.RosterEntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = entry.ToResponse()
	}

	return response.Created(c, "Roster entries created", fiber.Map{
		"count":   len(out),
		"entries": out,
	})
}

// Update applies a partial update to a roster entry
// @Summary Update a roster entry
// @Tags Roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param body body services.UpdateRosterInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roster/{id} [put]
func (h *RosterHandler) Update(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid roster entry ID")
	}

	var input services.UpdateRosterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.rosterService.Update(c.UserContext(), principal, uint(id), &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Roster entry updated", entry.ToResponse())
}

// SetStatus approves or rejects a roster entry
// @Summary Decide a roster entry
// @Tags Roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param body body services.DecisionInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roster/{id}/approve [post]
func (h *RosterHandler) SetStatus(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid roster entry ID")
	}

	var input services.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	entry, err := h.rosterService.SetStatus(c.UserContext(), principal, uint(id), &input)
	if err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Roster entry "+string(entry.Status), entry.ToResponse())
}

// Delete removes a roster entry
// @Summary Delete a roster entry
// @Tags Roster
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /roster/{id} [delete]
func (h *RosterHandler) Delete(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid roster entry ID")
	}

	if err := h.rosterService.Delete(c.UserContext(), principal, uint(id)); err != nil {
		return serviceError(c, err)
	}

	return response.Success(c, "Roster entry deleted", nil)
}
