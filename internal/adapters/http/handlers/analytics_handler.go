package handlers

import (
	"github.com/WNVissie/Shiftroster/internal/adapters/http/middleware"
	"github.com/WNVissie/Shiftroster/internal/core/services"
	"github.com/WNVissie/Shiftroster/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler handles coverage and availability reporting endpoints
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns headline workforce metrics for a range
// @Summary Dashboard metrics
// @Description Defaults to the current week (Monday through Sunday)
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.GetDashboard(c.UserContext(), principal, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// ShiftCoverage returns approved headcount and hours per date and shift
// @Summary Shift coverage
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /analytics/shift-coverage [get]
func (h *AnalyticsHandler) ShiftCoverage(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.GetShiftCoverage(c.UserContext(), principal, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// EmployeesByShift returns distinct employees per shift type
// @Summary Employees by shift type
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /analytics/employees-by-shift [get]
func (h *AnalyticsHandler) EmployeesByShift(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.GetEmployeesByShift(c.UserContext(), principal, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// EmployeesByRole returns employee counts per role
// @Summary Employees by role
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /analytics/employees-by-role [get]
func (h *AnalyticsHandler) EmployeesByRole(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.GetEmployeesByRole(c.UserContext(), principal)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// EmployeesByArea returns employee counts per area
// @Summary Employees by area
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /analytics/employees-by-area [get]
func (h *AnalyticsHandler) EmployeesByArea(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.GetEmployeesByArea(c.UserContext(), principal)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// LeaveSummary aggregates approved leave by type
// @Summary Leave summary
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /analytics/leave-summary [get]
func (h *AnalyticsHandler) LeaveSummary(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.GetLeaveSummary(c.UserContext(), principal, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// SkillSearch finds employees by skill and/or role with today's status
// @Summary Search employees by skill or role
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param skill query string false "Partial skill name"
// @Param role query string false "Partial role name"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /analytics/skill-search [get]
func (h *AnalyticsHandler) SkillSearch(c *fiber.Ctx) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.analyticsService.SearchBySkillAndRole(c.UserContext(), principal, c.Query("skill"), c.Query("role"))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}
