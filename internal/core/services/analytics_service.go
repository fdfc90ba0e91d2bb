package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"gorm.io/gorm"
)

// AnalyticsService answers coverage and availability questions over the
// roster. Reports are restricted to principals with analytics access and
// only ever count approved records, except the pending-approvals figure.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// rangeOrDefault parses the optional range, falling back to the current
// week (Monday through Sunday).
func (s *AnalyticsService) rangeOrDefault(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" && endDate == "" {
		start, end := domain.WeekRange(s.now())
		return start, end, nil
	}
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date and end_date must be supplied together", domain.ErrInvalidInput)
	}
	start, err := domain.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date is before start_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}

func (s *AnalyticsService) authorize(principal *domain.Principal) error {
	if !principal.Allowed(domain.CapViewAnalytics) {
		return fmt.Errorf("%w: analytics access requires Manager or Admin standing", domain.ErrPermissionDenied)
	}
	return nil
}

// ============================================================
// Dashboard
// ============================================================

// DashboardMetrics represents the headline workforce numbers for a range
type DashboardMetrics struct {
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	TotalEmployees      int64   `json:"total_employees"`
	EmployeesOnShift    int64   `json:"employees_on_shift"`
	EmployeesOnLeave    int64   `json:"employees_on_leave"`
	AvailableEmployees  int64   `json:"available_employees"`
	PendingApprovals    int64   `json:"pending_approvals"`
	TotalScheduledHours float64 `json:"total_scheduled_hours"`
}

// GetDashboard returns the headline metrics. Availability is clamped at
// zero: an employee both rostered and on leave would otherwise push the
// difference negative.
func (s *AnalyticsService) GetDashboard(ctx context.Context, principal *domain.Principal, startDate, endDate string) (*DashboardMetrics, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}
	start, end, err := s.rangeOrDefault(startDate, endDate)
	if err != nil {
		return nil, err
	}

	data := &DashboardMetrics{
		StartDate: start.Format(domain.DateLayout),
		EndDate:   end.Format(domain.DateLayout),
	}

	s.db.WithContext(ctx).Table("employees").Count(&data.TotalEmployees)

	s.db.WithContext(ctx).Table("roster_entries").
		Where("status = ? AND date BETWEEN ? AND ?", domain.StatusApproved, start, end).
		Distinct("employee_id").
		Count(&data.EmployeesOnShift)

	s.db.WithContext(ctx).Table("leave_requests").
		Where("status = ? AND start_date <= ? AND end_date >= ?", domain.StatusApproved, end, start).
		Distinct("employee_id").
		Count(&data.EmployeesOnLeave)

	available := data.TotalEmployees - data.EmployeesOnShift - data.EmployeesOnLeave
	if available < 0 {
		available = 0
	}
	data.AvailableEmployees = available

	// Pending roster rows only. Timesheets and leave awaiting a decision are
	// reported by the daily digest, not here.
	s.db.WithContext(ctx).Table("roster_entries").
		Where("status = ? AND date BETWEEN ? AND ?", domain.StatusPending, start, end).
		Count(&data.PendingApprovals)

	s.db.WithContext(ctx).Table("roster_entries").
		Where("status = ? AND date BETWEEN ? AND ?", domain.StatusApproved, start, end).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&data.TotalScheduledHours)

	return data, nil
}

// ============================================================
// Coverage
// ============================================================

// CoverageCell represents one (date, shift type) coverage bucket
type CoverageCell struct {
	ShiftTypeID   uint    `json:"shift_type_id"`
	ShiftTypeName string  `json:"shift_type_name"`
	Color         string  `json:"color"`
	EmployeeCount int64   `json:"employee_count"`
	TotalHours    float64 `json:"total_hours"`
}

// DayCoverage groups coverage cells under one ISO date
type DayCoverage struct {
	Date   string         `json:"date"`
	Shifts []CoverageCell `json:"shifts"`
}

// GetShiftCoverage returns approved headcount and hours per (date, shift
// type), date-ascending.
func (s *AnalyticsService) GetShiftCoverage(ctx context.Context, principal *domain.Principal, startDate, endDate string) ([]DayCoverage, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}
	start, end, err := s.rangeOrDefault(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Date          time.Time
		ShiftTypeID   uint
		ShiftTypeName string
		Color         string
		EmployeeCount int64
		TotalHours    float64
	}
	err = s.db.WithContext(ctx).Table("roster_entries").
		Select(`
			roster_entries.date,
			roster_entries.shift_type_id,
			shift_types.name as shift_type_name,
			shift_types.color as color,
			COUNT(roster_entries.id) as employee_count,
			COALESCE(SUM(roster_entries.hours), 0) as total_hours
		`).
		Joins("JOIN shift_types ON roster_entries.shift_type_id = shift_types.id").
		Where("roster_entries.status = ? AND roster_entries.date BETWEEN ? AND ?", domain.StatusApproved, start, end).
		Group("roster_entries.date, roster_entries.shift_type_id, shift_types.name, shift_types.color").
		Order("roster_entries.date ASC, shift_types.start_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	coverage := make([]DayCoverage, 0)
	for _, row := range rows {
		date := row.Date.Format(domain.DateLayout)
		cell := CoverageCell{
			ShiftTypeID:   row.ShiftTypeID,
			ShiftTypeName: row.ShiftTypeName,
			Color:         row.Color,
			EmployeeCount: row.EmployeeCount,
			TotalHours:    row.TotalHours,
		}
		if n := len(coverage); n > 0 && coverage[n-1].Date == date {
			coverage[n-1].Shifts = append(coverage[n-1].Shifts, cell)
			continue
		}
		coverage = append(coverage, DayCoverage{Date: date, Shifts: []CoverageCell{cell}})
	}
	return coverage, nil
}

// ============================================================
// Distribution reports
// ============================================================

// BucketCount is a generic (label, count) report row
type BucketCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GetEmployeesByShift counts approved roster entries per shift type in
// the range
func (s *AnalyticsService) GetEmployeesByShift(ctx context.Context, principal *domain.Principal, startDate, endDate string) ([]BucketCount, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}
	start, end, err := s.rangeOrDefault(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var rows []BucketCount
	err = s.db.WithContext(ctx).Table("roster_entries").
		Select("shift_types.id as id, shift_types.name as name, COUNT(DISTINCT roster_entries.employee_id) as count").
		Joins("JOIN shift_types ON roster_entries.shift_type_id = shift_types.id").
		Where("roster_entries.status = ? AND roster_entries.date BETWEEN ? AND ?", domain.StatusApproved, start, end).
		Group("shift_types.id, shift_types.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// GetEmployeesByRole counts employees per role
func (s *AnalyticsService) GetEmployeesByRole(ctx context.Context, principal *domain.Principal) ([]BucketCount, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}

	var rows []BucketCount
	err := s.db.WithContext(ctx).Table("employees").
		Select("roles.id as id, roles.name as name, COUNT(employees.id) as count").
		Joins("JOIN roles ON employees.role_id = roles.id").
		Group("roles.id, roles.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// GetEmployeesByArea counts employees per area of responsibility.
// Employees without an area are omitted.
func (s *AnalyticsService) GetEmployeesByArea(ctx context.Context, principal *domain.Principal) ([]BucketCount, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}

	var rows []BucketCount
	err := s.db.WithContext(ctx).Table("employees").
		Select("areas_of_responsibility.id as id, areas_of_responsibility.name as name, COUNT(employees.id) as count").
		Joins("JOIN areas_of_responsibility ON employees.area_id = areas_of_responsibility.id").
		Group("areas_of_responsibility.id, areas_of_responsibility.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// LeaveTypeSummary aggregates approved leave per type
type LeaveTypeSummary struct {
	LeaveType string `json:"leave_type"`
	Requests  int64  `json:"requests"`
	TotalDays int64  `json:"total_days"`
}

// GetLeaveSummary aggregates approved leave overlapping the range by type
func (s *AnalyticsService) GetLeaveSummary(ctx context.Context, principal *domain.Principal, startDate, endDate string) ([]LeaveTypeSummary, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}
	start, end, err := s.rangeOrDefault(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var rows []LeaveTypeSummary
	err = s.db.WithContext(ctx).Table("leave_requests").
		Select("leave_type, COUNT(id) as requests, COALESCE(SUM(days), 0) as total_days").
		Where("status = ? AND start_date <= ? AND end_date >= ?", domain.StatusApproved, end, start).
		Group("leave_type").
		Order("leave_type ASC").
		Scan(&rows).Error
	return rows, err
}

// ============================================================
// Skill search
// ============================================================

// SkillSearchMatch is one employee matched by the skill/role search, with
// their status for today. An approved leave covering today overrides an
// approved shift.
type SkillSearchMatch struct {
	EmployeeID uint     `json:"employee_id"`
	Name       string   `json:"name"`
	Surname    string   `json:"surname"`
	Role       string   `json:"role"`
	Skills     []string `json:"skills"`
	Status     string   `json:"status"`
}

// SearchBySkillAndRole finds employees by case-insensitive partial skill
// and/or role name. At least one filter is required; both are ANDed.
func (s *AnalyticsService) SearchBySkillAndRole(ctx context.Context, principal *domain.Principal, skill, role string) ([]SkillSearchMatch, error) {
	if err := s.authorize(principal); err != nil {
		return nil, err
	}
	if skill == "" && role == "" {
		return nil, fmt.Errorf("%w: at least one of skill or role is required", domain.ErrInvalidInput)
	}

	query := s.db.WithContext(ctx).Table("employees").
		Select("DISTINCT employees.id, employees.name, employees.surname, roles.name as role").
		Joins("JOIN roles ON employees.role_id = roles.id")

	if skill != "" {
		query = query.
			Joins("JOIN employee_skills ON employee_skills.employee_id = employees.id").
			Joins("JOIN skills ON employee_skills.skill_id = skills.id").
			Where("LOWER(skills.name) LIKE ?", "%"+strings.ToLower(skill)+"%")
	}
	if role != "" {
		query = query.Where("LOWER(roles.name) LIKE ?", "%"+strings.ToLower(role)+"%")
	}

	var rows []struct {
		ID      uint
		Name    string
		Surname string
		Role    string
	}
	if err := query.Order("employees.surname ASC, employees.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	today := s.now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	matches := make([]SkillSearchMatch, 0, len(rows))
	for _, row := range rows {
		match := SkillSearchMatch{
			EmployeeID: row.ID,
			Name:       row.Name,
			Surname:    row.Surname,
			Role:       row.Role,
			Skills:     []string{},
			Status:     "available",
		}

		s.db.WithContext(ctx).Table("employee_skills").
			Select("skills.name").
			Joins("JOIN skills ON employee_skills.skill_id = skills.id").
			Where("employee_skills.employee_id = ?", row.ID).
			Order("skills.name ASC").
			Scan(&match.Skills)

		var onShift int64
		s.db.WithContext(ctx).Table("roster_entries").
			Where("employee_id = ? AND status = ? AND date = ?", row.ID, domain.StatusApproved, today).
			Count(&onShift)
		if onShift > 0 {
			match.Status = "on_shift"
		}

		// Leave takes precedence over a rostered shift
		var leaveType string
		s.db.WithContext(ctx).Table("leave_requests").
			Select("leave_type").
			Where("employee_id = ? AND status = ? AND start_date <= ? AND end_date >= ?", row.ID, domain.StatusApproved, today, today).
			Limit(1).
			Scan(&leaveType)
		if leaveType != "" {
			match.Status = "on_" + leaveType + "_leave"
		}

		matches = append(matches, match)
	}

	return matches, nil
}
