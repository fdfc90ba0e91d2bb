package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedApprovedShift(t *testing.T, f *fixture, employeeID uint, shiftTypeID uint, date string, hours float64) *models.RosterEntry {
	t.Helper()
	entry := &models.RosterEntry{
		EmployeeID:  employeeID,
		ShiftTypeID: shiftTypeID,
		Date:        mustDate(t, date),
		Hours:       hours,
		Approval:    models.Approval{Status: domain.StatusApproved},
	}
	require.NoError(t, f.db.Create(entry).Error)
	return entry
}

func seedApprovedLeave(t *testing.T, f *fixture, employeeID uint, leaveType, start, end string, days int) *models.LeaveRequest {
	t.Helper()
	leave := &models.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  mustDate(t, start),
		EndDate:    mustDate(t, end),
		Days:       days,
		Approval:   models.Approval{Status: domain.StatusApproved},
	}
	require.NoError(t, f.db.Create(leave).Error)
	return leave
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalyticsService(f.db)
	ctx := context.Background()

	// Ten employees total: the fixture's four plus six more
	for i := 0; i < 6; i++ {
		f.createEmployee(t, fmt.Sprintf("extra%d@company.co.za", i), "Extra", fmt.Sprintf("Person%d", i), f.employeeRole)
	}

	seedApprovedShift(t, f, f.worker.ID, f.morning.ID, "2026-08-18", 8)
	seedApprovedLeave(t, f, f.worker2.ID, models.LeaveTypePaid, "2026-08-17", "2026-08-21", 5)

	t.Run("headline numbers for the range", func(t *testing.T) {
		data, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
		require.NoError(t, err)
		assert.EqualValues(t, 10, data.TotalEmployees)
		assert.EqualValues(t, 1, data.EmployeesOnShift)
		assert.EqualValues(t, 1, data.EmployeesOnLeave)
		assert.EqualValues(t, 8, data.AvailableEmployees)
		assert.EqualValues(t, 0, data.PendingApprovals)
		assert.Equal(t, 8.0, data.TotalScheduledHours)
	})

	t.Run("pending records are counted but not scheduled", func(t *testing.T) {
		pending := &models.RosterEntry{
			EmployeeID:  f.admin.ID,
			ShiftTypeID: f.morning.ID,
			Date:        mustDate(t, "2026-08-19"),
			Hours:       8,
			Approval:    models.Approval{Status: domain.StatusPending},
		}
		require.NoError(t, f.db.Create(pending).Error)

		data, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
		require.NoError(t, err)
		assert.EqualValues(t, 1, data.EmployeesOnShift, "pending shifts do not count")
		assert.EqualValues(t, 1, data.PendingApprovals)
		assert.Equal(t, 8.0, data.TotalScheduledHours)
	})

	t.Run("pending timesheets and leave stay out of the pending figure", func(t *testing.T) {
		shift := seedApprovedShift(t, f, f.worker2.ID, f.morning.ID, "2026-08-20", 8)
		timesheet := &models.Timesheet{
			EmployeeID:    f.worker2.ID,
			RosterEntryID: shift.ID,
			Date:          shift.Date,
			HoursWorked:   8,
			Approval:      models.Approval{Status: domain.StatusPending},
		}
		require.NoError(t, f.db.Create(timesheet).Error)
		leave := &models.LeaveRequest{
			EmployeeID: f.admin.ID,
			LeaveType:  models.LeaveTypeUnpaid,
			StartDate:  mustDate(t, "2026-08-20"),
			EndDate:    mustDate(t, "2026-08-21"),
			Days:       2,
			Approval:   models.Approval{Status: domain.StatusPending},
		}
		require.NoError(t, f.db.Create(leave).Error)

		data, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
		require.NoError(t, err)
		assert.EqualValues(t, 1, data.PendingApprovals, "only pending roster rows count")
	})

	t.Run("records outside the range are ignored", func(t *testing.T) {
		data, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-09-01", "2026-09-07")
		require.NoError(t, err)
		assert.EqualValues(t, 0, data.EmployeesOnShift)
		assert.EqualValues(t, 0, data.EmployeesOnLeave)
		assert.EqualValues(t, 10, data.AvailableEmployees)
	})

	t.Run("requires analytics access", func(t *testing.T) {
		_, err := svc.GetDashboard(ctx, f.workerPrincipal(), "2026-08-17", "2026-08-23")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("half-open range is invalid", func(t *testing.T) {
		_, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-08-17", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("reversed range is invalid", func(t *testing.T) {
		_, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-08-23", "2026-08-17")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetDashboardAvailabilityClamp(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalyticsService(f.db)
	ctx := context.Background()

	// Every fixture employee both rostered and on leave: the raw difference
	// would be 4 - 4 - 4 = -4.
	for _, e := range []*models.Employee{f.admin, f.manager, f.worker, f.worker2} {
		seedApprovedShift(t, f, e.ID, f.morning.ID, "2026-08-18", 8)
		seedApprovedLeave(t, f, e.ID, models.LeaveTypeSick, "2026-08-19", "2026-08-19", 1)
	}

	data, err := svc.GetDashboard(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
	require.NoError(t, err)
	assert.EqualValues(t, 4, data.EmployeesOnShift)
	assert.EqualValues(t, 4, data.EmployeesOnLeave)
	assert.EqualValues(t, 0, data.AvailableEmployees, "availability never goes negative")
}

func TestGetShiftCoverage(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalyticsService(f.db)
	ctx := context.Background()

	seedApprovedShift(t, f, f.worker.ID, f.morning.ID, "2026-08-17", 8)
	seedApprovedShift(t, f, f.worker2.ID, f.morning.ID, "2026-08-17", 8)
	seedApprovedShift(t, f, f.admin.ID, f.night.ID, "2026-08-17", 8)
	seedApprovedShift(t, f, f.worker.ID, f.night.ID, "2026-08-18", 8)

	// pending entries stay out of coverage
	pending := &models.RosterEntry{
		EmployeeID:  f.manager.ID,
		ShiftTypeID: f.morning.ID,
		Date:        mustDate(t, "2026-08-17"),
		Hours:       8,
		Approval:    models.Approval{Status: domain.StatusPending},
	}
	require.NoError(t, f.db.Create(pending).Error)

	coverage, err := svc.GetShiftCoverage(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
	require.NoError(t, err)
	require.Len(t, coverage, 2)

	day1 := coverage[0]
	assert.Equal(t, "2026-08-17", day1.Date)
	require.Len(t, day1.Shifts, 2)
	// ordered by shift start time: Morning (06:00) before Night (22:00)
	assert.Equal(t, "Morning", day1.Shifts[0].ShiftTypeName)
	assert.EqualValues(t, 2, day1.Shifts[0].EmployeeCount)
	assert.Equal(t, 16.0, day1.Shifts[0].TotalHours)
	assert.Equal(t, "Night", day1.Shifts[1].ShiftTypeName)
	assert.EqualValues(t, 1, day1.Shifts[1].EmployeeCount)

	day2 := coverage[1]
	assert.Equal(t, "2026-08-18", day2.Date)
	require.Len(t, day2.Shifts, 1)
	assert.Equal(t, "Night", day2.Shifts[0].ShiftTypeName)
}

func TestDistributionReports(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalyticsService(f.db)
	ctx := context.Background()

	seedApprovedShift(t, f, f.worker.ID, f.morning.ID, "2026-08-17", 8)
	seedApprovedShift(t, f, f.worker2.ID, f.morning.ID, "2026-08-18", 8)
	seedApprovedShift(t, f, f.worker.ID, f.night.ID, "2026-08-19", 8)

	t.Run("employees by shift counts distinct employees", func(t *testing.T) {
		rows, err := svc.GetEmployeesByShift(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Morning", rows[0].Name)
		assert.EqualValues(t, 2, rows[0].Count)
		assert.Equal(t, "Night", rows[1].Name)
		assert.EqualValues(t, 1, rows[1].Count)
	})

	t.Run("employees by role", func(t *testing.T) {
		rows, err := svc.GetEmployeesByRole(ctx, f.managerPrincipal())
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Employee", rows[0].Name)
		assert.EqualValues(t, 2, rows[0].Count)
	})

	t.Run("employees by area", func(t *testing.T) {
		rows, err := svc.GetEmployeesByArea(ctx, f.managerPrincipal())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Front Desk", rows[0].Name)
		assert.EqualValues(t, 4, rows[0].Count)
	})
}

func TestGetLeaveSummary(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalyticsService(f.db)
	ctx := context.Background()

	seedApprovedLeave(t, f, f.worker.ID, models.LeaveTypePaid, "2026-08-17", "2026-08-19", 3)
	seedApprovedLeave(t, f, f.worker2.ID, models.LeaveTypePaid, "2026-08-20", "2026-08-21", 2)
	seedApprovedLeave(t, f, f.admin.ID, models.LeaveTypeSick, "2026-08-18", "2026-08-18", 1)

	// pending leave stays out
	pending := &models.LeaveRequest{
		EmployeeID: f.manager.ID,
		LeaveType:  models.LeaveTypeUnpaid,
		StartDate:  mustDate(t, "2026-08-18"),
		EndDate:    mustDate(t, "2026-08-18"),
		Days:       1,
		Approval:   models.Approval{Status: domain.StatusPending},
	}
	require.NoError(t, f.db.Create(pending).Error)

	rows, err := svc.GetLeaveSummary(ctx, f.managerPrincipal(), "2026-08-17", "2026-08-23")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.LeaveTypePaid, rows[0].LeaveType)
	assert.EqualValues(t, 2, rows[0].Requests)
	assert.EqualValues(t, 5, rows[0].TotalDays)
	assert.Equal(t, models.LeaveTypeSick, rows[1].LeaveType)
	assert.EqualValues(t, 1, rows[1].Requests)
}

func TestSearchBySkillAndRole(t *testing.T) {
	f := newFixture(t)
	svc := NewAnalyticsService(f.db)
	svc.now = fixedTime("2026-08-17T12:00:00Z")
	ctx := context.Background()

	firstAid := &models.Skill{Name: "First Aid"}
	languages := &models.Skill{Name: "Languages"}
	require.NoError(t, f.db.Create(firstAid).Error)
	require.NoError(t, f.db.Create(languages).Error)
	require.NoError(t, f.db.Create(&models.EmployeeSkill{EmployeeID: f.worker.ID, SkillID: firstAid.ID, Proficiency: "Advanced"}).Error)
	require.NoError(t, f.db.Create(&models.EmployeeSkill{EmployeeID: f.worker.ID, SkillID: languages.ID, Proficiency: "Beginner"}).Error)
	require.NoError(t, f.db.Create(&models.EmployeeSkill{EmployeeID: f.worker2.ID, SkillID: firstAid.ID, Proficiency: "Beginner"}).Error)

	t.Run("at least one filter is required", func(t *testing.T) {
		_, err := svc.SearchBySkillAndRole(ctx, f.managerPrincipal(), "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("matches by partial skill, case-insensitive", func(t *testing.T) {
		matches, err := svc.SearchBySkillAndRole(ctx, f.managerPrincipal(), "first", "")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		// ordered by surname: Doe before Smith
		assert.Equal(t, f.worker.ID, matches[0].EmployeeID)
		assert.ElementsMatch(t, []string{"First Aid", "Languages"}, matches[0].Skills)
		assert.Equal(t, "available", matches[0].Status)
	})

	t.Run("skill and role filters are ANDed", func(t *testing.T) {
		matches, err := svc.SearchBySkillAndRole(ctx, f.managerPrincipal(), "first aid", "employee")
		require.NoError(t, err)
		assert.Len(t, matches, 2)

		matches, err = svc.SearchBySkillAndRole(ctx, f.managerPrincipal(), "first aid", "admin")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("an approved shift today shows on_shift", func(t *testing.T) {
		seedApprovedShift(t, f, f.worker.ID, f.morning.ID, "2026-08-17", 8)

		matches, err := svc.SearchBySkillAndRole(ctx, f.managerPrincipal(), "first aid", "")
		require.NoError(t, err)
		assert.Equal(t, "on_shift", matches[0].Status)
	})

	t.Run("approved leave today overrides the shift", func(t *testing.T) {
		seedApprovedLeave(t, f, f.worker.ID, models.LeaveTypeSick, "2026-08-17", "2026-08-18", 2)

		matches, err := svc.SearchBySkillAndRole(ctx, f.managerPrincipal(), "first aid", "")
		require.NoError(t, err)
		assert.Equal(t, "on_sick_leave", matches[0].Status)
	})

	t.Run("requires analytics access", func(t *testing.T) {
		_, err := svc.SearchBySkillAndRole(ctx, f.workerPrincipal(), "first aid", "")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}
