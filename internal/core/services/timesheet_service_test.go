package services

import (
	"context"
	"testing"
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTimesheetService(f *fixture) *TimesheetService {
	return NewTimesheetService(
		repositories.NewTimesheetRepository(f.db),
		repositories.NewRosterRepository(f.db),
	)
}

// approvedEntry seeds an approved roster entry for the employee on the date.
func approvedEntry(t *testing.T, f *fixture, employeeID uint, date string) *models.RosterEntry {
	t.Helper()
	parsed, err := domain.ParseDate(date)
	require.NoError(t, err)
	entry := &models.RosterEntry{
		EmployeeID:  employeeID,
		ShiftTypeID: f.morning.ID,
		Date:        parsed,
		Hours:       8,
		Approval:    models.Approval{Status: domain.StatusApproved},
	}
	require.NoError(t, f.db.Create(entry).Error)
	return entry
}

func TestTimesheetCreate(t *testing.T) {
	f := newFixture(t)
	svc := newTimesheetService(f)
	ctx := context.Background()

	entry := approvedEntry(t, f, f.worker.ID, "2026-08-17")

	t.Run("owner records against their approved shift", func(t *testing.T) {
		ts, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: entry.ID,
			HoursWorked:   7.5,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, ts.Status)
		assert.Equal(t, f.worker.ID, ts.EmployeeID)
		assert.Equal(t, "2026-08-17", ts.Date.Format(domain.DateLayout))
	})

	t.Run("second timesheet for the same shift conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: entry.ID,
			HoursWorked:   8,
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("pending shift cannot take a timesheet", func(t *testing.T) {
		pending := &models.RosterEntry{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.morning.ID,
			Date:        mustDate(t, "2026-08-18"),
			Hours:       8,
			Approval:    models.Approval{Status: domain.StatusPending},
		}
		require.NoError(t, f.db.Create(pending).Error)

		_, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: pending.ID,
			HoursWorked:   8,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cannot submit for another employee without approval rights", func(t *testing.T) {
		otherEntry := approvedEntry(t, f, f.worker2.ID, "2026-08-17")
		_, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: otherEntry.ID,
			HoursWorked:   8,
		})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)

		// a manager may
		ts, err := svc.Create(ctx, f.managerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: otherEntry.ID,
			HoursWorked:   8,
		})
		require.NoError(t, err)
		assert.Equal(t, f.worker2.ID, ts.EmployeeID)
	})

	t.Run("hours must be positive", func(t *testing.T) {
		_, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: entry.ID,
			HoursWorked:   0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown roster entry", func(t *testing.T) {
		_, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: 9999,
			HoursWorked:   8,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestTimesheetSetStatus(t *testing.T) {
	f := newFixture(t)
	svc := newTimesheetService(f)
	svc.now = fixedTime("2026-08-18T08:00:00Z")
	ctx := context.Background()

	entry := approvedEntry(t, f, f.worker.ID, "2026-08-17")
	ts, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
		RosterEntryID: entry.ID,
		HoursWorked:   8,
	})
	require.NoError(t, err)

	t.Run("requires approval permission", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, f.workerPrincipal(), ts.ID, &DecisionInput{Action: "approve"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("reject, then re-reject is a no-op, then approve conflicts", func(t *testing.T) {
		decided, err := svc.SetStatus(ctx, f.managerPrincipal(), ts.ID, &DecisionInput{Action: "reject", Notes: "hours disputed"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, decided.Status)
		assert.Equal(t, "hours disputed", decided.Notes)

		decided, err = svc.SetStatus(ctx, f.managerPrincipal(), ts.ID, &DecisionInput{Action: "reject"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, decided.Status)

		_, err = svc.SetStatus(ctx, f.managerPrincipal(), ts.ID, &DecisionInput{Action: "approve"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestTimesheetDelete(t *testing.T) {
	f := newFixture(t)
	svc := newTimesheetService(f)
	ctx := context.Background()

	entry := approvedEntry(t, f, f.worker.ID, "2026-08-17")
	ts, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
		RosterEntryID: entry.ID,
		HoursWorked:   8,
	})
	require.NoError(t, err)

	t.Run("another employee cannot delete it", func(t *testing.T) {
		err := svc.Delete(ctx, principalFor(f.worker2, f.employeeRole), ts.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("owner deletes while pending", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, f.workerPrincipal(), ts.ID))
	})

	t.Run("decided timesheets stay", func(t *testing.T) {
		ts2, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{
			RosterEntryID: entry.ID,
			HoursWorked:   8,
		})
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, f.managerPrincipal(), ts2.ID, &DecisionInput{Action: "approve"})
		require.NoError(t, err)

		err = svc.Delete(ctx, f.managerPrincipal(), ts2.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestTimesheetListScoping(t *testing.T) {
	f := newFixture(t)
	svc := newTimesheetService(f)
	ctx := context.Background()

	e1 := approvedEntry(t, f, f.worker.ID, "2026-08-17")
	e2 := approvedEntry(t, f, f.worker2.ID, "2026-08-17")
	_, err := svc.Create(ctx, f.workerPrincipal(), &CreateTimesheetInput{RosterEntryID: e1.ID, HoursWorked: 8})
	require.NoError(t, err)
	_, err = svc.Create(ctx, principalFor(f.worker2, f.employeeRole), &CreateTimesheetInput{RosterEntryID: e2.ID, HoursWorked: 6})
	require.NoError(t, err)

	sheets, total, err := svc.List(ctx, f.workerPrincipal(), &ListTimesheetInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sheets, 1)
	assert.Equal(t, f.worker.ID, sheets[0].EmployeeID)

	_, total, err = svc.List(ctx, f.managerPrincipal(), &ListTimesheetInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := domain.ParseDate(s)
	require.NoError(t, err)
	return parsed
}
