package services

import (
	"context"
	"testing"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRosterService(f *fixture) *RosterService {
	return NewRosterService(
		repositories.NewRosterRepository(f.db),
		repositories.NewEmployeeRepository(f.db),
		repositories.NewReferenceRepository(f.db),
	)
}

func TestRosterCreate(t *testing.T) {
	f := newFixture(t)
	svc := newRosterService(f)
	ctx := context.Background()

	t.Run("creates a pending entry", func(t *testing.T) {
		entry, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.morning.ID,
			Date:        "2026-08-17",
			Hours:       8,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, entry.Status)
		assert.Equal(t, "2026-08-17", entry.Date.Format(domain.DateLayout))
		assert.Nil(t, entry.ApprovedBy)
	})

	t.Run("hours default from the shift type", func(t *testing.T) {
		entry, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker2.ID,
			ShiftTypeID: f.night.ID,
			Date:        "2026-08-17",
		})
		require.NoError(t, err)
		assert.Equal(t, 8.0, entry.Hours)
	})

	t.Run("second shift on the same date conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.night.ID,
			Date:        "2026-08-17",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("same employee on another date is fine", func(t *testing.T) {
		_, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.morning.ID,
			Date:        "2026-08-18",
		})
		assert.NoError(t, err)
	})

	t.Run("requires scheduling permission", func(t *testing.T) {
		_, err := svc.Create(ctx, f.workerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.morning.ID,
			Date:        "2026-08-19",
		})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  9999,
			ShiftTypeID: f.morning.ID,
			Date:        "2026-08-19",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown shift type", func(t *testing.T) {
		_, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: 9999,
			Date:        "2026-08-19",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.morning.ID,
			Date:        "19-08-2026",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("negative hours", func(t *testing.T) {
		_, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
			EmployeeID:  f.worker.ID,
			ShiftTypeID: f.morning.ID,
			Date:        "2026-08-19",
			Hours:       -4,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRosterCreateBulk(t *testing.T) {
	f := newFixture(t)
	svc := newRosterService(f)
	ctx := context.Background()

	t.Run("inserts every valid entry", func(t *testing.T) {
		entries, err := svc.CreateBulk(ctx, f.managerPrincipal(), []*CreateRosterInput{
			{EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17"},
			{EmployeeID: f.worker2.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17"},
			{EmployeeID: f.worker.ID, ShiftTypeID: f.night.ID, Date: "2026-08-18"},
		})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("one bad entry rejects the whole batch", func(t *testing.T) {
		var before int64
		f.db.Model(&models.RosterEntry{}).Count(&before)

		_, err := svc.CreateBulk(ctx, f.managerPrincipal(), []*CreateRosterInput{
			{EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-19"},
			{EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17"}, // already rostered
			{EmployeeID: 9999, ShiftTypeID: f.morning.ID, Date: "2026-08-19"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		var bulkErr *BulkValidationError
		require.ErrorAs(t, err, &bulkErr)
		require.Len(t, bulkErr.Errors, 2)
		assert.Equal(t, 2, bulkErr.Errors[0].Position)
		assert.Equal(t, 3, bulkErr.Errors[1].Position)

		var after int64
		f.db.Model(&models.RosterEntry{}).Count(&after)
		assert.Equal(t, before, after, "batch must not be partially applied")
	})

	t.Run("duplicates inside the batch are positioned errors", func(t *testing.T) {
		_, err := svc.CreateBulk(ctx, f.managerPrincipal(), []*CreateRosterInput{
			{EmployeeID: f.worker2.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-20"},
			{EmployeeID: f.worker2.ID, ShiftTypeID: f.night.ID, Date: "2026-08-20"},
		})
		var bulkErr *BulkValidationError
		require.ErrorAs(t, err, &bulkErr)
		require.Len(t, bulkErr.Errors, 1)
		assert.Equal(t, 2, bulkErr.Errors[0].Position)
		assert.Contains(t, bulkErr.Errors[0].Message, "duplicate of entry 1")
	})

	t.Run("empty batch is invalid", func(t *testing.T) {
		_, err := svc.CreateBulk(ctx, f.managerPrincipal(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRosterUpdate(t *testing.T) {
	f := newFixture(t)
	svc := newRosterService(f)
	ctx := context.Background()

	first, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
		EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
		EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-18",
	})
	require.NoError(t, err)

	t.Run("moving onto an occupied date conflicts", func(t *testing.T) {
		newDate := "2026-08-18"
		_, err := svc.Update(ctx, f.managerPrincipal(), first.ID, &UpdateRosterInput{Date: &newDate})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("moving onto a free date succeeds", func(t *testing.T) {
		newDate := "2026-08-19"
		updated, err := svc.Update(ctx, f.managerPrincipal(), first.ID, &UpdateRosterInput{Date: &newDate})
		require.NoError(t, err)
		assert.Equal(t, "2026-08-19", updated.Date.Format(domain.DateLayout))
	})

	t.Run("reassigning to a free employee succeeds", func(t *testing.T) {
		updated, err := svc.Update(ctx, f.managerPrincipal(), first.ID, &UpdateRosterInput{EmployeeID: &f.worker2.ID})
		require.NoError(t, err)
		assert.Equal(t, f.worker2.ID, updated.EmployeeID)
	})

	t.Run("keeping the same pair does not trip the conflict check", func(t *testing.T) {
		hours := 6.5
		updated, err := svc.Update(ctx, f.managerPrincipal(), first.ID, &UpdateRosterInput{Hours: &hours})
		require.NoError(t, err)
		assert.Equal(t, 6.5, updated.Hours)
	})

	t.Run("requires scheduling permission", func(t *testing.T) {
		hours := 4.0
		_, err := svc.Update(ctx, f.workerPrincipal(), first.ID, &UpdateRosterInput{Hours: &hours})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("unknown entry", func(t *testing.T) {
		hours := 4.0
		_, err := svc.Update(ctx, f.managerPrincipal(), 9999, &UpdateRosterInput{Hours: &hours})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRosterSetStatus(t *testing.T) {
	f := newFixture(t)
	svc := newRosterService(f)
	svc.now = fixedTime("2026-08-17T09:00:00Z")
	ctx := context.Background()

	entry, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
		EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17",
	})
	require.NoError(t, err)

	t.Run("approve stamps approver and time", func(t *testing.T) {
		decided, err := svc.SetStatus(ctx, f.managerPrincipal(), entry.ID, &DecisionInput{Action: "approve"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, decided.Status)
		require.NotNil(t, decided.ApprovedBy)
		assert.Equal(t, f.manager.ID, *decided.ApprovedBy)
		assert.NotNil(t, decided.ApprovedAt)
	})

	t.Run("re-approving is an idempotent no-op", func(t *testing.T) {
		decided, err := svc.SetStatus(ctx, f.adminPrincipal(), entry.ID, &DecisionInput{Action: "approve"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, decided.Status)
		require.NotNil(t, decided.ApprovedBy)
		assert.Equal(t, f.manager.ID, *decided.ApprovedBy, "original approver stands")
	})

	t.Run("rejecting an approved entry conflicts", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, f.managerPrincipal(), entry.ID, &DecisionInput{Action: "reject"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown action is invalid", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, f.managerPrincipal(), entry.ID, &DecisionInput{Action: "maybe"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("requires approval permission", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, f.workerPrincipal(), entry.ID, &DecisionInput{Action: "approve"})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestRosterDelete(t *testing.T) {
	f := newFixture(t)
	svc := newRosterService(f)
	ctx := context.Background()

	entry, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
		EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17",
	})
	require.NoError(t, err)

	t.Run("blocked while timesheets reference the entry", func(t *testing.T) {
		ts := &models.Timesheet{
			EmployeeID:    f.worker.ID,
			RosterEntryID: entry.ID,
			Date:          entry.Date,
			HoursWorked:   8,
			Approval:      models.Approval{Status: domain.StatusPending},
		}
		require.NoError(t, f.db.Create(ts).Error)

		err := svc.Delete(ctx, f.managerPrincipal(), entry.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)

		require.NoError(t, f.db.Delete(ts).Error)
	})

	t.Run("deletes once unreferenced", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, f.managerPrincipal(), entry.ID))
		_, err := svc.Get(ctx, f.managerPrincipal(), entry.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRosterVisibility(t *testing.T) {
	f := newFixture(t)
	svc := newRosterService(f)
	ctx := context.Background()

	own, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
		EmployeeID: f.worker.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17",
	})
	require.NoError(t, err)
	other, err := svc.Create(ctx, f.managerPrincipal(), &CreateRosterInput{
		EmployeeID: f.worker2.ID, ShiftTypeID: f.morning.ID, Date: "2026-08-17",
	})
	require.NoError(t, err)

	t.Run("list is forced to self without view-all", func(t *testing.T) {
		entries, total, err := svc.List(ctx, f.workerPrincipal(), &ListRosterInput{
			EmployeeID: &f.worker2.ID, // ignored for non-managers
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, entries, 1)
		assert.Equal(t, f.worker.ID, entries[0].EmployeeID)
	})

	t.Run("managers see everything", func(t *testing.T) {
		_, total, err := svc.List(ctx, f.managerPrincipal(), &ListRosterInput{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("get hides other employees' entries", func(t *testing.T) {
		_, err := svc.Get(ctx, f.workerPrincipal(), other.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		entry, err := svc.Get(ctx, f.workerPrincipal(), own.ID)
		require.NoError(t, err)
		assert.Equal(t, f.worker.ID, entry.EmployeeID)
	})

	t.Run("date filters narrow the listing", func(t *testing.T) {
		entries, total, err := svc.List(ctx, f.managerPrincipal(), &ListRosterInput{
			StartDate: "2026-08-18",
			EndDate:   "2026-08-31",
		})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, entries)
	})
}
