package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/core/domain"
	"github.com/WNVissie/Shiftroster/internal/pkg/pagination"
	"github.com/WNVissie/Shiftroster/internal/pkg/validation"

	"gorm.io/gorm"
)

// TimesheetService handles timesheet business logic. Timesheets record
// worked hours against approved roster entries and follow the same
// approval lifecycle.
type TimesheetService struct {
	timesheetRepo *repositories.TimesheetRepository
	rosterRepo    *repositories.RosterRepository
	now           func() time.Time
}

// NewTimesheetService creates a new timesheet service
func NewTimesheetService(
	timesheetRepo *repositories.TimesheetRepository,
	rosterRepo *repositories.RosterRepository,
) *TimesheetService {
	return &TimesheetService{
		timesheetRepo: timesheetRepo,
		rosterRepo:    rosterRepo,
		now:           time.Now,
	}
}

// CreateTimesheetInput represents timesheet creation input
type CreateTimesheetInput struct {
	RosterEntryID uint    `json:"roster_entry_id" validate:"required"`
	HoursWorked   float64 `json:"hours_worked" validate:"required,gt=0"`
	Notes         string  `json:"notes"`
}

// Create records a timesheet against an approved roster entry. The entry
// owner may submit their own; principals with timesheet approval rights
// may submit for anyone.
func (s *TimesheetService) Create(ctx context.Context, principal *domain.Principal, input *CreateTimesheetInput) (*models.Timesheet, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	entry, err := s.rosterRepo.GetByID(ctx, input.RosterEntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: roster entry %d", domain.ErrNotFound, input.RosterEntryID)
		}
		return nil, err
	}

	if entry.EmployeeID != principal.EmployeeID && !principal.Allowed(domain.CapApproveTimesheets) {
		return nil, fmt.Errorf("%w: cannot submit a timesheet for another employee", domain.ErrPermissionDenied)
	}
	if entry.Status != domain.StatusApproved {
		return nil, fmt.Errorf("%w: roster entry is %s, timesheets need an approved shift", domain.ErrInvalidInput, entry.Status)
	}

	exists, err := s.timesheetRepo.ExistsForRosterEntry(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: timesheet already recorded for this shift", domain.ErrConflict)
	}

	timesheet := &models.Timesheet{
		EmployeeID:    entry.EmployeeID,
		RosterEntryID: entry.ID,
		Date:          entry.Date,
		HoursWorked:   input.HoursWorked,
		Approval:      models.Approval{Status: domain.StatusPending},
		Notes:         input.Notes,
	}
	if err := s.timesheetRepo.Create(ctx, timesheet); err != nil {
		return nil, err
	}

	log.Printf("🕒 Timesheet recorded: employee %d, %.1fh on %s", entry.EmployeeID, input.HoursWorked, entry.Date.Format(domain.DateLayout))

	return s.timesheetRepo.GetByID(ctx, timesheet.ID)
}

// SetStatus decides a pending timesheet, same terminal semantics as roster
func (s *TimesheetService) SetStatus(ctx context.Context, principal *domain.Principal, id uint, input *DecisionInput) (*models.Timesheet, error) {
	if !principal.Allowed(domain.CapApproveTimesheets) {
		return nil, fmt.Errorf("%w: timesheet decisions require approval permission", domain.ErrPermissionDenied)
	}

	action, err := domain.ParseDecisionAction(input.Action)
	if err != nil {
		return nil, err
	}

	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: timesheet %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	changed, err := timesheet.Decide(action, principal.EmployeeID, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return timesheet, nil
	}
	if input.Notes != "" {
		timesheet.Notes = input.Notes
	}

	timesheet.Employee = nil
	timesheet.RosterEntry = nil
	timesheet.Approver = nil

	if err := s.timesheetRepo.Update(ctx, timesheet); err != nil {
		return nil, err
	}

	log.Printf("✅ Timesheet %d %s by employee %d", id, timesheet.Status, principal.EmployeeID)

	return s.timesheetRepo.GetByID(ctx, id)
}

// Delete removes a timesheet. Owners may delete their own while pending;
// approvers may delete any pending timesheet. Decided timesheets stay.
func (s *TimesheetService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	timesheet, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: timesheet %d", domain.ErrNotFound, id)
		}
		return err
	}

	if timesheet.EmployeeID != principal.EmployeeID && !principal.Allowed(domain.CapApproveTimesheets) {
		return fmt.Errorf("%w: cannot delete another employee's timesheet", domain.ErrPermissionDenied)
	}
	if timesheet.Status.Terminal() {
		return fmt.Errorf("%w: timesheet already %s", domain.ErrConflict, timesheet.Status)
	}

	return s.timesheetRepo.Delete(ctx, id)
}

// ListTimesheetInput represents timesheet listing filters
type ListTimesheetInput struct {
	StartDate  string
	EndDate    string
	EmployeeID *uint
	Status     string
	Offset     int
	Limit      int
}

// List returns timesheets visible to the principal, scoped like rosters
func (s *TimesheetService) List(ctx context.Context, principal *domain.Principal, input *ListTimesheetInput) ([]*models.Timesheet, int64, error) {
	filter := repositories.TimesheetFilter{
		EmployeeID: input.EmployeeID,
		Status:     input.Status,
	}

	if input.StartDate != "" {
		start, err := domain.ParseDate(input.StartDate)
		if err != nil {
			return nil, 0, err
		}
		filter.StartDate = &start
	}
	if input.EndDate != "" {
		end, err := domain.ParseDate(input.EndDate)
		if err != nil {
			return nil, 0, err
		}
		filter.EndDate = &end
	}

	if !principal.Allowed(domain.CapViewAllRosters) {
		self := principal.EmployeeID
		filter.EmployeeID = &self
	}

	limit := input.Limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}

	return s.timesheetRepo.List(ctx, filter, input.Offset, limit)
}
