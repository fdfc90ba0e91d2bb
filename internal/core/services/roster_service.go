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

// RosterService handles roster scheduling business logic. All writes check
// the acting principal; reads are scoped to the principal's own entries
// unless the principal can view all rosters.
type RosterService struct {
	rosterRepo    *repositories.RosterRepository
	employeeRepo  *repositories.EmployeeRepository
	referenceRepo *repositories.ReferenceRepository
	now           func() time.Time
}

// NewRosterService creates a new roster service
func NewRosterService(
	rosterRepo *repositories.RosterRepository,
	employeeRepo *repositories.EmployeeRepository,
	referenceRepo *repositories.ReferenceRepository,
) *RosterService {
	return &RosterService{
		rosterRepo:    rosterRepo,
		employeeRepo:  employeeRepo,
		referenceRepo: referenceRepo,
		now:           time.Now,
	}
}

// CreateRosterInput represents roster entry creation input
type CreateRosterInput struct {
	EmployeeID  uint    `json:"employee_id" validate:"required"`
	ShiftTypeID uint    `json:"shift_type_id" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Hours       float64 `json:"hours"`
	Notes       string  `json:"notes"`
}

// UpdateRosterInput represents partial roster entry update input.
// Lifecycle fields are not updatable here; decisions go through SetStatus.
type UpdateRosterInput struct {
	EmployeeID  *uint    `json:"employee_id"`
	ShiftTypeID *uint    `json:"shift_type_id"`
	Date        *string  `json:"date"`
	Hours       *float64 `json:"hours"`
	Notes       *string  `json:"notes"`
}

// DecisionInput represents an approve/reject decision
type DecisionInput struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

// PositionedError reports a validation failure for one entry of a bulk
// request, by its 1-based position in the submitted list.
type PositionedError struct {
	Position int    `json:"position"`
	Message  string `json:"message"`
}

// BulkValidationError carries all per-entry failures of a rejected bulk
// request. The batch is never partially applied.
type BulkValidationError struct {
	Errors []PositionedError `json:"errors"`
}

func (e *BulkValidationError) Error() string {
	return fmt.Sprintf("%d roster entries failed validation", len(e.Errors))
}

func (e *BulkValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

// Create creates a pending roster entry after checking permission, target
// existence, date validity and the one-shift-per-day rule.
func (s *RosterService) Create(ctx context.Context, principal *domain.Principal, input *CreateRosterInput) (*models.RosterEntry, error) {
	if !principal.Allowed(domain.CapApproveRosters) {
		return nil, fmt.Errorf("%w: roster create requires scheduling permission", domain.ErrPermissionDenied)
	}

	entry, err := s.validateEntry(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	if err := s.rosterRepo.Create(ctx, entry); err != nil {
		return nil, translateDuplicate(err, "employee already has a shift on this date")
	}

	log.Printf("📅 Roster entry created: employee %d on %s", entry.EmployeeID, entry.Date.Format(domain.DateLayout))

	return s.rosterRepo.GetByID(ctx, entry.ID)
}

// CreateBulk validates every entry and inserts all of them in one
// transaction. Any failing entry rejects the whole batch; failures are
// reported with 1-based positions.
func (s *RosterService) CreateBulk(ctx context.Context, principal *domain.Principal, inputs []*CreateRosterInput) ([]*models.RosterEntry, error) {
	if !principal.Allowed(domain.CapApproveRosters) {
		return nil, fmt.Errorf("%w: roster create requires scheduling permission", domain.ErrPermissionDenied)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: entries list is empty", domain.ErrInvalidInput)
	}

	var positioned []PositionedError
	entries := make([]*models.RosterEntry, 0, len(inputs))

	// Duplicates inside the batch count against the same rule as stored
	// entries, keyed by (employee, date).
	seen := map[string]int{}

	for i, input := range inputs {
		entry, err := s.validateEntry(ctx, input, nil)
		if err != nil {
			positioned = append(positioned, PositionedError{Position: i + 1, Message: err.Error()})
			continue
		}

		key := fmt.Sprintf("%d|%s", entry.EmployeeID, entry.Date.Format(domain.DateLayout))
		if first, dup := seen[key]; dup {
			positioned = append(positioned, PositionedError{
				Position: i + 1,
				Message:  fmt.Sprintf("duplicate of entry %d: employee already has a shift on this date", first),
			})
			continue
		}
		seen[key] = i + 1

		entries = append(entries, entry)
	}

	if len(positioned) > 0 {
		return nil, &BulkValidationError{Errors: positioned}
	}

	if err := s.rosterRepo.CreateBatch(ctx, entries); err != nil {
		return nil, translateDuplicate(err, "employee already has a shift on this date")
	}

	log.Printf("📅 Bulk roster created: %d entries", len(entries))

	out := make([]*models.RosterEntry, 0, len(entries))
	for _, entry := range entries {
		loaded, err := s.rosterRepo.GetByID(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	return out, nil
}

// validateEntry runs the shared creation checks and builds a pending
// entry. current is the stored entry when validating an update, nil on
// create.
func (s *RosterService) validateEntry(ctx context.Context, input *CreateRosterInput, current *models.RosterEntry) (*models.RosterEntry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, input.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee %d", domain.ErrNotFound, input.EmployeeID)
		}
		return nil, err
	}

	shiftType, err := s.referenceRepo.GetShiftTypeByID(ctx, input.ShiftTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shift type %d", domain.ErrNotFound, input.ShiftTypeID)
		}
		return nil, err
	}

	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	excludeID := uint(0)
	if current != nil {
		excludeID = current.ID
	}
	exists, err := s.rosterRepo.ExistsForEmployeeOnDate(ctx, input.EmployeeID, date, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: employee already has a shift on this date", domain.ErrConflict)
	}

	hours := input.Hours
	if hours == 0 {
		hours = shiftType.Hours
	}
	if hours < 0 {
		return nil, fmt.Errorf("%w: hours must not be negative", domain.ErrInvalidInput)
	}

	return &models.RosterEntry{
		EmployeeID:  input.EmployeeID,
		ShiftTypeID: input.ShiftTypeID,
		Date:        date,
		Hours:       hours,
		Approval:    models.Approval{Status: domain.StatusPending},
		Notes:       input.Notes,
	}, nil
}

// Update applies a partial update. Changing the employee or the date
// re-checks the one-shift-per-day rule against the new pair.
func (s *RosterService) Update(ctx context.Context, principal *domain.Principal, id uint, input *UpdateRosterInput) (*models.RosterEntry, error) {
	if !principal.Allowed(domain.CapApproveRosters) {
		return nil, fmt.Errorf("%w: roster update requires scheduling permission", domain.ErrPermissionDenied)
	}

	entry, err := s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: roster entry %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	employeeID := entry.EmployeeID
	if input.EmployeeID != nil {
		employeeID = *input.EmployeeID
		if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: employee %d", domain.ErrNotFound, employeeID)
			}
			return nil, err
		}
	}

	if input.ShiftTypeID != nil {
		if _, err := s.referenceRepo.GetShiftTypeByID(ctx, *input.ShiftTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: shift type %d", domain.ErrNotFound, *input.ShiftTypeID)
			}
			return nil, err
		}
		entry.ShiftTypeID = *input.ShiftTypeID
	}

	date := entry.Date
	if input.Date != nil {
		date, err = domain.ParseDate(*input.Date)
		if err != nil {
			return nil, err
		}
	}

	if employeeID != entry.EmployeeID || !date.Equal(entry.Date) {
		exists, err := s.rosterRepo.ExistsForEmployeeOnDate(ctx, employeeID, date, entry.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: employee already has a shift on this date", domain.ErrConflict)
		}
	}

	entry.EmployeeID = employeeID
	entry.Date = date
	if input.Hours != nil {
		if *input.Hours < 0 {
			return nil, fmt.Errorf("%w: hours must not be negative", domain.ErrInvalidInput)
		}
		entry.Hours = *input.Hours
	}
	if input.Notes != nil {
		entry.Notes = *input.Notes
	}

	// Drop stale preloads so Save does not upsert related rows
	entry.Employee = nil
	entry.ShiftType = nil
	entry.Approver = nil

	if err := s.rosterRepo.Update(ctx, entry); err != nil {
		return nil, translateDuplicate(err, "employee already has a shift on this date")
	}

	return s.rosterRepo.GetByID(ctx, entry.ID)
}

// SetStatus decides a pending entry. Re-issuing the same decision is a
// no-op; a different decision on a decided entry is a conflict.
func (s *RosterService) SetStatus(ctx context.Context, principal *domain.Principal, id uint, input *DecisionInput) (*models.RosterEntry, error) {
	if !principal.Allowed(domain.CapApproveRosters) {
		return nil, fmt.Errorf("%w: roster decisions require approval permission", domain.ErrPermissionDenied)
	}

	action, err := domain.ParseDecisionAction(input.Action)
	if err != nil {
		return nil, err
	}

	entry, err := s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: roster entry %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	changed, err := entry.Decide(action, principal.EmployeeID, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return entry, nil
	}
	if input.Notes != "" {
		entry.Notes = input.Notes
	}

	entry.Employee = nil
	entry.ShiftType = nil
	entry.Approver = nil

	if err := s.rosterRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	log.Printf("✅ Roster entry %d %s by employee %d", id, entry.Status, principal.EmployeeID)

	return s.rosterRepo.GetByID(ctx, id)
}

// Delete removes an entry unless timesheets already reference it
func (s *RosterService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	if !principal.Allowed(domain.CapApproveRosters) {
		return fmt.Errorf("%w: roster delete requires scheduling permission", domain.ErrPermissionDenied)
	}

	if _, err := s.rosterRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: roster entry %d", domain.ErrNotFound, id)
		}
		return err
	}

	count, err := s.rosterRepo.CountTimesheets(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d timesheet(s) recorded against this entry", domain.ErrConflict, count)
	}

	return s.rosterRepo.Delete(ctx, id)
}

// ListRosterInput represents roster listing filters
type ListRosterInput struct {
	StartDate   string
	EndDate     string
	EmployeeID  *uint
	ShiftTypeID *uint
	Status      string
	Offset      int
	Limit       int
}

// List returns roster entries visible to the principal. Principals without
// the view-all capability only ever see their own entries, regardless of
// the requested employee filter.
func (s *RosterService) List(ctx context.Context, principal *domain.Principal, input *ListRosterInput) ([]*models.RosterEntry, int64, error) {
	filter := repositories.RosterFilter{
		EmployeeID:  input.EmployeeID,
		ShiftTypeID: input.ShiftTypeID,
		Status:      input.Status,
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

	return s.rosterRepo.List(ctx, filter, input.Offset, limit)
}

// Get returns a single entry, subject to the same visibility rule as List
func (s *RosterService) Get(ctx context.Context, principal *domain.Principal, id uint) (*models.RosterEntry, error) {
	entry, err := s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: roster entry %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	if !principal.Allowed(domain.CapViewAllRosters) && entry.EmployeeID != principal.EmployeeID {
		return nil, fmt.Errorf("%w: roster entry %d", domain.ErrNotFound, id)
	}
	return entry, nil
}

// translateDuplicate maps a unique index violation onto the friendly
// conflict error. Lost races between the existence check and the insert
// land here.
func translateDuplicate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	}
	return err
}
