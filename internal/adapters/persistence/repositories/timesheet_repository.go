package repositories

import (
	"context"
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// TimesheetFilter narrows timesheet listings
type TimesheetFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	EmployeeID *uint
	Status     string
}

// TimesheetRepository handles timesheet data access
type TimesheetRepository struct {
	db *gorm.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *gorm.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

// Create creates a new timesheet
func (r *TimesheetRepository) Create(ctx context.Context, timesheet *models.Timesheet) error {
	return r.db.WithContext(ctx).Create(timesheet).Error
}

// GetByID gets a timesheet with relations preloaded
func (r *TimesheetRepository) GetByID(ctx context.Context, id uint) (*models.Timesheet, error) {
	var timesheet models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Employee.Role").
		Preload("Employee.Area").
		Preload("RosterEntry.ShiftType").
		Preload("Approver").
		First(&timesheet, id).Error
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

// Update saves timesheet changes
func (r *TimesheetRepository) Update(ctx context.Context, timesheet *models.Timesheet) error {
	return r.db.WithContext(ctx).Save(timesheet).Error
}

// Delete removes a timesheet
func (r *TimesheetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Timesheet{}, id).Error
}

// ExistsForRosterEntry reports whether a timesheet is already recorded
// against the roster entry
func (r *TimesheetRepository) ExistsForRosterEntry(ctx context.Context, rosterEntryID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Timesheet{}).
		Where("roster_entry_id = ?", rosterEntryID).
		Count(&count).Error
	return count > 0, err
}

// List returns timesheets matching the filter, with total count
func (r *TimesheetRepository) List(ctx context.Context, filter TimesheetFilter, offset, limit int) ([]*models.Timesheet, int64, error) {
	var timesheets []*models.Timesheet
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Timesheet{})

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Employee.Role").
		Preload("Employee.Area").
		Preload("RosterEntry.ShiftType").
		Preload("Approver").
		Order("date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&timesheets).Error
	if err != nil {
		return nil, 0, err
	}

	return timesheets, total, nil
}
