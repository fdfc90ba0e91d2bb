package repositories

import (
	"context"
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// RosterFilter narrows roster listings. EmployeeID is also how visibility
// scoping reaches the query: callers set it to the principal's own ID for
// non-managers.
type RosterFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	EmployeeID  *uint
	ShiftTypeID *uint
	Status      string
}

// RosterRepository handles roster entry data access
type RosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Create creates a new roster entry
func (r *RosterRepository) Create(ctx context.Context, entry *models.RosterEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch inserts all entries in one transaction. Any failure rolls
// the whole batch back.
func (r *RosterRepository) CreateBatch(ctx context.Context, entries []*models.RosterEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID gets a roster entry with relations preloaded
func (r *RosterRepository) GetByID(ctx context.Context, id uint) (*models.RosterEntry, error) {
	var entry models.RosterEntry
	err := r.db.WithContext(ctx).
		Preload("Employee.Role").
		Preload("Employee.Area").
		Preload("ShiftType").
		Preload("Approver").
		First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update saves roster entry changes
func (r *RosterRepository) Update(ctx context.Context, entry *models.RosterEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a roster entry
func (r *RosterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RosterEntry{}, id).Error
}

// ExistsForEmployeeOnDate reports whether the employee already has an
// entry on the date, excluding excludeID (0 for none). The composite
// unique index on (employee_id, date) remains the hard guard; this check
// only produces the friendly conflict error.
func (r *RosterRepository) ExistsForEmployeeOnDate(ctx context.Context, employeeID uint, date time.Time, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("employee_id = ? AND date = ? AND id <> ?", employeeID, date, excludeID).
		Count(&count).Error
	return count > 0, err
}

// List returns roster entries matching the filter, with total count
func (r *RosterRepository) List(ctx context.Context, filter RosterFilter, offset, limit int) ([]*models.RosterEntry, int64, error) {
	var entries []*models.RosterEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&models.RosterEntry{})

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ShiftTypeID != nil {
		query = query.Where("shift_type_id = ?", *filter.ShiftTypeID)
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
		Preload("ShiftType").
		Preload("Approver").
		Order("date ASC, employee_id ASC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// CountTimesheets counts timesheets recorded against the entry. A non-zero
// result blocks deletion.
func (r *RosterRepository) CountTimesheets(ctx context.Context, rosterEntryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Timesheet{}).
		Where("roster_entry_id = ?", rosterEntryID).
		Count(&count).Error
	return count, err
}
