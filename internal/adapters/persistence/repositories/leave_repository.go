package repositories

import (
	"context"
	"time"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LeaveFilter narrows leave request listings
type LeaveFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	EmployeeID *uint
	LeaveType  string
	Status     string
}

// LeaveRepository handles leave request data access
type LeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create creates a new leave request
func (r *LeaveRepository) Create(ctx context.Context, leave *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

// GetByID gets a leave request with relations preloaded
func (r *LeaveRepository) GetByID(ctx context.Context, id uint) (*models.LeaveRequest, error) {
	var leave models.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee.Role").
		Preload("Employee.Area").
		Preload("Approver").
		First(&leave, id).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// Update saves leave request changes
func (r *LeaveRepository) Update(ctx context.Context, leave *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

// Delete removes a leave request
func (r *LeaveRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LeaveRequest{}, id).Error
}

// List returns leave requests matching the filter, with total count.
// Date filters match any overlap with the requested interval.
func (r *LeaveRepository) List(ctx context.Context, filter LeaveFilter, offset, limit int) ([]*models.LeaveRequest, int64, error) {
	var leaves []*models.LeaveRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.LeaveRequest{})

	if filter.StartDate != nil {
		query = query.Where("end_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("start_date <= ?", *filter.EndDate)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.LeaveType != "" {
		query = query.Where("leave_type = ?", filter.LeaveType)
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
		Preload("Approver").
		Order("start_date DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}
