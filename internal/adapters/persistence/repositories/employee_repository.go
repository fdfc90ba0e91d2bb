package repositories

import (
	"context"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	RoleID  *uint
	AreaID  *uint
	SkillID *uint
	Search  string
}

// EmployeeRepository handles employee data access
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// GetByID gets an employee with role, area and skills preloaded
func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Area").
		Preload("Skills.Skill").
		First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByGoogleID gets an employee by Google identity
func (r *EmployeeRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Area").
		Where("google_id = ?", googleID).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByEmail gets an employee by email
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Area").
		Where("email = ?", email).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update saves employee changes
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete removes an employee
func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, id).Error
}

// List returns employees matching the filter, with total count
func (r *EmployeeRepository) List(ctx context.Context, filter EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error) {
	var employees []*models.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Employee{})

	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.SkillID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.EmployeeSkill{}).Select("employee_id").Where("skill_id = ?", *filter.SkillID),
		)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR surname LIKE ? OR email LIKE ? OR employee_no LIKE ?", like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Role").
		Preload("Area").
		Preload("Skills.Skill").
		Order("surname ASC, name ASC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// CountAll counts all employees
func (r *EmployeeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}

// CountSchedulingRecords counts roster entries and timesheets referencing
// the employee. A non-zero result blocks deletion.
func (r *EmployeeRepository) CountSchedulingRecords(ctx context.Context, employeeID uint) (int64, error) {
	var rosters, timesheets int64
	if err := r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("employee_id = ?", employeeID).
		Count(&rosters).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Timesheet{}).
		Where("employee_id = ?", employeeID).
		Count(&timesheets).Error; err != nil {
		return 0, err
	}
	return rosters + timesheets, nil
}

// AddSkill attaches a skill with proficiency, updating proficiency if the
// association already exists.
func (r *EmployeeRepository) AddSkill(ctx context.Context, link *models.EmployeeSkill) error {
	var existing models.EmployeeSkill
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ?", link.EmployeeID, link.SkillID).
		First(&existing).Error
	if err == nil {
		existing.Proficiency = link.Proficiency
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(link).Error
}

// RemoveSkill detaches a skill from an employee
func (r *EmployeeRepository) RemoveSkill(ctx context.Context, employeeID, skillID uint) error {
	result := r.db.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ?", employeeID, skillID).
		Delete(&models.EmployeeSkill{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
