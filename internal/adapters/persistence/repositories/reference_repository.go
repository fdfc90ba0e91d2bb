package repositories

import (
	"context"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ReferenceRepository handles reference data access
// (roles, areas of responsibility, skills, shift types)
type ReferenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a new reference data repository
func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ============================================================
// Roles
// ============================================================

func (r *ReferenceRepository) ListRoles(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *ReferenceRepository) GetRoleByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *ReferenceRepository) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *ReferenceRepository) CreateRole(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *ReferenceRepository) UpdateRole(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *ReferenceRepository) DeleteRole(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Role{}, id).Error
}

// CountEmployeesWithRole counts employees assigned to the role
func (r *ReferenceRepository) CountEmployeesWithRole(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

// ExistsRoleByName reports whether a role with the name exists, excluding excludeID
func (r *ReferenceRepository) ExistsRoleByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Role{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ============================================================
// Areas of responsibility
// ============================================================

func (r *ReferenceRepository) ListAreas(ctx context.Context) ([]*models.AreaOfResponsibility, error) {
	var areas []*models.AreaOfResponsibility
	err := r.db.WithContext(ctx).Order("name ASC").Find(&areas).Error
	return areas, err
}

func (r *ReferenceRepository) GetAreaByID(ctx context.Context, id uint) (*models.AreaOfResponsibility, error) {
	var area models.AreaOfResponsibility
	if err := r.db.WithContext(ctx).First(&area, id).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *ReferenceRepository) CreateArea(ctx context.Context, area *models.AreaOfResponsibility) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *ReferenceRepository) UpdateArea(ctx context.Context, area *models.AreaOfResponsibility) error {
	return r.db.WithContext(ctx).Save(area).Error
}

func (r *ReferenceRepository) DeleteArea(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AreaOfResponsibility{}, id).Error
}

func (r *ReferenceRepository) CountEmployeesInArea(ctx context.Context, areaID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("area_id = ?", areaID).
		Count(&count).Error
	return count, err
}

func (r *ReferenceRepository) ExistsAreaByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AreaOfResponsibility{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ============================================================
// Skills
// ============================================================

func (r *ReferenceRepository) ListSkills(ctx context.Context) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *ReferenceRepository) GetSkillByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *ReferenceRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *ReferenceRepository) UpdateSkill(ctx context.Context, skill *models.Skill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *ReferenceRepository) DeleteSkill(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Skill{}, id).Error
}

func (r *ReferenceRepository) CountEmployeesWithSkill(ctx context.Context, skillID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EmployeeSkill{}).
		Where("skill_id = ?", skillID).
		Count(&count).Error
	return count, err
}

func (r *ReferenceRepository) ExistsSkillByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ============================================================
// Shift types
// ============================================================

func (r *ReferenceRepository) ListShiftTypes(ctx context.Context) ([]*models.ShiftType, error) {
	var shiftTypes []*models.ShiftType
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&shiftTypes).Error
	return shiftTypes, err
}

func (r *ReferenceRepository) GetShiftTypeByID(ctx context.Context, id uint) (*models.ShiftType, error) {
	var shiftType models.ShiftType
	if err := r.db.WithContext(ctx).First(&shiftType, id).Error; err != nil {
		return nil, err
	}
	return &shiftType, nil
}

func (r *ReferenceRepository) CreateShiftType(ctx context.Context, shiftType *models.ShiftType) error {
	return r.db.WithContext(ctx).Create(shiftType).Error
}

func (r *ReferenceRepository) UpdateShiftType(ctx context.Context, shiftType *models.ShiftType) error {
	return r.db.WithContext(ctx).Save(shiftType).Error
}

func (r *ReferenceRepository) DeleteShiftType(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ShiftType{}, id).Error
}

// CountRosterEntriesWithShiftType counts roster entries using the shift type
func (r *ReferenceRepository) CountRosterEntriesWithShiftType(ctx context.Context, shiftTypeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RosterEntry{}).
		Where("shift_type_id = ?", shiftTypeID).
		Count(&count).Error
	return count, err
}

func (r *ReferenceRepository) ExistsShiftTypeByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShiftType{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}
