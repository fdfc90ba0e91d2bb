package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/core/domain"
	"github.com/WNVissie/Shiftroster/internal/pkg/validation"

	"gorm.io/gorm"
)

// ReferenceService handles master data: roles, areas of responsibility,
// skills and shift types. All writes require the matching management
// permission; deletes are blocked while records are referenced.
type ReferenceService struct {
	repo *repositories.ReferenceRepository
}

// NewReferenceService creates a new reference data service
func NewReferenceService(repo *repositories.ReferenceRepository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

// ============================================================
// Roles
// ============================================================

// RoleInput represents role create/update input
type RoleInput struct {
	Name        string          `json:"name" validate:"required,max=50"`
	Permissions map[string]bool `json:"permissions"`
}

func (s *ReferenceService) ListRoles(ctx context.Context) ([]*models.Role, error) {
	return s.repo.ListRoles(ctx)
}

func (s *ReferenceService) CreateRole(ctx context.Context, principal *domain.Principal, input *RoleInput) (*models.Role, error) {
	if !principal.Allowed(domain.CapManageRoles) {
		return nil, fmt.Errorf("%w: role management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	exists, err := s.repo.ExistsRoleByName(ctx, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: role %q already exists", domain.ErrConflict, input.Name)
	}

	role := &models.Role{Name: input.Name, Permissions: encodePermissions(input.Permissions)}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, translateDuplicate(err, "role name already exists")
	}
	return role, nil
}

func (s *ReferenceService) UpdateRole(ctx context.Context, principal *domain.Principal, id uint, input *RoleInput) (*models.Role, error) {
	if !principal.Allowed(domain.CapManageRoles) {
		return nil, fmt.Errorf("%w: role management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	exists, err := s.repo.ExistsRoleByName(ctx, input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: role %q already exists", domain.ErrConflict, input.Name)
	}

	role.Name = input.Name
	if input.Permissions != nil {
		role.Permissions = encodePermissions(input.Permissions)
	}
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *ReferenceService) DeleteRole(ctx context.Context, principal *domain.Principal, id uint) error {
	if !principal.Allowed(domain.CapManageRoles) {
		return fmt.Errorf("%w: role management permission required", domain.ErrPermissionDenied)
	}
	if _, err := s.repo.GetRoleByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: role %d", domain.ErrNotFound, id)
		}
		return err
	}
	count, err := s.repo.CountEmployeesWithRole(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d employee(s) hold this role", domain.ErrConflict, count)
	}
	return s.repo.DeleteRole(ctx, id)
}

// ============================================================
// Areas of responsibility
// ============================================================

// AreaInput represents area create/update input
type AreaInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (s *ReferenceService) ListAreas(ctx context.Context) ([]*models.AreaOfResponsibility, error) {
	return s.repo.ListAreas(ctx)
}

func (s *ReferenceService) CreateArea(ctx context.Context, principal *domain.Principal, input *AreaInput) (*models.AreaOfResponsibility, error) {
	if !principal.Allowed(domain.CapManageAreas) {
		return nil, fmt.Errorf("%w: area management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	exists, err := s.repo.ExistsAreaByName(ctx, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: area %q already exists", domain.ErrConflict, input.Name)
	}

	area := &models.AreaOfResponsibility{Name: input.Name, Description: input.Description}
	if err := s.repo.CreateArea(ctx, area); err != nil {
		return nil, translateDuplicate(err, "area name already exists")
	}
	return area, nil
}

func (s *ReferenceService) UpdateArea(ctx context.Context, principal *domain.Principal, id uint, input *AreaInput) (*models.AreaOfResponsibility, error) {
	if !principal.Allowed(domain.CapManageAreas) {
		return nil, fmt.Errorf("%w: area management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	area, err := s.repo.GetAreaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: area %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	exists, err := s.repo.ExistsAreaByName(ctx, input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: area %q already exists", domain.ErrConflict, input.Name)
	}

	area.Name = input.Name
	area.Description = input.Description
	if err := s.repo.UpdateArea(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *ReferenceService) DeleteArea(ctx context.Context, principal *domain.Principal, id uint) error {
	if !principal.Allowed(domain.CapManageAreas) {
		return fmt.Errorf("%w: area management permission required", domain.ErrPermissionDenied)
	}
	if _, err := s.repo.GetAreaByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: area %d", domain.ErrNotFound, id)
		}
		return err
	}
	count, err := s.repo.CountEmployeesInArea(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d employee(s) assigned to this area", domain.ErrConflict, count)
	}
	return s.repo.DeleteArea(ctx, id)
}

// ============================================================
// Skills
// ============================================================

// SkillInput represents skill create/update input
type SkillInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (s *ReferenceService) ListSkills(ctx context.Context) ([]*models.Skill, error) {
	return s.repo.ListSkills(ctx)
}

func (s *ReferenceService) CreateSkill(ctx context.Context, principal *domain.Principal, input *SkillInput) (*models.Skill, error) {
	if !principal.Allowed(domain.CapManageSkills) {
		return nil, fmt.Errorf("%w: skill management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	exists, err := s.repo.ExistsSkillByName(ctx, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: skill %q already exists", domain.ErrConflict, input.Name)
	}

	skill := &models.Skill{Name: input.Name, Description: input.Description}
	if err := s.repo.CreateSkill(ctx, skill); err != nil {
		return nil, translateDuplicate(err, "skill name already exists")
	}
	return skill, nil
}

func (s *ReferenceService) UpdateSkill(ctx context.Context, principal *domain.Principal, id uint, input *SkillInput) (*models.Skill, error) {
	if !principal.Allowed(domain.CapManageSkills) {
		return nil, fmt.Errorf("%w: skill management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	skill, err := s.repo.GetSkillByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: skill %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	exists, err := s.repo.ExistsSkillByName(ctx, input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: skill %q already exists", domain.ErrConflict, input.Name)
	}

	skill.Name = input.Name
	skill.Description = input.Description
	if err := s.repo.UpdateSkill(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *ReferenceService) DeleteSkill(ctx context.Context, principal *domain.Principal, id uint) error {
	if !principal.Allowed(domain.CapManageSkills) {
		return fmt.Errorf("%w: skill management permission required", domain.ErrPermissionDenied)
	}
	if _, err := s.repo.GetSkillByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: skill %d", domain.ErrNotFound, id)
		}
		return err
	}
	count, err := s.repo.CountEmployeesWithSkill(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d employee(s) hold this skill", domain.ErrConflict, count)
	}
	return s.repo.DeleteSkill(ctx, id)
}

// ============================================================
// Shift types
// ============================================================

// ShiftTypeInput represents shift type create/update input. Start and end
// are wall clock "HH:MM"; hours is stated, not derived, since shifts may
// wrap past midnight.
type ShiftTypeInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	StartTime   string  `json:"start_time" validate:"required,len=5"`
	EndTime     string  `json:"end_time" validate:"required,len=5"`
	Hours       float64 `json:"hours" validate:"required,gt=0"`
	Description string  `json:"description"`
	Color       string  `json:"color" validate:"omitempty,len=7"`
}

func (s *ReferenceService) ListShiftTypes(ctx context.Context) ([]*models.ShiftType, error) {
	return s.repo.ListShiftTypes(ctx)
}

func (s *ReferenceService) CreateShiftType(ctx context.Context, principal *domain.Principal, input *ShiftTypeInput) (*models.ShiftType, error) {
	if !principal.Allowed(domain.CapManageShifts) {
		return nil, fmt.Errorf("%w: shift type management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	exists, err := s.repo.ExistsShiftTypeByName(ctx, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: shift type %q already exists", domain.ErrConflict, input.Name)
	}

	shiftType := &models.ShiftType{
		Name:        input.Name,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Hours:       input.Hours,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := s.repo.CreateShiftType(ctx, shiftType); err != nil {
		return nil, translateDuplicate(err, "shift type name already exists")
	}
	return shiftType, nil
}

func (s *ReferenceService) UpdateShiftType(ctx context.Context, principal *domain.Principal, id uint, input *ShiftTypeInput) (*models.ShiftType, error) {
	if !principal.Allowed(domain.CapManageShifts) {
		return nil, fmt.Errorf("%w: shift type management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	shiftType, err := s.repo.GetShiftTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shift type %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	exists, err := s.repo.ExistsShiftTypeByName(ctx, input.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: shift type %q already exists", domain.ErrConflict, input.Name)
	}

	shiftType.Name = input.Name
	shiftType.StartTime = input.StartTime
	shiftType.EndTime = input.EndTime
	shiftType.Hours = input.Hours
	shiftType.Description = input.Description
	if input.Color != "" {
		shiftType.Color = input.Color
	}
	if err := s.repo.UpdateShiftType(ctx, shiftType); err != nil {
		return nil, err
	}
	return shiftType, nil
}

func (s *ReferenceService) DeleteShiftType(ctx context.Context, principal *domain.Principal, id uint) error {
	if !principal.Allowed(domain.CapManageShifts) {
		return fmt.Errorf("%w: shift type management permission required", domain.ErrPermissionDenied)
	}
	if _, err := s.repo.GetShiftTypeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: shift type %d", domain.ErrNotFound, id)
		}
		return err
	}
	count, err := s.repo.CountRosterEntriesWithShiftType(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d roster entries use this shift type", domain.ErrConflict, count)
	}
	return s.repo.DeleteShiftType(ctx, id)
}

func encodePermissions(perms map[string]bool) string {
	if perms == nil {
		perms = map[string]bool{}
	}
	raw, _ := json.Marshal(perms)
	return string(raw)
}
