package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/core/domain"
	"github.com/WNVissie/Shiftroster/internal/pkg/pagination"
	"github.com/WNVissie/Shiftroster/internal/pkg/validation"

	"gorm.io/gorm"
)

// EmployeeService handles employee management business logic
type EmployeeService struct {
	employeeRepo  *repositories.EmployeeRepository
	referenceRepo *repositories.ReferenceRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo *repositories.EmployeeRepository,
	referenceRepo *repositories.ReferenceRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo:  employeeRepo,
		referenceRepo: referenceRepo,
	}
}

// CreateEmployeeInput represents employee creation input
type CreateEmployeeInput struct {
	GoogleID   string  `json:"google_id" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Name       string  `json:"name" validate:"required"`
	Surname    string  `json:"surname" validate:"required"`
	EmployeeNo *string `json:"employee_no"`
	ContactNo  string  `json:"contact_no"`
	RoleID     uint    `json:"role_id" validate:"required"`
	AreaID     *uint   `json:"area_id"`
}

// UpdateEmployeeInput represents partial employee update input
type UpdateEmployeeInput struct {
	Email      *string `json:"email"`
	Name       *string `json:"name"`
	Surname    *string `json:"surname"`
	EmployeeNo *string `json:"employee_no"`
	ContactNo  *string `json:"contact_no"`
	RoleID     *uint   `json:"role_id"`
	AreaID     *uint   `json:"area_id"`
}

// Create registers an employee record ahead of their first sign-in
func (s *EmployeeService) Create(ctx context.Context, principal *domain.Principal, input *CreateEmployeeInput) (*models.Employee, error) {
	if !principal.Allowed(domain.CapManageEmployees) {
		return nil, fmt.Errorf("%w: employee management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.referenceRepo.GetRoleByID(ctx, input.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %d", domain.ErrNotFound, input.RoleID)
		}
		return nil, err
	}
	if input.AreaID != nil {
		if _, err := s.referenceRepo.GetAreaByID(ctx, *input.AreaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: area %d", domain.ErrNotFound, *input.AreaID)
			}
			return nil, err
		}
	}

	if _, err := s.employeeRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	employee := &models.Employee{
		GoogleID:   input.GoogleID,
		Email:      input.Email,
		Name:       input.Name,
		Surname:    input.Surname,
		EmployeeNo: input.EmployeeNo,
		ContactNo:  input.ContactNo,
		RoleID:     input.RoleID,
		AreaID:     input.AreaID,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, translateDuplicate(err, "employee identity already registered")
	}

	log.Printf("👤 Employee created: %s %s (%s)", input.Name, input.Surname, input.Email)

	return s.employeeRepo.GetByID(ctx, employee.ID)
}

// Get returns one employee
func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee %d", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return employee, nil
}

// Update applies a partial update. Employees may change their own contact
// details; anything else needs the employee management permission.
func (s *EmployeeService) Update(ctx context.Context, principal *domain.Principal, id uint, input *UpdateEmployeeInput) (*models.Employee, error) {
	manages := principal.Allowed(domain.CapManageEmployees)
	self := principal.EmployeeID == id
	if !manages && !self {
		return nil, fmt.Errorf("%w: cannot update another employee", domain.ErrPermissionDenied)
	}

	touchesRestricted := input.Email != nil || input.Name != nil || input.Surname != nil ||
		input.EmployeeNo != nil || input.RoleID != nil || input.AreaID != nil
	if touchesRestricted && !manages {
		return nil, fmt.Errorf("%w: only contact details may be self-updated", domain.ErrPermissionDenied)
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	if input.RoleID != nil {
		if _, err := s.referenceRepo.GetRoleByID(ctx, *input.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: role %d", domain.ErrNotFound, *input.RoleID)
			}
			return nil, err
		}
		employee.RoleID = *input.RoleID
	}
	if input.AreaID != nil {
		if _, err := s.referenceRepo.GetAreaByID(ctx, *input.AreaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: area %d", domain.ErrNotFound, *input.AreaID)
			}
			return nil, err
		}
		employee.AreaID = input.AreaID
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Surname != nil {
		employee.Surname = *input.Surname
	}
	if input.EmployeeNo != nil {
		employee.EmployeeNo = input.EmployeeNo
	}
	if input.ContactNo != nil {
		employee.ContactNo = *input.ContactNo
	}

	employee.Role = nil
	employee.Area = nil
	employee.Skills = nil

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, translateDuplicate(err, "employee identity already registered")
	}

	return s.employeeRepo.GetByID(ctx, id)
}

// Delete removes an employee unless scheduling records reference them
func (s *EmployeeService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	if !principal.Allowed(domain.CapManageEmployees) {
		return fmt.Errorf("%w: employee management permission required", domain.ErrPermissionDenied)
	}

	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: employee %d", domain.ErrNotFound, id)
		}
		return err
	}

	count, err := s.employeeRepo.CountSchedulingRecords(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: employee has %d scheduling record(s)", domain.ErrConflict, count)
	}

	return s.employeeRepo.Delete(ctx, id)
}

// ListEmployeeInput represents employee listing filters
type ListEmployeeInput struct {
	RoleID  *uint
	AreaID  *uint
	SkillID *uint
	Search  string
	Offset  int
	Limit   int
}

// List returns employees matching the filters
func (s *EmployeeService) List(ctx context.Context, input *ListEmployeeInput) ([]*models.Employee, int64, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	filter := repositories.EmployeeFilter{
		RoleID:  input.RoleID,
		AreaID:  input.AreaID,
		SkillID: input.SkillID,
		Search:  input.Search,
	}
	return s.employeeRepo.List(ctx, filter, input.Offset, limit)
}

// AddSkillInput represents a skill assignment
type AddSkillInput struct {
	SkillID     uint   `json:"skill_id" validate:"required"`
	Proficiency string `json:"proficiency" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

// AddSkill attaches a skill to an employee, or updates its proficiency
func (s *EmployeeService) AddSkill(ctx context.Context, principal *domain.Principal, employeeID uint, input *AddSkillInput) (*models.Employee, error) {
	if !principal.Allowed(domain.CapManageEmployees) {
		return nil, fmt.Errorf("%w: employee management permission required", domain.ErrPermissionDenied)
	}
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee %d", domain.ErrNotFound, employeeID)
		}
		return nil, err
	}
	if _, err := s.referenceRepo.GetSkillByID(ctx, input.SkillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: skill %d", domain.ErrNotFound, input.SkillID)
		}
		return nil, err
	}

	proficiency := input.Proficiency
	if proficiency == "" {
		proficiency = "Beginner"
	}

	link := &models.EmployeeSkill{
		EmployeeID:  employeeID,
		SkillID:     input.SkillID,
		Proficiency: proficiency,
	}
	if err := s.employeeRepo.AddSkill(ctx, link); err != nil {
		return nil, err
	}

	return s.employeeRepo.GetByID(ctx, employeeID)
}

// RemoveSkill detaches a skill from an employee
func (s *EmployeeService) RemoveSkill(ctx context.Context, principal *domain.Principal, employeeID, skillID uint) error {
	if !principal.Allowed(domain.CapManageEmployees) {
		return fmt.Errorf("%w: employee management permission required", domain.ErrPermissionDenied)
	}

	if err := s.employeeRepo.RemoveSkill(ctx, employeeID, skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: skill %d not assigned to employee %d", domain.ErrNotFound, skillID, employeeID)
		}
		return err
	}
	return nil
}
