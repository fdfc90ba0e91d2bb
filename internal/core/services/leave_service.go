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

// LeaveService handles leave request business logic. Any authenticated
// employee may request leave for themselves; decisions need Manager or
// Admin standing. Overlap with rostered shifts is allowed and surfaces
// through availability reporting instead of being blocked here.
type LeaveService struct {
	leaveRepo *repositories.LeaveRepository
	now       func() time.Time
}

// NewLeaveService creates a new leave service
func NewLeaveService(leaveRepo *repositories.LeaveRepository) *LeaveService {
	return &LeaveService{
		leaveRepo: leaveRepo,
		now:       time.Now,
	}
}

// CreateLeaveInput represents leave request input. Days defaults to the
// inclusive span between the dates when omitted.
type CreateLeaveInput struct {
	LeaveType string `json:"leave_type" validate:"required,oneof=paid unpaid sick"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Days      int    `json:"days"`
	Reason    string `json:"reason"`
}

// Create files a leave request for the acting employee
func (s *LeaveService) Create(ctx context.Context, principal *domain.Principal, input *CreateLeaveInput) (*models.LeaveRequest, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	start, err := domain.ParseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(input.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", domain.ErrInvalidInput)
	}

	days := input.Days
	if days == 0 {
		days = int(end.Sub(start).Hours()/24) + 1
	}
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", domain.ErrInvalidInput)
	}

	leave := &models.LeaveRequest{
		EmployeeID: principal.EmployeeID,
		LeaveType:  input.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     input.Reason,
		Approval:   models.Approval{Status: domain.StatusPending},
	}
	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("🌴 Leave requested: employee %d, %s %s..%s", principal.EmployeeID, input.LeaveType, input.StartDate, input.EndDate)

	return s.leaveRepo.GetByID(ctx, leave.ID)
}

// SetStatus decides a pending leave request
func (s *LeaveService) SetStatus(ctx context.Context, principal *domain.Principal, id uint, input *DecisionInput) (*models.LeaveRequest, error) {
	if !principal.IsManagerOrAdmin() {
		return nil, fmt.Errorf("%w: leave decisions require Manager or Admin role", domain.ErrPermissionDenied)
	}

	action, err := domain.ParseDecisionAction(input.Action)
	if err != nil {
		return nil, err
	}

	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: leave request %d", domain.ErrNotFound, id)
		}
		return nil, err
	}

	changed, err := leave.Decide(action, principal.EmployeeID, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return leave, nil
	}

	leave.Employee = nil
	leave.Approver = nil

	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	log.Printf("✅ Leave request %d %s by employee %d", id, leave.Status, principal.EmployeeID)

	return s.leaveRepo.GetByID(ctx, id)
}

// Delete withdraws a leave request. Owners may withdraw their own while
// pending; managers may remove any pending request.
func (s *LeaveService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	leave, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: leave request %d", domain.ErrNotFound, id)
		}
		return err
	}

	if leave.EmployeeID != principal.EmployeeID && !principal.IsManagerOrAdmin() {
		return fmt.Errorf("%w: cannot withdraw another employee's leave request", domain.ErrPermissionDenied)
	}
	if leave.Status.Terminal() {
		return fmt.Errorf("%w: leave request already %s", domain.ErrConflict, leave.Status)
	}

	return s.leaveRepo.Delete(ctx, id)
}

// ListLeaveInput represents leave listing filters
type ListLeaveInput struct {
	StartDate  string
	EndDate    string
	EmployeeID *uint
	LeaveType  string
	Status     string
	Offset     int
	Limit      int
}

// List returns leave requests visible to the principal
func (s *LeaveService) List(ctx context.Context, principal *domain.Principal, input *ListLeaveInput) ([]*models.LeaveRequest, int64, error) {
	filter := repositories.LeaveFilter{
		EmployeeID: input.EmployeeID,
		LeaveType:  input.LeaveType,
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

	return s.leaveRepo.List(ctx, filter, input.Offset, limit)
}
