package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/config"
	"github.com/WNVissie/Shiftroster/internal/core/domain"
	"github.com/WNVissie/Shiftroster/internal/pkg/jwt"
	"github.com/WNVissie/Shiftroster/internal/pkg/tokenhash"
	"github.com/WNVissie/Shiftroster/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService handles authentication business logic. Identity comes from
// Google sign-in; unknown identities are provisioned as Employee.
type AuthService struct {
	employeeStore repositories.EmployeeStore
	tokenStore    repositories.RefreshTokenStore
	roleFinder    repositories.RoleFinder
	cfg           *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	employeeStore repositories.EmployeeStore,
	tokenStore repositories.RefreshTokenStore,
	roleFinder repositories.RoleFinder,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		employeeStore: employeeStore,
		tokenStore:    tokenStore,
		roleFinder:    roleFinder,
		cfg:           cfg,
	}
}

// GoogleLoginInput represents a verified Google sign-in payload
type GoogleLoginInput struct {
	GoogleID string `json:"google_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Employee     *models.EmployeeResponse `json:"employee"`
	AccessToken  string                   `json:"access_token"`
	RefreshToken string                   `json:"refresh_token"`
}

// GoogleLogin signs in a Google identity, provisioning a new employee with
// the default Employee role on first sight.
func (s *AuthService) GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*AuthResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	employee, err := s.employeeStore.GetByGoogleID(ctx, input.GoogleID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		employee, err = s.provision(ctx, input)
		if err != nil {
			return nil, err
		}
	}

	tokens, err := s.generateTokens(employee)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, employee.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee signed in: %s %s (%s)", employee.Name, employee.Surname, employee.Email)

	return &AuthResponse{
		Employee:     employee.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// provision creates an employee record for an unseen Google identity.
// An existing record with the same email but no matching google_id means
// the identity was pre-registered by an admin; claim it instead.
func (s *AuthService) provision(ctx context.Context, input *GoogleLoginInput) (*models.Employee, error) {
	existing, err := s.employeeStore.GetByEmail(ctx, input.Email)
	if err == nil {
		existing.GoogleID = input.GoogleID
		if err := s.employeeStore.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.roleFinder.GetRoleByName(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("default role lookup: %w", err)
	}

	employee := &models.Employee{
		GoogleID: input.GoogleID,
		Email:    input.Email,
		Name:     input.Name,
		Surname:  input.Surname,
		RoleID:   role.ID,
	}
	if err := s.employeeStore.Create(ctx, employee); err != nil {
		return nil, err
	}

	log.Printf("✅ Employee provisioned: %s (%s)", input.Email, domain.RoleEmployee)

	// Reload with role preloaded
	return s.employeeStore.GetByID(ctx, employee.ID)
}

// RefreshToken rotates the refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token", domain.ErrUnauthenticated)
	}

	storedToken, err := s.tokenStore.GetByTokenHash(ctx, tokenhash.Hash(refreshToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token", domain.ErrUnauthenticated)
		}
		return nil, err
	}
	if storedToken.IsRevoked() || storedToken.IsExpired() {
		return nil, fmt.Errorf("%w: refresh token", domain.ErrUnauthenticated)
	}

	employee, err := s.employeeStore.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: employee", domain.ErrUnauthenticated)
	}

	// Token rotation
	if err := s.tokenStore.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(employee)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, employee.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Employee:     employee.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenStore.RevokeByTokenHash(ctx, tokenhash.Hash(refreshToken))
}

// LogoutAll revokes all refresh tokens for an employee
func (s *AuthService) LogoutAll(ctx context.Context, employeeID uint) error {
	if err := s.tokenStore.RevokeAllByEmployeeID(ctx, employeeID); err != nil {
		return err
	}
	log.Printf("✅ All sessions revoked for employee ID: %d", employeeID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetEmployeeByID gets an employee by ID
func (s *AuthService) GetEmployeeByID(ctx context.Context, employeeID uint) (*models.Employee, error) {
	return s.employeeStore.GetByID(ctx, employeeID)
}

// PrincipalFor loads the acting principal for an authenticated employee,
// resolving role and permissions from the database so that role changes
// take effect without re-login.
func (s *AuthService) PrincipalFor(ctx context.Context, employeeID uint) (*domain.Principal, error) {
	employee, err := s.employeeStore.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee", domain.ErrUnauthenticated)
		}
		return nil, err
	}

	principal := &domain.Principal{
		EmployeeID:  employee.ID,
		Email:       employee.Email,
		Permissions: map[string]bool{},
	}
	if employee.Role != nil {
		principal.Role = employee.Role.Name
		principal.Permissions = employee.Role.PermissionMap()
	}
	return principal, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(employee *models.Employee) (*TokenPair, error) {
	roleName := ""
	if employee.Role != nil {
		roleName = employee.Role.Name
	}

	accessToken, err := jwt.GenerateAccessToken(
		employee.ID,
		employee.Email,
		roleName,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		employee.ID,
		uuid.New().String(),
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, employeeID uint, refreshToken string) error {
	token := &models.RefreshToken{
		EmployeeID: employeeID,
		TokenHash:  tokenhash.Hash(refreshToken),
		ExpiresAt:  jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.tokenStore.Create(ctx, token)
}
