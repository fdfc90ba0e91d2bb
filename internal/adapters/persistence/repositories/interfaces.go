package repositories

import (
	"context"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
)

// EmployeeStore defines the employee persistence seam used by AuthService
type EmployeeStore interface {
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
}

// RefreshTokenStore defines the refresh token persistence seam used by AuthService
type RefreshTokenStore interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByEmployeeID(ctx context.Context, employeeID uint) error
	DeleteExpired(ctx context.Context) error
}

// RoleFinder resolves role records for auth provisioning
type RoleFinder interface {
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
}
