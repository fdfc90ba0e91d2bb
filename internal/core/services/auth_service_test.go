package services

import (
	"context"
	"testing"

	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/models"
	"github.com/WNVissie/Shiftroster/internal/adapters/persistence/repositories"
	"github.com/WNVissie/Shiftroster/internal/config"
	"github.com/WNVissie/Shiftroster/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(f *fixture) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewEmployeeRepository(f.db),
		repositories.NewRefreshTokenRepository(f.db),
		repositories.NewReferenceRepository(f.db),
		cfg,
	)
}

func TestGoogleLogin(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	t.Run("known identity signs in", func(t *testing.T) {
		resp, err := svc.GoogleLogin(ctx, &GoogleLoginInput{
			GoogleID: f.worker.GoogleID,
			Email:    f.worker.Email,
			Name:     f.worker.Name,
			Surname:  f.worker.Surname,
		})
		require.NoError(t, err)
		assert.Equal(t, f.worker.ID, resp.Employee.ID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		claims, err := svc.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, f.worker.ID, claims.EmployeeID)
		assert.Equal(t, "Employee", claims.Role)
	})

	t.Run("unseen identity is provisioned as Employee", func(t *testing.T) {
		resp, err := svc.GoogleLogin(ctx, &GoogleLoginInput{
			GoogleID: "google_stranger",
			Email:    "stranger@company.co.za",
			Name:     "Sam",
			Surname:  "Stranger",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Employee.Role)
		assert.Equal(t, domain.RoleEmployee, resp.Employee.Role.Name)
	})

	t.Run("pre-registered email is claimed by its Google identity", func(t *testing.T) {
		pre := &models.Employee{
			GoogleID: "placeholder_google_id",
			Email:    "registered@company.co.za",
			Name:     "Reg",
			Surname:  "Istered",
			RoleID:   f.managerRole.ID,
		}
		require.NoError(t, f.db.Create(pre).Error)

		resp, err := svc.GoogleLogin(ctx, &GoogleLoginInput{
			GoogleID: "google_registered",
			Email:    "registered@company.co.za",
			Name:     "Reg",
			Surname:  "Istered",
		})
		require.NoError(t, err)
		assert.Equal(t, pre.ID, resp.Employee.ID, "existing record claimed, not duplicated")

		var stored models.Employee
		require.NoError(t, f.db.First(&stored, pre.ID).Error)
		assert.Equal(t, "google_registered", stored.GoogleID)
	})

	t.Run("missing fields are invalid", func(t *testing.T) {
		_, err := svc.GoogleLogin(ctx, &GoogleLoginInput{GoogleID: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	login, err := svc.GoogleLogin(ctx, &GoogleLoginInput{
		GoogleID: f.worker.GoogleID,
		Email:    f.worker.Email,
		Name:     f.worker.Name,
		Surname:  f.worker.Surname,
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	t.Run("old token is revoked after rotation", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("the new token still works", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, refreshed.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("garbage token is unauthenticated", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	login, err := svc.GoogleLogin(ctx, &GoogleLoginInput{
		GoogleID: f.worker.GoogleID,
		Email:    f.worker.Email,
		Name:     f.worker.Name,
		Surname:  f.worker.Surname,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogoutAll(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	input := &GoogleLoginInput{
		GoogleID: f.worker.GoogleID,
		Email:    f.worker.Email,
		Name:     f.worker.Name,
		Surname:  f.worker.Surname,
	}
	first, err := svc.GoogleLogin(ctx, input)
	require.NoError(t, err)
	second, err := svc.GoogleLogin(ctx, input)
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, f.worker.ID))

	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestPrincipalFor(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	t.Run("loads role and permissions from the database", func(t *testing.T) {
		principal, err := svc.PrincipalFor(ctx, f.manager.ID)
		require.NoError(t, err)
		assert.Equal(t, "Manager", principal.Role)
		assert.True(t, principal.Allowed(domain.CapApproveRosters))
	})

	t.Run("role changes apply without re-login", func(t *testing.T) {
		require.NoError(t, f.db.Model(&models.Employee{}).
			Where("id = ?", f.worker.ID).
			Update("role_id", f.managerRole.ID).Error)

		principal, err := svc.PrincipalFor(ctx, f.worker.ID)
		require.NoError(t, err)
		assert.Equal(t, "Manager", principal.Role)
	})

	t.Run("unknown employee is unauthenticated", func(t *testing.T) {
		_, err := svc.PrincipalFor(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
