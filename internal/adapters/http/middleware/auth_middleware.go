package middleware

import (
	"strings"

	"github.com/WNVissie/Shiftroster/internal/core/domain"
	"github.com/WNVissie/Shiftroster/internal/core/services"
	"github.com/WNVissie/Shiftroster/internal/pkg/jwt"
	"github.com/WNVissie/Shiftroster/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the locals key carrying the authenticated principal
const PrincipalKey = "principal"

// AuthMiddleware authenticates the request and loads the acting principal.
// Role and permissions come from the database on every request, so a role
// change takes effect without re-login.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Cookie first, then Authorization header
		accessToken := c.Cookies("access_token")
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := authService.ValidateAccessToken(accessToken)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		principal, err := authService.PrincipalFor(c.UserContext(), claims.EmployeeID)
		if err != nil {
			return response.Unauthorized(c, "Unknown employee")
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// Principal returns the authenticated principal set by AuthMiddleware
func Principal(c *fiber.Ctx) (*domain.Principal, bool) {
	principal, ok := c.Locals(PrincipalKey).(*domain.Principal)
	return principal, ok
}

// RoleMiddleware restricts a route to the named roles
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := Principal(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if principal.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the Admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// ManagerOrAdmin allows Manager or Admin roles
func ManagerOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleManager, domain.RoleAdmin)
}
