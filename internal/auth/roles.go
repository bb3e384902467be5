package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/election-service/internal/repository"
	apperrors "github.com/spec-kit/election-service/pkg/util"
)

// RequireAdmin gates candidate mutations. The caller's role is re-checked
// against the user store on every request; any lookup failure, including
// not-found, counts as non-admin so authorization fails closed.
func RequireAdmin(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewForbidden("User does not have admin role")
		}
		if !isAdmin(c, users, principal.User.ID) {
			return apperrors.NewForbidden("User does not have admin role")
		}
		return c.Next()
	}
}

func isAdmin(c *fiber.Ctx, users repository.UserRepository, userID string) bool {
	user, err := users.GetByID(c.Context(), userID)
	if err != nil {
		return false
	}
	return user.IsAdmin()
}
