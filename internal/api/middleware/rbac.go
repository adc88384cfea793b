package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RoleMiddleware creates role-based access control middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get role from context (set by JWTMiddleware)
		role := c.Locals("role")
		if role == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized, role information missing",
			})
		}

		// Check if the user's role is in the allowed roles
		userRole := role.(string)
		allowed := false

		for _, r := range allowedRoles {
			if r == userRole {
				allowed = true
				break
			}
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Forbidden, insufficient permissions",
			})
		}

		return c.Next()
	}
}

// AdminOnly middleware for admin-only routes
func AdminOnly() fiber.Handler {
	return RoleMiddleware("admin")
}

// Self middleware ensures the user can only access their own resources.
// Admins may access any resource.
func Self(paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get user ID from JWT claims
		userID, ok := c.Locals("userID").(uuid.UUID)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized, user information missing",
			})
		}

		// Get resource owner ID from params
		resourceOwnerID := c.Params(paramName)
		if resourceOwnerID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Missing resource identifier",
			})
		}

		if userID.String() != resourceOwnerID {
			// If not, check if user is admin (admins can access everything)
			role := c.Locals("role")
			if role == nil || role.(string) != "admin" {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"success": false,
					"error":   "Forbidden, you can only access your own resources",
				})
			}
		}

		return c.Next()
	}
}
