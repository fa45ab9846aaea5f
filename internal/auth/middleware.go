package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/vipulnarang95/django-cms/internal/web/session"
)

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			log.Error().Msg("No session cookie found")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			log.Error().Err(err).Msg("Failed to read session")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if sessionData.User.ID == 0 {
			log.Error().Msg("Invalid session data")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasPermission(sessionData.User.ID, permission)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Str("permission", permission).
				Msg("Failed to check permission")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", sessionData.User.ID).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if sessionData.User.ID == 0 {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermission, err := authService.HasAnyPermission(sessionData.User.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Strs("permissions", permissions).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermission {
			log.Warn().Uint64("user_id", sessionData.User.ID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// RequireAllPermissions creates Fiber middleware that requires all the given permissions.
func RequireAllPermissions(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		if sessionData.User.ID == 0 {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		hasPermissions, err := authService.HasAllPermissions(sessionData.User.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Strs("permissions", permissions).
				Msg("Failed to check permissions")

			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		}

		if !hasPermissions {
			log.Warn().Uint64("user_id", sessionData.User.ID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return c.Status(fiber.StatusForbidden).SendString("Forbidden: You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// HasPermissionInContext checks if the current user in the Fiber context has a permission.
// Useful for conditional rendering in handlers.
func HasPermissionInContext(c *fiber.Ctx, authService *Service, permission string) bool {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return false
	}

	sessionData := new(session.Data)
	if err := sessionData.Read(sessionID); err != nil {
		return false
	}

	if sessionData.User.ID == 0 {
		return false
	}

	hasPermission, err := authService.HasPermission(sessionData.User.ID, permission)
	if err != nil {
		return false
	}

	return hasPermission
}

// AddPermissionsToLocals is a Fiber middleware that adds user permissions to fiber.Locals.
// This allows templates to access permissions for conditional rendering.
func AddPermissionsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session")
		if sessionID == "" {
			return c.Next()
		}

		sessionData := new(session.Data)
		if err := sessionData.Read(sessionID); err != nil {
			return c.Next()
		}

		if sessionData.User.ID == 0 {
			return c.Next()
		}

		permissions, err := authService.GetUserPermissions(sessionData.User.ID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).
				Msg("Failed to get user permissions")

			return c.Next()
		}

		c.Locals("permissions", permissions)
		c.Locals("username", sessionData.User.Username)
		c.Locals("hasPermission", func(perm string) bool {
			if has, errHas := authService.HasPermission(sessionData.User.ID, perm); errHas == nil {
				return has
			}

			return false
		})

		return c.Next()
	}
}
