package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/surveyscape/backend/internal/config"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/identity"
	"github.com/surveyscape/backend/internal/models"
	"gorm.io/gorm"
)

// RoleRequired gates a route on the caller ranking at least minRole on the
// privilege ladder. Rank comparison, not exact membership: a promotion can
// only ever widen what a caller may do, so a surveyor who pays and becomes
// pro-user keeps every surveyor route. The role is re-read from the users
// table rather than trusted from the token, because a payment can promote a
// user while an older token is still in flight. Checks, in order:
//  1. Config-based admin token header
//  2. Config-based admin email list
//  3. DB-based user Role field ranked against minRole
func RoleRequired(db *gorm.DB, cfg *config.Config, minRole string) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		caller, err := identity.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, caller.Email) {
			return c.Next()
		}

		var user models.User
		if err := db.Where("email = ?", caller.Email).First(&user).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied",
			})
		}

		if models.RoleAtLeast(user.Role, minRole) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Access denied",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
