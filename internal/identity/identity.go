package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller extracted from JWT claims. Role carries
// the role at token-issue time; guards that gate on role re-read it from
// the database because payments can promote a user mid-session.
type Identity struct {
	Email string
	Name  string
	Role  string
}

// FromContext extracts the caller identity from the JWT placed in context
// locals by the auth middleware.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Identity{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid claims")
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return Identity{}, errors.New("missing sub claim")
	}

	id := Identity{Email: email}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	return id, nil
}
