package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the locals key under which the resolved caller id is stored.
const UserIDKey = "userID"

// Identity resolves the caller from a bearer token and stores the user id in
// locals. A missing or invalid token resolves to an empty caller instead of
// rejecting the request: reads degrade to empty results and mutations are
// rejected downstream, so listing endpoints never error for anonymous
// clients.
func Identity(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(UserIDKey, resolveUserID(c, secret))
		return c.Next()
	}
}

func resolveUserID(c *fiber.Ctx, secret []byte) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}

	token, err := jwt.Parse(header[7:], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if v, ok := claims["sub"].(string); ok {
		return v
	}
	if v, ok := claims["user_id"].(string); ok {
		return v
	}
	return ""
}
