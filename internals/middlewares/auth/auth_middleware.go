package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"ekspedisi_backend/internals/configs"
)

const (
	LocalsUserID   = "user_id"
	LocalsUserName = "user_name"
	LocalsRole     = "role"
)

// AuthJWT memvalidasi header Authorization: Bearer <token> dan menaruh
// klaim user di Locals untuk dipakai controller.
func AuthJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "Token tidak ditemukan",
			})
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(configs.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "Token tidak valid atau kedaluwarsa",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "Token tidak valid",
			})
		}

		if id, ok := claims["id"].(string); ok {
			c.Locals(LocalsUserID, id)
		}
		if name, ok := claims["user_name"].(string); ok {
			c.Locals(LocalsUserName, name)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals(LocalsRole, role)
		}

		return c.Next()
	}
}

// RequireRoles membatasi akses ke role tertentu (dipasang setelah AuthJWT).
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalsRole).(string)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"ok":    false,
			"error": "Anda tidak memiliki akses ke resource ini",
		})
	}
}
