package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ekspedisi_backend/internals/middlewares/auth"
)

var ErrNoUserInToken = errors.New("user id tidak ada di token")

// GetUserIDFromToken mengambil UUID aktor dari Locals hasil AuthJWT.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(auth.LocalsUserID).(string)
	if raw == "" {
		return uuid.Nil, ErrNoUserInToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserInToken
	}
	return id, nil
}

// GetRoleFromToken mengambil role aktor ("ADMIN"/"STAF") dari Locals.
func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals(auth.LocalsRole).(string)
	return role
}
