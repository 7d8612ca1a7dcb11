package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/configs"
	"ekspedisi_backend/internals/constants"
	logService "ekspedisi_backend/internals/features/activitylogs/service"
	"ekspedisi_backend/internals/features/users/dto"
	"ekspedisi_backend/internals/features/users/model"
	helper "ekspedisi_backend/internals/helpers"
)

type AuthController struct {
	DB   *gorm.DB
	Logs *logService.ActivityLogService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Logs: logService.NewActivityLogService(db)}
}

// Login - cek username + bcrypt hash, balas JWT + profil singkat.
// Pesan error sengaja sama untuk user-tidak-ada dan password-salah.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format data tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Username dan password diperlukan")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_name = ?", req.UserName).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		log.Printf("[ERROR] login query gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
	}

	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"exp":       time.Now().Add(12 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		log.Printf("[ERROR] gagal sign token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	ctrl.Logs.Record(c.UserContext(), constants.ActionLogin, constants.EntityUser, user.ID.String(), user.ID, map[string]interface{}{
		"username": user.UserName,
	})

	return helper.JsonOK(c, dto.LoginResponse{
		Token: token,
		User:  dto.FromModel(&user),
	})
}
