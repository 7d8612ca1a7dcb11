package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/features/users/dto"
	"ekspedisi_backend/internals/features/users/model"
	helper "ekspedisi_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetAll - daftar user, terbaru lebih dulu (route sudah dibatasi ADMIN).
func (ctrl *UserController) GetAll(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		log.Printf("[ERROR] gagal ambil data user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data user")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.FromModel(&users[i]))
	}
	return helper.JsonOK(c, out)
}

// Create - tambah user baru dengan hash bcrypt.
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format data tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] gagal hash password: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	user := req.ToModel(string(hash))
	if err := ctrl.DB.WithContext(c.UserContext()).Create(user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return helper.JsonError(c, fiber.StatusConflict, "Username sudah digunakan")
		}
		log.Printf("[ERROR] gagal membuat user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}

	return helper.JsonOKWithCode(c, fiber.StatusCreated, dto.FromModel(user))
}
