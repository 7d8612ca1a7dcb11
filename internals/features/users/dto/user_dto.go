package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ekspedisi_backend/internals/constants"
	"ekspedisi_backend/internals/features/users/model"
)

var validate = validator.New()

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type LoginRequest struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// CreateUserRequest — create by admin
type CreateUserRequest struct {
	UserName    string `json:"username" validate:"required,min=3,max=50"`
	NamaLengkap string `json:"nama_lengkap" validate:"required,min=3,max=100"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=ADMIN STAF"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.NamaLengkap = strings.TrimSpace(r.NamaLengkap)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = constants.RoleStaf
	}
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// ToModel — hash password di controller!
func (r *CreateUserRequest) ToModel(passwordHash string) *model.UserModel {
	return &model.UserModel{
		UserName:     r.UserName,
		NamaLengkap:  r.NamaLengkap,
		PasswordHash: passwordHash,
		Role:         r.Role,
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// UserResponse tidak pernah membawa hash password.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"username"`
	NamaLengkap string    `json:"nama_lengkap"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModel(m *model.UserModel) UserResponse {
	return UserResponse{
		ID:          m.ID,
		UserName:    m.UserName,
		NamaLengkap: m.NamaLengkap,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
	}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
