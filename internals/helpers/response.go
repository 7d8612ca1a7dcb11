package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Semua endpoint memakai amplop {ok, data} / {ok, error} supaya FE cukup
// cek satu field.

// ✅ Success Response default 200
func JsonOK(c *fiber.Ctx, data interface{}) error {
	return JsonOKWithCode(c, fiber.StatusOK, data)
}

// ✅ Success Response dengan custom code (contoh 201 untuk created)
func JsonOKWithCode(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"ok":   true,
		"data": data,
	})
}

// ✅ Error Response sederhana
func JsonError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"ok":    false,
		"error": message,
	})
}

// ✅ Khusus error validasi (validator.v10): kirim map field → pesan
func JsonValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		switch fieldErr.Tag() {
		case "required":
			errorsMap[fieldErr.Field()] = fieldErr.Field() + " wajib diisi."
		case "min":
			errorsMap[fieldErr.Field()] = fieldErr.Field() + " minimal " + fieldErr.Param() + " karakter."
		case "max":
			errorsMap[fieldErr.Field()] = fieldErr.Field() + " maksimal " + fieldErr.Param() + " karakter."
		case "oneof":
			errorsMap[fieldErr.Field()] = fieldErr.Field() + " harus salah satu dari " + fieldErr.Param() + "."
		default:
			errorsMap[fieldErr.Field()] = "Format tidak valid."
		}
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":     false,
		"error":  "Tolong lengkapi data secara lengkap",
		"fields": errorsMap,
	})
}
