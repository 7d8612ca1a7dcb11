package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/features/activitylogs/service"
	helper "ekspedisi_backend/internals/helpers"
)

type ActivityLogController struct {
	Service *service.ActivityLogService
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{Service: service.NewActivityLogService(db)}
}

// GetAll - jejak audit terbaru lebih dulu (route sudah dibatasi ADMIN).
func (ctrl *ActivityLogController) GetAll(c *fiber.Ctx) error {
	p := helper.ParsePagination(c)
	logs, err := ctrl.Service.List(c.UserContext(), p.Limit(), p.Offset())
	if err != nil {
		log.Printf("[ERROR] gagal ambil activity log: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil activity log")
	}
	return helper.JsonOK(c, logs)
}
