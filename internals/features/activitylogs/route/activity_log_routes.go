package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/constants"
	"ekspedisi_backend/internals/features/activitylogs/controller"
	authMw "ekspedisi_backend/internals/middlewares/auth"
)

// ActivityLogRoutes - jejak audit, khusus ADMIN.
func ActivityLogRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := controller.NewActivityLogController(db)

	logs := app.Group("/api/activity-logs",
		authMw.AuthJWT(),
		authMw.RequireRoles(constants.RoleAdmin),
	)
	logs.Get("/", ctrl.GetAll)
}
