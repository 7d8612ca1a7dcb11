package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/constants"
	"ekspedisi_backend/internals/features/users/controller"
	"ekspedisi_backend/internals/middlewares"
	authMw "ekspedisi_backend/internals/middlewares/auth"
)

// AuthRoutes - login publik dengan limiter ketat.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)
}

// UserRoutes - manajemen user, khusus ADMIN.
func UserRoutes(app *fiber.App, db *gorm.DB) {
	userCtrl := controller.NewUserController(db)

	users := app.Group("/api/users",
		authMw.AuthJWT(),
		authMw.RequireRoles(constants.RoleAdmin),
	)
	users.Get("/", userCtrl.GetAll)
	users.Post("/", userCtrl.Create)
}
