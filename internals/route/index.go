package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logRoute "ekspedisi_backend/internals/features/activitylogs/route"
	suratRoute "ekspedisi_backend/internals/features/ekspedisi/route"
	userRoute "ekspedisi_backend/internals/features/users/route"
	storage "ekspedisi_backend/internals/helpers/storage"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, blob *storage.SignatureStore) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	userRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db)

	log.Println("[INFO] Setting up SuratRoutes...")
	suratRoute.SuratRoutes(app, db, blob)

	log.Println("[INFO] Setting up ActivityLogRoutes...")
	logRoute.ActivityLogRoutes(app, db)
}
