package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/features/ekspedisi/controller"
	storage "ekspedisi_backend/internals/helpers/storage"
	authMw "ekspedisi_backend/internals/middlewares/auth"
)

// SuratRoutes - register surat keluar; semua di belakang JWT supaya setiap
// mutasi punya aktor yang jelas di activity log.
func SuratRoutes(app *fiber.App, db *gorm.DB, blob *storage.SignatureStore) {
	ctrl := controller.NewSuratKeluarController(db, blob)

	surat := app.Group("/api/surat", authMw.AuthJWT())
	surat.Get("/", ctrl.GetAll)
	surat.Get("/export", ctrl.Export)
	surat.Get("/:id", ctrl.GetByID)
	surat.Post("/", ctrl.Create)
	surat.Put("/:id", ctrl.Update)
	surat.Delete("/:id/delete", ctrl.SoftDelete) // soft delete (idempoten)
	surat.Delete("/:id", ctrl.HardDelete)        // hard delete + geser nomor urut
}
