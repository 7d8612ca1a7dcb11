package database

import (
	"log"

	"gorm.io/gorm"

	logModel "ekspedisi_backend/internals/features/activitylogs/model"
	suratModel "ekspedisi_backend/internals/features/ekspedisi/model"
	userModel "ekspedisi_backend/internals/features/users/model"
)

// Migrate menjalankan auto-migrate + index yang tidak bisa dinyatakan lewat tag GORM.
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&suratModel.SuratKeluarModel{},
		&logModel.ActivityLogModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}

	// Nomor surat harus unik di antara baris yang belum dihapus (soft delete
	// membebaskan nomornya). GORM tag tidak mendukung partial index, jadi DDL manual.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_surat_keluar_nomor_surat_alive
		ON surat_keluar (nomor_surat)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ Gagal membuat unique index nomor_surat: %v", err)
	}

	log.Println("✅ Migrasi skema selesai.")
}
