package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/configs"
	database "ekspedisi_backend/internals/databases"
	suratModel "ekspedisi_backend/internals/features/ekspedisi/model"
	userModel "ekspedisi_backend/internals/features/users/model"
)

// Seeder: user admin/staf + contoh register 2024-2025 supaya FE langsung
// punya data. Aman dijalankan berulang (FirstOrCreate).
func main() {
	configs.LoadEnv()
	db := connectSeederDB()
	database.Migrate(db)

	admin := seedUser(db, "admin", "Administrator", "ADMIN", "admin12345")
	staf := seedUser(db, "staf1", "Staf Ekspedisi", "STAF", "staf12345")

	type suratSeed struct {
		nomorUrut  int
		nomorSurat string
		tglSurat   string
		tglKirim   string
		perihal    string
		tujuan     string
	}
	seeds := []suratSeed{
		{1, "005/DS/I/2024", "2024-01-15", "2024-01-16", "Undangan Musyawarah Desa", "Camat Kec. Sumberrejo"},
		{2, "011/DS/III/2024", "2024-03-02", "2024-03-02", "Laporan Realisasi APBDes", "BPMD Kabupaten"},
		{3, "027/DS/VII/2024", "2024-07-21", "2024-07-22", "Permohonan Bantuan Bibit", "Dinas Pertanian"},
		{1, "003/DS/I/2025", "2025-01-08", "2025-01-09", "Pengantar Data Penduduk", "Dispendukcapil"},
		{2, "009/DS/II/2025", "2025-02-14", "2025-02-14", "Undangan Rapat Koordinasi", "Ketua RT/RW se-Desa"},
	}

	for _, s := range seeds {
		tglSurat, _ := time.Parse("2006-01-02", s.tglSurat)
		tglKirim, _ := time.Parse("2006-01-02", s.tglKirim)
		row := suratModel.SuratKeluarModel{
			NomorUrut:    s.nomorUrut,
			NomorSurat:   s.nomorSurat,
			TanggalSurat: tglSurat,
			TanggalKirim: tglKirim,
			Perihal:      s.perihal,
			Tujuan:       s.tujuan,
			UserID:       staf.ID,
		}
		if err := db.Where("nomor_surat = ?", s.nomorSurat).FirstOrCreate(&row).Error; err != nil {
			log.Fatalf("❌ Gagal seed surat %s: %v", s.nomorSurat, err)
		}
	}

	log.Printf("✅ Seed selesai. admin=%s staf=%s", admin.UserName, staf.UserName)
}

func seedUser(db *gorm.DB, username, nama, role, password string) *userModel.UserModel {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Gagal hash password: %v", err)
	}
	u := userModel.UserModel{
		UserName:     username,
		NamaLengkap:  nama,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Where("user_name = ?", username).FirstOrCreate(&u).Error; err != nil {
		log.Fatalf("❌ Gagal seed user %s: %v", username, err)
	}
	return &u
}

func connectSeederDB() *gorm.DB {
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST"),
		configs.GetEnv("DB_PORT"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal koneksi ke database (Seeder): %v", err)
	}
	log.Println("✅ Database (Seeder) terkoneksi.")
	return db
}
