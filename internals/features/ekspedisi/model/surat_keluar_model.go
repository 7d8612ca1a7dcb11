package model

import (
	"time"

	"github.com/google/uuid"
)

// SuratKeluarModel adalah satu baris register surat keluar (buku ekspedisi).
//
// NomorUrut adalah posisi surat di register untuk tahun TanggalSurat.
// Soft delete (DeletedAt terisi) menyembunyikan baris dari register aktif
// tapi nomornya tetap "terpakai"; hard delete menghapus baris dan menggeser
// nomor urut baris sesudahnya di tahun yang sama.
type SuratKeluarModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NomorUrut    int        `gorm:"not null;index" json:"nomor_urut"`
	NomorSurat   string     `gorm:"size:100;not null" json:"nomor_surat"`
	TanggalSurat time.Time  `gorm:"type:date;not null;index" json:"tanggal_surat"`
	TanggalKirim time.Time  `gorm:"type:date;not null" json:"tanggal_kirim"`
	Perihal      string     `gorm:"not null" json:"perihal"`
	Tujuan       string     `gorm:"not null" json:"tujuan"`
	Keterangan   *string    `json:"keterangan,omitempty"`

	// URL/path scan tanda terima (bisa S3 atau /signatures lokal)
	SignDirectory *string `gorm:"size:500" json:"sign_directory,omitempty"`

	// Pembuat record (FK users)
	UserID uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`

	// Penanda soft delete + aktornya
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	DeletedBy *uuid.UUID `gorm:"type:uuid" json:"deleted_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SuratKeluarModel) TableName() string {
	return "surat_keluar"
}

// Tahun mengembalikan partisi tahun register dari tanggal surat.
func (m *SuratKeluarModel) Tahun() int {
	return m.TanggalSurat.Year()
}

// IsDeleted true jika baris sudah di-soft-delete.
func (m *SuratKeluarModel) IsDeleted() bool {
	return m.DeletedAt != nil
}
