package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ekspedisi_backend/internals/features/ekspedisi/model"
)

// ListFilter menyaring register aktif.
type ListFilter struct {
	Tahun  *int   // filter tahun tanggal_surat
	Query  string // cari bebas di nomor surat / perihal / tujuan / keterangan
	Limit  int
	Offset int
	Sort   string // "urut" (default) atau "tanggal"
}

// SuratRepository adalah kontrak datastore yang dibutuhkan SequenceLedger.
// Implementasi GORM ada di package repository; test memakai fake in-memory.
type SuratRepository interface {
	// InYearTx menjalankan fn sebagai satu unit atomik yang diserialisasi
	// per partisi tahun. Error dari fn membatalkan seluruh unit.
	InYearTx(ctx context.Context, tahun int, fn func(tx SuratRepository) error) error

	// FindByID mengembalikan baris apa adanya (termasuk yang soft-deleted),
	// atau ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*model.SuratKeluarModel, error)

	// ActiveNomorSuratExists mengecek nomor surat di antara baris yang belum
	// dihapus; excludeID dipakai saat update agar tidak bentrok dengan dirinya.
	ActiveNomorSuratExists(ctx context.Context, nomorSurat string, excludeID *uuid.UUID) (bool, error)

	// MaxNomorUrut melihat SEMUA baris tahun itu (termasuk soft-deleted,
	// nomornya masih terpakai); 0 jika kosong.
	MaxNomorUrut(ctx context.Context, tahun int) (int, error)

	Insert(ctx context.Context, m *model.SuratKeluarModel) error
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	MarkDeleted(ctx context.Context, id uuid.UUID, at time.Time, by uuid.UUID) error

	// Remove menghapus fisik satu baris.
	Remove(ctx context.Context, id uuid.UUID) error

	// ShiftNomorUrut mengurangi 1 nomor urut semua baris tahun itu yang
	// nomornya > after (soft-deleted ikut digeser).
	ShiftNomorUrut(ctx context.Context, tahun, after int) error

	// ListActive mengembalikan baris non-deleted + total count untuk paging.
	ListActive(ctx context.Context, f ListFilter) ([]model.SuratKeluarModel, int64, error)
}
