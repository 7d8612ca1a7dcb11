package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/features/ekspedisi/model"
	"ekspedisi_backend/internals/features/ekspedisi/service"
)

// Namespace advisory lock supaya tidak tabrakan dengan pemakai lock lain di DB.
const yearLockNamespace = 7312 // 'sk' register surat keluar

// GormSuratRepository adalah implementasi Postgres dari service.SuratRepository.
type GormSuratRepository struct {
	db *gorm.DB
}

func NewGormSuratRepository(db *gorm.DB) *GormSuratRepository {
	return &GormSuratRepository{db: db}
}

// InYearTx membuka transaksi lalu mengambil advisory lock per tahun, sehingga
// hitung-nomor-lalu-insert dan hapus-lalu-geser untuk tahun yang sama berjalan
// bergantian, bukan balapan. Lock lepas otomatis saat commit/rollback.
func (r *GormSuratRepository) InYearTx(ctx context.Context, tahun int, fn func(tx service.SuratRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", yearLockNamespace, tahun).Error; err != nil {
			return err
		}
		return fn(&GormSuratRepository{db: tx})
	})
}

func (r *GormSuratRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SuratKeluarModel, error) {
	var m model.SuratKeluarModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormSuratRepository) ActiveNomorSuratExists(ctx context.Context, nomorSurat string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.SuratKeluarModel{}).
		Where("nomor_surat = ? AND deleted_at IS NULL", nomorSurat)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSuratRepository) MaxNomorUrut(ctx context.Context, tahun int) (int, error) {
	start, end := yearRange(tahun)
	var max int
	err := r.db.WithContext(ctx).Model(&model.SuratKeluarModel{}).
		Where("tanggal_surat >= ? AND tanggal_surat < ?", start, end).
		Select("COALESCE(MAX(nomor_urut), 0)").
		Scan(&max).Error
	return max, err
}

func (r *GormSuratRepository) Insert(ctx context.Context, m *model.SuratKeluarModel) error {
	return translateError(r.db.WithContext(ctx).Create(m).Error)
}

func (r *GormSuratRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return translateError(r.db.WithContext(ctx).
		Model(&model.SuratKeluarModel{}).
		Where("id = ?", id).
		Updates(updates).Error)
}

func (r *GormSuratRepository) MarkDeleted(ctx context.Context, id uuid.UUID, at time.Time, by uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.SuratKeluarModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": at,
			"deleted_by": by,
		}).Error
}

func (r *GormSuratRepository) Remove(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&model.SuratKeluarModel{}, "id = ?", id).Error
}

func (r *GormSuratRepository) ShiftNomorUrut(ctx context.Context, tahun, after int) error {
	start, end := yearRange(tahun)
	return r.db.WithContext(ctx).
		Model(&model.SuratKeluarModel{}).
		Where("tanggal_surat >= ? AND tanggal_surat < ? AND nomor_urut > ?", start, end, after).
		UpdateColumn("nomor_urut", gorm.Expr("nomor_urut - 1")).Error
}

func (r *GormSuratRepository) ListActive(ctx context.Context, f service.ListFilter) ([]model.SuratKeluarModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.SuratKeluarModel{}).
		Where("deleted_at IS NULL")

	if f.Tahun != nil {
		start, end := yearRange(*f.Tahun)
		q = q.Where("tanggal_surat >= ? AND tanggal_surat < ?", start, end)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where(
			"nomor_surat ILIKE ? OR perihal ILIKE ? OR tujuan ILIKE ? OR COALESCE(keterangan, '') ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case "tanggal":
		q = q.Order("tanggal_surat ASC, nomor_urut ASC")
	default:
		q = q.Order("nomor_urut ASC, tanggal_surat ASC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []model.SuratKeluarModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// yearRange memetakan partisi tahun ke rentang [1 Jan tahun, 1 Jan tahun+1).
func yearRange(tahun int) (time.Time, time.Time) {
	start := time.Date(tahun, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// translateError memetakan pelanggaran constraint Postgres ke error domain:
// 23505 (unique index nomor_surat parsial) → duplikat, 23503 (FK user) →
// user tidak valid.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return service.ErrDuplicateNomorSurat
		case "23503":
			return service.ErrUserNotFound
		}
	}
	return err
}
