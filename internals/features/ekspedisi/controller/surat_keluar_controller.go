package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/constants"
	logService "ekspedisi_backend/internals/features/activitylogs/service"
	"ekspedisi_backend/internals/features/ekspedisi/dto"
	"ekspedisi_backend/internals/features/ekspedisi/repository"
	"ekspedisi_backend/internals/features/ekspedisi/service"
	helper "ekspedisi_backend/internals/helpers"
	storage "ekspedisi_backend/internals/helpers/storage"
)

type SuratKeluarController struct {
	Ledger *service.SequenceLedger
	Blob   *storage.SignatureStore
	Logs   *logService.ActivityLogService
}

func NewSuratKeluarController(db *gorm.DB, blob *storage.SignatureStore) *SuratKeluarController {
	logs := logService.NewActivityLogService(db)
	return &SuratKeluarController{
		Ledger: service.NewSequenceLedger(repository.NewGormSuratRepository(db), logs),
		Blob:   blob,
		Logs:   logs,
	}
}

// mapLedgerError memetakan error domain ke status + amplop JSON.
func mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Surat tidak ditemukan")
	case errors.Is(err, service.ErrDuplicateNomorSurat):
		return helper.JsonError(c, fiber.StatusConflict, service.ErrDuplicateNomorSurat.Error())
	case errors.Is(err, service.ErrActorRequired):
		return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrActorRequired.Error())
	default:
		log.Printf("[ERROR] operasi surat gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}

// GetAll - daftar register aktif, urut nomor urut / tanggal surat.
// Query: ?year=2025&q=undangan&sort=tanggal&page=1&per_page=20
func (ctrl *SuratKeluarController) GetAll(c *fiber.Ctx) error {
	f := service.ListFilter{
		Query: c.Query("q"),
		Sort:  c.Query("sort"),
	}
	if y := c.Query("year"); y != "" {
		tahun, err := strconv.Atoi(y)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parameter year tidak valid")
		}
		f.Tahun = &tahun
	}
	if c.Query("page") != "" {
		p := helper.ParsePagination(c)
		f.Limit = p.Limit()
		f.Offset = p.Offset()
	}

	rows, total, err := ctrl.Ledger.List(c.UserContext(), f)
	if err != nil {
		return mapLedgerError(c, err)
	}

	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return helper.JsonOK(c, dto.FromModels(rows))
}

// GetByID - detail satu surat (yang sudah dihapus dianggap tidak ada).
func (ctrl *SuratKeluarController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	m, err := ctrl.Ledger.Get(c.UserContext(), id)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, dto.FromModel(m))
}

// Create - tambah surat keluar baru (form multipart, file "berkas" opsional).
// Upload scan dilakukan SEBELUM insert; kalau dua-duanya storage gagal,
// record tetap dibuat tanpa lampiran.
func (ctrl *SuratKeluarController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateSuratKeluarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format data tidak valid")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var signDirectory *string
	if fh, err := c.FormFile("berkas"); err == nil && fh != nil && fh.Size > 0 {
		url, upErr := ctrl.Blob.UploadSignature(c.UserContext(), fh)
		if upErr != nil {
			// gagal upload tidak memblokir pembuatan record
			log.Printf("[WARN] upload tanda terima gagal, surat tetap dibuat: %v", upErr)
		} else {
			signDirectory = &url
		}
	}

	in, err := req.ToInput(actorID, signDirectory)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	created, err := ctrl.Ledger.Create(c.UserContext(), in)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOKWithCode(c, fiber.StatusCreated, dto.FromModel(created))
}

// Update - ubah field surat; kirim file "berkas" baru untuk mengganti scan.
func (ctrl *SuratKeluarController) Update(c *fiber.Ctx) error {
	if _, err := helper.GetUserIDFromToken(c); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateSuratKeluarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format data tidak valid")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var signDirectory *string
	if fh, err := c.FormFile("berkas"); err == nil && fh != nil && fh.Size > 0 {
		url, upErr := ctrl.Blob.UploadSignature(c.UserContext(), fh)
		if upErr != nil {
			log.Printf("[WARN] upload tanda terima gagal saat update: %v", upErr)
		} else {
			signDirectory = &url
		}
	}

	in, err := req.ToInput(signDirectory)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	updated, err := ctrl.Ledger.Update(c.UserContext(), id, in)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, dto.FromModel(updated))
}

// SoftDelete - sembunyikan dari register aktif (idempoten).
func (ctrl *SuratKeluarController) SoftDelete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Ledger.SoftDelete(c.UserContext(), id, actorID); err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, fiber.Map{"deleted_id": id})
}

// HardDelete - hapus fisik + rapatkan nomor urut tahun tersebut.
func (ctrl *SuratKeluarController) HardDelete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Ledger.HardDelete(c.UserContext(), id, actorID); err != nil {
		return mapLedgerError(c, err)
	}
	return helper.JsonOK(c, fiber.Map{"deleted_id": id})
}

// Export - seluruh register aktif untuk dicetak/diunduh FE (jsPDF/xlsx di
// sisi client). Setiap ekspor dicatat di activity log.
func (ctrl *SuratKeluarController) Export(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	f := service.ListFilter{Sort: "tanggal"}
	if y := c.Query("year"); y != "" {
		tahun, err := strconv.Atoi(y)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parameter year tidak valid")
		}
		f.Tahun = &tahun
	}

	rows, total, err := ctrl.Ledger.List(c.UserContext(), f)
	if err != nil {
		return mapLedgerError(c, err)
	}
	if total == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Tidak ada data ekspedisi")
	}

	ctrl.Logs.Record(c.UserContext(), constants.ActionExport, constants.EntitySuratKeluar, "register", actorID, map[string]interface{}{
		"rows":   total,
		"format": c.Query("format", "json"),
	})
	return helper.JsonOK(c, dto.FromModels(rows))
}
