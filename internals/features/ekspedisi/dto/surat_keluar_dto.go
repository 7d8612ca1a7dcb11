package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ekspedisi_backend/internals/features/ekspedisi/model"
	"ekspedisi_backend/internals/features/ekspedisi/service"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateSuratKeluarRequest — field teks dari form multipart; file scan tanda
// terima diambil terpisah lewat c.FormFile("berkas").
type CreateSuratKeluarRequest struct {
	NomorSurat        string `form:"nomorSurat" json:"nomorSurat" validate:"required,max=100"`
	TanggalSurat      string `form:"tanggalSurat" json:"tanggalSurat" validate:"required"`           // "YYYY-MM-DD"
	TanggalPengiriman string `form:"tanggalPengiriman" json:"tanggalPengiriman" validate:"required"` // "YYYY-MM-DD"
	Perihal           string `form:"perihal" json:"perihal" validate:"required"`
	Tujuan            string `form:"tujuan" json:"tujuan" validate:"required"`
	Keterangan        string `form:"keterangan" json:"keterangan"`
}

// Normalize — trim semua field teks
func (r *CreateSuratKeluarRequest) Normalize() {
	r.NomorSurat = strings.TrimSpace(r.NomorSurat)
	r.TanggalSurat = strings.TrimSpace(r.TanggalSurat)
	r.TanggalPengiriman = strings.TrimSpace(r.TanggalPengiriman)
	r.Perihal = strings.TrimSpace(r.Perihal)
	r.Tujuan = strings.TrimSpace(r.Tujuan)
	r.Keterangan = strings.TrimSpace(r.Keterangan)
}

func (r *CreateSuratKeluarRequest) Validate() error {
	return validate.Struct(r)
}

// ToInput mengonversi ke input ledger; error jika format tanggal salah.
func (r *CreateSuratKeluarRequest) ToInput(userID uuid.UUID, signDirectory *string) (service.CreateSuratInput, error) {
	tglSurat, err := time.Parse(dateLayout, r.TanggalSurat)
	if err != nil {
		return service.CreateSuratInput{}, err
	}
	tglKirim, err := time.Parse(dateLayout, r.TanggalPengiriman)
	if err != nil {
		return service.CreateSuratInput{}, err
	}

	var keterangan *string
	if r.Keterangan != "" {
		keterangan = &r.Keterangan
	}

	return service.CreateSuratInput{
		NomorSurat:    r.NomorSurat,
		TanggalSurat:  tglSurat,
		TanggalKirim:  tglKirim,
		Perihal:       r.Perihal,
		Tujuan:        r.Tujuan,
		Keterangan:    keterangan,
		SignDirectory: signDirectory,
		UserID:        userID,
	}, nil
}

// UpdateSuratKeluarRequest — partial update (pointer agar bisa bedakan omit vs kosong)
type UpdateSuratKeluarRequest struct {
	NomorSurat        *string `form:"nomorSurat" json:"nomorSurat" validate:"omitempty,max=100"`
	TanggalSurat      *string `form:"tanggalSurat" json:"tanggalSurat"`
	TanggalPengiriman *string `form:"tanggalPengiriman" json:"tanggalPengiriman"`
	Perihal           *string `form:"perihal" json:"perihal"`
	Tujuan            *string `form:"tujuan" json:"tujuan"`
	Keterangan        *string `form:"keterangan" json:"keterangan"`
}

func (r *UpdateSuratKeluarRequest) Validate() error {
	return validate.Struct(r)
}

// ToInput mengonversi field yang ada saja.
func (r *UpdateSuratKeluarRequest) ToInput(signDirectory *string) (service.UpdateSuratInput, error) {
	in := service.UpdateSuratInput{
		NomorSurat:    r.NomorSurat,
		Perihal:       r.Perihal,
		Tujuan:        r.Tujuan,
		Keterangan:    r.Keterangan,
		SignDirectory: signDirectory,
	}
	if r.TanggalSurat != nil {
		t, err := time.Parse(dateLayout, strings.TrimSpace(*r.TanggalSurat))
		if err != nil {
			return in, err
		}
		in.TanggalSurat = &t
	}
	if r.TanggalPengiriman != nil {
		t, err := time.Parse(dateLayout, strings.TrimSpace(*r.TanggalPengiriman))
		if err != nil {
			return in, err
		}
		in.TanggalKirim = &t
	}
	return in, nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

// SuratKeluarResponse mengikuti bentuk yang dipakai tabel FE buku ekspedisi.
type SuratKeluarResponse struct {
	ID            uuid.UUID `json:"id"`
	NomorUrut     int       `json:"nomorUrut"`
	NoSurat       string    `json:"noSurat"`
	TglSurat      string    `json:"tglSurat"`
	TglPengiriman string    `json:"tglPengiriman"`
	IsiSingkat    string    `json:"isiSingkat"`
	Ditujukan     string    `json:"ditujukan"`
	Keterangan    string    `json:"keterangan"`
	SignDirectory *string   `json:"signDirectory,omitempty"`
}

func FromModel(m *model.SuratKeluarModel) SuratKeluarResponse {
	keterangan := "-"
	if m.Keterangan != nil && *m.Keterangan != "" {
		keterangan = *m.Keterangan
	}
	return SuratKeluarResponse{
		ID:            m.ID,
		NomorUrut:     m.NomorUrut,
		NoSurat:       m.NomorSurat,
		TglSurat:      m.TanggalSurat.Format(dateLayout),
		TglPengiriman: m.TanggalKirim.Format(dateLayout),
		IsiSingkat:    m.Perihal,
		Ditujukan:     m.Tujuan,
		Keterangan:    keterangan,
		SignDirectory: m.SignDirectory,
	}
}

func FromModels(rows []model.SuratKeluarModel) []SuratKeluarResponse {
	out := make([]SuratKeluarResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
