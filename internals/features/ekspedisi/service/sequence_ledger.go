package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ekspedisi_backend/internals/constants"
	logService "ekspedisi_backend/internals/features/activitylogs/service"
	"ekspedisi_backend/internals/features/ekspedisi/model"
)

// SequenceLedger menjaga dua invariant register surat keluar:
//
//  1. nomor_surat unik di antara baris yang belum dihapus;
//  2. nomor_urut per tahun tanggal_surat rapat {1..N} — dijaga saat create
//     (ambil nomor berikutnya) dan saat hard delete (geser turun baris
//     sesudahnya). Soft delete tidak menggeser apa-apa: nomornya tetap
//     terpakai dan barisnya hanya hilang dari register aktif.
//
// Semua baca-lalu-tulis di atas partisi tahun berjalan dalam InYearTx milik
// repository, jadi dua create (atau create vs hard delete) tahun yang sama
// tidak bisa saling menyalip.
type SequenceLedger struct {
	Repo SuratRepository
	Logs logService.ActivityLogger
}

func NewSequenceLedger(repo SuratRepository, logs logService.ActivityLogger) *SequenceLedger {
	return &SequenceLedger{Repo: repo, Logs: logs}
}

// ======================
// CREATE
// ======================

type CreateSuratInput struct {
	NomorSurat    string
	TanggalSurat  time.Time
	TanggalKirim  time.Time
	Perihal       string
	Tujuan        string
	Keterangan    *string
	SignDirectory *string
	UserID        uuid.UUID
}

func (in *CreateSuratInput) validate() error {
	switch {
	case strings.TrimSpace(in.NomorSurat) == "":
		return fmt.Errorf("%w: nomor surat wajib diisi", ErrValidation)
	case in.TanggalSurat.IsZero():
		return fmt.Errorf("%w: tanggal surat wajib diisi", ErrValidation)
	case in.TanggalKirim.IsZero():
		return fmt.Errorf("%w: tanggal pengiriman wajib diisi", ErrValidation)
	case strings.TrimSpace(in.Perihal) == "":
		return fmt.Errorf("%w: perihal wajib diisi", ErrValidation)
	case strings.TrimSpace(in.Tujuan) == "":
		return fmt.Errorf("%w: tujuan wajib diisi", ErrValidation)
	case in.UserID == uuid.Nil:
		return fmt.Errorf("%w: user id wajib diisi", ErrValidation)
	}
	return nil
}

// Create memberi nomor urut berikutnya untuk tahun tanggal surat dan
// menyimpan baris baru. Nomor dihitung MAX+1 (bukan COUNT+1) supaya nomor
// milik baris soft-deleted tidak pernah diterbitkan ulang.
func (l *SequenceLedger) Create(ctx context.Context, in CreateSuratInput) (*model.SuratKeluarModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tahun := in.TanggalSurat.Year()
	var created *model.SuratKeluarModel

	err := l.Repo.InYearTx(ctx, tahun, func(tx SuratRepository) error {
		dup, err := tx.ActiveNomorSuratExists(ctx, in.NomorSurat, nil)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateNomorSurat
		}

		max, err := tx.MaxNomorUrut(ctx, tahun)
		if err != nil {
			return err
		}

		m := &model.SuratKeluarModel{
			NomorUrut:     max + 1,
			NomorSurat:    strings.TrimSpace(in.NomorSurat),
			TanggalSurat:  in.TanggalSurat,
			TanggalKirim:  in.TanggalKirim,
			Perihal:       in.Perihal,
			Tujuan:        in.Tujuan,
			Keterangan:    in.Keterangan,
			SignDirectory: in.SignDirectory,
			UserID:        in.UserID,
		}
		if err := tx.Insert(ctx, m); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Logs.Record(ctx, constants.ActionCreate, constants.EntitySuratKeluar, created.ID.String(), in.UserID, map[string]interface{}{
		"nomorSurat": created.NomorSurat,
		"nomorUrut":  created.NomorUrut,
		"tujuan":     created.Tujuan,
		"perihal":    created.Perihal,
	})
	return created, nil
}

// ======================
// UPDATE
// ======================

type UpdateSuratInput struct {
	NomorSurat    *string
	TanggalSurat  *time.Time
	TanggalKirim  *time.Time
	Perihal       *string
	Tujuan        *string
	Keterangan    *string
	SignDirectory *string
}

// Update mengubah field-level saja. Pindah tahun lewat tanggal_surat TIDAK
// memicu penomoran ulang; nomor urut lama ikut terbawa.
func (l *SequenceLedger) Update(ctx context.Context, id uuid.UUID, in UpdateSuratInput) (*model.SuratKeluarModel, error) {
	existing, err := l.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted() {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if in.NomorSurat != nil {
		nomor := strings.TrimSpace(*in.NomorSurat)
		if nomor == "" {
			return nil, fmt.Errorf("%w: nomor surat wajib diisi", ErrValidation)
		}
		if nomor != existing.NomorSurat {
			dup, err := l.Repo.ActiveNomorSuratExists(ctx, nomor, &id)
			if err != nil {
				return nil, err
			}
			if dup {
				return nil, ErrDuplicateNomorSurat
			}
		}
		updates["nomor_surat"] = nomor
	}
	if in.TanggalSurat != nil {
		updates["tanggal_surat"] = *in.TanggalSurat
	}
	if in.TanggalKirim != nil {
		updates["tanggal_kirim"] = *in.TanggalKirim
	}
	if in.Perihal != nil {
		updates["perihal"] = *in.Perihal
	}
	if in.Tujuan != nil {
		updates["tujuan"] = *in.Tujuan
	}
	if in.Keterangan != nil {
		updates["keterangan"] = *in.Keterangan
	}
	if in.SignDirectory != nil {
		updates["sign_directory"] = *in.SignDirectory
	}

	if len(updates) == 0 {
		return existing, nil
	}
	if err := l.Repo.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}
	return l.Repo.FindByID(ctx, id)
}

// ======================
// DELETE
// ======================

// SoftDelete menyembunyikan baris dari register aktif. Idempoten: menghapus
// baris yang sudah terhapus dianggap sukses tanpa mengubah apa pun.
func (l *SequenceLedger) SoftDelete(ctx context.Context, id, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrActorRequired
	}

	existing, err := l.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsDeleted() {
		return nil
	}

	if err := l.Repo.MarkDeleted(ctx, id, time.Now(), actorID); err != nil {
		return err
	}

	l.Logs.Record(ctx, constants.ActionDelete, constants.EntitySuratKeluar, existing.ID.String(), actorID, map[string]interface{}{
		"hardDelete": false,
		"nomorSurat": existing.NomorSurat,
		"tujuan":     existing.Tujuan,
		"perihal":    existing.Perihal,
	})
	return nil
}

// HardDelete menghapus fisik dan merapatkan kembali nomor urut tahun itu.
// Hapus + geser berjalan dalam satu transaksi: tidak boleh ada keadaan
// teramati di mana baris sudah hilang tapi nomor belum digeser.
func (l *SequenceLedger) HardDelete(ctx context.Context, id, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrActorRequired
	}

	existing, err := l.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tahun := existing.Tahun()

	err = l.Repo.InYearTx(ctx, tahun, func(tx SuratRepository) error {
		// baca ulang di dalam lock; baris bisa saja sudah dihapus penulis lain
		current, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Remove(ctx, id); err != nil {
			return err
		}
		return tx.ShiftNomorUrut(ctx, current.Tahun(), current.NomorUrut)
	})
	if err != nil {
		return err
	}

	l.Logs.Record(ctx, constants.ActionDelete, constants.EntitySuratKeluar, existing.ID.String(), actorID, map[string]interface{}{
		"hardDelete": true,
		"nomorSurat": existing.NomorSurat,
		"tujuan":     existing.Tujuan,
		"perihal":    existing.Perihal,
	})
	return nil
}

// ======================
// QUERY
// ======================

func (l *SequenceLedger) Get(ctx context.Context, id uuid.UUID) (*model.SuratKeluarModel, error) {
	m, err := l.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsDeleted() {
		return nil, ErrNotFound
	}
	return m, nil
}

func (l *SequenceLedger) List(ctx context.Context, f ListFilter) ([]model.SuratKeluarModel, int64, error) {
	return l.Repo.ListActive(ctx, f)
}
