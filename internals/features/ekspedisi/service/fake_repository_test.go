package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ekspedisi_backend/internals/features/ekspedisi/model"
	"ekspedisi_backend/internals/features/ekspedisi/service"
)

var errShiftInjected = errors.New("shift gagal (injeksi test)")

// fakeSuratRepo meniru kontrak datastore di memori: transaksi = snapshot +
// restore saat error, unique nomor_surat aktif ditegakkan saat Insert.
type fakeSuratRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*model.SuratKeluarModel
	failShift bool
}

func newFakeSuratRepo() *fakeSuratRepo {
	return &fakeSuratRepo{rows: map[uuid.UUID]*model.SuratKeluarModel{}}
}

func (f *fakeSuratRepo) snapshot() map[uuid.UUID]*model.SuratKeluarModel {
	cp := make(map[uuid.UUID]*model.SuratKeluarModel, len(f.rows))
	for id, m := range f.rows {
		c := *m
		cp[id] = &c
	}
	return cp
}

func (f *fakeSuratRepo) InYearTx(ctx context.Context, tahun int, fn func(tx service.SuratRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	before := f.snapshot()
	if err := fn(f); err != nil {
		f.rows = before
		return err
	}
	return nil
}

func (f *fakeSuratRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SuratKeluarModel, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (f *fakeSuratRepo) ActiveNomorSuratExists(ctx context.Context, nomorSurat string, excludeID *uuid.UUID) (bool, error) {
	for id, m := range f.rows {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if m.DeletedAt == nil && m.NomorSurat == nomorSurat {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSuratRepo) MaxNomorUrut(ctx context.Context, tahun int) (int, error) {
	max := 0
	for _, m := range f.rows {
		if m.Tahun() == tahun && m.NomorUrut > max {
			max = m.NomorUrut
		}
	}
	return max, nil
}

func (f *fakeSuratRepo) Insert(ctx context.Context, m *model.SuratKeluarModel) error {
	if dup, _ := f.ActiveNomorSuratExists(ctx, m.NomorSurat, nil); dup {
		return service.ErrDuplicateNomorSurat
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	c := *m
	f.rows[m.ID] = &c
	return nil
}

func (f *fakeSuratRepo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	m, ok := f.rows[id]
	if !ok {
		return service.ErrNotFound
	}
	for col, v := range updates {
		switch col {
		case "nomor_surat":
			m.NomorSurat = v.(string)
		case "tanggal_surat":
			m.TanggalSurat = v.(time.Time)
		case "tanggal_kirim":
			m.TanggalKirim = v.(time.Time)
		case "perihal":
			m.Perihal = v.(string)
		case "tujuan":
			m.Tujuan = v.(string)
		case "keterangan":
			s := v.(string)
			m.Keterangan = &s
		case "sign_directory":
			s := v.(string)
			m.SignDirectory = &s
		}
	}
	m.UpdatedAt = time.Now()
	return nil
}

func (f *fakeSuratRepo) MarkDeleted(ctx context.Context, id uuid.UUID, at time.Time, by uuid.UUID) error {
	m, ok := f.rows[id]
	if !ok {
		return service.ErrNotFound
	}
	if m.DeletedAt != nil {
		return nil
	}
	m.DeletedAt = &at
	m.DeletedBy = &by
	return nil
}

func (f *fakeSuratRepo) Remove(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeSuratRepo) ShiftNomorUrut(ctx context.Context, tahun, after int) error {
	if f.failShift {
		return errShiftInjected
	}
	for _, m := range f.rows {
		if m.Tahun() == tahun && m.NomorUrut > after {
			m.NomorUrut--
		}
	}
	return nil
}

func (f *fakeSuratRepo) ListActive(ctx context.Context, fl service.ListFilter) ([]model.SuratKeluarModel, int64, error) {
	var out []model.SuratKeluarModel
	for _, m := range f.rows {
		if m.DeletedAt != nil {
			continue
		}
		if fl.Tahun != nil && m.Tahun() != *fl.Tahun {
			continue
		}
		if fl.Query != "" {
			q := strings.ToLower(fl.Query)
			ket := ""
			if m.Keterangan != nil {
				ket = *m.Keterangan
			}
			blob := strings.ToLower(m.NomorSurat + " " + m.Perihal + " " + m.Tujuan + " " + ket)
			if !strings.Contains(blob, q) {
				continue
			}
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if fl.Sort == "tanggal" && !out[i].TanggalSurat.Equal(out[j].TanggalSurat) {
			return out[i].TanggalSurat.Before(out[j].TanggalSurat)
		}
		return out[i].NomorUrut < out[j].NomorUrut
	})
	total := int64(len(out))
	if fl.Limit > 0 {
		start := fl.Offset
		if start > len(out) {
			start = len(out)
		}
		end := start + fl.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

// capturedLog merekam pemanggilan Record untuk verifikasi pairing audit.
type capturedLog struct {
	Action   string
	Entity   string
	EntityID string
	ActorID  uuid.UUID
	Metadata map[string]interface{}
}

type captureLogger struct {
	mu      sync.Mutex
	entries []capturedLog
}

func (l *captureLogger) Record(ctx context.Context, action, entityType, entityID string, actorID uuid.UUID, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, capturedLog{
		Action:   action,
		Entity:   entityType,
		EntityID: entityID,
		ActorID:  actorID,
		Metadata: metadata,
	})
}
