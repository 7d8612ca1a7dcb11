package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekspedisi_backend/internals/constants"
	"ekspedisi_backend/internals/features/ekspedisi/service"
)

var actor = uuid.New()

func newLedger() (*service.SequenceLedger, *fakeSuratRepo, *captureLogger) {
	repo := newFakeSuratRepo()
	logs := &captureLogger{}
	return service.NewSequenceLedger(repo, logs), repo, logs
}

func createInput(nomor, tglSurat string) service.CreateSuratInput {
	tgl, _ := time.Parse("2006-01-02", tglSurat)
	return service.CreateSuratInput{
		NomorSurat:   nomor,
		TanggalSurat: tgl,
		TanggalKirim: tgl,
		Perihal:      "Perihal " + nomor,
		Tujuan:       "Tujuan " + nomor,
		UserID:       actor,
	}
}

func TestCreateAssignsSequencePerYear(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	// 3 surat 2024, 2 surat 2025: urutan per tahun mulai dari 1
	for i, tgl := range []string{"2024-01-10", "2024-02-01", "2024-03-05"} {
		m, err := ledger.Create(ctx, createInput("A/"+tgl, tgl))
		require.NoError(t, err)
		assert.Equal(t, i+1, m.NomorUrut)
	}
	for i, tgl := range []string{"2025-01-10", "2025-02-01"} {
		m, err := ledger.Create(ctx, createInput("B/"+tgl, tgl))
		require.NoError(t, err)
		assert.Equal(t, i+1, m.NomorUrut)
	}

	tahun := 2024
	rows, total, err := ledger.List(ctx, service.ListFilter{Tahun: &tahun})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	urut := []int{}
	for _, r := range rows {
		urut = append(urut, r.NomorUrut)
	}
	assert.Equal(t, []int{1, 2, 3}, urut)
}

func TestCreateRejectsDuplicateNomorSurat(t *testing.T) {
	ledger, repo, logs := newLedger()
	ctx := context.Background()

	_, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)

	_, err = ledger.Create(ctx, createInput("A/1/2025", "2025-03-01"))
	assert.ErrorIs(t, err, service.ErrDuplicateNomorSurat)

	// tepat satu baris tersisa, dan hanya satu audit CREATE
	assert.Len(t, repo.rows, 1)
	assert.Len(t, logs.entries, 1)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	ledger, repo, _ := newLedger()
	ctx := context.Background()

	in := createInput("A/1/2025", "2025-01-10")
	in.Perihal = "  "
	_, err := ledger.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrValidation)

	in = createInput("A/2/2025", "2025-01-10")
	in.UserID = uuid.Nil
	_, err = ledger.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Empty(t, repo.rows)
}

func TestHardDeleteRenumbersYearPartition(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	first, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)
	second, err := ledger.Create(ctx, createInput("A/2/2025", "2025-02-01"))
	require.NoError(t, err)
	require.Equal(t, 2, second.NomorUrut)

	// surat tahun lain tidak boleh ikut tergeser
	other, err := ledger.Create(ctx, createInput("A/1/2024", "2024-06-01"))
	require.NoError(t, err)

	require.NoError(t, ledger.HardDelete(ctx, first.ID, actor))

	refreshed, err := ledger.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.NomorUrut)

	untouched, err := ledger.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, untouched.NomorUrut)

	_, err = ledger.Get(ctx, first.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestHardDeleteIsAtomicWithRenumbering(t *testing.T) {
	ledger, repo, logs := newLedger()
	ctx := context.Background()

	first, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)
	second, err := ledger.Create(ctx, createInput("A/2/2025", "2025-02-01"))
	require.NoError(t, err)

	repo.failShift = true
	err = ledger.HardDelete(ctx, first.ID, actor)
	require.Error(t, err)

	// tidak boleh ada keadaan separuh: baris masih ada, nomor tidak berubah
	still, err := ledger.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, still.NomorUrut)
	stillSecond, err := ledger.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stillSecond.NomorUrut)

	// hard delete yang gagal tidak menulis audit DELETE
	for _, e := range logs.entries {
		assert.NotEqual(t, constants.ActionDelete, e.Action)
	}
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	ledger, repo, logs := newLedger()
	ctx := context.Background()

	m, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)

	require.NoError(t, ledger.SoftDelete(ctx, m.ID, actor))
	firstStamp := *repo.rows[m.ID].DeletedAt

	// panggilan kedua sukses tanpa mengubah apa pun
	require.NoError(t, ledger.SoftDelete(ctx, m.ID, actor))
	assert.Equal(t, firstStamp, *repo.rows[m.ID].DeletedAt)
	assert.Equal(t, actor, *repo.rows[m.ID].DeletedBy)

	// audit DELETE hanya satu (dari penghapusan pertama)
	deletes := 0
	for _, e := range logs.entries {
		if e.Action == constants.ActionDelete {
			deletes++
		}
	}
	assert.Equal(t, 1, deletes)
}

func TestSoftDeleteKeepsNumberClaimed(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	for _, tgl := range []string{"2025-01-10", "2025-02-01", "2025-03-01"} {
		_, err := ledger.Create(ctx, createInput("A/"+tgl, tgl))
		require.NoError(t, err)
	}
	rows, _, err := ledger.List(ctx, service.ListFilter{})
	require.NoError(t, err)
	require.NoError(t, ledger.SoftDelete(ctx, rows[1].ID, actor))

	// nomor 2 hilang dari register aktif tapi tetap terpakai:
	// surat baru harus dapat 4, bukan 3 (MAX+1, bukan COUNT+1)
	m, err := ledger.Create(ctx, createInput("A/4/2025", "2025-04-01"))
	require.NoError(t, err)
	assert.Equal(t, 4, m.NomorUrut)

	// dan nomor surat milik baris soft-deleted boleh dipakai ulang
	reuse := createInput(rows[1].NomorSurat, "2025-05-01")
	_, err = ledger.Create(ctx, reuse)
	assert.NoError(t, err)
}

func TestDeleteRequiresActor(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	m, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)

	assert.ErrorIs(t, ledger.SoftDelete(ctx, m.ID, uuid.Nil), service.ErrActorRequired)
	assert.ErrorIs(t, ledger.HardDelete(ctx, m.ID, uuid.Nil), service.ErrActorRequired)
}

func TestDeleteNotFound(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	assert.ErrorIs(t, ledger.SoftDelete(ctx, uuid.New(), actor), service.ErrNotFound)
	assert.ErrorIs(t, ledger.HardDelete(ctx, uuid.New(), actor), service.ErrNotFound)
}

func TestUpdateRechecksUniqueness(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	a, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)
	_, err = ledger.Create(ctx, createInput("A/2/2025", "2025-02-01"))
	require.NoError(t, err)

	// ganti ke nomor milik surat lain → konflik
	taken := "A/2/2025"
	_, err = ledger.Update(ctx, a.ID, service.UpdateSuratInput{NomorSurat: &taken})
	assert.ErrorIs(t, err, service.ErrDuplicateNomorSurat)

	// "ganti" ke nomornya sendiri → boleh
	own := "A/1/2025"
	updated, err := ledger.Update(ctx, a.ID, service.UpdateSuratInput{NomorSurat: &own})
	require.NoError(t, err)
	assert.Equal(t, "A/1/2025", updated.NomorSurat)
}

func TestUpdateAcrossYearKeepsNomorUrut(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	_, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)
	b, err := ledger.Create(ctx, createInput("A/2/2025", "2025-02-01"))
	require.NoError(t, err)

	// pindah tahun lewat tanggal surat tidak memicu penomoran ulang
	pindah, _ := time.Parse("2006-01-02", "2026-01-15")
	updated, err := ledger.Update(ctx, b.ID, service.UpdateSuratInput{TanggalSurat: &pindah})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.NomorUrut)
	assert.Equal(t, 2026, updated.Tahun())
}

func TestUpdateSoftDeletedIsNotFound(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	m, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)
	require.NoError(t, ledger.SoftDelete(ctx, m.ID, actor))

	perihal := "Perubahan"
	_, err = ledger.Update(ctx, m.ID, service.UpdateSuratInput{Perihal: &perihal})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAuditPairing(t *testing.T) {
	ledger, _, logs := newLedger()
	ctx := context.Background()

	a, err := ledger.Create(ctx, createInput("A/1/2025", "2025-01-10"))
	require.NoError(t, err)
	b, err := ledger.Create(ctx, createInput("A/2/2025", "2025-02-01"))
	require.NoError(t, err)

	require.NoError(t, ledger.SoftDelete(ctx, a.ID, actor))
	require.NoError(t, ledger.HardDelete(ctx, b.ID, actor))

	require.Len(t, logs.entries, 4)

	assert.Equal(t, constants.ActionCreate, logs.entries[0].Action)
	assert.Equal(t, a.ID.String(), logs.entries[0].EntityID)
	assert.Equal(t, constants.ActionCreate, logs.entries[1].Action)
	assert.Equal(t, b.ID.String(), logs.entries[1].EntityID)

	assert.Equal(t, constants.ActionDelete, logs.entries[2].Action)
	assert.Equal(t, a.ID.String(), logs.entries[2].EntityID)
	assert.Equal(t, false, logs.entries[2].Metadata["hardDelete"])

	assert.Equal(t, constants.ActionDelete, logs.entries[3].Action)
	assert.Equal(t, b.ID.String(), logs.entries[3].EntityID)
	assert.Equal(t, true, logs.entries[3].Metadata["hardDelete"])

	for _, e := range logs.entries {
		assert.Equal(t, constants.EntitySuratKeluar, e.Entity)
		assert.Equal(t, actor, e.ActorID)
	}
}

func TestListFreeTextSearch(t *testing.T) {
	ledger, _, _ := newLedger()
	ctx := context.Background()

	in := createInput("005/DS/I/2025", "2025-01-10")
	in.Perihal = "Undangan Musyawarah Desa"
	in.Tujuan = "Camat"
	_, err := ledger.Create(ctx, in)
	require.NoError(t, err)

	in2 := createInput("006/DS/I/2025", "2025-01-12")
	in2.Perihal = "Laporan Bulanan"
	in2.Tujuan = "BPMD"
	_, err = ledger.Create(ctx, in2)
	require.NoError(t, err)

	rows, total, err := ledger.List(ctx, service.ListFilter{Query: "musyawarah"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "005/DS/I/2025", rows[0].NomorSurat)
}
