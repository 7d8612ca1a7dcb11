package service

import "errors"

// Error sentinel yang dipetakan controller ke status HTTP:
// ErrValidation/ErrUserNotFound → 400, ErrNotFound → 404,
// ErrDuplicateNomorSurat → 409, sisanya → 500.
var (
	ErrValidation          = errors.New("data tidak lengkap atau tidak valid")
	ErrDuplicateNomorSurat = errors.New("Nomor Surat tidak boleh sama dengan data yang sudah ada")
	ErrNotFound            = errors.New("surat tidak ditemukan")
	ErrUserNotFound        = errors.New("User ID tidak valid atau tidak ditemukan di database")
	ErrActorRequired       = errors.New("aksi ini membutuhkan user yang terautentikasi")
)
