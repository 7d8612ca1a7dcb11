package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"regexp"
	"strings"
	"time"
)

// BlobService adalah kontrak minimal yang dibutuhkan controller: taruh bytes,
// dapat URL publik.
type BlobService interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (publicURL string, err error)
}

// SignatureStore menyimpan scan tanda terima surat. Urutannya: coba storage
// utama (S3); kalau gagal atau tidak dikonfigurasi, jatuh ke disk lokal.
// Gagal upload tidak boleh menggagalkan pembuatan record surat — keputusan
// itu ada di caller, store ini hanya mengembalikan error terakhir.
type SignatureStore struct {
	Primary  BlobService // boleh nil (S3 tidak dikonfigurasi)
	Fallback BlobService
}

func NewSignatureStoreFromEnv() *SignatureStore {
	var primary BlobService
	if s3 := NewS3BlobServiceFromEnv(); s3 != nil {
		primary = s3
	}
	return &SignatureStore{
		Primary:  primary,
		Fallback: NewLocalBlobService(),
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9.]+`)

// SafeObjectKey membentuk key unik: timestamp + nama file yang disanitasi.
func SafeObjectKey(filename string) string {
	safe := unsafeChars.ReplaceAllString(strings.ToLower(filename), "_")
	return fmt.Sprintf("signatures/%d-%s", time.Now().UnixMilli(), safe)
}

// UploadSignature membuka file multipart dan mengunggahnya.
func (s *SignatureStore) UploadSignature(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer file.Close()

	key := SafeObjectKey(fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	if s.Primary != nil {
		url, err := s.Primary.Upload(ctx, key, contentType, file)
		if err == nil {
			return url, nil
		}
		log.Printf("⚠️ Upload ke storage utama gagal, coba fallback lokal: %v", err)
		// file sudah terbaca sebagian; rewind dulu sebelum fallback
		if _, serr := file.Seek(0, io.SeekStart); serr != nil {
			f2, oerr := fh.Open()
			if oerr != nil {
				return "", fmt.Errorf("gagal membuka ulang file: %w", oerr)
			}
			defer f2.Close()
			return s.Fallback.Upload(ctx, key, contentType, f2)
		}
	}

	return s.Fallback.Upload(ctx, key, contentType, file)
}
