package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalBlobService menyimpan file ke disk dan mengembalikan URL relatif yang
// dilayani lewat route statis /signatures.
type LocalBlobService struct {
	BaseDir   string // contoh: public/signatures
	PublicDir string // contoh: /signatures
}

func NewLocalBlobService() *LocalBlobService {
	return &LocalBlobService{
		BaseDir:   filepath.Join("public", "signatures"),
		PublicDir: "/signatures",
	}
}

func (l *LocalBlobService) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat direktori upload: %w", err)
	}

	name := filepath.Base(key) // key bisa mengandung prefix folder S3
	dst, err := os.Create(filepath.Join(l.BaseDir, name))
	if err != nil {
		return "", fmt.Errorf("gagal membuat file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", fmt.Errorf("gagal menulis file: %w", err)
	}

	return l.PublicDir + "/" + name, nil
}
