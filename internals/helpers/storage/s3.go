package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"ekspedisi_backend/internals/configs"
)

// S3BlobService mengunggah objek ke bucket S3 lewat Uploader manager.
type S3BlobService struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3BlobServiceFromEnv membangun client dari ENV. Mengembalikan nil jika
// S3_BUCKET tidak diset sehingga caller bisa langsung pakai fallback lokal.
func NewS3BlobServiceFromEnv() *S3BlobService {
	bucket := configs.GetEnv("S3_BUCKET")
	if bucket == "" {
		return nil
	}
	region := configs.GetEnv("S3_REGION", "ap-southeast-1")

	// LoadDefaultConfig memakai "Default Credential Provider Chain"
	// (ENV di lokal, IAM Role di produksi)
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		log.Printf("⚠️ Gagal load AWS config, upload akan pakai fallback lokal: %v", err)
		return nil
	}

	baseURL := configs.GetEnv("S3_PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	log.Println("✅ S3 client siap. Bucket:", bucket)
	return &S3BlobService{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *S3BlobService) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	uploader := manager.NewUploader(s.client)

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("gagal upload ke S3: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *S3BlobService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("gagal hapus objek S3 %s: %w", key, err)
	}
	return nil
}
