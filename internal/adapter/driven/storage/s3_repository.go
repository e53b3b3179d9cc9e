package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/xm-reports-go/internal/domain/repository"
)

// S3API é o subconjunto do cliente S3 usado pelo repositório.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl publica os relatórios exportados em um bucket S3.
type S3RepositoryImpl struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Repository carrega a configuração AWS (perfil e região opcionais) e cria o repositório.
func NewS3Repository(ctx context.Context, bucket, prefix, profile, region string) (repository.StorageRepository, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	return NewS3RepositoryWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewS3RepositoryWithClient cria o repositório com um cliente já configurado.
func NewS3RepositoryWithClient(client S3API, bucket, prefix string) *S3RepositoryImpl {
	return &S3RepositoryImpl{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Upload envia o arquivo local para s3://bucket/prefix/key.
func (r *S3RepositoryImpl) Upload(ctx context.Context, localPath, key string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s for upload: %w", localPath, err)
	}
	defer file.Close()

	objectKey := key
	if r.prefix != "" {
		objectKey = path.Join(r.prefix, key)
	}

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", localPath, r.bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", r.bucket, objectKey), nil
}
