package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket      string
	key         string
	contentType string
	body        string
	err         error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	f.contentType = aws.ToString(params.ContentType)
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(body)
	return &s3.PutObjectOutput{}, nil
}

func writeReport(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestUpload(t *testing.T) {
	client := &fakeS3{}
	repo := NewS3RepositoryWithClient(client, "xm-reports", "/desconexion/2025/")
	local := writeReport(t, "Desconexion_mes_agen.json", `[]`)

	uri, err := repo.Upload(context.Background(), local, "Desconexion_mes_agen.json")

	require.NoError(t, err)
	assert.Equal(t, "s3://xm-reports/desconexion/2025/Desconexion_mes_agen.json", uri)
	assert.Equal(t, "xm-reports", client.bucket)
	assert.Equal(t, "desconexion/2025/Desconexion_mes_agen.json", client.key)
	assert.Equal(t, "application/json", client.contentType)
	assert.Equal(t, "[]", client.body)
}

func TestUpload_NoPrefix(t *testing.T) {
	client := &fakeS3{}
	repo := NewS3RepositoryWithClient(client, "bucket", "")
	local := writeReport(t, "report.bin", "x")

	uri, err := repo.Upload(context.Background(), local, "report.bin")

	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/report.bin", uri)
	assert.Equal(t, "application/octet-stream", client.contentType)
}

func TestUpload_Errors(t *testing.T) {
	repo := NewS3RepositoryWithClient(&fakeS3{}, "bucket", "")
	_, err := repo.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), "missing.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)

	denied := errors.New("access denied")
	repo = NewS3RepositoryWithClient(&fakeS3{err: denied}, "bucket", "")
	_, err = repo.Upload(context.Background(), writeReport(t, "r.csv", "a"), "r.csv")
	assert.ErrorIs(t, err, denied)
}
