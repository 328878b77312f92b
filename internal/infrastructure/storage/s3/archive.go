// Package s3 archiva la salida cruda de cada generación en un bucket compatible con S3 (MinIO, AWS).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/definition-generator/internal/domain/repository"
	"github.com/jhoicas/definition-generator/pkg/config"
)

// Asegura que Archive implementa repository.ArchiveStore.
var _ repository.ArchiveStore = (*Archive)(nil)

// client operaciones de MinIO que usa el archivo; permite sustituirlo en tests.
type client interface {
	Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket, region string) error
}

// Archive implementación de repository.ArchiveStore sobre minio-go.
type Archive struct {
	client client
	bucket string
	prefix string
}

// New conecta con el endpoint y crea el bucket si no existe.
func New(ctx context.Context, cfg config.S3Config) (*Archive, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("s3: S3_ENDPOINT vacío")
	}
	mc, err := newMinioClient(cfg)
	if err != nil {
		return nil, err
	}
	a, err := NewWithClient(cfg.Bucket, cfg.Prefix, mc)
	if err != nil {
		return nil, err
	}
	if err := a.ensureBucket(ctx, strings.TrimSpace(cfg.Region)); err != nil {
		return nil, err
	}
	return a, nil
}

// NewWithClient construye el archivo sobre un cliente ya creado.
func NewWithClient(bucket, prefix string, c client) (*Archive, error) {
	if c == nil {
		return nil, fmt.Errorf("s3: cliente obligatorio")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("s3: bucket obligatorio")
	}
	return &Archive{client: c, bucket: strings.TrimSpace(bucket), prefix: cleanPrefix(prefix)}, nil
}

// Put guarda content bajo prefix/key y devuelve la clave completa.
func (a *Archive) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	normalized, err := a.normalizeKey(key)
	if err != nil {
		return "", err
	}
	if err := a.client.Put(ctx, a.bucket, normalized, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		return "", fmt.Errorf("s3: put %q: %w", normalized, err)
	}
	return normalized, nil
}

func (a *Archive) ensureBucket(ctx context.Context, region string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("s3: comprobar bucket %q: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.CreateBucket(ctx, a.bucket, region); err != nil {
		return fmt.Errorf("s3: crear bucket %q: %w", a.bucket, err)
	}
	return nil
}

func (a *Archive) normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(strings.TrimPrefix(key, "/"))
	if key == "" {
		return "", fmt.Errorf("s3: clave vacía")
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("s3: clave inválida %q", key)
	}
	if a.prefix == "" {
		return cleaned, nil
	}
	return path.Join(a.prefix, cleaned), nil
}

func cleanPrefix(prefix string) string {
	prefix = strings.TrimSpace(strings.Trim(prefix, "/"))
	if prefix == "" {
		return ""
	}
	if prefix = path.Clean(prefix); prefix == "." {
		return ""
	}
	return prefix
}

// ── Cliente MinIO ────────────────────────────────────────────────────────────

type minioClient struct {
	mc *minio.Client
}

func newMinioClient(cfg config.S3Config) (*minioClient, error) {
	endpoint, secure, err := parseEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: secure,
		Region: strings.TrimSpace(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: crear cliente: %w", err)
	}
	return &minioClient{mc: mc}, nil
}

// parseEndpoint acepta "host:puerto" o una URL; el esquema https fuerza TLS.
func parseEndpoint(raw string, useSSL bool) (string, bool, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw, useSSL, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("s3: endpoint inválido: %w", err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("s3: endpoint sin host")
	}
	return u.Host, u.Scheme == "https", nil
}

func (m *minioClient) Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.mc.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m *minioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return m.mc.BucketExists(ctx, bucket)
}

func (m *minioClient) CreateBucket(ctx context.Context, bucket, region string) error {
	return m.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
}
