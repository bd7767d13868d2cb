// Package storage implementa repository.FileStorage sobre un bucket S3-compatible
// (AWS S3, MinIO, RustFS...).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

var _ repository.FileStorage = (*S3Storage)(nil)

const defaultPresignExpiration = 15 * time.Minute

// objectPutter subconjunto del cliente S3 que se usa; permite sustituirlo en tests.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Storage sube archivos y devuelve una URL firmada de lectura.
type S3Storage struct {
	client            objectPutter
	presigner         objectPresigner
	bucket            string
	presignExpiration time.Duration
	log               *logger.Logger
}

// Option opción funcional de S3Storage.
type Option func(*S3Storage)

// WithLogger fija el logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *S3Storage) { s.log = log }
}

// WithPresignExpiration fija la validez de las URLs firmadas.
func WithPresignExpiration(d time.Duration) Option {
	return func(s *S3Storage) {
		if d > 0 {
			s.presignExpiration = d
		}
	}
}

// NewS3Storage construye el cliente a partir de la configuración.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig, opts ...Option) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: cargar configuración aws: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	opts = append([]Option{WithPresignExpiration(cfg.PresignExpiration)}, opts...)
	return newS3Storage(client, s3.NewPresignClient(client), cfg.Bucket, opts...), nil
}

func newS3Storage(client objectPutter, presigner objectPresigner, bucket string, opts ...Option) *S3Storage {
	s := &S3Storage{
		client:            client,
		presigner:         presigner,
		bucket:            bucket,
		presignExpiration: defaultPresignExpiration,
		log:               logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put sube body bajo key y devuelve una URL GET firmada.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if key == "" {
		return "", errors.New("storage: clave requerida")
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		s.log.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("subir objeto")
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		return "", fmt.Errorf("storage: firmar %s: %w", key, err)
	}
	s.log.Info().Str("key", key).Int("bytes", len(body)).Msg("objeto archivado")
	return req.URL, nil
}
