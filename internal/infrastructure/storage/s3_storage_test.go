package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

type fakeS3 struct {
	put      *s3.PutObjectInput
	body     []byte
	putErr   error
	expires  time.Duration
	signedOn string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	f.expires = o.Expires
	f.signedOn = aws.ToString(in.Key)
	return &v4.PresignedHTTPRequest{URL: "https://bucket.local/" + aws.ToString(in.Key) + "?sig=1"}, nil
}

func TestS3Storage_Put(t *testing.T) {
	fake := &fakeS3{}
	s := newS3Storage(fake, fake, "archivos", WithPresignExpiration(time.Hour))

	url, err := s.Put(context.Background(), "companies/c1/reports/r.xlsx", "application/octet-stream", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.local/companies/c1/reports/r.xlsx?sig=1", url)
	assert.Equal(t, "archivos", aws.ToString(fake.put.Bucket))
	assert.Equal(t, []byte("data"), fake.body)
	assert.Equal(t, int64(4), aws.ToInt64(fake.put.ContentLength))
	assert.Equal(t, time.Hour, fake.expires)
	assert.Equal(t, "companies/c1/reports/r.xlsx", fake.signedOn)
}

func TestS3Storage_Put_ErrorAlSubir(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("boom")}
	s := newS3Storage(fake, fake, "archivos")

	_, err := s.Put(context.Background(), "k", "text/plain", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, fake.signedOn)
}

func TestS3Storage_Put_ClaveVacia(t *testing.T) {
	fake := &fakeS3{}
	s := newS3Storage(fake, fake, "archivos")

	_, err := s.Put(context.Background(), "", "text/plain", nil)
	assert.Error(t, err)
	assert.Nil(t, fake.put)
}

func TestNewS3Storage_SinBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.StorageConfig{})
	assert.Error(t, err)
}

func TestNewS3Storage_ExpiracionPorDefecto(t *testing.T) {
	s, err := NewS3Storage(context.Background(), config.StorageConfig{
		Bucket:       "archivos",
		Endpoint:     "localhost:9000",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultPresignExpiration, s.presignExpiration)
}
