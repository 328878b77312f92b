package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	bucket       string
	key          string
	contentType  string
	body         string
	exists       bool
	created      bool
	createRegion string
	putErr       error
}

func (f *fakeClient) Put(_ context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	f.bucket, f.key, f.contentType = bucket, key, contentType
	raw, _ := io.ReadAll(reader)
	f.body = string(raw)
	if int64(len(raw)) != size {
		return errors.New("tamaño incorrecto")
	}
	return f.putErr
}

func (f *fakeClient) BucketExists(_ context.Context, _ string) (bool, error) { return f.exists, nil }

func (f *fakeClient) CreateBucket(_ context.Context, _, region string) error {
	f.created = true
	f.createRegion = region
	return nil
}

func TestArchive_PutConPrefijo(t *testing.T) {
	fake := &fakeClient{}
	a, err := NewWithClient("definitions", "/generations/", fake)
	require.NoError(t, err)

	key, err := a.Put(context.Background(), "2025/06/01/abc.json", []byte(`{"ok":true}`), "application/json")
	require.NoError(t, err)

	assert.Equal(t, "generations/2025/06/01/abc.json", key)
	assert.Equal(t, "definitions", fake.bucket)
	assert.Equal(t, key, fake.key)
	assert.Equal(t, "application/json", fake.contentType)
	assert.Equal(t, `{"ok":true}`, fake.body)
}

func TestArchive_RechazaClavesInvalidas(t *testing.T) {
	a, err := NewWithClient("definitions", "", &fakeClient{})
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "../secreto.json", "a/../../b"} {
		_, err := a.Put(context.Background(), key, []byte("x"), "text/plain")
		assert.Error(t, err, "clave %q", key)
	}
}

func TestArchive_ErrorDelCliente(t *testing.T) {
	a, err := NewWithClient("definitions", "", &fakeClient{putErr: errors.New("AccessDenied")})
	require.NoError(t, err)

	_, err = a.Put(context.Background(), "x.json", []byte("x"), "application/json")
	assert.ErrorContains(t, err, "AccessDenied")
}

func TestArchive_EnsureBucket(t *testing.T) {
	fake := &fakeClient{exists: false}
	a, err := NewWithClient("definitions", "", fake)
	require.NoError(t, err)
	require.NoError(t, a.ensureBucket(context.Background(), "eu-west-1"))
	assert.True(t, fake.created)
	assert.Equal(t, "eu-west-1", fake.createRegion)

	fake = &fakeClient{exists: true}
	a, _ = NewWithClient("definitions", "", fake)
	require.NoError(t, a.ensureBucket(context.Background(), ""))
	assert.False(t, fake.created)
}

func TestNewWithClient_Validaciones(t *testing.T) {
	_, err := NewWithClient("definitions", "", nil)
	assert.Error(t, err)
	_, err = NewWithClient(" ", "", &fakeClient{})
	assert.Error(t, err)
}

func TestParseEndpoint(t *testing.T) {
	host, secure, err := parseEndpoint("https://minio.example.com", false)
	require.NoError(t, err)
	assert.Equal(t, "minio.example.com", host)
	assert.True(t, secure)

	host, secure, err = parseEndpoint("http://localhost:9000", true)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", host)
	assert.False(t, secure)

	host, secure, err = parseEndpoint("localhost:9000", true)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", host)
	assert.True(t, secure)
}
