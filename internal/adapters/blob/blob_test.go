package blob

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawly/internal/platform/apperror"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestLocalStore_SaveOverwritesAndOpens(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir() + "/uploads")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "rex.png", strings.NewReader("first")))
	require.NoError(t, s.Save(ctx, "rex.png", strings.NewReader("second")))

	rc, err := s.Open(ctx, "rex.png")
	require.NoError(t, err)
	assert.Equal(t, "second", readAll(t, rc))
}

func TestLocalStore_OpenMissing(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "nope.png")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLocalStore_RejectsPaths(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../x.png", "a/b.png", `a\b.png`, ".hidden"} {
		assert.ErrorIs(t, s.Save(context.Background(), name, strings.NewReader("x")), ErrInvalidName, name)
	}
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = b
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func TestS3Store_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	s := NewS3Store(api, "pets", "")

	require.NoError(t, s.Save(ctx, "Rex.JPG", strings.NewReader("jpeg-bytes")))

	assert.Contains(t, api.objects, "pets/uploads/Rex.JPG")
	assert.Equal(t, "image/jpeg", api.types["pets/uploads/Rex.JPG"])

	rc, err := s.Open(ctx, "Rex.JPG")
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", readAll(t, rc))
}

func TestS3Store_OpenMissing(t *testing.T) {
	s := NewS3Store(newFakeS3(), "pets", "photos")

	_, err := s.Open(context.Background(), "x.png")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
