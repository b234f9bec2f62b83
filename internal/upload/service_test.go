package upload

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layers/service/internal/storage"
)

// unreachableStore fails every write without reading the stream, like a
// store whose bucket endpoint is down.
type unreachableStore struct{}

func (unreachableStore) Put(context.Context, string, io.Reader, int64, storage.PutOptions) error {
	return errors.New("bucket unreachable")
}

func TestStoreAvatarFailedWriteReleasesEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(t, 64, 64)))
	input := buf.Bytes()

	svc := NewService(unreachableStore{})
	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		_, err := svc.StoreAvatar(context.Background(), "u123", "image/png", bytes.NewReader(input))
		require.Error(t, err)
	}

	// The closed pipe fails the encoders' next write; give them a moment
	// to observe it and exit. A small tolerance absorbs unrelated runtime
	// goroutines coming and going.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && runtime.NumGoroutine() > before+2 {
		time.Sleep(10 * time.Millisecond)
	}

	assert.LessOrEqual(t, runtime.NumGoroutine(), before+2,
		"encoder goroutines must exit after failed store writes")
}

func TestStoreAvatarFailedWriteStillReturnsError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(t, 64, 64)))

	_, err := NewService(unreachableStore{}).StoreAvatar(context.Background(), "u123", "image/png", &buf)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidMimetype)
}
