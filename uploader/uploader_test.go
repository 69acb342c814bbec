package uploader_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"shopkeeper/docstore"
	"shopkeeper/uploader"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal PNG header, enough for content sniffing.
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// jpgBytes is a minimal JPEG header.
var jpgBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}

type fakeStorage struct {
	mu    sync.Mutex
	calls []string
	delay map[string]time.Duration
	fail  map[string]bool
}

func (f *fakeStorage) UploadFile(ctx context.Context, fileID string, fileName string, data []byte) (*docstore.FileInfo, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fileName)
	delay := f.delay[fileName]
	fail := f.fail[fileName]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		return nil, fmt.Errorf("storage rejected %s", fileName)
	}
	return &docstore.FileInfo{ID: fileID, Name: fileName, SizeBytes: int64(len(data))}, nil
}

func (f *fakeStorage) PreviewURL(fileID string) string {
	return "https://backend.example.com/preview/" + fileID
}

func newUploader(conn *fakeStorage) *uploader.Uploader {
	log := zerolog.Nop()
	return uploader.New(conn, &log)
}

func TestUploadOrder(t *testing.T) {
	conn := &fakeStorage{delay: map[string]time.Duration{
		// First file finishes last; result order must still follow input.
		"a.png": 80 * time.Millisecond,
		"b.png": 10 * time.Millisecond,
	}}
	u := newUploader(conn)

	results, err := u.Upload(context.Background(), []uploader.File{
		{Name: "a.png", Data: pngBytes},
		{Name: "b.png", Data: jpgBytes},
		{Name: "c.png", Data: pngBytes},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a.png", results[0].Name)
	assert.Equal(t, "b.png", results[1].Name)
	assert.Equal(t, "c.png", results[2].Name)
	for _, r := range results {
		assert.False(t, r.ID.IsNil())
		assert.Contains(t, r.PreviewURL, r.ID.String())
	}
}

func TestUploadAllOrNothing(t *testing.T) {
	conn := &fakeStorage{fail: map[string]bool{"b.png": true}}
	u := newUploader(conn)

	results, err := u.Upload(context.Background(), []uploader.File{
		{Name: "a.png", Data: pngBytes},
		{Name: "b.png", Data: pngBytes},
	})
	require.Error(t, err)
	// One failure voids the whole batch; no partial list escapes.
	assert.Nil(t, results)
}

func TestUploadRejectsNonImage(t *testing.T) {
	conn := &fakeStorage{}
	u := newUploader(conn)

	t.Run("unknown_type", func(t *testing.T) {
		_, err := u.Upload(context.Background(), []uploader.File{
			{Name: "blob.bin", Data: []byte{0x00, 0x01, 0x02, 0x03}},
		})
		require.Error(t, err)
	})
	t.Run("known_but_not_image", func(t *testing.T) {
		// %PDF magic sniffs as a document, not an image.
		_, err := u.Upload(context.Background(), []uploader.File{
			{Name: "doc.pdf", Data: []byte("%PDF-1.4\n%")},
		})
		require.Error(t, err)
	})

	// Validation happens before any byte leaves the process.
	assert.Empty(t, conn.calls)
}

func TestUploadValidatesWholeBatchFirst(t *testing.T) {
	conn := &fakeStorage{}
	u := newUploader(conn)

	// The good file sits before the bad one, and still nothing uploads.
	_, err := u.Upload(context.Background(), []uploader.File{
		{Name: "a.png", Data: pngBytes},
		{Name: "blob.bin", Data: []byte{0x00, 0x01, 0x02, 0x03}},
	})
	require.Error(t, err)
	assert.Empty(t, conn.calls)
}

func TestUploadSizeCap(t *testing.T) {
	conn := &fakeStorage{}
	u := newUploader(conn)
	u.MaxFileSizeBytes = 16

	_, err := u.Upload(context.Background(), []uploader.File{
		{Name: "big.png", Data: append(pngBytes, make([]byte, 32)...)},
	})
	require.Error(t, err)
	assert.Empty(t, conn.calls)
}

func TestProgress(t *testing.T) {
	conn := &fakeStorage{}
	u := newUploader(conn)

	batch := u.NewBatch()
	_, err := batch.Do(context.Background(), []uploader.File{
		{Name: "a.png", Data: pngBytes},
		{Name: "b.png", Data: jpgBytes},
	})
	require.NoError(t, err)

	states := batch.Progress()
	assert.Equal(t, uploader.StateDone, states["a.png"])
	assert.Equal(t, uploader.StateDone, states["b.png"])
}

func TestProgressFailed(t *testing.T) {
	conn := &fakeStorage{fail: map[string]bool{"a.png": true}}
	u := newUploader(conn)

	batch := u.NewBatch()
	_, err := batch.Do(context.Background(), []uploader.File{
		{Name: "a.png", Data: pngBytes},
	})
	require.Error(t, err)
	assert.Equal(t, uploader.StateFailed, batch.Progress()["a.png"])
}

func TestConcurrentBatchesKeepSeparateProgress(t *testing.T) {
	conn := &fakeStorage{delay: map[string]time.Duration{
		"a.png": 40 * time.Millisecond,
		"b.png": 40 * time.Millisecond,
	}}
	u := newUploader(conn)

	batchA := u.NewBatch()
	batchB := u.NewBatch()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := batchA.Do(context.Background(), []uploader.File{{Name: "a.png", Data: pngBytes}})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := batchB.Do(context.Background(), []uploader.File{{Name: "b.png", Data: jpgBytes}})
		assert.NoError(t, err)
	}()
	wg.Wait()

	// Each batch tracks only its own files.
	assert.Equal(t, map[string]uploader.State{"a.png": uploader.StateDone}, batchA.Progress())
	assert.Equal(t, map[string]uploader.State{"b.png": uploader.StateDone}, batchB.Progress())
}
