// Package uploader sequences multi-file uploads to the storage backend:
// files are dispatched concurrently, joined all-or-nothing, and the result
// list comes back in input order regardless of completion order.
package uploader

import (
	"context"
	"fmt"
	"sync"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/h2non/filetype"
	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownFileType = fmt.Errorf("file type is unknown")
	ErrInvalidFileType = fmt.Errorf("file type is invalid")
	ErrFileTooLarge    = fmt.Errorf("file is too large")
)

// DefaultMaxFileSizeBytes caps a single uploaded file at 10MB.
const DefaultMaxFileSizeBytes = 10 * 1024 * 1024

type State string

const (
	StatePending   State = "pending"
	StateUploading State = "uploading"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// File is one blob queued for upload.
type File struct {
	Name string
	Data []byte
}

// StorageConn is the slice of the backend client the uploader needs.
type StorageConn interface {
	UploadFile(ctx context.Context, fileID string, fileName string, data []byte) (*docstore.FileInfo, error)
	PreviewURL(fileID string) string
}

type Uploader struct {
	Conn             StorageConn
	MaxFileSizeBytes int64
	Log              *zerolog.Logger
}

func New(conn StorageConn, log *zerolog.Logger) *Uploader {
	return &Uploader{
		Conn:             conn,
		MaxFileSizeBytes: DefaultMaxFileSizeBytes,
		Log:              log,
	}
}

// Batch tracks per-file state for one submission. Each submission gets its
// own batch, so overlapping submissions never see each other's files.
type Batch struct {
	uploader *Uploader

	mu     sync.RWMutex
	states map[string]State
}

// NewBatch starts an empty batch whose Progress can be watched while Do
// runs.
func (u *Uploader) NewBatch() *Batch {
	return &Batch{uploader: u, states: map[string]State{}}
}

func (b *Batch) setState(name string, state State) {
	b.mu.Lock()
	b.states[name] = state
	b.mu.Unlock()
}

// Progress snapshots the per-file state of the batch.
func (b *Batch) Progress() map[string]State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]State, len(b.states))
	for k, v := range b.states {
		out[k] = v
	}
	return out
}

func (u *Uploader) validate(file File) error {
	if int64(len(file.Data)) > u.MaxFileSizeBytes {
		return terror.Error(ErrFileTooLarge, fmt.Sprintf("File '%s' exceeds the size limit", file.Name))
	}
	kind, err := filetype.Match(file.Data)
	if err != nil {
		return terror.Error(err, "could not inspect file")
	}
	if kind == filetype.Unknown {
		return terror.Error(ErrUnknownFileType, fmt.Sprintf("File '%s' has an unknown type", file.Name))
	}
	if !filetype.IsImage(file.Data) {
		return terror.Error(ErrInvalidFileType, fmt.Sprintf("File '%s' is not an image", file.Name))
	}
	return nil
}

// Do stores every file and returns descriptors in input order. Any single
// failure fails the whole batch: the caller gets no partial list and must
// treat none of the files as usable. Every file is validated before the
// first byte goes over the wire.
func (b *Batch) Do(ctx context.Context, files []File) ([]shopkeeper.UploadedFile, error) {
	u := b.uploader
	for _, file := range files {
		err := u.validate(file)
		if err != nil {
			return nil, terror.Error(err)
		}
		b.setState(file.Name, StatePending)
	}

	results := make([]shopkeeper.UploadedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			b.setState(file.Name, StateUploading)
			fileID := shopkeeper.NewFileID()
			info, err := u.Conn.UploadFile(gctx, fileID.String(), file.Name, file.Data)
			if err != nil {
				b.setState(file.Name, StateFailed)
				return terror.Error(err, fmt.Sprintf("Error uploading '%s'", file.Name))
			}
			// Result index matches request index, so output order is input
			// order no matter which upload finishes first.
			results[i] = shopkeeper.UploadedFile{
				ID:         shopkeeper.FileID(info.ID),
				Name:       file.Name,
				PreviewURL: u.Conn.PreviewURL(info.ID),
			}
			b.setState(file.Name, StateDone)
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, terror.Error(err)
	}
	return results, nil
}

// Upload runs the files through a throwaway batch for callers that do not
// watch progress.
func (u *Uploader) Upload(ctx context.Context, files []File) ([]shopkeeper.UploadedFile, error) {
	return u.NewBatch().Do(ctx, files)
}
