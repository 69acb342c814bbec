package docstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ninja-software/terror/v2"
)

// FileInfo is the backend's record of an uploaded file.
type FileInfo struct {
	ID        string `json:"$id"`
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeOriginal"`
}

func (c *Client) filesPath() string {
	return fmt.Sprintf("/storage/buckets/%s/files", c.BucketID)
}

// UploadFile stores a file in the bucket under a caller-minted ID.
func (c *Client) UploadFile(ctx context.Context, fileID string, fileName string, data []byte) (*FileInfo, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	err := form.WriteField("fileId", fileID)
	if err != nil {
		return nil, terror.Error(err, "build upload form")
	}
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return nil, terror.Error(err, "build upload form")
	}
	_, err = io.Copy(part, bytes.NewReader(data))
	if err != nil {
		return nil, terror.Error(err, "build upload form")
	}
	err = form.Close()
	if err != nil {
		return nil, terror.Error(err, "build upload form")
	}

	info := &FileInfo{}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.filesPath(),
		body:        body,
		contentType: form.FormDataContentType(),
		useKey:      true,
	}, info)
	if err != nil {
		return nil, terror.Error(err, "upload file")
	}
	return info, nil
}

// DeleteFile removes a stored file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   c.filesPath() + "/" + fileID,
		useKey: true,
	}, nil)
	if err != nil {
		return terror.Error(err, "delete file")
	}
	return nil
}

// PreviewURL synthesises the public preview link for a stored file. This is
// a pure string template over the backend's public-read URL convention, not
// part of any backend response.
func (c *Client) PreviewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/preview?project=%s", c.Endpoint, c.BucketID, fileID, c.ProjectID)
}
