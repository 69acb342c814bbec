package shopkeeper

import (
	"encoding/json"

	"github.com/ninja-software/terror/v2"
)

// UploadedFile is the descriptor returned by the upload helper and embedded
// (JSON-encoded) into product, billboard and page documents. It is never
// persisted as its own document.
type UploadedFile struct {
	ID         FileID `json:"id"`
	Name       string `json:"name"`
	PreviewURL string `json:"previewUrl"`
}

// EncodeFiles serialises an ordered image list for storage in a document's
// string field, matching the backend's imgurl convention.
func EncodeFiles(files []UploadedFile) (string, error) {
	b, err := json.Marshal(files)
	if err != nil {
		return "", terror.Error(err, "encode uploaded files")
	}
	return string(b), nil
}

// DecodeFiles parses an image list out of a document's string field. An
// empty field decodes to an empty list rather than an error.
func DecodeFiles(raw string) ([]UploadedFile, error) {
	if raw == "" {
		return []UploadedFile{}, nil
	}
	var files []UploadedFile
	err := json.Unmarshal([]byte(raw), &files)
	if err != nil {
		return nil, terror.Error(err, "decode uploaded files")
	}
	return files, nil
}

// EncodeFile serialises a single image descriptor (billboards and page nav
// images store exactly one).
func EncodeFile(file UploadedFile) (string, error) {
	b, err := json.Marshal(file)
	if err != nil {
		return "", terror.Error(err, "encode uploaded file")
	}
	return string(b), nil
}

// DecodeFile parses a single image descriptor.
func DecodeFile(raw string) (UploadedFile, error) {
	file := UploadedFile{}
	if raw == "" {
		return file, nil
	}
	err := json.Unmarshal([]byte(raw), &file)
	if err != nil {
		return UploadedFile{}, terror.Error(err, "decode uploaded file")
	}
	return file, nil
}
