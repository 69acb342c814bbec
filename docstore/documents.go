package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ninja-software/terror/v2"
	"github.com/shopspring/decimal"
)

// Document is a schema-flexible record in a named collection. System
// attributes are split out; everything else lands in Fields.
type Document struct {
	ID           string
	CollectionID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Fields       map[string]interface{}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	d.Fields = map[string]interface{}{}
	for k, v := range raw {
		switch k {
		case "$id":
			err = json.Unmarshal(v, &d.ID)
		case "$collectionId":
			err = json.Unmarshal(v, &d.CollectionID)
		case "$createdAt":
			err = json.Unmarshal(v, &d.CreatedAt)
		case "$updatedAt":
			err = json.Unmarshal(v, &d.UpdatedAt)
		default:
			if strings.HasPrefix(k, "$") {
				continue
			}
			var val interface{}
			err = json.Unmarshal(v, &val)
			d.Fields[k] = val
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Str returns a string field, empty when absent or not a string.
func (d *Document) Str(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Bool returns a boolean field, false when absent.
func (d *Document) Bool(key string) bool {
	b, _ := d.Fields[key].(bool)
	return b
}

// Int returns a numeric field truncated to int, zero when absent.
func (d *Document) Int(key string) int {
	f, _ := d.Fields[key].(float64)
	return int(f)
}

// Decimal returns a numeric field as a decimal, zero when absent.
func (d *Document) Decimal(key string) decimal.Decimal {
	f, ok := d.Fields[key].(float64)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Time returns a datetime field, zero time when absent or unparsable.
func (d *Document) Time(key string) time.Time {
	s, ok := d.Fields[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type listResponse struct {
	Total     int         `json:"total"`
	Documents []*Document `json:"documents"`
}

func (c *Client) documentsPath(collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", c.DatabaseID, collectionID)
}

// ListDocuments fetches documents from a collection, optionally filtered,
// limited and ordered.
func (c *Client) ListDocuments(ctx context.Context, collectionID string, queries ...Query) ([]*Document, error) {
	values := url.Values{}
	for _, q := range queries {
		values.Add("queries[]", q.Encode())
	}
	result := &listResponse{}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   c.documentsPath(collectionID),
		query:  values,
		useKey: true,
	}, result)
	if err != nil {
		return nil, terror.Error(err, "list documents")
	}
	return result.Documents, nil
}

// GetDocument fetches a single document by ID via an equality-filtered
// list, which is how the backend is queried for by-ID reads here.
func (c *Client) GetDocument(ctx context.Context, collectionID string, documentID string) (*Document, error) {
	docs, err := c.ListDocuments(ctx, collectionID, Equal("$id", documentID))
	if err != nil {
		return nil, terror.Error(err)
	}
	if len(docs) == 0 {
		return nil, terror.Error(ErrNotFound, "document not found")
	}
	return docs[0], nil
}

// CreateDocument inserts a document with a caller-minted ID.
func (c *Client) CreateDocument(ctx context.Context, collectionID string, documentID string, fields map[string]interface{}) (*Document, error) {
	payload, err := json.Marshal(struct {
		DocumentID string                 `json:"documentId"`
		Data       map[string]interface{} `json:"data"`
	}{DocumentID: documentID, Data: fields})
	if err != nil {
		return nil, terror.Error(err, "encode document")
	}
	doc := &Document{}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.documentsPath(collectionID),
		body:        bytes.NewReader(payload),
		contentType: "application/json",
		useKey:      true,
	}, doc)
	if err != nil {
		return nil, terror.Error(err, "create document")
	}
	return doc, nil
}

// UpdateDocument applies a partial field patch to an existing document.
func (c *Client) UpdateDocument(ctx context.Context, collectionID string, documentID string, fields map[string]interface{}) (*Document, error) {
	payload, err := json.Marshal(struct {
		Data map[string]interface{} `json:"data"`
	}{Data: fields})
	if err != nil {
		return nil, terror.Error(err, "encode document patch")
	}
	doc := &Document{}
	err = c.do(ctx, request{
		method:      http.MethodPatch,
		path:        c.documentsPath(collectionID) + "/" + documentID,
		body:        bytes.NewReader(payload),
		contentType: "application/json",
		useKey:      true,
	}, doc)
	if err != nil {
		return nil, terror.Error(err, "update document")
	}
	return doc, nil
}

// DeleteDocument removes a document by ID.
func (c *Client) DeleteDocument(ctx context.Context, collectionID string, documentID string) error {
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   c.documentsPath(collectionID) + "/" + documentID,
		useKey: true,
	}, nil)
	if err != nil {
		return terror.Error(err, "delete document")
	}
	return nil
}
