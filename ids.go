package shopkeeper

import "github.com/gofrs/uuid"

// The document backend identifies everything by an opaque string ID. New
// documents get an ID minted here so create calls are idempotent to retry by
// hand; IDs read back from the backend are kept verbatim.

type UserID string
type ProductID string
type CategoryID string
type BillboardID string
type PageID string
type FileID string

func (id UserID) String() string      { return string(id) }
func (id ProductID) String() string   { return string(id) }
func (id CategoryID) String() string  { return string(id) }
func (id BillboardID) String() string { return string(id) }
func (id PageID) String() string      { return string(id) }
func (id FileID) String() string      { return string(id) }

func (id UserID) IsNil() bool      { return id == "" }
func (id ProductID) IsNil() bool   { return id == "" }
func (id CategoryID) IsNil() bool  { return id == "" }
func (id BillboardID) IsNil() bool { return id == "" }
func (id PageID) IsNil() bool      { return id == "" }
func (id FileID) IsNil() bool      { return id == "" }

func NewUserID() UserID           { return UserID(newID()) }
func NewProductID() ProductID     { return ProductID(newID()) }
func NewCategoryID() CategoryID   { return CategoryID(newID()) }
func NewBillboardID() BillboardID { return BillboardID(newID()) }
func NewPageID() PageID           { return PageID(newID()) }
func NewFileID() FileID           { return FileID(newID()) }

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}
