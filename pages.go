package shopkeeper

import "time"

// Page header and nav-link choices are tagged unions: exactly the branch
// matching the kind holds a value. The document layer flattens these into
// the backend's discriminant + optional-field shape.

type PageHeaderKind string

const (
	PageHeaderHeading   PageHeaderKind = "heading"
	PageHeaderBillboard PageHeaderKind = "billboard"
)

type PageNavLinkKind string

const (
	PageNavLinkText  PageNavLinkKind = "text"
	PageNavLinkImage PageNavLinkKind = "image"
)

// PageHeader is the page's top-of-screen representation.
type PageHeader struct {
	Kind        PageHeaderKind `json:"kind"`
	Heading     string         `json:"heading,omitempty"`
	BillboardID BillboardID    `json:"billboardID,omitempty"`
}

// PageNavLink is the page's navigation representation.
type PageNavLink struct {
	Kind  PageNavLinkKind `json:"kind"`
	Text  string          `json:"text,omitempty"`
	Image *UploadedFile   `json:"image,omitempty"`
}

// Page is a content page document.
type Page struct {
	ID        PageID      `json:"id"`
	Href      string      `json:"href"`
	Header    PageHeader  `json:"header"`
	NavLink   PageNavLink `json:"navLink"`
	Archive   bool        `json:"archive"`
	CreatedAt time.Time   `json:"createdAt"`
}
