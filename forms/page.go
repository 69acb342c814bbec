package forms

import "shopkeeper"

// PageForm is a new content page submission. The header and nav-link
// choices are tagged unions: the discriminant picks a branch, only that
// branch may hold a value, and only that branch is submitted. A populated
// non-active branch is rejected rather than silently dropped, so a stale
// value from toggling the discriminant back and forth cannot leak through.
type PageForm struct {
	Href         string `json:"href"`
	HeaderOption string `json:"headerOption"`
	PageHeading  string `json:"pageHeading"`
	Billboard    string `json:"billboard"`
	NavOption    string `json:"navlinkOption"`
	NavLink      string `json:"navLink"`
	ImageCount   int    `json:"-"`
}

// PageDraft is the validated submission. BillboardTitle still needs
// name-to-ID resolution, and a nav image still needs uploading, before a
// Page can be built from it.
type PageDraft struct {
	Href           string
	HeaderKind     shopkeeper.PageHeaderKind
	Heading        string
	BillboardTitle string
	NavKind        shopkeeper.PageNavLinkKind
	NavText        string
}

func (f *PageForm) Validate() (*PageDraft, ValidationErrors) {
	errs := ValidationErrors{}

	f.Href = sanitize(f.Href)
	f.PageHeading = sanitize(f.PageHeading)
	f.NavLink = sanitize(f.NavLink)
	if f.Href == "" {
		errs["href"] = "href is required"
	}

	draft := &PageDraft{Href: f.Href}

	switch shopkeeper.PageHeaderKind(f.HeaderOption) {
	case shopkeeper.PageHeaderHeading:
		draft.HeaderKind = shopkeeper.PageHeaderHeading
		if f.PageHeading == "" {
			errs["pageHeading"] = "Page heading is required"
		}
		if f.Billboard != "" {
			errs["billboard"] = "Billboard must be empty for a heading header"
		}
		draft.Heading = f.PageHeading
	case shopkeeper.PageHeaderBillboard:
		draft.HeaderKind = shopkeeper.PageHeaderBillboard
		if f.Billboard == "" {
			errs["billboard"] = "Billboard is required"
		}
		if f.PageHeading != "" {
			errs["pageHeading"] = "Page heading must be empty for a billboard header"
		}
		draft.BillboardTitle = f.Billboard
	default:
		errs["headerOption"] = "Header option must be 'heading' or 'billboard'"
	}

	switch shopkeeper.PageNavLinkKind(f.NavOption) {
	case shopkeeper.PageNavLinkText:
		draft.NavKind = shopkeeper.PageNavLinkText
		if f.NavLink == "" {
			errs["navLink"] = "Nav link is required"
		}
		if f.ImageCount > 0 {
			errs["image"] = "Image must be empty for a text nav link"
		}
		draft.NavText = f.NavLink
	case shopkeeper.PageNavLinkImage:
		draft.NavKind = shopkeeper.PageNavLinkImage
		if f.ImageCount < 1 {
			errs["image"] = "At least one image is required"
		}
		if f.NavLink != "" {
			errs["navLink"] = "Nav link must be empty for an image nav link"
		}
	default:
		errs["navlinkOption"] = "Nav link option must be 'text' or 'image'"
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return draft, nil
}

// UpdatePageForm edits a page's href, heading and archive flag.
type UpdatePageForm struct {
	PageID      string `json:"pageId"`
	Href        string `json:"href"`
	PageHeading string `json:"pageHeading"`
	Archive     bool   `json:"archive"`
}

func (f *UpdatePageForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	f.Href = sanitize(f.Href)
	f.PageHeading = sanitize(f.PageHeading)
	if f.PageID == "" {
		errs["pageId"] = "pageId is required"
	}
	if f.Href == "" {
		errs["href"] = "href is required"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
