package store

import (
	"context"

	"shopkeeper"
	"shopkeeper/docstore"

	"github.com/ninja-software/terror/v2"
)

// pageFromDocument rebuilds the tagged header/navlink unions from the
// document's discriminant + optional-field shape. Only the branch matching
// the discriminant is read; a stale value in the other branch is ignored.
func pageFromDocument(doc *docstore.Document) (*shopkeeper.Page, error) {
	page := &shopkeeper.Page{
		ID:        shopkeeper.PageID(doc.ID),
		Href:      doc.Str("href"),
		Archive:   doc.Bool("archive"),
		CreatedAt: doc.CreatedAt,
	}

	switch shopkeeper.PageHeaderKind(doc.Str("headerOption")) {
	case shopkeeper.PageHeaderBillboard:
		page.Header = shopkeeper.PageHeader{
			Kind:        shopkeeper.PageHeaderBillboard,
			BillboardID: shopkeeper.BillboardID(doc.Str("billboard")),
		}
	default:
		page.Header = shopkeeper.PageHeader{
			Kind:    shopkeeper.PageHeaderHeading,
			Heading: doc.Str("pageHeading"),
		}
	}

	switch shopkeeper.PageNavLinkKind(doc.Str("navlinkOption")) {
	case shopkeeper.PageNavLinkImage:
		image, err := shopkeeper.DecodeFile(doc.Str("navImage"))
		if err != nil {
			return nil, terror.Error(err, "decode page nav image")
		}
		page.NavLink = shopkeeper.PageNavLink{
			Kind:  shopkeeper.PageNavLinkImage,
			Image: &image,
		}
	default:
		page.NavLink = shopkeeper.PageNavLink{
			Kind: shopkeeper.PageNavLinkText,
			Text: doc.Str("navLink"),
		}
	}

	return page, nil
}

func pageFields(page *shopkeeper.Page) (map[string]interface{}, error) {
	fields := map[string]interface{}{
		"href":          page.Href,
		"archive":       page.Archive,
		"headerOption":  string(page.Header.Kind),
		"navlinkOption": string(page.NavLink.Kind),
	}
	switch page.Header.Kind {
	case shopkeeper.PageHeaderBillboard:
		fields["billboard"] = page.Header.BillboardID.String()
	default:
		fields["pageHeading"] = page.Header.Heading
	}
	switch page.NavLink.Kind {
	case shopkeeper.PageNavLinkImage:
		if page.NavLink.Image != nil {
			navImage, err := shopkeeper.EncodeFile(*page.NavLink.Image)
			if err != nil {
				return nil, terror.Error(err)
			}
			fields["navImage"] = navImage
		}
	default:
		fields["navLink"] = page.NavLink.Text
	}
	return fields, nil
}

// PageList returns all content pages.
func (s *Store) PageList(ctx context.Context) ([]*shopkeeper.Page, error) {
	docs, err := s.Conn.ListDocuments(ctx, s.Collections.Pages)
	if err != nil {
		return nil, terror.Error(err, "list pages")
	}
	pages := make([]*shopkeeper.Page, 0, len(docs))
	for _, doc := range docs {
		page, err := pageFromDocument(doc)
		if err != nil {
			return nil, terror.Error(err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// PageGet returns a page by ID.
func (s *Store) PageGet(ctx context.Context, id shopkeeper.PageID) (*shopkeeper.Page, error) {
	doc, err := s.Conn.GetDocument(ctx, s.Collections.Pages, id.String())
	if err != nil {
		return nil, terror.Error(err, "get page")
	}
	return pageFromDocument(doc)
}

// PageCreate persists a new page. Only the active union branches are
// written; stale values from a toggled-away branch never reach the backend.
func (s *Store) PageCreate(ctx context.Context, page *shopkeeper.Page) error {
	fields, err := pageFields(page)
	if err != nil {
		return terror.Error(err)
	}
	if page.ID.IsNil() {
		page.ID = shopkeeper.NewPageID()
	}
	doc, err := s.Conn.CreateDocument(ctx, s.Collections.Pages, page.ID.String(), fields)
	if err != nil {
		return terror.Error(err, "create page")
	}
	page.CreatedAt = doc.CreatedAt
	return nil
}

// PageUpdate patches a page's href, heading and archive flag.
func (s *Store) PageUpdate(ctx context.Context, id shopkeeper.PageID, href string, pageHeading string, archive bool) error {
	_, err := s.Conn.UpdateDocument(ctx, s.Collections.Pages, id.String(), map[string]interface{}{
		"href":        href,
		"pageHeading": pageHeading,
		"archive":     archive,
	})
	if err != nil {
		return terror.Error(err, "update page")
	}
	return nil
}

// PageDelete removes a single page.
func (s *Store) PageDelete(ctx context.Context, id shopkeeper.PageID) error {
	err := s.Conn.DeleteDocument(ctx, s.Collections.Pages, id.String())
	if err != nil {
		return terror.Error(err, "delete page")
	}
	return nil
}

// PagesDelete removes the given pages one by one, returning a per-item
// result list.
func (s *Store) PagesDelete(ctx context.Context, ids []shopkeeper.PageID) []BatchResult {
	results := make([]BatchResult, 0, len(ids))
	for _, id := range ids {
		err := s.Conn.DeleteDocument(ctx, s.Collections.Pages, id.String())
		if err != nil {
			s.Log.Err(err).Str("page_id", id.String()).Msg("delete page")
			results = append(results, BatchResult{ID: id.String(), OK: false, Message: "Error deleting page"})
			continue
		}
		results = append(results, BatchResult{ID: id.String(), OK: true})
	}
	return results
}
