package api

import (
	"net/http"

	"shopkeeper/store"
)

// parseListing reads the admin table's filter/sort controls off a list
// request. All parameters are optional.
func parseListing(r *http.Request) (*store.ListFilterRequest, string, store.SortByDir) {
	q := r.URL.Query()

	var filter *store.ListFilterRequest
	if q.Get("filter_column") != "" {
		op := store.OperatorValueType(q.Get("filter_op"))
		if op == "" {
			op = store.OperatorValueTypeContains
		}
		filter = &store.ListFilterRequest{
			LinkOperator: store.LinkOperatorTypeAnd,
			Items: []*store.ListFilterRequestItem{{
				ColumnField:   q.Get("filter_column"),
				OperatorValue: op,
				Value:         q.Get("filter_value"),
			}},
		}
	}

	sortDir := store.SortByDirAsc
	if store.SortByDir(q.Get("sort_dir")) == store.SortByDirDesc {
		sortDir = store.SortByDirDesc
	}
	return filter, q.Get("sort_by"), sortDir
}

// applyListing filters and sorts table rows in place, returning the rows
// that remain in presentation order.
func applyListing(r *http.Request, rows []store.Row) []store.Row {
	filter, sortBy, sortDir := parseListing(r)
	rows = store.FilterRows(rows, filter)
	store.SortRows(rows, sortBy, sortDir)
	return rows
}
