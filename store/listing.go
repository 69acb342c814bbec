package store

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// List presentation support: column filters, sorting and row selection for
// the admin tables, applied in memory over listed documents.

type (
	LinkOperatorType  string
	OperatorValueType string
	SortByDir         string
)

const (
	LinkOperatorTypeAnd LinkOperatorType = "and"
	LinkOperatorTypeOr  LinkOperatorType = "or"

	OperatorValueTypeContains   OperatorValueType = "contains"
	OperatorValueTypeStartsWith OperatorValueType = "startsWith"
	OperatorValueTypeEndsWith   OperatorValueType = "endsWith"
	OperatorValueTypeEquals     OperatorValueType = "equals"

	SortByDirAsc  SortByDir = "asc"
	SortByDirDesc SortByDir = "desc"
)

// ListFilterRequest contains filter data commonly used in list requests.
type ListFilterRequest struct {
	LinkOperator LinkOperatorType         `json:"linkOperator"`
	Items        []*ListFilterRequestItem `json:"items"`
}

// ListFilterRequestItem contains instructions on filtering one column.
type ListFilterRequestItem struct {
	ColumnField   string            `json:"columnField"`
	OperatorValue OperatorValueType `json:"operatorValue"`
	Value         string            `json:"value"`
}

// Row is one table row keyed by column field. Cell values are the rendered
// strings the table shows, so matching is substring over what the user sees
// (and case-sensitive, as the table implements it).
type Row map[string]string

func matchItem(row Row, item *ListFilterRequestItem) bool {
	cell, ok := row[item.ColumnField]
	if !ok {
		return false
	}
	switch item.OperatorValue {
	case OperatorValueTypeContains:
		return strings.Contains(cell, item.Value)
	case OperatorValueTypeStartsWith:
		return strings.HasPrefix(cell, item.Value)
	case OperatorValueTypeEndsWith:
		return strings.HasSuffix(cell, item.Value)
	case OperatorValueTypeEquals:
		return cell == item.Value
	}
	return false
}

// MatchFilter reports whether a row passes the filter. Items with no value
// set do not filter.
func MatchFilter(row Row, filter *ListFilterRequest) bool {
	if filter == nil || len(filter.Items) == 0 {
		return true
	}
	active := 0
	for _, item := range filter.Items {
		if item.Value == "" {
			continue
		}
		active++
		matched := matchItem(row, item)
		if filter.LinkOperator == LinkOperatorTypeOr {
			if matched {
				return true
			}
			continue
		}
		if !matched {
			return false
		}
	}
	if filter.LinkOperator == LinkOperatorTypeOr {
		return active == 0
	}
	return true
}

// FilterRows returns the rows passing the filter, preserving order.
func FilterRows(rows []Row, filter *ListFilterRequest) []Row {
	if filter == nil || len(filter.Items) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if MatchFilter(row, filter) {
			out = append(out, row)
		}
	}
	return out
}

// cellLess compares two rendered cells. Cells that both parse as numbers
// compare numerically, so a price column sorts 9.99 before 12.5 instead of
// after it.
func cellLess(a, b string) bool {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA == nil && errB == nil {
		return da.LessThan(db)
	}
	return a < b
}

// SortRows sorts rows by a column's rendered value. The sort is stable so
// equal cells keep their listing order.
func SortRows(rows []Row, column string, dir SortByDir) {
	if column == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][column], rows[j][column]
		if dir == SortByDirDesc {
			a, b = b, a
		}
		return cellLess(a, b)
	})
}

// Selection is the bulk-action payload: the table mirrors its checkbox
// state into a plain ID list.
type Selection struct {
	IDs []string `json:"ids"`
}
