package docstore

import (
	"encoding/json"
	"strconv"
)

// Query is a single list instruction in the backend's query language.
type Query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

// Equal filters documents where attribute equals any of the given values.
func Equal(attribute string, values ...interface{}) Query {
	return Query{Method: "equal", Attribute: attribute, Values: values}
}

// Limit caps the number of returned documents.
func Limit(n int) Query {
	return Query{Method: "limit", Values: []interface{}{n}}
}

// OrderAsc sorts returned documents ascending by attribute. Listing with
// OrderAsc("$createdAt") is what makes first-match name resolution
// deterministic (oldest document wins).
func OrderAsc(attribute string) Query {
	return Query{Method: "orderAsc", Attribute: attribute}
}

// OrderDesc sorts returned documents descending by attribute.
func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

// Encode renders the query to the JSON form the backend expects in the
// queries[] request parameter.
func (q Query) Encode() string {
	b, err := json.Marshal(q)
	if err != nil {
		// Query contains only strings, numbers and bools; this cannot fail.
		return `{"method":"limit","values":[` + strconv.Itoa(0) + `]}`
	}
	return string(b)
}
