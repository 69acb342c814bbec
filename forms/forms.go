// Package forms validates entity form submissions: required fields,
// string-to-number coercion, positivity checks and field-keyed error
// messages the UI can surface inline.
package forms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// ValidationErrors maps form field names to their messages. A nil map means
// the submission is valid.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return strings.Join(parts, "; ")
}

var strict = bluemonday.StrictPolicy()

// sanitize trims and strips markup from free-text input.
func sanitize(s string) string {
	return strict.Sanitize(strings.TrimSpace(s))
}

// positiveDecimal coerces a numeric string ("10" is valid input) and
// requires it to be strictly positive.
func positiveDecimal(raw string, message string, field string, errs ValidationErrors) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() {
		errs[field] = message
		return decimal.Zero
	}
	return d
}
