// Package orders holds the two pieces of order-entry logic that are not
// plain CRUD: the declarative list filter and the bounded multi-row
// entry form.
package orders

import (
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Filter narrows an order list by status, note text and creation date.
// A blank field is the identity on that axis; the raw values are kept so the
// filter form can be redisplayed as submitted.
type Filter struct {
	Status string
	Note   string
	From   string // inclusive lower bound on creation date, YYYY-MM-DD
	To     string // inclusive upper bound on creation date, YYYY-MM-DD
}

// FilterFromQuery reads the filter fields from raw query parameters.
func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Status: strings.TrimSpace(q.Get("status")),
		Note:   strings.TrimSpace(q.Get("note")),
		From:   strings.TrimSpace(q.Get("from")),
		To:     strings.TrimSpace(q.Get("to")),
	}
}

// Scope applies every non-blank dimension to tx. Applying the same filter
// twice selects the same subset as applying it once. Unparseable dates are
// treated as blank.
func (f Filter) Scope(tx *gorm.DB) *gorm.DB {
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Note != "" {
		tx = tx.Where("note LIKE ?", "%"+f.Note+"%")
	}
	if t, err := time.Parse(dateLayout, f.From); err == nil {
		tx = tx.Where("created_at >= ?", t)
	}
	if t, err := time.Parse(dateLayout, f.To); err == nil {
		tx = tx.Where("created_at < ?", t.AddDate(0, 0, 1))
	}
	return tx
}
