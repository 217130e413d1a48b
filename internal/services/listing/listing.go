// Package listing holds the pagination contract shared by every list operation.
package listing

import (
	"errors"
	"fmt"

	"note-ledger/internal/store"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	MaxOffset    = 50_000
)

// ErrInvalidPage is returned when limit or offset is out of range.
var ErrInvalidPage = errors.New("invalid page")

// Page selects a window of an ordered listing.
type Page struct {
	Limit  int
	Offset int
}

// Query is the boundary form of Page. Nil means "not given"; the validate
// tags reject an explicit zero limit.
type Query struct {
	Limit  *int `query:"limit"  validate:"omitempty,min=1,max=100" example:"20"`
	Offset *int `query:"offset" validate:"omitempty,min=0,max=50000" example:"0"`
}

// Page applies defaults to q.
func (q Query) Page() Page {
	p := Page{Limit: DefaultLimit}
	if q.Limit != nil {
		p.Limit = *q.Limit
	}
	if q.Offset != nil {
		p.Offset = *q.Offset
	}
	return p
}

// Normalize fills in the default for a zero limit and rejects negative
// values. MaxLimit and MaxOffset are HTTP policy enforced by Query's tags.
func (p Page) Normalize() (Page, error) {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 {
		return Page{}, fmt.Errorf("%w: limit must be at least 1", ErrInvalidPage)
	}
	if p.Offset < 0 {
		return Page{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidPage)
	}
	return p, nil
}

// FindOptions converts an already normalized Page.
func (p Page) FindOptions() store.FindOptions {
	return store.FindOptions{Skip: int64(p.Offset), Limit: int64(p.Limit)}
}
