// Package taller decides whether Yoda is taller than a named character.
package taller

import (
	"context"
	"strconv"

	"github.com/okian/yodataller/internal/domain/model"
)

// YodaHeight is the reference height in centimeters.
const YodaHeight = 66

// Searcher looks people up by name. Results are in relevance order.
type Searcher interface {
	PeopleByName(ctx context.Context, name string) ([]model.Person, error)
}

// Comparator applies the height policy on top of a Searcher. It holds no
// per-request state and is safe for concurrent use.
type Comparator struct {
	searcher Searcher
}

// New returns a Comparator backed by searcher.
func New(searcher Searcher) *Comparator {
	return &Comparator{searcher: searcher}
}

// IsTallerThan reports whether YodaHeight is strictly greater than the
// height of the first person matching name.
//
// The first search result is trusted as is; ambiguous names resolve to
// whatever the upstream ranks first. Outcome.Person is always name.
func (c *Comparator) IsTallerThan(ctx context.Context, name string) (model.Outcome, error) {
	matches, err := c.searcher.PeopleByName(ctx, name)
	if err != nil {
		return model.Outcome{}, &UnexpectedError{Cause: err}
	}
	if len(matches) == 0 {
		return model.Outcome{}, ErrPersonNotFound
	}

	height, err := ParseHeight(matches[0].Height)
	if err != nil {
		return model.Outcome{}, ErrHeightNotFound
	}

	return model.Outcome{
		Person: name,
		Taller: height < YodaHeight,
	}, nil
}

// ParseHeight parses a height in centimeters. Placeholders such as
// "unknown" or "n/a" are rejected.
func ParseHeight(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
