// Package filter derives the visible subset of an in-memory collection from
// the criteria a user has chosen on a list screen.
package filter

import (
	"strings"

	"github.com/byxorna/wrench/pkg/text"
)

// All is the sentinel facet value that matches every record.
const All = "all"

// Criteria holds the current predicate values of a list screen.
type Criteria struct {
	Search    string
	Status    string
	Secondary string
}

// Default is the cleared state: no search term and both facets at All.
func Default() Criteria {
	return Criteria{Search: "", Status: All, Secondary: All}
}

// IsDefault reports whether c narrows nothing.
func (c Criteria) IsDefault() bool {
	return strings.TrimSpace(c.Search) == "" && isAll(c.Status) && isAll(c.Secondary)
}

func isAll(v string) bool { return v == "" || v == All }

// Facet is an enum valued predicate, such as a status or a stock level.
type Facet[T any] struct {
	Name string
	// Options lists the selectable values, excluding All. When Values is set
	// it takes precedence and is computed from the loaded collection.
	Options []string
	Values  func(items []T) []string
	Match   func(item T, value string) bool
}

// Choices lists the selectable values for items, starting with All.
func (f *Facet[T]) Choices(items []T) []string {
	opts := f.Options
	if f.Values != nil {
		opts = f.Values(items)
	}
	return append([]string{All}, opts...)
}

// Next returns the choice after current, wrapping back to All.
func (f *Facet[T]) Next(items []T, current string) string {
	choices := f.Choices(items)
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return All
}

func (f *Facet[T]) matches(item T, value string) bool {
	if f == nil || isAll(value) {
		return true
	}
	return f.Match(item, value)
}

// Spec describes how one entity type is filtered.
type Spec[T any] struct {
	// SearchFields returns the text fields the search term is matched against.
	SearchFields func(item T) []string
	Status       *Facet[T]
	Secondary    *Facet[T]
}

// Matches reports whether item satisfies every active predicate of c.
func (s Spec[T]) Matches(item T, c Criteria) bool {
	term := strings.TrimSpace(c.Search)
	if term != "" && s.SearchFields != nil && !text.AnyContainsFold(s.SearchFields(item), term) {
		return false
	}
	return s.Status.matches(item, c.Status) && s.Secondary.matches(item, c.Secondary)
}

// Apply returns the items that satisfy c, in their original order. It never
// modifies items and always returns a fresh slice.
func (s Spec[T]) Apply(items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.Matches(item, c) {
			out = append(out, item)
		}
	}
	return out
}

// Bool builds a facet over a boolean flag with "active"/"inactive" choices.
func Bool[T any](name, trueValue, falseValue string, get func(T) bool) *Facet[T] {
	return &Facet[T]{
		Name:    name,
		Options: []string{trueValue, falseValue},
		Match: func(item T, value string) bool {
			switch value {
			case trueValue:
				return get(item)
			case falseValue:
				return !get(item)
			}
			return false
		},
	}
}

// Enum builds a facet that compares a single string field.
func Enum[T any](name string, options []string, get func(T) string) *Facet[T] {
	return &Facet[T]{
		Name:    name,
		Options: options,
		Match:   func(item T, value string) bool { return get(item) == value },
	}
}
