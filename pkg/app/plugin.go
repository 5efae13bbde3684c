package app

import (
	"context"
	"errors"

	"github.com/byxorna/wrench/pkg/filter"
	"github.com/byxorna/wrench/pkg/screen"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
)

// ActionKind names the confirmed mutations a tab may offer.
type ActionKind string

const (
	ActionDelete ActionKind = "delete"
	ActionToggle ActionKind = "toggle"
	ActionRole   ActionKind = "role"
)

var (
	ErrNoSelection   = errors.New("nothing selected")
	ErrNotSupported  = errors.New("action not available on this screen")
	ErrUnknownRecord = errors.New("no such record")
)

// Pending is an action waiting for the user's confirmation.
type Pending struct {
	Prompt string
	Run    func(ctx context.Context) error
}

// Tab contains definitions and state information for one list screen: the
// table it renders and the actions it offers.
type Tab interface {
	Name() string
	Headers() []string
	Widths() []int
	Rows() [][]string

	Load(ctx context.Context) error
	Cancel()
	// Reset drops the collection and criteria.
	Reset()
	Status() screen.Status

	Criteria() filter.Criteria
	SetCriteria(filter.Criteria)
	SetSearch(string)
	CycleStatus()
	CycleSecondary()
	ClearFilters()
	// Facets returns the names of the status and secondary filters, empty
	// when the screen has none.
	Facets() (status, secondary string)

	// Action prepares kind against the visible row at index.
	Action(kind ActionKind, index int) (*Pending, error)
	// ActionByID prepares kind against the loaded record with id.
	ActionByID(kind ActionKind, id v1.ID) (*Pending, error)
}
