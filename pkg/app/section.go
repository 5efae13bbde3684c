package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/byxorna/wrench/pkg/screen"
	"github.com/byxorna/wrench/pkg/text"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// column is one table column of a section.
type column[T any] struct {
	title string
	width int
	value func(T) string
}

// section adapts a screen controller to a Tab.
type section[T v1.Record] struct {
	*screen.Controller[T]
	columns []column[T]
	actions map[ActionKind]screen.Action[T]
}

var _ Tab = (*section[v1.Part])(nil)

func (s *section[T]) Headers() []string {
	h := make([]string, len(s.columns))
	for i, c := range s.columns {
		h[i] = c.title
	}
	return h
}

func (s *section[T]) Widths() []int {
	w := make([]int, len(s.columns))
	for i, c := range s.columns {
		w[i] = c.width
	}
	return w
}

func (s *section[T]) Rows() [][]string {
	items := s.Visible()
	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(s.columns))
		for j, c := range s.columns {
			row[j] = c.value(item)
		}
		rows[i] = row
	}
	return rows
}

func (s *section[T]) Facets() (string, string) {
	spec := s.Spec()
	var status, secondary string
	if spec.Status != nil {
		status = spec.Status.Name
	}
	if spec.Secondary != nil {
		secondary = spec.Secondary.Name
	}
	return status, secondary
}

func (s *section[T]) Action(kind ActionKind, index int) (*Pending, error) {
	items := s.Visible()
	if index < 0 || index >= len(items) {
		return nil, ErrNoSelection
	}
	return s.prepare(kind, items[index])
}

func (s *section[T]) ActionByID(kind ActionKind, id v1.ID) (*Pending, error) {
	item, ok := v1.Find(s.All(), id)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", s.Name(), id, ErrUnknownRecord)
	}
	return s.prepare(kind, item)
}

func (s *section[T]) prepare(kind ActionKind, item T) (*Pending, error) {
	a, ok := s.actions[kind]
	if !ok {
		return nil, ErrNotSupported
	}
	return &Pending{
		Prompt: a.Prompt(item),
		Run: func(ctx context.Context) error {
			return s.Perform(ctx, a, item)
		},
	}, nil
}

// NewTabs returns one tab per name, in the given order.
func NewTabs(set *screen.Set, names []string, lowStock int) ([]Tab, error) {
	tabs := make([]Tab, 0, len(names))
	for _, name := range names {
		t, err := newTab(set, name, lowStock)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, nil
}

// TabByName returns the tab named name.
func TabByName(tabs []Tab, name string) (Tab, bool) {
	for _, t := range tabs {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

func newTab(set *screen.Set, name string, lowStock int) (Tab, error) {
	switch name {
	case screen.Clients:
		return &section[v1.Client]{
			Controller: set.Clients,
			columns:    clientColumns,
			actions:    map[ActionKind]screen.Action[v1.Client]{ActionDelete: set.DeleteClient},
		}, nil
	case screen.Vehicles:
		return &section[v1.Vehicle]{
			Controller: set.Vehicles,
			columns:    vehicleColumns,
			actions:    map[ActionKind]screen.Action[v1.Vehicle]{ActionDelete: set.DeleteVehicle},
		}, nil
	case screen.Orders:
		return &section[v1.WorkOrder]{
			Controller: set.Orders,
			columns:    orderColumns,
			actions:    map[ActionKind]screen.Action[v1.WorkOrder]{ActionDelete: set.DeleteOrder},
		}, nil
	case screen.Parts:
		return &section[v1.Part]{
			Controller: set.Parts,
			columns:    partColumns(lowStock),
			actions: map[ActionKind]screen.Action[v1.Part]{
				ActionDelete: set.DeletePart,
				ActionToggle: set.TogglePart,
			},
		}, nil
	case screen.Payments:
		return &section[v1.Payment]{
			Controller: set.Payments,
			columns:    paymentColumns,
		}, nil
	case screen.Users:
		return &section[v1.User]{
			Controller: set.Users,
			columns:    userColumns,
			actions: map[ActionKind]screen.Action[v1.User]{
				ActionDelete: set.DeleteUser,
				ActionRole:   set.ChangeRole,
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown screen %q", name)
}

const placeholder = "-"

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func when(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return humanize.Time(t)
}

func whenPtr(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return when(*t)
}

func cell(width int) func(string) string {
	return func(s string) string {
		return text.TruncateWithTail(s, uint(width), text.Ellipsis)
	}
}

var clientColumns = []column[v1.Client]{
	{"ID", 6, func(c v1.Client) string { return c.ID.String() }},
	{"Name", 24, func(c v1.Client) string { return cell(24)(c.FullName()) }},
	{"Email", 28, func(c v1.Client) string { return cell(28)(orPlaceholder(c.Email)) }},
	{"Phone", 14, func(c v1.Client) string { return orPlaceholder(c.Phone) }},
	{"Document", 14, func(c v1.Client) string { return orPlaceholder(c.Document) }},
	{"Active", 6, func(c v1.Client) string { return yesNo(c.Active) }},
}

var vehicleColumns = []column[v1.Vehicle]{
	{"ID", 6, func(v v1.Vehicle) string { return v.ID.String() }},
	{"Plate", 10, func(v v1.Vehicle) string { return v.Plate }},
	{"Vehicle", 26, func(v v1.Vehicle) string { return cell(26)(describeVehicle(v)) }},
	{"Color", 10, func(v v1.Vehicle) string { return orPlaceholder(v.Color) }},
	{"Owner", 22, func(v v1.Vehicle) string { return cell(22)(orPlaceholder(v.ClientName)) }},
	{"Active", 6, func(v v1.Vehicle) string { return yesNo(v.Active) }},
}

func describeVehicle(v v1.Vehicle) string {
	parts := []string{}
	for _, s := range []string{v.Brand, v.Model} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if v.Year > 0 {
		parts = append(parts, fmt.Sprintf("(%d)", v.Year))
	}
	return orPlaceholder(strings.Join(parts, " "))
}

var orderColumns = []column[v1.WorkOrder]{
	{"Number", 12, func(o v1.WorkOrder) string { return o.Number }},
	{"Plate", 10, func(o v1.WorkOrder) string { return orPlaceholder(o.VehiclePlate) }},
	{"Client", 20, func(o v1.WorkOrder) string { return cell(20)(orPlaceholder(o.ClientName)) }},
	{"Status", 12, func(o v1.WorkOrder) string { return string(o.Status) }},
	{"Priority", 8, func(o v1.WorkOrder) string { return orPlaceholder(string(o.Priority)) }},
	{"Total", 12, func(o v1.WorkOrder) string { return money(o.Total) }},
	{"Created", 16, func(o v1.WorkOrder) string { return when(o.CreatedAt) }},
}

func partColumns(lowStock int) []column[v1.Part] {
	return []column[v1.Part]{
		{"Code", 10, func(p v1.Part) string { return orPlaceholder(p.Code) }},
		{"Name", 24, func(p v1.Part) string { return cell(24)(p.Name) }},
		{"Brand", 12, func(p v1.Part) string { return orPlaceholder(p.Brand) }},
		{"Stock", 8, func(p v1.Part) string { return humanize.Comma(int64(p.Stock)) }},
		{"Level", 12, func(p v1.Part) string { return string(p.StockLevel(lowStock)) }},
		{"Price", 10, func(p v1.Part) string { return money(p.Price) }},
		{"Active", 6, func(p v1.Part) string { return yesNo(p.Active) }},
	}
}

var paymentColumns = []column[v1.Payment]{
	{"ID", 6, func(p v1.Payment) string { return p.ID.String() }},
	{"Order", 12, func(p v1.Payment) string { return orPlaceholder(p.OrderNumber) }},
	{"Client", 20, func(p v1.Payment) string { return cell(20)(orPlaceholder(p.ClientName)) }},
	{"Amount", 12, func(p v1.Payment) string { return money(p.Amount) }},
	{"Method", 9, func(p v1.Payment) string { return string(p.Method) }},
	{"Status", 10, func(p v1.Payment) string { return string(p.Status) }},
	{"Paid", 16, func(p v1.Payment) string { return whenPtr(p.PaidAt) }},
}

var userColumns = []column[v1.User]{
	{"Username", 14, func(u v1.User) string { return u.Username }},
	{"Name", 22, func(u v1.User) string { return cell(22)(orPlaceholder(u.FullName())) }},
	{"Email", 26, func(u v1.User) string { return cell(26)(orPlaceholder(u.Email)) }},
	{"Roles", 24, func(u v1.User) string { return orPlaceholder(joinRoles(u.Roles)) }},
	{"Active", 6, func(u v1.User) string { return yesNo(u.Active) }},
}

func joinRoles(roles []v1.Role) string {
	sorted := v1.SortRoles(roles)
	s := make([]string, len(sorted))
	for i, r := range sorted {
		s[i] = string(r)
	}
	return strings.Join(s, ", ")
}
