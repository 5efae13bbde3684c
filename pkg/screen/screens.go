package screen

import (
	"context"
	"fmt"
	"sort"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/filter"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"go.uber.org/zap"
)

// Names of the list screens, in tab order.
const (
	Clients  = "clients"
	Vehicles = "vehicles"
	Orders   = "orders"
	Parts    = "parts"
	Payments = "payments"
	Users    = "users"
)

var Names = []string{Clients, Vehicles, Orders, Parts, Payments, Users}

const (
	active   = "active"
	inactive = "inactive"
)

// Backend is the part of the API client the screens need.
type Backend interface {
	ListClients(context.Context) ([]v1.Client, error)
	ListVehicles(context.Context) ([]v1.Vehicle, error)
	ListOrders(context.Context) ([]v1.WorkOrder, error)
	ListParts(context.Context) ([]v1.Part, error)
	ListPayments(context.Context) ([]v1.Payment, error)
	ListUsers(context.Context) ([]v1.User, error)

	DeleteClient(context.Context, v1.ID) error
	DeleteVehicle(context.Context, v1.ID) error
	DeleteOrder(context.Context, v1.ID) error
	DeletePart(context.Context, v1.ID) error
	DeleteUser(context.Context, v1.ID) error

	UpdatePart(context.Context, v1.Part) (*v1.Part, error)
	UpdateUserRole(context.Context, v1.ID, v1.Role) (*api.RoleUpdateResponse, error)
}

var _ Backend = (*api.Client)(nil)

func ClientSpec() filter.Spec[v1.Client] {
	return filter.Spec[v1.Client]{
		SearchFields: func(c v1.Client) []string {
			return []string{c.FirstName, c.LastName, c.Email, c.Phone, c.Document}
		},
		Status: filter.Bool("status", active, inactive, func(c v1.Client) bool { return c.Active }),
	}
}

func VehicleSpec() filter.Spec[v1.Vehicle] {
	return filter.Spec[v1.Vehicle]{
		SearchFields: func(v v1.Vehicle) []string {
			return []string{v.Plate, v.Brand, v.Model, v.VIN, v.ClientName}
		},
		Status: filter.Bool("status", active, inactive, func(v v1.Vehicle) bool { return v.Active }),
		Secondary: &filter.Facet[v1.Vehicle]{
			Name:   "brand",
			Values: vehicleBrands,
			Match:  func(v v1.Vehicle, brand string) bool { return v.Brand == brand },
		},
	}
}

func vehicleBrands(vs []v1.Vehicle) []string {
	seen := map[string]bool{}
	var brands []string
	for _, v := range vs {
		if v.Brand != "" && !seen[v.Brand] {
			seen[v.Brand] = true
			brands = append(brands, v.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

func OrderSpec() filter.Spec[v1.WorkOrder] {
	return filter.Spec[v1.WorkOrder]{
		SearchFields: func(o v1.WorkOrder) []string {
			return []string{o.Number, o.VehiclePlate, o.ClientName, o.Description}
		},
		Status:    filter.Enum("status", v1.OrderStatuses, func(o v1.WorkOrder) string { return string(o.Status) }),
		Secondary: filter.Enum("priority", v1.Priorities, func(o v1.WorkOrder) string { return string(o.Priority) }),
	}
}

// PartSpec filters parts. lowStock is the threshold for parts without a
// MinStock of their own.
func PartSpec(lowStock int) filter.Spec[v1.Part] {
	if lowStock <= 0 {
		lowStock = v1.DefaultLowStockThreshold
	}
	return filter.Spec[v1.Part]{
		SearchFields: func(p v1.Part) []string {
			return []string{p.Code, p.Name, p.Brand, p.Category}
		},
		Status: filter.Bool("status", active, inactive, func(p v1.Part) bool { return p.Active }),
		Secondary: filter.Enum("stock", v1.StockLevels, func(p v1.Part) string {
			return string(p.StockLevel(lowStock))
		}),
	}
}

func PaymentSpec() filter.Spec[v1.Payment] {
	return filter.Spec[v1.Payment]{
		SearchFields: func(p v1.Payment) []string {
			return []string{p.OrderNumber, p.ClientName, p.Reference}
		},
		Status:    filter.Enum("status", v1.PaymentStatuses, func(p v1.Payment) string { return string(p.Status) }),
		Secondary: filter.Enum("method", v1.PaymentMethods, func(p v1.Payment) string { return string(p.Method) }),
	}
}

func UserSpec() filter.Spec[v1.User] {
	roles := make([]string, len(v1.Roles))
	for i, r := range v1.Roles {
		roles[i] = string(r)
	}
	return filter.Spec[v1.User]{
		SearchFields: func(u v1.User) []string {
			return []string{u.Username, u.FirstName, u.LastName, u.Email}
		},
		Status: filter.Bool("status", active, inactive, func(u v1.User) bool { return u.Active }),
		Secondary: &filter.Facet[v1.User]{
			Name:    "role",
			Options: roles,
			Match:   func(u v1.User, role string) bool { return u.HasRole(v1.Role(role)) },
		},
	}
}

func deleteAction[T v1.Record](noun string, label func(T) string, del func(context.Context, v1.ID) error) Action[T] {
	return Action[T]{
		Name:   "delete " + noun,
		Prompt: func(item T) string { return fmt.Sprintf("Delete %s %s?", noun, label(item)) },
		Run: func(ctx context.Context, item T) (string, error) {
			if err := del(ctx, item.Identifier()); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted %s %s", noun, label(item)), nil
		},
	}
}

// ToggleActive flips a part's active flag.
func ToggleActive(b Backend) Action[v1.Part] {
	verb := func(p v1.Part) string {
		if p.Active {
			return "Deactivate"
		}
		return "Activate"
	}
	return Action[v1.Part]{
		Name:   "toggle part",
		Prompt: func(p v1.Part) string { return fmt.Sprintf("%s part %s?", verb(p), p.Name) },
		Run: func(ctx context.Context, p v1.Part) (string, error) {
			next := p
			next.Active = !p.Active
			if _, err := b.UpdatePart(ctx, next); err != nil {
				return "", err
			}
			return fmt.Sprintf("%sd part %s", verb(p), p.Name), nil
		},
	}
}

// ChangeRole assigns the role chosen by next to a user.
func ChangeRole(b Backend, next func(v1.User) v1.Role) Action[v1.User] {
	return Action[v1.User]{
		Name: "change role",
		Prompt: func(u v1.User) string {
			return fmt.Sprintf("Change role of %s from %s to %s?", u.Username, displayRole(u.PrimaryRole()), next(u))
		},
		Run: func(ctx context.Context, u v1.User) (string, error) {
			res, err := b.UpdateUserRole(ctx, u.ID, next(u))
			if err != nil {
				return "", err
			}
			if res.Message != "" {
				return res.Message, nil
			}
			return fmt.Sprintf("%s is now %s", u.Username, next(u)), nil
		},
	}
}

// NextRole cycles a user's primary role.
func NextRole(u v1.User) v1.Role { return v1.NextRole(u.PrimaryRole()) }

func displayRole(r v1.Role) string {
	if r == "" {
		return "no role"
	}
	return string(r)
}

// Set holds a controller and the available actions for every screen.
type Set struct {
	Clients  *Controller[v1.Client]
	Vehicles *Controller[v1.Vehicle]
	Orders   *Controller[v1.WorkOrder]
	Parts    *Controller[v1.Part]
	Payments *Controller[v1.Payment]
	Users    *Controller[v1.User]

	DeleteClient  Action[v1.Client]
	DeleteVehicle Action[v1.Vehicle]
	DeleteOrder   Action[v1.WorkOrder]
	DeletePart    Action[v1.Part]
	DeleteUser    Action[v1.User]
	TogglePart    Action[v1.Part]
	ChangeRole    Action[v1.User]
}

func NewSet(b Backend, n Notifier, logger *zap.Logger, lowStock int) *Set {
	return &Set{
		Clients:  New(Clients, b.ListClients, ClientSpec(), n, logger),
		Vehicles: New(Vehicles, b.ListVehicles, VehicleSpec(), n, logger),
		Orders:   New(Orders, b.ListOrders, OrderSpec(), n, logger),
		Parts:    New(Parts, b.ListParts, PartSpec(lowStock), n, logger),
		Payments: New(Payments, b.ListPayments, PaymentSpec(), n, logger),
		Users:    New(Users, b.ListUsers, UserSpec(), n, logger),

		DeleteClient:  deleteAction("client", v1.Client.FullName, b.DeleteClient),
		DeleteVehicle: deleteAction("vehicle", func(v v1.Vehicle) string { return v.Plate }, b.DeleteVehicle),
		DeleteOrder:   deleteAction("order", func(o v1.WorkOrder) string { return o.Number }, b.DeleteOrder),
		DeletePart:    deleteAction("part", func(p v1.Part) string { return p.Name }, b.DeletePart),
		DeleteUser:    deleteAction("user", func(u v1.User) string { return u.Username }, b.DeleteUser),
		TogglePart:    ToggleActive(b),
		ChangeRole:    ChangeRole(b, NextRole),
	}
}

// CancelAll aborts every in-flight load.
func (s *Set) CancelAll() {
	s.Clients.Cancel()
	s.Vehicles.Cancel()
	s.Orders.Cancel()
	s.Parts.Cancel()
	s.Payments.Cancel()
	s.Users.Cancel()
}
