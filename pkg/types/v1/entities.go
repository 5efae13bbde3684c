package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	ID        ID        `json:"id" validate:"required"`
	FirstName string    `json:"firstName" validate:"required"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone"`
	Document  string    `json:"document"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Client) Identifier() ID   { return c.ID }
func (c Client) Validate() error  { return Validator().Struct(c) }
func (c Client) FullName() string { return fullName(c.FirstName, c.LastName) }

type Vehicle struct {
	ID         ID     `json:"id" validate:"required"`
	Plate      string `json:"plate" validate:"required"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Year       int    `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	VIN        string `json:"vin"`
	Color      string `json:"color"`
	ClientID   ID     `json:"clientId"`
	ClientName string `json:"clientName"`
	Active     bool   `json:"active"`
}

func (v Vehicle) Identifier() ID  { return v.ID }
func (v Vehicle) Validate() error { return Validator().Struct(v) }

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var OrderStatuses = []string{
	string(OrderPending), string(OrderInProgress), string(OrderCompleted),
	string(OrderDelivered), string(OrderCancelled),
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var Priorities = []string{
	string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent),
}

type WorkOrder struct {
	ID           ID              `json:"id" validate:"required"`
	Number       string          `json:"number" validate:"required"`
	VehicleID    ID              `json:"vehicleId"`
	VehiclePlate string          `json:"vehiclePlate"`
	ClientName   string          `json:"clientName"`
	Description  string          `json:"description"`
	Status       OrderStatus     `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED DELIVERED CANCELLED"`
	Priority     Priority        `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

func (o WorkOrder) Identifier() ID  { return o.ID }
func (o WorkOrder) Validate() error { return Validator().Struct(o) }

// DefaultLowStockThreshold applies to parts that carry no minimum stock of their own.
const DefaultLowStockThreshold = 5

type StockLevel string

const (
	InStock    StockLevel = "in-stock"
	LowStock   StockLevel = "low-stock"
	OutOfStock StockLevel = "out-of-stock"
)

var StockLevels = []string{string(InStock), string(LowStock), string(OutOfStock)}

type Part struct {
	ID       ID              `json:"id" validate:"required"`
	Code     string          `json:"code"`
	Name     string          `json:"name" validate:"required"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"minStock" validate:"gte=0"`
	Active   bool            `json:"active"`
}

func (p Part) Identifier() ID  { return p.ID }
func (p Part) Validate() error { return Validator().Struct(p) }

// StockLevel classifies the part's stock. fallback is the low stock threshold
// used when the part has no MinStock.
func (p Part) StockLevel(fallback int) StockLevel {
	threshold := p.MinStock
	if threshold <= 0 {
		threshold = fallback
	}
	switch {
	case p.Stock <= 0:
		return OutOfStock
	case p.Stock <= threshold:
		return LowStock
	default:
		return InStock
	}
}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCheck    PaymentMethod = "CHECK"
)

var PaymentMethods = []string{
	string(MethodCash), string(MethodCard), string(MethodTransfer), string(MethodCheck),
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var PaymentStatuses = []string{
	string(PaymentPending), string(PaymentCompleted), string(PaymentFailed), string(PaymentRefunded),
}

type Payment struct {
	ID          ID              `json:"id" validate:"required"`
	OrderID     ID              `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	ClientName  string          `json:"clientName"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method" validate:"required,oneof=CASH CARD TRANSFER CHECK"`
	Status      PaymentStatus   `json:"status" validate:"required,oneof=PENDING COMPLETED FAILED REFUNDED"`
	Reference   string          `json:"reference"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
}

func (p Payment) Identifier() ID  { return p.ID }
func (p Payment) Validate() error { return Validator().Struct(p) }

type User struct {
	ID        ID        `json:"id" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Roles     []Role    `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Identifier() ID   { return u.ID }
func (u User) Validate() error  { return Validator().Struct(u) }
func (u User) FullName() string { return fullName(u.FirstName, u.LastName) }

// DisplayName is the full name when known, else the username.
func (u User) DisplayName() string {
	if n := u.FullName(); n != "" {
		return n
	}
	return u.Username
}

// HasRole reports whether r is among the user's roles.
func (u User) HasRole(r Role) bool {
	for _, x := range u.Roles {
		if x == r {
			return true
		}
	}
	return false
}

func (u User) String() string {
	return fmt.Sprintf("%s (%s)", u.Username, u.PrimaryRole())
}

// PrimaryRole is the highest priority role held by the user.
func (u User) PrimaryRole() Role {
	sorted := SortRoles(u.Roles)
	if len(sorted) == 0 {
		return ""
	}
	return sorted[0]
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
