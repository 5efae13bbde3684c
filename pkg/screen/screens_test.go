package screen

import (
	"context"
	"testing"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/filter"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	users   []v1.User
	updated *v1.Part
	role    v1.Role
}

func (f *fakeBackend) ListClients(context.Context) ([]v1.Client, error)    { return nil, nil }
func (f *fakeBackend) ListVehicles(context.Context) ([]v1.Vehicle, error)  { return nil, nil }
func (f *fakeBackend) ListOrders(context.Context) ([]v1.WorkOrder, error)  { return nil, nil }
func (f *fakeBackend) ListParts(context.Context) ([]v1.Part, error)        { return nil, nil }
func (f *fakeBackend) ListPayments(context.Context) ([]v1.Payment, error)  { return nil, nil }
func (f *fakeBackend) ListUsers(context.Context) ([]v1.User, error)        { return f.users, nil }
func (f *fakeBackend) DeleteClient(context.Context, v1.ID) error           { return nil }
func (f *fakeBackend) DeleteVehicle(context.Context, v1.ID) error          { return nil }
func (f *fakeBackend) DeleteOrder(context.Context, v1.ID) error            { return nil }
func (f *fakeBackend) DeletePart(context.Context, v1.ID) error             { return nil }
func (f *fakeBackend) DeleteUser(context.Context, v1.ID) error             { return nil }

func (f *fakeBackend) UpdatePart(_ context.Context, p v1.Part) (*v1.Part, error) {
	f.updated = &p
	return &p, nil
}

func (f *fakeBackend) UpdateUserRole(_ context.Context, id v1.ID, r v1.Role) (*api.RoleUpdateResponse, error) {
	f.role = r
	return &api.RoleUpdateResponse{Message: "Role updated", User: v1.User{ID: id, Username: "x", Roles: []v1.Role{r}}}, nil
}

func TestUserSpecRoleFacet(t *testing.T) {
	users := []v1.User{
		{ID: 1, Username: "ada", Roles: []v1.Role{v1.RoleAdmin}, Active: true},
		{ID: 2, Username: "bo", Roles: []v1.Role{v1.RoleClient, v1.RoleMechanic}, Active: true},
		{ID: 3, Username: "cy", Roles: []v1.Role{v1.RoleClient}, Active: false},
	}
	spec := UserSpec()
	got := spec.Apply(users, filter.Criteria{Status: filter.All, Secondary: string(v1.RoleClient)})
	assert.Equal(t, users[1:], got)

	got = spec.Apply(users, filter.Criteria{Status: "active", Secondary: string(v1.RoleClient)})
	assert.Equal(t, users[1:2], got)
}

func TestVehicleBrandsFromCollection(t *testing.T) {
	vs := []v1.Vehicle{{Brand: "Toyota"}, {Brand: "Ford"}, {Brand: "Toyota"}, {}}
	assert.Equal(t, []string{filter.All, "Ford", "Toyota"}, VehicleSpec().Secondary.Choices(vs))
}

func TestOrderSpecSearch(t *testing.T) {
	orders := []v1.WorkOrder{
		{ID: 1, Number: "OT-100", VehiclePlate: "ABC123", Status: v1.OrderPending, Priority: v1.PriorityHigh},
		{ID: 2, Number: "OT-101", ClientName: "Marta", Status: v1.OrderCompleted, Priority: v1.PriorityLow},
	}
	spec := OrderSpec()
	assert.Equal(t, orders[:1], spec.Apply(orders, filter.Criteria{Search: "abc", Status: filter.All, Secondary: filter.All}))
	assert.Equal(t, orders[1:], spec.Apply(orders, filter.Criteria{Status: string(v1.OrderCompleted), Secondary: filter.All}))
	assert.Empty(t, spec.Apply(orders, filter.Criteria{Status: string(v1.OrderPending), Secondary: string(v1.PriorityLow)}))
}

func TestPaymentSpecMethod(t *testing.T) {
	ps := []v1.Payment{
		{ID: 1, Method: v1.MethodCash, Status: v1.PaymentCompleted},
		{ID: 2, Method: v1.MethodCard, Status: v1.PaymentCompleted},
	}
	assert.Equal(t, ps[1:], PaymentSpec().Apply(ps, filter.Criteria{Status: filter.All, Secondary: string(v1.MethodCard)}))
}

func TestToggleActive(t *testing.T) {
	b := &fakeBackend{}
	a := ToggleActive(b)
	p := v1.Part{ID: 4, Name: "Belt", Active: true}
	assert.Equal(t, "Deactivate part Belt?", a.Prompt(p))

	msg, err := a.Run(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Deactivated part Belt", msg)
	require.NotNil(t, b.updated)
	assert.False(t, b.updated.Active)
	assert.True(t, p.Active, "the loaded snapshot must not change")
}

func TestChangeRoleThroughSet(t *testing.T) {
	b := &fakeBackend{users: []v1.User{{ID: 7, Username: "luis", Roles: []v1.Role{v1.RoleMechanic}}}}
	n := &recorder{}
	set := NewSet(b, n, nil, 0)
	require.NoError(t, set.Users.Load(context.Background()))

	u := set.Users.Visible()[0]
	assert.Equal(t, "Change role of luis from MECHANIC to RECEPTIONIST?", set.ChangeRole.Prompt(u))
	require.NoError(t, set.Users.Perform(context.Background(), set.ChangeRole, u))
	assert.Equal(t, v1.RoleReceptionist, b.role)
	assert.Equal(t, []Notification{{Level: LevelSuccess, Message: "Role updated"}}, n.all())
}
