package app

import (
	"context"
	"testing"
	"time"

	"github.com/byxorna/wrench/pkg/screen"
	v1 "github.com/byxorna/wrench/pkg/types/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTabsRejectsUnknownScreen(t *testing.T) {
	set := screen.NewSet(&fakeBackend{}, nil, nil, 5)
	_, err := NewTabs(set, []string{screen.Parts, "invoices"}, 5)
	require.Error(t, err)

	tabs, err := NewTabs(set, screen.Names, 5)
	require.NoError(t, err)
	require.Len(t, tabs, len(screen.Names))
	for i, name := range screen.Names {
		assert.Equal(t, name, tabs[i].Name())
		assert.Len(t, tabs[i].Widths(), len(tabs[i].Headers()))
	}

	users, ok := TabByName(tabs, screen.Users)
	require.True(t, ok)
	status, secondary := users.Facets()
	assert.Equal(t, "status", status)
	assert.Equal(t, "role", secondary)

	_, ok = TabByName(tabs, "invoices")
	assert.False(t, ok)
}

func TestPartRows(t *testing.T) {
	b := &fakeBackend{parts: []v1.Part{
		{ID: 1, Code: "BLT-1", Name: "Belt", Brand: "Gates", Stock: 1200, Price: decimal.RequireFromString("12.5"), Active: true},
		{ID: 2, Name: "Pad", Stock: 2, MinStock: 4},
	}}
	set := screen.NewSet(b, nil, nil, 5)
	tabs, err := NewTabs(set, []string{screen.Parts}, 5)
	require.NoError(t, err)
	require.NoError(t, tabs[0].Load(context.Background()))

	assert.Equal(t, [][]string{
		{"BLT-1", "Belt", "Gates", "1,200", "in-stock", "$12.50", "yes"},
		{"-", "Pad", "-", "2", "low-stock", "$0.00", "no"},
	}, tabs[0].Rows())
}

func TestCellFormatting(t *testing.T) {
	assert.Equal(t, "Toyota Corolla (2019)", describeVehicle(v1.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2019}))
	assert.Equal(t, "-", describeVehicle(v1.Vehicle{}))
	assert.Equal(t, "ADMIN, CLIENT", joinRoles([]v1.Role{v1.RoleClient, v1.RoleAdmin, v1.RoleClient}))
	assert.Equal(t, "-", whenPtr(nil))
	assert.Equal(t, "-", when(time.Time{}))
	assert.Equal(t, "3 hours ago", when(time.Now().Add(-3*time.Hour)))
}

func TestActionByID(t *testing.T) {
	b := &fakeBackend{users: []v1.User{{ID: 7, Username: "luis", Roles: []v1.Role{v1.RoleMechanic}}}}
	set := screen.NewSet(b, nil, nil, 5)
	tabs, err := NewTabs(set, []string{screen.Users, screen.Payments}, 5)
	require.NoError(t, err)
	require.NoError(t, tabs[0].Load(context.Background()))

	p, err := tabs[0].ActionByID(ActionRole, 7)
	require.NoError(t, err)
	assert.Equal(t, "Change role of luis from MECHANIC to RECEPTIONIST?", p.Prompt)
	require.NoError(t, p.Run(context.Background()))

	_, err = tabs[0].ActionByID(ActionRole, 8)
	assert.ErrorIs(t, err, ErrUnknownRecord)

	_, err = tabs[0].Action(ActionDelete, 4)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = tabs[1].Action(ActionDelete, 0)
	assert.ErrorIs(t, err, ErrNoSelection)
}
