package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartStockLevel(t *testing.T) {
	testcases := []struct {
		part     Part
		fallback int
		want     StockLevel
	}{
		{Part{Stock: 0}, 5, OutOfStock},
		{Part{Stock: -2}, 5, OutOfStock},
		{Part{Stock: 5}, 5, LowStock},
		{Part{Stock: 6}, 5, InStock},
		{Part{Stock: 20}, 5, InStock},
		{Part{Stock: 8, MinStock: 10}, 5, LowStock},
		{Part{Stock: 11, MinStock: 10}, 5, InStock},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.want, tc.part.StockLevel(tc.fallback), "stock=%d min=%d", tc.part.Stock, tc.part.MinStock)
	}
}

func TestValidateRejectsBadEnum(t *testing.T) {
	o := WorkOrder{ID: 1, Number: "OT-1", Status: "LOST"}
	require.Error(t, o.Validate())

	o.Status = OrderPending
	require.NoError(t, o.Validate())
}

func TestValidateAllStopsAtFirstFailure(t *testing.T) {
	parts := []Part{{ID: 1, Name: "filter"}, {ID: 2}}
	require.Error(t, ValidateAll(parts))
	require.NoError(t, ValidateAll(parts[:1]))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)
	assert.Equal(t, "42", id.String())

	_, err = ParseID("abc")
	assert.Error(t, err)
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Ruiz", User{Username: "ana", FirstName: "Ana", LastName: "Ruiz"}.DisplayName())
	assert.Equal(t, "ana", User{Username: "ana"}.DisplayName())
}

func TestFind(t *testing.T) {
	parts := []Part{{ID: 1, Name: "Belt"}, {ID: 2, Name: "Pad"}}
	p, ok := Find(parts, 2)
	require.True(t, ok)
	assert.Equal(t, "Pad", p.Name)

	_, ok = Find(parts, 9)
	assert.False(t, ok)
}
