package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsFold(t *testing.T) {
	testcases := []struct {
		haystack, needle string
		want             bool
	}{
		{"Brake Pad", "brake", true},
		{"Brake Pad", "PAD", true},
		{"Brake Pad", "ke p", true},
		{"Brake Pad", "rotor", false},
		{"anything", "", true},
		{"", "x", false},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.want, ContainsFold(tc.haystack, tc.needle), "%q in %q", tc.needle, tc.haystack)
	}
}

func TestAnyContainsFold(t *testing.T) {
	fields := []string{"OIL-001", "Oil filter", "Bosch"}
	assert.True(t, AnyContainsFold(fields, "bosch"))
	assert.True(t, AnyContainsFold(fields, "oil-0"))
	assert.False(t, AnyContainsFold(fields, "mann"))
	assert.True(t, AnyContainsFold(nil, ""))
}

func TestTruncateWithTail(t *testing.T) {
	assert.Equal(t, "abc…", TruncateWithTail("abcdefgh", 4, Ellipsis))
	assert.Equal(t, "abc", TruncateWithTail("abc", 10, Ellipsis))
}
