package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")
	f := NewFile(path)

	_, ok, err := f.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set("theme", "dark"))
	require.NoError(t, f.Set("other", "x"))

	v, ok, err := NewFile(path).Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "theme: dark")
}

func TestFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))
	_, _, err := NewFile(path).Get("theme")
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	m := NewMemory(map[string]string{"theme": "light"})
	v, ok, _ := m.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	require.NoError(t, m.Set("theme", "dark"))
	v, _, _ = m.Get("theme")
	assert.Equal(t, "dark", v)
}
