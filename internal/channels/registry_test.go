// SPDX-License-Identifier: MIT

package channels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	require.Equal(t, 7, reg.Len())

	all := reg.All()
	assert.Equal(t, "1001", all[0].ID)
	for _, ch := range all {
		assert.NotEmpty(t, ch.ID)
		assert.NotEmpty(t, ch.Name)
		assert.NotEmpty(t, ch.Alias)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	reg := Default()
	all := reg.All()
	all[0].Name = "mutated"

	again := reg.All()
	assert.NotEqual(t, "mutated", again[0].Name)
}

func TestOrderIsStable(t *testing.T) {
	reg := Default()
	assert.Equal(t, reg.All(), reg.All())
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		list []Channel
	}{
		{name: "empty", list: nil},
		{name: "missing id", list: []Channel{{Name: "A", Alias: "a"}}},
		{name: "missing name", list: []Channel{{ID: "1", Alias: "a"}}},
		{name: "missing alias", list: []Channel{{ID: "1", Name: "A", Alias: "  "}}},
		{name: "duplicate id", list: []Channel{{ID: "1", Name: "A", Alias: "a"}, {ID: "1", Name: "B", Alias: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.list)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		p := filepath.Join(dir, "channels.yaml")
		content := "- id: \"2001\"\n  name: One\n  alias: one\n- id: \"2002\"\n  name: Two\n  alias: two\n"
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

		reg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, []Channel{
			{ID: "2001", Name: "One", Alias: "one"},
			{ID: "2002", Name: "Two", Alias: "two"},
		}, reg.All())
	})

	t.Run("unknown field", func(t *testing.T) {
		p := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(p, []byte("- id: \"1\"\n  name: A\n  alias: a\n  logo: x\n"), 0o600))

		_, err := Load(p)
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		p := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(p, nil, 0o600))

		_, err := Load(p)
		assert.ErrorIs(t, err, ErrEmptyRegistry)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
