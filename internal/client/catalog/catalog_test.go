package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8, c.Len())

	first, err := c.At(1)
	require.NoError(t, err)
	assert.Equal(t, "Running Sneaker Shoes", first.Name)
	assert.Equal(t, 1999.0, first.Price)

	byID, err := c.ByID("simple-fabric-shoe")
	require.NoError(t, err)
	assert.Equal(t, "-25%", byID.Badge)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x","name":"Runner","price":1999}]`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", `[{"name":"a","price":1}]`},
		{"missing name", `[{"id":"a","price":1}]`},
		{"negative price", `[{"id":"a","name":"a","price":-1}]`},
		{"duplicate id", `[{"id":"a","name":"a","price":1},{"id":"a","name":"b","price":2}]`},
		{"name without letters", `[{"id":"a","name":"!!!","price":1}]`},
		{"punctuation variant names", `[{"id":"a","name":"Air Max 90","price":1},{"id":"b","name":"Air-Max 90!","price":2}]`},
		{"case variant names", `[{"id":"a","name":"Кеды","price":1},{"id":"b","name":"КЕДЫ","price":2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	_, err := Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestParse_NonASCIINames(t *testing.T) {
	c, err := Parse([]byte(`[{"id":"kedy","name":"Кеды","price":1},{"id":"tufli","name":"Туфли","price":2}]`))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	a, _ := c.At(1)
	b, _ := c.At(2)
	assert.NotEqual(t, models.WishlistID(a.Name), models.WishlistID(b.Name))
}

func TestLookups_NotFound(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	_, err = c.At(0)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = c.At(c.Len() + 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = c.ByID("nope")
	assert.ErrorIs(t, err, common.ErrNotFound)

	p := c.Products()
	p[0].Name = "changed"
	first, _ := c.At(1)
	assert.NotEqual(t, "changed", first.Name)
}
