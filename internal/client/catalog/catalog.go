// Package catalog loads the product cards shown by the storefront. The
// default catalog is embedded; a JSON file with the same shape can replace it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/common"
)

//go:embed products.json
var embedded []byte

type Catalog struct {
	products []models.Product
	byID     map[string]int
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	data := embedded
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a catalog: every product needs an id and a
// name with at least one letter or digit, ids and wishlist ids are unique,
// and prices are not negative.
func Parse(data []byte) (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{products: products, byID: make(map[string]int, len(products))}
	wished := make(map[string]string, len(products))
	for i, p := range products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			return nil, fmt.Errorf("%w: product #%d has no id", common.ErrValidation, i+1)
		case strings.TrimSpace(p.Name) == "":
			return nil, fmt.Errorf("%w: product %q has no name", common.ErrValidation, p.ID)
		case !models.HasWishlistID(p.Name):
			return nil, fmt.Errorf("%w: product %q name has no letters or digits", common.ErrValidation, p.ID)
		case p.Price < 0:
			return nil, fmt.Errorf("%w: product %q has a negative price", common.ErrValidation, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", common.ErrValidation, p.ID)
		}
		c.byID[p.ID] = i

		wid := models.WishlistID(p.Name)
		if other, dup := wished[wid]; dup {
			return nil, fmt.Errorf("%w: products %q and %q share wishlist id %q", common.ErrValidation, other, p.ID, wid)
		}
		wished[wid] = p.ID
	}
	return c, nil
}

// Products returns the cards in display order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) ByID(id string) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %q: %w", id, common.ErrNotFound)
	}
	return c.products[i], nil
}

// At returns the product shown at 1-based position n.
func (c *Catalog) At(n int) (models.Product, error) {
	if n < 1 || n > len(c.products) {
		return models.Product{}, fmt.Errorf("product #%d: %w", n, common.ErrNotFound)
	}
	return c.products[n-1], nil
}
