package bands

import "slices"

// Product describes a blind type and which fabric categories and price groups it is sold in.
type Product struct {
	Name       string
	Categories []string
	Groups     []Group
}

// AllowsCategory reports whether category is offered for the product.
func (p Product) AllowsCategory(category string) bool {
	return slices.Contains(p.Categories, category)
}

// AllowsGroup reports whether g is offered for the product.
func (p Product) AllowsGroup(g Group) bool {
	return slices.Contains(p.Groups, g)
}

const (
	CategoryScreen   = "Screen"
	CategoryBlockout = "Blockout"
)

var products = []Product{
	{
		Name:       "Roller Blinds",
		Categories: []string{CategoryScreen, CategoryBlockout},
		Groups:     []Group{Group1, Group2, Group3, Group4},
	},
	{
		Name:       "Roman Blinds",
		Categories: []string{CategoryBlockout, "Coated Fabric", "Fabric with Lining"},
		Groups:     []Group{Group3, Group4},
	},
	{
		Name:       "Vertical Blinds",
		Categories: []string{CategoryBlockout},
		Groups:     []Group{Group1, Group2, Group3, Group4},
	},
}

// Products returns the catalogue in display order.
func Products() []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = Product{
			Name:       p.Name,
			Categories: slices.Clone(p.Categories),
			Groups:     slices.Clone(p.Groups),
		}
	}
	return out
}

// LookupProduct finds a product by its exact name.
func LookupProduct(name string) (Product, bool) {
	for _, p := range Products() {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}

// LocationOther is the location choice that requires a free-text name.
const LocationOther = "Other"

// Locations is the room list offered on the item form.
var Locations = []string{
	"Living Room",
	"Lounge",
	"Dining",
	"Kitchen",
	"Master Bedroom",
	"Bedroom 2",
	"Bedroom 3",
	"Bedroom 4",
	"Study",
	"Family",
	"Rumpus",
	"Bathroom",
	"Laundry",
	LocationOther,
}
