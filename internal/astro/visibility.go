package astro

// Visibility selects which categories are displayed and whether the catalog
// is consulted. Category i is bit 1 << i.
type Visibility uint32

const (
	// VisibilityCatalog enables catalog lookups on arrival in a system.
	VisibilityCatalog Visibility = 0x1000

	// VisibilityDefault shows Earth-like worlds only.
	VisibilityDefault Visibility = 1 << EarthLike

	// VisibilityAll shows every category and consults the catalog.
	VisibilityAll Visibility = 1<<NumCategories - 1 | VisibilityCatalog
)

// Shows reports whether a category is enabled.
func (v Visibility) Shows(id CategoryID) bool {
	return v&(1<<uint(id)) != 0
}

// Catalog reports whether catalog lookups are enabled.
func (v Visibility) Catalog() bool {
	return v&VisibilityCatalog != 0
}

// Toggle flips a category's bit.
func (v Visibility) Toggle(id CategoryID) Visibility {
	return v ^ 1<<uint(id)
}

// ToggleCatalog flips the catalog bit.
func (v Visibility) ToggleCatalog() Visibility {
	return v ^ VisibilityCatalog
}

// Enabled returns the enabled categories in display order.
func (v Visibility) Enabled() []Category {
	var out []Category
	for _, c := range Categories {
		if v.Shows(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
