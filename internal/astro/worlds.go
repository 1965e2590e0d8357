package astro

// CategoryID identifies a world category. Its value is the category's
// position in Categories and its visibility bit is 1 << id.
type CategoryID int

const (
	MetalRich CategoryID = iota
	EarthLike
	WaterWorld
	AmmoniaWorld
	ClassIIGiant
	Terraformable
	Organic

	NumCategories = int(Organic) + 1
)

// matchPrefixLen is how many leading characters of a classification string
// are compared against a category's match key.
const matchPrefixLen = 5

// Category is one world type with its black-body temperature band.
type Category struct {
	ID   CategoryID
	Name string

	// High is the equilibrium temperature of the near bound in kelvin.
	// Zero means the near bound is the star's surface.
	High float64

	// Low is the equilibrium temperature of the far bound in kelvin.
	Low float64

	// MatchKey is the catalog classification this category matches by prefix.
	MatchKey string
}

// HasHigh reports whether the category defines a near-bound temperature.
func (c Category) HasHigh() bool {
	return c.High > 0
}

// Bit returns the category's visibility bit.
func (c Category) Bit() uint32 {
	return 1 << uint(c.ID)
}

// Categories is the display-ordered category table.
var Categories = [NumCategories]Category{
	{ID: MetalRich, Name: "Metal-Rich", High: 0, Low: 1103.0, MatchKey: "Metal-rich body"},
	{ID: EarthLike, Name: "Earth-Like", High: 278.0, Low: 227.0, MatchKey: "Earth-like world"},
	{ID: WaterWorld, Name: "Water", High: 307.0, Low: 156.0, MatchKey: "Water world"},
	{ID: AmmoniaWorld, Name: "Ammonia", High: 193.0, Low: 117.0, MatchKey: "Ammonia world"},
	{ID: ClassIIGiant, Name: "Class II Giant", High: 250.0, Low: 150.0, MatchKey: "Class II gas giant"},
	{ID: Terraformable, Name: "Terraformable", High: 318.0, Low: 223.0, MatchKey: "terraformable"},
	{ID: Organic, Name: "Organic", High: 500.0, Low: 200.0, MatchKey: "Organic POI"},
}

// Get returns the table entry for id.
func (id CategoryID) Get() Category {
	return Categories[id]
}

// String returns the category name.
func (id CategoryID) String() string {
	if id < 0 || int(id) >= NumCategories {
		return "Unknown"
	}
	return Categories[id].Name
}

// journalClasses maps live-event planet classes to catalog naming.
var journalClasses = map[string]string{
	"Earthlike body":              "Earth-like world",
	"Water world":                 "Water world",
	"Ammonia world":               "Ammonia world",
	"Metal rich body":             "Metal-rich body",
	"Sudarsky class II gas giant": "Class II gas giant",
}

// CatalogClass translates a live-event planet class to its catalog name.
// Unknown classes are returned unchanged.
func CatalogClass(planetClass string) string {
	if c, ok := journalClasses[planetClass]; ok {
		return c
	}
	return planetClass
}

func prefix(s string) string {
	if len(s) > matchPrefixLen {
		return s[:matchPrefixLen]
	}
	return s
}

// MatchClass returns the categories whose match key shares the first five
// characters of the catalog classification. Terraformable never matches here;
// it is recognised from the terraforming state instead.
func MatchClass(class string) []CategoryID {
	if class == "" {
		return nil
	}
	p := prefix(class)
	var ids []CategoryID
	for _, c := range Categories {
		if c.ID == Terraformable {
			continue
		}
		if prefix(c.MatchKey) == p {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// MatchPlanetClass is MatchClass for live-event planet classes.
func MatchPlanetClass(planetClass string) []CategoryID {
	return MatchClass(CatalogClass(planetClass))
}

// Terraforming state values that mark a body as terraformable.
const (
	JournalTerraformable = "Terraformable"
	CatalogTerraformable = "Candidate for terraforming"
)
