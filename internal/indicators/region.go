package indicators

// Region display names.
const (
	RegionArabStates      = "Arab States"
	RegionEastAsiaPacific = "East Asia and the Pacific"
	RegionEuropeCentral   = "Europe and Central Asia"
	RegionLatinAmerica    = "Latin America and the Caribbean"
	RegionSouthAsia       = "South Asia"
	RegionSubSaharan      = "Sub-Saharan Africa"
	RegionDeveloped       = "Developed Region"
	RegionWorld           = "World"
)

// WorldEntity is the aggregate row that gets its own region and chart style.
const WorldEntity = "World"

var regionNames = map[string]string{
	"SA":  RegionSouthAsia,
	"SSA": RegionSubSaharan,
	"ECA": RegionEuropeCentral,
	"AS":  RegionArabStates,
	"LAC": RegionLatinAmerica,
	"EAP": RegionEastAsiaPacific,
}

// Regions returns every region a cleaned record can carry, in checklist order.
func Regions() []string {
	return []string{
		RegionArabStates,
		RegionEastAsiaPacific,
		RegionEuropeCentral,
		RegionLatinAmerica,
		RegionSouthAsia,
		RegionSubSaharan,
		RegionDeveloped,
		RegionWorld,
	}
}

// NormalizeRegion maps a raw region code to its display name.
// Unknown non-empty codes pass through unchanged.
func NormalizeRegion(country, code string) string {
	if country == WorldEntity {
		return RegionWorld
	}
	if code == "" {
		return RegionDeveloped
	}
	if name, ok := regionNames[code]; ok {
		return name
	}
	return code
}
