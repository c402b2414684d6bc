package indicators

// Band is a qualitative HDI tier. Min is inclusive; the last band is open.
type Band struct {
	Name  string
	Label string
	Min   float64
}

// Bands lists the HDI tiers from lowest to highest.
var Bands = []Band{
	{Name: "Low", Label: "< 0.550", Min: 0},
	{Name: "Medium", Label: "0.550-0.699", Min: 0.550},
	{Name: "High", Label: "0.700-0.799", Min: 0.700},
	{Name: "Very high", Label: "≥ 0.800", Min: 0.800},
}

// BandOf returns the tier an HDI value falls in.
func BandOf(hdi float64) Band {
	b := Bands[0]
	for _, cand := range Bands[1:] {
		if hdi >= cand.Min {
			b = cand
		}
	}
	return b
}
