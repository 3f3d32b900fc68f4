package load

import "sort"

// RouteOption is one candidate routing for a load, as the planner widget
// presents it.
type RouteOption struct {
	Name     string  `json:"name"`
	Miles    float64 `json:"miles"`
	Tolls    float64 `json:"tolls"`
	DriveMin int     `json:"driveMinutes"`
}

// RouteCost is a priced route option, cheapest first after comparison.
type RouteCost struct {
	RouteOption
	FuelCost  float64 `json:"fuelCost"`
	TotalCost float64 `json:"totalCost"`
	Savings   float64 `json:"savings"` // vs the most expensive option
	Cheapest  bool    `json:"cheapest"`
}

// CompareRoutes prices each option at the given truck economy and fuel price
// and orders them cheapest first, ties by name for determinism. Savings is
// measured against the most expensive option so the UI can show "save $X".
func CompareRoutes(opts []RouteOption, mpg, fuelPricePerGallon float64) []RouteCost {
	if len(opts) == 0 {
		return nil
	}
	if mpg <= 0 {
		mpg = 6.5 // typical loaded class-8 economy
	}
	out := make([]RouteCost, 0, len(opts))
	for _, o := range opts {
		fuel := round2(o.Miles / mpg * fuelPricePerGallon)
		out = append(out, RouteCost{
			RouteOption: o,
			FuelCost:    fuel,
			TotalCost:   round2(fuel + o.Tolls),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCost != out[j].TotalCost {
			return out[i].TotalCost < out[j].TotalCost
		}
		return out[i].Name < out[j].Name
	})
	worst := out[len(out)-1].TotalCost
	for i := range out {
		out[i].Savings = round2(worst - out[i].TotalCost)
	}
	out[0].Cheapest = true
	return out
}
