package model

import "math"

// PurchaseEstimate holds the results of a carton purchasing calculation.
type PurchaseEstimate struct {
	TotalItemVolume    int     `json:"total_item_volume"`    // Total volume of all items (cubic mm)
	TotalLiters        float64 `json:"total_liters"`         // Total item volume in liters
	CartonVolume       int     `json:"carton_volume"`        // Interior volume of one carton (cubic mm)
	CartonsNeededExact float64 `json:"cartons_needed_exact"` // Exact fractional number of cartons
	CartonsNeededMin   int     `json:"cartons_needed_min"`   // Volume lower bound (ceiling of exact)
	CartonsWithSlack   int     `json:"cartons_with_slack"`   // Recommended cartons including slack factor
	SlackPercent       float64 `json:"slack_percent"`        // Slack factor applied (e.g., 20 for 20%)
	EstimatedCost      float64 `json:"estimated_cost"`       // Total cost if pricing available
	PricePerCarton     float64 `json:"price_per_carton"`     // Price used for estimation
}

// cubicMMPerLiter is the number of cubic millimeters in one liter.
const cubicMMPerLiter = 1_000_000.0

// CalculatePurchaseEstimate computes how many cartons to buy for a given item
// list. The volume bound is a hard floor; real packings rarely reach it, so a
// slack percentage covers the geometric waste the optimizer cannot avoid.
func CalculatePurchaseEstimate(items []Item, carton Carton, slackPercent, pricePerCarton float64) PurchaseEstimate {
	var totalVolume int
	for _, it := range items {
		totalVolume += it.Volume() * it.Quantity
	}

	cartonVolume := carton.Volume()
	if cartonVolume <= 0 {
		return PurchaseEstimate{
			TotalItemVolume: totalVolume,
			TotalLiters:     float64(totalVolume) / cubicMMPerLiter,
			SlackPercent:    slackPercent,
		}
	}

	exact := float64(totalVolume) / float64(cartonVolume)
	minCartons := int(math.Ceil(exact))

	slackFactor := 1.0 + (slackPercent / 100.0)
	withSlack := int(math.Ceil(exact * slackFactor))
	if withSlack < minCartons {
		withSlack = minCartons
	}

	return PurchaseEstimate{
		TotalItemVolume:    totalVolume,
		TotalLiters:        float64(totalVolume) / cubicMMPerLiter,
		CartonVolume:       cartonVolume,
		CartonsNeededExact: exact,
		CartonsNeededMin:   minCartons,
		CartonsWithSlack:   withSlack,
		SlackPercent:       slackPercent,
		EstimatedCost:      float64(withSlack) * pricePerCarton,
		PricePerCarton:     pricePerCarton,
	}
}
