package utils

import "math"

// SOSMultiplier is the expedited-service surcharge factor (30%)
const SOSMultiplier = 1.3

// Round2 rounds to 2 decimal places, half away from zero
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Quote is the price breakdown for a selected package. Rounding happens at
// each multiplication step, not once at the end; the chained per-step
// rounding reproduces the legacy totals exactly.
type Quote struct {
	BasePrice         float64 `json:"base_price"`
	DisplayedPrice    float64 `json:"displayed_price"` // base x surge
	SOSPrice          float64 `json:"sos_price"`       // displayed x 1.3 when SOS
	DeliverySurcharge float64 `json:"delivery_surcharge"`
	TotalPrice        float64 `json:"total_price"`
}

// ComputeQuote derives the full price breakdown. A missing package is
// represented by basePrice 0; there are no error conditions.
func ComputeQuote(basePrice, surgeMultiplier float64, sos bool, differentDelivery bool, deliverySurcharge float64) Quote {
	displayed := Round2(basePrice * surgeMultiplier)

	sosPrice := displayed
	if sos {
		sosPrice = Round2(displayed * SOSMultiplier)
	}

	delivery := 0.0
	if differentDelivery {
		delivery = deliverySurcharge
	}

	return Quote{
		BasePrice:         basePrice,
		DisplayedPrice:    displayed,
		SOSPrice:          sosPrice,
		DeliverySurcharge: delivery,
		TotalPrice:        sosPrice + delivery,
	}
}

// SOSSurcharge is the export-facing surcharge amount for a booking row:
// 30% of the base price when the SOS flag was selected, else 0.
func SOSSurcharge(basePrice float64, sos bool) float64 {
	if !sos {
		return 0
	}
	return Round2(basePrice * 0.3)
}
