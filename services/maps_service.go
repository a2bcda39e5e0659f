package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// TravelInfo holds the computed logistics for a pickup
type TravelInfo struct {
	TravelTime     int     `json:"travel_time"` // minutes
	FuelCost       float64 `json:"fuel_cost"`   // euros
	OptimizedRoute string  `json:"optimized_route"`
}

// fuelCostPerMinute simulates an average fuel spend while driving
const fuelCostPerMinute = 0.25

// GetTravelTime estimates travel logistics between two addresses. This is a
// stand-in for a real distance-matrix API: the estimate is derived from the
// address string lengths, which keeps results stable for identical inputs.
func GetTravelTime(origin, destination string) TravelInfo {
	if strings.TrimSpace(destination) == "" {
		return TravelInfo{TravelTime: 0, FuelCost: 0, OptimizedRoute: "N/A"}
	}

	baseTime := 10
	variability := (len(origin) + len(destination)) % 30
	travelTime := baseTime + variability

	fuelCost := utils.Round2(float64(travelTime) * fuelCostPerMinute)
	route := fmt.Sprintf("Via E40, exit 9. Estimated %d min drive.", travelTime)

	log.Printf("Estimated travel time: %d minutes, fuel: %.2f", travelTime, fuelCost)
	return TravelInfo{TravelTime: travelTime, FuelCost: fuelCost, OptimizedRoute: route}
}
