package domain

import "time"

// CropInfo is one crop's live market entry.
type CropInfo struct {
	ID              int     `json:"id"`
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	MarketPrice     float64 `json:"marketPrice"`
	GrowTimeMinutes int     `json:"growTimeMinutes"`
	WaterCost       int     `json:"waterCost"`
	Efficiency      float64 `json:"efficiency"`
}

// GrowTime returns the crop's grow time as a duration.
func (c CropInfo) GrowTime() time.Duration {
	return time.Duration(c.GrowTimeMinutes) * time.Minute
}

// CreditsPerHour is the crop's revenue rate ignoring water cost.
func (c CropInfo) CreditsPerHour() float64 {
	if c.GrowTimeMinutes <= 0 {
		return 0
	}
	return c.MarketPrice * 60 / float64(c.GrowTimeMinutes)
}

// MarketSnapshot is one server-confirmed view of crop pricing. Prices are
// fully replaced by the server each query, so snapshots are immutable once
// fetched and never merged incrementally.
type MarketSnapshot struct {
	Crops             []CropInfo `json:"crops"`
	AveragePrice      float64    `json:"averagePrice"`
	HighestPrice      float64    `json:"highestPrice"`
	AverageEfficiency float64    `json:"averageEfficiency"`
	BestEfficiency    float64    `json:"bestEfficiency"`
	FetchedAt         time.Time  `json:"fetchedAt"`
}

// CropByType looks up a crop by its type key.
func (m MarketSnapshot) CropByType(cropType string) (CropInfo, bool) {
	for _, c := range m.Crops {
		if c.Type == cropType {
			return c, true
		}
	}
	return CropInfo{}, false
}

// CropByID looks up a crop by its numeric grid-cell ID.
func (m MarketSnapshot) CropByID(id int) (CropInfo, bool) {
	for _, c := range m.Crops {
		if c.ID == id {
			return c, true
		}
	}
	return CropInfo{}, false
}
