package farm

// Grid cell codes returned by /land
const (
	CellEmpty   = 0
	CellGrowing = 1
	// Codes >= 2 are the mature crop's numeric ID.
)

// Game constants
const (
	// MaxWaterCapacity is the server's water storage cap.
	MaxWaterCapacity = 1024

	// LandClaimCost is the water cost of the initial land claim.
	LandClaimCost = 5

	// UnknownCropType marks an occupied plot whose crop the market data
	// could not identify. It still harvests once the server reports maturity.
	UnknownCropType = "unknown"
)
