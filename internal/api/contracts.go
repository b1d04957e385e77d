package api

// Typed request/response contracts per endpoint. Responses are decoded
// strictly: unknown fields and failed field validation are treated as a
// rejected-class parse error at the boundary, never silently ignored.

// RegisterRequest creates a new farmer. One-time call, never retried.
type RegisterRequest struct {
	PlayerName string `json:"playername"`
}

// RegisterResponse returns the issued client credentials.
type RegisterResponse struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
	PlayerName   string `json:"playername"`
	Message      string `json:"message"`
}

// TokenRequest exchanges client credentials for an access token.
type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
}

// TokenResponse carries the bearer token and its lifetime in seconds.
type TokenResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in" validate:"gte=0"`
}

// CollectResponse reports the water level after a collection.
type CollectResponse struct {
	Score   int    `json:"score" validate:"gte=0"`
	Message string `json:"message"`
}

// ProfileResponse is the farmer's account state. Score is the water level.
type ProfileResponse struct {
	PlayerName   string  `json:"playername"`
	Score        int     `json:"score" validate:"gte=0"`
	Credits      float64 `json:"credits" validate:"gte=0"`
	TotalCalls   int     `json:"totalCalls"`
	RegisteredAt string  `json:"registeredAt"`
}

// LandResponse describes the farm grid. Cell codes in LandData:
// 0 empty dirt, 1 growing sprout, >=2 a mature crop's numeric ID.
type LandResponse struct {
	LandClaimed       bool    `json:"landClaimed"`
	GridSize          int     `json:"gridSize" validate:"gte=0"`
	LandTiles         int     `json:"landTiles" validate:"gte=0"`
	LandData          [][]int `json:"landData"`
	NextExpansionCost int     `json:"nextExpansionCost" validate:"gte=0"`
}

// CropPayload is one crop's live market entry.
type CropPayload struct {
	ID              int     `json:"id"`
	Type            string  `json:"type" validate:"required"`
	Name            string  `json:"name"`
	Emoji           string  `json:"emoji"`
	MarketPrice     float64 `json:"marketPrice" validate:"gte=0"`
	GrowTimeMinutes int     `json:"growTimeMinutes" validate:"gte=0"`
	WaterCost       int     `json:"waterCost" validate:"gte=0"`
	Efficiency      float64 `json:"efficiency" validate:"gte=0"`
}

// MarketInfoPayload carries server-computed market aggregates.
type MarketInfoPayload struct {
	AveragePrice   float64 `json:"averagePrice" validate:"gte=0"`
	HighestPrice   float64 `json:"highestPrice" validate:"gte=0"`
	BestEfficiency float64 `json:"bestEfficiency" validate:"gte=0"`
}

// CropsResponse is the full market snapshot, fully replaced per query.
type CropsResponse struct {
	Crops      []CropPayload     `json:"crops" validate:"required,dive"`
	MarketInfo MarketInfoPayload `json:"marketInfo"`
}

// ClaimLandResponse confirms the initial land claim.
type ClaimLandResponse struct {
	Message string `json:"message"`
	Score   int    `json:"score" validate:"gte=0"`
}

// ExpandLandResponse confirms a land expansion.
type ExpandLandResponse struct {
	Message  string `json:"message"`
	Score    int    `json:"score" validate:"gte=0"`
	GridSize int    `json:"gridSize" validate:"gte=0"`
}

// PlantRequest plants a crop at a grid position.
type PlantRequest struct {
	CropType string `json:"cropType"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

// PlantResponse confirms a planting and reports the water level after cost.
type PlantResponse struct {
	Message string `json:"message"`
	Score   int    `json:"score" validate:"gte=0"`
}

// HarvestRequest harvests the crop at a grid position.
type HarvestRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// HarvestResponse confirms a harvest and reports the credits earned.
type HarvestResponse struct {
	Message       string  `json:"message"`
	CreditsEarned float64 `json:"creditsEarned" validate:"gte=0"`
	Credits       float64 `json:"credits" validate:"gte=0"`
}

// LeaderboardEntry is one ranked farmer.
type LeaderboardEntry struct {
	PlayerName string `json:"playername" validate:"required"`
	Score      int    `json:"score"`
}

// LeaderboardResponse is the current ranking.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard" validate:"dive"`
}

// errorBody is the server's error envelope on non-2xx responses. Decoded
// leniently: error payload shape is not part of the strict contract.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

func (e errorBody) text() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Error != "":
		return e.Error
	case e.Message != "":
		return e.Message
	}
	return ""
}
