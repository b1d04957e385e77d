package metrics

// Metric names
const (
	MetricNameAPIRequests     = "harvestbot_api_requests_total"
	MetricNameAPIRetries      = "harvestbot_api_retries_total"
	MetricNameTokenRefreshes  = "harvestbot_token_refreshes_total"
	MetricNameWaterCollected  = "harvestbot_water_collected_total"
	MetricNameCropsPlanted    = "harvestbot_crops_planted_total"
	MetricNameCropsHarvested  = "harvestbot_crops_harvested_total"
	MetricNameLandExpansions  = "harvestbot_land_expansions_total"
	MetricNameCreditsEarned   = "harvestbot_credits_earned_total"
	MetricNameDecisions       = "harvestbot_strategy_decisions_total"
	MetricNameWaterLevel      = "harvestbot_water_level"
	MetricNameCreditsBalance  = "harvestbot_credits_balance"
	MetricNameEmptyPlots      = "harvestbot_plots_empty"
	MetricNameMaturePlots     = "harvestbot_plots_mature"
	MetricNameTokenExpirySecs = "harvestbot_token_expiry_seconds"
)

// Help texts
const (
	HelpTextAPIRequests     = "API requests issued, by endpoint and result"
	HelpTextAPIRetries      = "Transient-failure retries issued, by endpoint"
	HelpTextTokenRefreshes  = "Token exchange attempts, by result"
	HelpTextWaterCollected  = "Successful water collections"
	HelpTextCropsPlanted    = "Crops planted, by crop type"
	HelpTextCropsHarvested  = "Crops harvested, by crop type"
	HelpTextLandExpansions  = "Land claims and expansions"
	HelpTextCreditsEarned   = "Credits earned from harvests"
	HelpTextDecisions       = "Strategy decisions executed, by kind"
	HelpTextWaterLevel      = "Last confirmed water level"
	HelpTextCreditsBalance  = "Last confirmed credit balance"
	HelpTextEmptyPlots      = "Empty plots in the last confirmed snapshot"
	HelpTextMaturePlots     = "Mature plots in the last confirmed snapshot"
	HelpTextTokenExpirySecs = "Seconds until the cached access token expires"
)

// Label names
const (
	LabelEndpoint = "endpoint"
	LabelResult   = "result"
	LabelCrop     = "crop"
	LabelKind     = "kind"
)

// Label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)
