package strategy

// Decision reason templates.
const (
	ReasonHarvestReady = "%d plot(s) ready to harvest"
	ReasonClaimLand    = "no land claimed yet, %d water available"
	ReasonExpandLand   = "expansion ROI %.2f exceeds threshold %.2f"
	ReasonPlantCrop    = "best crop %s scored %.2f, budget %d water"
	ReasonWaitNoLand   = "waiting to afford initial land claim"
	ReasonWaitNoPlots  = "no empty plots and nothing mature"
	ReasonWaitNoBudget = "reserve %d leaves no water to spend"
	ReasonWaitNoCrop   = "no affordable crop scored above zero"
	ReasonWaitNoMarket = "market data unavailable"
)
