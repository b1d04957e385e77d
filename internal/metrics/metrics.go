package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transport metrics
var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAPIRequests,
			Help: HelpTextAPIRequests,
		},
		[]string{LabelEndpoint, LabelResult},
	)

	APIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAPIRetries,
			Help: HelpTextAPIRetries,
		},
		[]string{LabelEndpoint},
	)

	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokenRefreshes,
			Help: HelpTextTokenRefreshes,
		},
		[]string{LabelResult},
	)

	TokenExpirySeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameTokenExpirySecs,
			Help: HelpTextTokenExpirySecs,
		},
	)
)

// Farm activity metrics
var (
	WaterCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWaterCollected,
			Help: HelpTextWaterCollected,
		},
	)

	CropsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsPlanted,
			Help: HelpTextCropsPlanted,
		},
		[]string{LabelCrop},
	)

	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsHarvested,
			Help: HelpTextCropsHarvested,
		},
		[]string{LabelCrop},
	)

	LandExpansions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLandExpansions,
			Help: HelpTextLandExpansions,
		},
	)

	CreditsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCreditsEarned,
			Help: HelpTextCreditsEarned,
		},
	)

	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDecisions,
			Help: HelpTextDecisions,
		},
		[]string{LabelKind},
	)
)

// Snapshot gauges, updated whenever the shared farm state changes
var (
	WaterLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWaterLevel,
			Help: HelpTextWaterLevel,
		},
	)

	CreditsBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCreditsBalance,
			Help: HelpTextCreditsBalance,
		},
	)

	EmptyPlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEmptyPlots,
			Help: HelpTextEmptyPlots,
		},
	)

	MaturePlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameMaturePlots,
			Help: HelpTextMaturePlots,
		},
	)
)
