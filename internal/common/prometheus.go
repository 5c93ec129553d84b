package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	QuestCompletedTotal        = "quest_completed_total"
	QuestVerificationTotal     = "quest_verification_total"
	NFTClaimedTotal            = "nft_claimed_total"
	WalletLookupDegradedTotal  = "wallet_lookup_degraded_total"
	ActiveSessions             = "active_sessions"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: ActiveSessions,
			Help: "Number of opened quest board sessions",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		QuestCompletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QuestCompletedTotal,
			Help: "Count of completed quests",
		}, []string{"category"}),
		QuestVerificationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QuestVerificationTotal,
			Help: "Count of quest verifications",
		}, []string{"category", "success"}),
		NFTClaimedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NFTClaimedTotal,
			Help: "Count of claimed NFTs",
		}, []string{"rarity"}),
		WalletLookupDegradedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: WalletLookupDegradedTotal,
			Help: "Count of wallet lookups answered with synthetic data",
		}, []string{"reason"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)
