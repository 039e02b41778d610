package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PollOK    = "ok"
	PollError = "error"
	PollStale = "stale"
)

// Campaign reads
var (
	Polls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presale_minter_polls_total",
			Help: "Campaign state reads by result",
		},
		[]string{"result"},
	)

	PollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "presale_minter_poll_duration_seconds",
		Help:    "Time taken to read the campaign state",
		Buckets: prometheus.DefBuckets,
	})
)

// Transactions
var (
	Transactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presale_minter_transactions_total",
			Help: "Submitted transactions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	TransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presale_minter_transaction_duration_seconds",
			Help:    "Time from submission until confirmation or failure",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"kind"},
	)
)

// Campaign state
var (
	MintedCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "presale_minter_minted_count",
		Help: "Number of minted tokens as of the last applied read",
	})

	PresaleStarted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "presale_minter_presale_started",
		Help: "1 once the presale was observed as started",
	})
)
