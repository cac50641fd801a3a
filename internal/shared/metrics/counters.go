package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de domínio expostos em /metrics
var (
	BetsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bets_placed_total",
		Help: "Apostas criadas com sucesso, por mercado.",
	}, []string{"market"})

	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bets_settled_total",
		Help: "Apostas liquidadas, por resultado.",
	}, []string{"outcome"})

	BetsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bets_rejected_total",
		Help: "Apostas recusadas antes do commit, por motivo.",
	}, []string{"reason"})
)
