package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	giveawaysCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giveaway_created_total",
		Help: "Number of giveaways created",
	})

	giveawaysEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giveaway_ended_total",
		Help: "Number of giveaways ended",
	})

	giveawayRerolls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giveaway_rerolls_total",
		Help: "Number of winner rerolls",
	})

	entryToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giveaway_entry_toggles_total",
		Help: "Entry toggle outcomes",
	}, []string{"outcome"})

	entriesAtEnd = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "giveaway_entries_at_end",
		Help:    "Entry count of giveaways at the moment they end",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	schedulerSweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giveaway_scheduler_sweeps_total",
		Help: "Completed scheduler poll sweeps",
	})
)

const (
	entryOutcomeEntered   = "entered"
	entryOutcomeWithdrawn = "withdrawn"
	entryOutcomeDenied    = "denied"
)
