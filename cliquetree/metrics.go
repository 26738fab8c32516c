// SPDX-License-Identifier: MIT

package cliquetree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Elimination operations, used as the "operation" label.
const (
	metricSeparatorMarginal = "separator_marginal"
	metricShortcut          = "shortcut"
	metricMarginal          = "marginal"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bayestree_separator_marginal_cache_hits_total",
		Help: "Separator marginal requests answered from a clique cache",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bayestree_separator_marginal_cache_misses_total",
		Help: "Separator marginal requests that had to be computed",
	})

	cachesInvalidated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bayestree_separator_marginal_invalidations_total",
		Help: "Cached separator marginals cleared by DeleteCachedShortcuts",
	})

	eliminationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bayestree_elimination_errors_total",
		Help: "Elimination strategy failures",
	}, []string{"operation"})

	eliminationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bayestree_elimination_duration_seconds",
		Help:    "Time spent in the elimination strategy",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"operation"})
)
