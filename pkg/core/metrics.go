//
//  Copyright © Manetu Inc. All rights reserved.
//

package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dqengine",
		Name:      "evaluations_total",
		Help:      "Number of filing evaluations performed.",
	})

	metricViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dqengine",
		Name:      "violations_total",
		Help:      "Number of violations reported, by rule id.",
	}, []string{"rule"})

	metricInconclusive = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dqengine",
		Name:      "inconclusive_total",
		Help:      "Number of inconclusive rule outcomes, by rule id and reason class.",
	}, []string{"rule", "reason"})

	metricEvalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dqengine",
		Name:      "evaluation_duration_seconds",
		Help:      "Wall-clock duration of filing evaluations.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)
