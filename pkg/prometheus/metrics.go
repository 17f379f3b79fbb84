// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package prometheus

import (
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// CollectionLabel names the label that distinguishes collections sharing
// one set of instruments.
const CollectionLabel = "collection"

// MakeMetrics returns Prometheus implementations of an operation counter and
// an operation latency summary, both labelled by collection and method and
// registered with the default registry. Calls with the same namespace and
// subsystem share the collectors registered by the first call.
//
//	counter, latency := prometheus.MakeMetrics("shop", "repository")
//	orders := counter.With(prometheus.CollectionLabel, "orders")
func MakeMetrics(namespace, subsystem string) (*kitprometheus.Counter, *kitprometheus.Summary) {
	labels := []string{CollectionLabel, "method"}
	counter := register(stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_count",
		Help:      "Number of repository operations performed.",
	}, labels))
	latency := register(stdprometheus.NewSummaryVec(stdprometheus.SummaryOpts{
		Namespace:  namespace,
		Subsystem:  subsystem,
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		Name:       "operation_latency_seconds",
		Help:       "Total duration of repository operations in seconds.",
	}, labels))

	return kitprometheus.NewCounter(counter), kitprometheus.NewSummary(latency)
}

// register returns the collector already registered under the same
// descriptor when there is one. Conflicting registrations panic.
func register[T stdprometheus.Collector](c T) T {
	err := stdprometheus.Register(c)
	if err == nil {
		return c
	}
	if are, ok := err.(stdprometheus.AlreadyRegisteredError); ok {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}
