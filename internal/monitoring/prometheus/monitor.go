// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	decisions              *prometheus.CounterVec

	logger logging.LoggerInterface
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_time_seconds",
			Help: "Response time of HTTP requests by route, method and status.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"route", "method", "status"},
	)

	m.dependencyAvailability = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_availability",
			Help: "Availability of downstream dependencies (1 up, 0 down).",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"dependency"},
	)

	m.decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permission_decisions_total",
			Help: "Permission evaluations by outcome and resolution source.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
		[]string{"allowed", "source"},
	)

	prometheus.MustRegister(m.responseTime, m.dependencyAvailability, m.decisions)

	return m
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, seconds float64) error {
	metric, err := m.responseTime.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Observe(seconds)
	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, available float64) error {
	metric, err := m.dependencyAvailability.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Set(available)
	return nil
}

func (m *Monitor) IncDecisionMetric(tags map[string]string) error {
	metric, err := m.decisions.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Inc()
	return nil
}
