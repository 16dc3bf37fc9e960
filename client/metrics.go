// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutboundInFlightGauge         = "outbound_inflight"
	OutboundRequestDuration       = "outbound_request_duration_seconds"
	OutboundRequestCounter        = "outbound_requests"
	OutboundDroppedMessageCounter = "outbound_dropped_messages"
	OutboundRetries               = "outbound_retries"
)

// OutboundMeasures is the set of metrics recorded for requests sent to the backend.
type OutboundMeasures struct {
	InFlight        prometheus.Gauge
	RequestDuration prometheus.Observer
	RequestCounter  *prometheus.CounterVec
	DroppedMessages prometheus.Counter
	Retries         prometheus.Counter
}

// NewOutboundMeasures creates and registers the outbound metrics.  A nil Registerer
// yields measures that are created but not registered anywhere.
func NewOutboundMeasures(r prometheus.Registerer) *OutboundMeasures {
	om := &OutboundMeasures{
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: OutboundInFlightGauge,
			Help: "The number of active, in-flight requests to the backend",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    OutboundRequestDuration,
			Help:    "The durations of requests to the backend",
			Buckets: []float64{.25, .5, 1, 2.5, 5, 10},
		}),
		RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: OutboundRequestCounter,
			Help: "The count of requests to the backend",
		}, []string{"code"}),
		DroppedMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: OutboundDroppedMessageCounter,
			Help: "The total count of requests that failed at the transport level",
		}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: OutboundRetries,
			Help: "The total count of HTTP retries",
		}),
	}

	if r != nil {
		r.MustRegister(
			om.InFlight,
			om.RequestDuration.(prometheus.Collector),
			om.RequestCounter,
			om.DroppedMessages,
			om.Retries,
		)
	}

	return om
}

func InstrumentOutboundDuration(obs prometheus.Observer, next http.RoundTripper) promhttp.RoundTripperFunc {
	return promhttp.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		start := time.Now()
		response, err := next.RoundTrip(request)
		if err == nil {
			obs.Observe(time.Since(start).Seconds())
		}

		return response, err
	})
}

func InstrumentOutboundCounter(counter *prometheus.CounterVec, next http.RoundTripper) promhttp.RoundTripperFunc {
	return promhttp.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		response, err := next.RoundTrip(request)
		if err == nil {
			// use "200" as the result from a 0 or negative status code, to be consistent with other golang APIs
			labels := prometheus.Labels{"code": "200"}
			if response.StatusCode > 0 {
				labels["code"] = strconv.Itoa(response.StatusCode)
			}

			counter.With(labels).Inc()
		}

		return response, err
	})
}

func InstrumentOutboundDroppedMessages(counter prometheus.Counter, next http.RoundTripper) promhttp.RoundTripperFunc {
	return promhttp.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
		response, err := next.RoundTrip(request)
		if err != nil {
			counter.Inc()
		}

		return response, err
	})
}

// DecorateRoundTripper wraps a round tripper with all of the outbound measures.
func DecorateRoundTripper(om *OutboundMeasures, roundTripper http.RoundTripper) http.RoundTripper {
	if om == nil {
		return roundTripper
	}

	return InstrumentOutboundCounter(om.RequestCounter,
		InstrumentOutboundDuration(om.RequestDuration,
			InstrumentOutboundDroppedMessages(om.DroppedMessages,
				promhttp.InstrumentRoundTripperInFlight(om.InFlight, roundTripper))))
}
