// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"net/http"
	"time"

	"github.com/medistat/webclient/origin"
	"github.com/medistat/webclient/xhttp"
	"go.uber.org/zap"
)

const (
	DefaultWorkers   = 10
	DefaultQueueSize = 100
)

// Config controls the goroutine pool behind a Dispatcher.
type Config struct {
	// Workers is the number of pooled goroutines that send requests.
	// If this value is less than one (1), DefaultWorkers is used.
	Workers int `json:"workers,omitempty" mapstructure:"workers"`

	// QueueSize is the maximum number of requests waiting for a worker.
	// If this value is zero or negative, DefaultQueueSize is used.
	QueueSize int `json:"queueSize,omitempty" mapstructure:"queueSize"`

	// Period is the interval between requests on EACH worker.  If this
	// value is zero or negative, the workers will not be rate-limited.
	Period time.Duration `json:"period,omitempty" mapstructure:"period"`
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return DefaultWorkers
}

func (c Config) queueSize() int {
	if c.QueueSize > 0 {
		return c.QueueSize
	}

	return DefaultQueueSize
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithConfig sets the pool configuration.
func WithConfig(c Config) Option {
	return func(d *Dispatcher) {
		d.config = c
	}
}

// WithClient sets the HTTP client.  If unset or nil, http.DefaultClient is used.
func WithClient(c xhttp.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.client = c
		} else {
			d.client = http.DefaultClient
		}
	}
}

// WithLogger sets the logger.  A nil logger leaves the default in place.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithLocation sets the Location handed to the Resolver for every request.
func WithLocation(l origin.Location) Option {
	return func(d *Dispatcher) {
		d.location = l
	}
}
