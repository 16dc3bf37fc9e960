// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"crypto/tls"
	"time"
)

// TLSOptions configures the client side of TLS connections to the backend.
type TLSOptions struct {
	ServerName         string `json:"serverName,omitempty" mapstructure:"serverName"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" mapstructure:"insecureSkipVerify"`
	MinVersion         uint16 `json:"minVersion,omitempty" mapstructure:"minVersion"`
	MaxVersion         uint16 `json:"maxVersion,omitempty" mapstructure:"maxVersion"`
}

func (o *TLSOptions) config() *tls.Config {
	if o == nil {
		return nil
	}

	// nolint: gosec
	return &tls.Config{
		ServerName:         o.ServerName,
		InsecureSkipVerify: o.InsecureSkipVerify,
		MinVersion:         o.MinVersion,
		MaxVersion:         o.MaxVersion,
	}
}

// TransportOptions mirrors the tunable fields of http.Transport.  Zero values leave
// the http.Transport defaults in place.
type TransportOptions struct {
	TLSHandshakeTimeout   time.Duration `json:"tlsHandshakeTimeout,omitempty" mapstructure:"tlsHandshakeTimeout"`
	DisableKeepAlives     bool          `json:"disableKeepAlives,omitempty" mapstructure:"disableKeepAlives"`
	DisableCompression    bool          `json:"disableCompression,omitempty" mapstructure:"disableCompression"`
	MaxIdleConns          int           `json:"maxIdleConns,omitempty" mapstructure:"maxIdleConns"`
	MaxIdleConnsPerHost   int           `json:"maxIdleConnsPerHost,omitempty" mapstructure:"maxIdleConnsPerHost"`
	MaxConnsPerHost       int           `json:"maxConnsPerHost,omitempty" mapstructure:"maxConnsPerHost"`
	IdleConnTimeout       time.Duration `json:"idleConnTimeout,omitempty" mapstructure:"idleConnTimeout"`
	ResponseHeaderTimeout time.Duration `json:"responseHeaderTimeout,omitempty" mapstructure:"responseHeaderTimeout"`
}

// Options is the complete configuration of the HTTP client used to talk to the backend.
type Options struct {
	// Timeout bounds an entire transaction.  Zero means no timeout.
	Timeout time.Duration `json:"timeout,omitempty" mapstructure:"timeout"`

	Transport TransportOptions `json:"transport,omitempty" mapstructure:"transport"`
	TLS       *TLSOptions      `json:"tls,omitempty" mapstructure:"tls"`

	// Retries is the number of times a temporary transport error is retried.  Zero disables retries.
	Retries       int           `json:"retries,omitempty" mapstructure:"retries"`
	RetryInterval time.Duration `json:"retryInterval,omitempty" mapstructure:"retryInterval"`

	// Tracing wraps the transport with OpenTelemetry instrumentation.
	Tracing bool `json:"tracing,omitempty" mapstructure:"tracing"`

	// Cookies enables a cookie jar, which the backend's login session requires.
	Cookies bool `json:"cookies,omitempty" mapstructure:"cookies"`
}

func (o *Options) timeout() time.Duration {
	if o != nil && o.Timeout > 0 {
		return o.Timeout
	}

	return 0
}

func (o *Options) retries() int {
	if o != nil && o.Retries > 0 {
		return o.Retries
	}

	return 0
}

func (o *Options) retryInterval() time.Duration {
	if o != nil && o.RetryInterval > 0 {
		return o.RetryInterval
	}

	return 0
}

func (o *Options) tracing() bool {
	return o != nil && o.Tracing
}

func (o *Options) cookies() bool {
	return o != nil && o.Cookies
}

func (o *Options) transport() TransportOptions {
	if o != nil {
		return o.Transport
	}

	return TransportOptions{}
}

func (o *Options) tls() *TLSOptions {
	if o != nil {
		return o.TLS
	}

	return nil
}
