// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"net/http"
	"net/http/cookiejar"

	"github.com/medistat/webclient/xhttp"
	"github.com/xmidt-org/sallust"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// NewTransport builds the http.Transport described by the options.
func (o *Options) NewTransport() *http.Transport {
	var (
		t         = http.DefaultTransport.(*http.Transport).Clone()
		to        = o.transport()
		tlsConfig = o.tls().config()
	)

	if to.TLSHandshakeTimeout > 0 {
		t.TLSHandshakeTimeout = to.TLSHandshakeTimeout
	}

	if to.MaxIdleConns > 0 {
		t.MaxIdleConns = to.MaxIdleConns
	}

	if to.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = to.MaxIdleConnsPerHost
	}

	if to.MaxConnsPerHost > 0 {
		t.MaxConnsPerHost = to.MaxConnsPerHost
	}

	if to.IdleConnTimeout > 0 {
		t.IdleConnTimeout = to.IdleConnTimeout
	}

	if to.ResponseHeaderTimeout > 0 {
		t.ResponseHeaderTimeout = to.ResponseHeaderTimeout
	}

	t.DisableKeepAlives = to.DisableKeepAlives
	t.DisableCompression = to.DisableCompression
	if tlsConfig != nil {
		t.TLSClientConfig = tlsConfig
	}

	return t
}

// NewClient produces the *http.Client described by the options, with the transport
// decorated by the outbound measures and, if enabled, tracing.  om may be nil.
func (o *Options) NewClient(om *OutboundMeasures) *http.Client {
	var rt http.RoundTripper = o.NewTransport()
	if o.tracing() {
		rt = otelhttp.NewTransport(rt)
	}

	c := &http.Client{
		Transport: DecorateRoundTripper(om, rt),
		Timeout:   o.timeout(),
	}

	if o.cookies() {
		// cookiejar.New cannot fail with nil options
		c.Jar, _ = cookiejar.New(nil)
	}

	return c
}

// New produces the xhttp.Client used to dispatch requests.  When retries are configured,
// the client is wrapped with xhttp.RetryTransactor.
func New(o *Options, om *OutboundMeasures, logger *zap.Logger) xhttp.Client {
	if logger == nil {
		logger = sallust.Default()
	}

	c := o.NewClient(om)
	if o.retries() < 1 {
		return c
	}

	ro := xhttp.RetryOptions{
		Logger:   logger,
		Retries:  o.retries(),
		Interval: o.retryInterval(),
	}

	if om != nil {
		ro.Counter = om.Retries
	}

	return xhttp.Transactor(xhttp.RetryTransactor(ro, c.Do))
}
