// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package origin

import (
	"strings"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Location is the calling context a backend origin is derived from, analogous to
// the host and protocol of the page currently being served.
type Location struct {
	Host     string `json:"host,omitempty" mapstructure:"host"`
	Protocol string `json:"protocol,omitempty" mapstructure:"protocol"`
}

// scheme returns the protocol in the "https:" form, defaulting to DefaultProtocol.
func (l Location) scheme() string {
	p := strings.TrimSuffix(strings.TrimSpace(l.Protocol), "://")
	if len(p) == 0 {
		return DefaultProtocol
	}

	if !strings.HasSuffix(p, ":") {
		p += ":"
	}

	return strings.ToLower(p)
}

// Resolver produces the backend origin for a Location.  Implementations never fail:
// a string of the form <scheme>//<host>/ is always returned.
type Resolver interface {
	Resolve(Location) string
}

// ResolverFunc is a function type that implements Resolver.
type ResolverFunc func(Location) string

func (rf ResolverFunc) Resolve(l Location) string {
	return rf(l)
}

// Static returns a Resolver that always yields the given origin, ignoring the Location.
// A trailing slash is appended if missing.
func Static(origin string) Resolver {
	if !strings.HasSuffix(origin, "/") {
		origin += "/"
	}

	return ResolverFunc(func(Location) string {
		return origin
	})
}

// NewResolver builds the Resolver described by a set of Options.  A nil logger is replaced
// with sallust.Default().
func NewResolver(o *Options, logger *zap.Logger) Resolver {
	if logger == nil {
		logger = sallust.Default()
	}

	return &resolver{
		options: o,
		logger:  logger,
	}
}

type resolver struct {
	options *Options
	logger  *zap.Logger
}

func (r *resolver) Resolve(l Location) string {
	scheme := l.scheme()
	if backend := r.options.backendHost(); len(backend) > 0 {
		r.logger.Info("using configured backend host", zap.String("backendHost", backend))
		return scheme + "//" + backend + "/"
	}

	host := r.options.frontendHost()
	if len(host) == 0 {
		host = l.Host
	}

	if o, ok := r.options.override(host); ok {
		r.logger.Debug("using backend override", zap.String("host", host), zap.String("origin", o))
		return o
	}

	return scheme + "//" + r.options.prefix() + host + "/"
}
