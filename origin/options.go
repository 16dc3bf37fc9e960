// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package origin

import "strings"

// DefaultPrefix is prepended to the frontend host when no backend host is configured.
const DefaultPrefix = "backend-"

// DefaultProtocol is used when a Location carries no protocol.
const DefaultProtocol = "http:"

// Options describes how a backend origin is derived.  The zero value, or a nil *Options,
// always derives the backend from the current host using DefaultPrefix.
type Options struct {
	// FrontendHost replaces the current host as the basis for the derived backend host.
	FrontendHost string `json:"frontendHost,omitempty" mapstructure:"frontendHost"`

	// BackendHost, when set, is used verbatim as the backend host.  Prefixing and overrides are skipped.
	BackendHost string `json:"backendHost,omitempty" mapstructure:"backendHost"`

	// Prefix is the string prepended to the frontend host.  If unset, DefaultPrefix is used.
	Prefix string `json:"prefix,omitempty" mapstructure:"prefix"`

	// Overrides maps a frontend host onto a complete backend origin, e.g. for a
	// production deployment that does not follow the prefix convention.
	Overrides map[string]string `json:"overrides,omitempty" mapstructure:"overrides"`
}

func (o *Options) frontendHost() string {
	if o != nil {
		return o.FrontendHost
	}

	return ""
}

func (o *Options) backendHost() string {
	if o != nil {
		return o.BackendHost
	}

	return ""
}

func (o *Options) prefix() string {
	if o != nil && len(o.Prefix) > 0 {
		return o.Prefix
	}

	return DefaultPrefix
}

// override looks up a host in Overrides.  Host names are case-insensitive, and viper
// lowercases map keys, so an exact match is tried first and then a case-folded one.
func (o *Options) override(host string) (string, bool) {
	if o != nil && len(host) > 0 {
		v, ok := o.Overrides[host]
		if !ok {
			for h, hv := range o.Overrides {
				if strings.EqualFold(h, host) {
					v, ok = hv, true
					break
				}
			}
		}

		if !ok || len(v) == 0 {
			return "", false
		}

		if !strings.HasSuffix(v, "/") {
			v += "/"
		}

		return v, true
	}

	return "", false
}
