// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package origin

import (
	"github.com/medistat/webclient/xviper"
	"github.com/spf13/viper"
)

const (
	// OptionsKey is the viper key under which Options are configured.
	OptionsKey = "origin"

	// LocationKey is the viper key under which the current Location is configured.
	LocationKey = "location"

	// FrontendHostEnv and BackendHostEnv are the environment variables the
	// web frontend reads at build time.  They are honored as aliases.
	FrontendHostEnv = "VUE_APP_FRONTEND_HOST"
	BackendHostEnv  = "VUE_APP_BACKEND_HOST"
)

// BindEnv binds the frontend's environment variables onto the origin configuration keys.
func BindEnv(v *viper.Viper) error {
	if err := v.BindEnv(OptionsKey+".frontendHost", FrontendHostEnv); err != nil {
		return err
	}

	return v.BindEnv(OptionsKey+".backendHost", BackendHostEnv)
}

// FromViper unmarshals both the Options and the Location from a viper instance.
// Missing sections produce zero values, which are valid.
func FromViper(v *viper.Viper) (*Options, Location, error) {
	var (
		o = new(Options)
		l Location
	)

	// Override hosts contain dots, which rules out UnmarshalSection here.  UnmarshalKey
	// ignores values that only exist via BindEnv, so the bound keys are read explicitly.
	if err := v.UnmarshalKey(OptionsKey, o); err != nil {
		return nil, l, err
	}

	if fh := v.GetString(OptionsKey + ".frontendHost"); len(fh) > 0 {
		o.FrontendHost = fh
	}

	if bh := v.GetString(OptionsKey + ".backendHost"); len(bh) > 0 {
		o.BackendHost = bh
	}

	if err := xviper.UnmarshalSection(v, LocationKey, &l); err != nil {
		return nil, l, err
	}

	return o, l, nil
}
