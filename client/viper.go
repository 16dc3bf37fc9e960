// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"github.com/medistat/webclient/xviper"
	"github.com/spf13/viper"
)

// OptionsKey is the viper key under which client Options are configured.
const OptionsKey = "client"

// FromViper unmarshals client Options.  A missing section yields zero-valued Options.
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if err := xviper.UnmarshalSection(v, OptionsKey, o); err != nil {
		return nil, err
	}

	return o, nil
}
