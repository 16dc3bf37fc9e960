// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"github.com/medistat/webclient/xviper"
	"github.com/spf13/viper"
)

const (
	// LoggingKey is the Viper subkey under which logging should be stored.
	LoggingKey = "log"
)

// FromViper produces an Options from a (possibly nil) Viper instance, using LoggingKey.
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := xviper.UnmarshalSection(v, LoggingKey, o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
