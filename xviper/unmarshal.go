// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// KeyUnmarshaler is the subset of viper behavior that unmarshals configuration subtrees.
type KeyUnmarshaler interface {
	UnmarshalKey(string, interface{}, ...viper.DecoderConfigOption) error
}

// Keys maps configuration keys onto the objects they are unmarshaled into.
type Keys map[string]interface{}

// UnmarshalKeys unmarshals each key in turn, stopping at the first error.
func UnmarshalKeys(u KeyUnmarshaler, keys Keys) error {
	for k, v := range keys {
		if err := u.UnmarshalKey(k, v); err != nil {
			return err
		}
	}

	return nil
}

type defaulter interface {
	SetDefault(string, interface{})
}

// Defaults are configuration values used when nothing else supplies a key.
type Defaults map[string]interface{}

func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}

// UnmarshalSection decodes one top-level section of the merged configuration.  Unlike
// viper's UnmarshalKey, values that are only supplied by bound flags or environment
// variables are included.  Map keys that contain dots are split by viper, so sections
// with such keys should use UnmarshalKey instead.
func UnmarshalSection(v *viper.Viper, key string, out interface{}) error {
	section, ok := v.AllSettings()[strings.ToLower(key)]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})

	if err != nil {
		return err
	}

	return decoder.Decode(section)
}
