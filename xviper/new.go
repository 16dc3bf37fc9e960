// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultNameFlag = "name"
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a viper instance.
type Option func(*viper.Viper) error

func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		return nil
	}
}

func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

func SetConfigFile(file string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigFile(file)
		return nil
	}
}

// AutomaticEnv enables environment lookups, mapping nested keys such as origin.backendHost
// onto variables such as PREFIX_ORIGIN_BACKENDHOST.
func AutomaticEnv(v *viper.Viper) error {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return nil
}

func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// BindPFlag binds a single flag onto an arbitrary, possibly nested, configuration key.
// A flag missing from the set is an error.
func BindPFlag(key string, fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("no such flag: %s", flag)
		}

		return v.BindPFlag(key, f)
	}
}

// BindEnv binds a configuration key onto one or more explicitly named environment variables.
func BindEnv(key string, envs ...string) Option {
	return func(v *viper.Viper) error {
		return v.BindEnv(append([]string{key}, envs...)...)
	}
}

// BindConfigName uses the value of a flag, if set, as the configuration name.
func BindConfigName(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			configName := f.Value.String()
			if len(configName) > 0 {
				v.SetConfigName(configName)
			}
		}

		return nil
	}
}

// BindConfigFile uses the value of a flag, if set, as the fully qualified configuration file.
func BindConfigFile(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			configFile := f.Value.String()
			if len(configFile) > 0 {
				v.SetConfigFile(configFile)
			}
		}

		return nil
	}
}

// ReadInConfig reads the configuration file.  Unless required is set, a configuration
// file that cannot be found in any of the search paths is not an error.  An explicitly
// set file that does not exist is always an error.
func ReadInConfig(required bool) Option {
	return func(v *viper.Viper) error {
		err := v.ReadInConfig()

		var notFound viper.ConfigFileNotFoundError
		if !required && errors.As(err, &notFound) {
			return nil
		}

		return err
	}
}

// StdOptions applies the standard search paths, environment handling, and configuration name
// for an application.
func StdOptions(applicationName string) Option {
	return func(v *viper.Viper) error {
		err := AddConfigPaths(
			fmt.Sprintf("/etc/%s", applicationName),
			fmt.Sprintf("$HOME/.%s", applicationName),
			".",
		)(v)

		if err == nil {
			err = SetEnvPrefix(applicationName)(v)
		}

		if err == nil {
			err = AutomaticEnv(v)
		}

		if err == nil {
			err = SetConfigName(applicationName)(v)
		}

		return err
	}
}

func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}
