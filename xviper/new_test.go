// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	var (
		assert        = assert.New(t)
		expectedError = errors.New("expected")
		called        = false
	)

	v, err := New(
		func(*viper.Viper) error { return expectedError },
		func(*viper.Viper) error { called = true; return nil },
	)

	assert.Nil(v)
	assert.Equal(expectedError, err)
	assert.False(called)
}

func TestStdOptionsEnvironment(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("MEDISTAT_ORIGIN_BACKENDHOST", "b.example.com")
	v, err := New(StdOptions("medistat"))
	require.NoError(err)
	assert.Equal("b.example.com", v.GetString("origin.backendHost"))
}

func TestBindEnv(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("VUE_APP_BACKEND_HOST", "legacy.example.com")
	v, err := New(BindEnv("origin.backendHost", "VUE_APP_BACKEND_HOST"))
	require.NoError(err)
	assert.Equal("legacy.example.com", v.GetString("origin.backendHost"))
}

func TestBindPFlag(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	fs.String("backend-host", "", "")
	require.NoError(fs.Parse([]string{"--backend-host", "flag.example.com"}))

	v, err := New(BindPFlag("origin.backendHost", fs, "backend-host"))
	require.NoError(err)
	assert.Equal("flag.example.com", v.GetString("origin.backendHost"))

	_, err = New(BindPFlag("origin.frontendHost", fs, "no-such-flag"))
	assert.Error(err)
}

func TestReadInConfig(t *testing.T) {
	t.Run("Optional", func(t *testing.T) {
		assert := assert.New(t)

		_, err := New(AddConfigPaths(t.TempDir()), SetConfigName("missing"), ReadInConfig(false))
		assert.NoError(err)

		_, err = New(AddConfigPaths(t.TempDir()), SetConfigName("missing"), ReadInConfig(true))
		assert.Error(err)
	})

	t.Run("ExplicitFile", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)
			file    = filepath.Join(t.TempDir(), "medistat.yaml")
			fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
		)

		require.NoError(os.WriteFile(file, []byte("dispatcher:\n  workers: 3\n"), 0600))
		fs.String(DefaultFileFlag, "", "")
		require.NoError(fs.Parse([]string{"--file", file}))

		v, err := New(BindConfigFile(fs, DefaultFileFlag), ReadInConfig(false))
		require.NoError(err)
		assert.Equal(3, v.GetInt("dispatcher.workers"))

		require.NoError(fs.Set(DefaultFileFlag, filepath.Join(t.TempDir(), "missing.yaml")))
		_, err = New(BindConfigFile(fs, DefaultFileFlag), ReadInConfig(false))
		assert.Error(err)
	})
}

func TestBindConfigName(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		dir     = t.TempDir()
		fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	require.NoError(os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte("log:\n  level: debug\n"), 0600))
	fs.String(DefaultNameFlag, "", "")
	require.NoError(fs.Parse([]string{"--name", "custom"}))

	v, err := New(AddConfigPaths(dir), SetConfigName("medistat"), BindConfigName(fs, DefaultNameFlag), ReadInConfig(true))
	require.NoError(err)
	assert.Equal("debug", v.GetString("log.level"))
}
