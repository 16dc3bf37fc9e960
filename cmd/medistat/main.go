// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/medistat/webclient/api"
	"github.com/medistat/webclient/client"
	"github.com/medistat/webclient/dispatch"
	"github.com/medistat/webclient/logging"
	"github.com/medistat/webclient/origin"
	"github.com/medistat/webclient/xviper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	applicationName = "medistat"

	// DispatcherKey is the configuration section of the dispatcher's goroutine pool.
	DispatcherKey = "dispatcher"

	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errUsage marks errors caused by bad command lines rather than failed requests.
var errUsage = errors.New("usage")

func usageError(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, a...))
}

func setupFlagSet(fs *pflag.FlagSet) {
	fs.StringP("file", "f", "", "the fully qualified configuration file")
	fs.String("origin", "", "a fixed backend origin, bypassing host resolution")
	fs.String("host", "", "the current host that the backend origin is derived from")
	fs.String("protocol", "", "the protocol of the current host, e.g. https:")
	fs.String("backend-host", "", "the backend host, which overrides all other resolution")
	fs.String("frontend-host", "", "the frontend host, used in place of the current host")
	fs.Duration("timeout", 0, "the timeout of each HTTP transaction")
	fs.Int("retries", 0, "the number of retries for temporary transport errors")
	fs.String("log-level", "", "the log level: ERROR, WARN, INFO or DEBUG")
	fs.String("metrics-file", "", "writes client metrics in the Prometheus text format on exit")
}

func setupViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v, err := xviper.New(
		xviper.StdOptions(applicationName),
		xviper.BindPFlag(origin.OptionsKey+".backendHost", fs, "backend-host"),
		xviper.BindPFlag(origin.OptionsKey+".frontendHost", fs, "frontend-host"),
		xviper.BindPFlag(origin.LocationKey+".host", fs, "host"),
		xviper.BindPFlag(origin.LocationKey+".protocol", fs, "protocol"),
		xviper.BindPFlag(client.OptionsKey+".timeout", fs, "timeout"),
		xviper.BindPFlag(client.OptionsKey+".retries", fs, "retries"),
		xviper.BindPFlag(logging.LoggingKey+".level", fs, "log-level"),
		xviper.BindEnv(origin.OptionsKey+".frontendHost", origin.FrontendHostEnv),
		xviper.BindEnv(origin.OptionsKey+".backendHost", origin.BackendHostEnv),
		xviper.BindConfigFile(fs, "file"),
		xviper.ReadInConfig(false),
	)

	if err != nil {
		return nil, err
	}

	xviper.ApplyDefaults(v, xviper.Defaults{
		logging.LoggingKey + ".file":     logging.StderrFile,
		origin.LocationKey + ".protocol": "https:",
		client.OptionsKey + ".cookies":   true,
	})

	return v, nil
}

// medistat holds everything a command needs.
type medistat struct {
	logger     *zap.Logger
	resolver   origin.Resolver
	location   origin.Location
	dispatcher *dispatch.Dispatcher
	api        *api.Client
	stdout     io.Writer
}

func newMedistat(fs *pflag.FlagSet, v *viper.Viper, registry prometheus.Registerer, stdout io.Writer) (*medistat, error) {
	lo, err := logging.FromViper(v)
	if err != nil {
		return nil, err
	}

	logger := logging.New(lo)

	oo, location, err := origin.FromViper(v)
	if err != nil {
		return nil, err
	}

	var resolver origin.Resolver
	if fixed, _ := fs.GetString("origin"); len(fixed) > 0 {
		resolver = origin.Static(fixed)
	} else {
		resolver = origin.NewResolver(oo, logger)
	}

	co, err := client.FromViper(v)
	if err != nil {
		return nil, err
	}

	var dc dispatch.Config
	if err := xviper.UnmarshalKeys(v, xviper.Keys{DispatcherKey: &dc}); err != nil {
		return nil, err
	}

	d := dispatch.New(
		resolver,
		dispatch.WithConfig(dc),
		dispatch.WithClient(client.New(co, client.NewOutboundMeasures(registry), logger)),
		dispatch.WithLogger(logger),
		dispatch.WithLocation(location),
	)

	return &medistat{
		logger:     logger,
		resolver:   resolver,
		location:   location,
		dispatcher: d,
		api:        api.New(d),
		stdout:     stdout,
	}, nil
}

func (m *medistat) close() {
	m.dispatcher.Close()
	m.logger.Sync()
}

func run(arguments []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <command> [args]\n\nCommands:\n%s\nFlags:\n", applicationName, commandUsage)
		fs.PrintDefaults()
	}

	setupFlagSet(fs)
	if err := fs.Parse(arguments); err != nil {
		return exitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	v, err := setupViper(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Unable to load configuration: %s\n", err)
		return exitUsage
	}

	registry := prometheus.NewRegistry()
	m, err := newMedistat(fs, v, registry, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Unable to initialize: %s\n", err)
		return exitUsage
	}

	defer m.close()
	err = m.execute(fs.Args())

	if metricsFile, _ := fs.GetString("metrics-file"); len(metricsFile) > 0 {
		if werr := prometheus.WriteToTextfile(metricsFile, registry); werr != nil {
			m.logger.Error("unable to write metrics", zap.String("file", metricsFile), zap.Error(werr))
		}
	}

	switch {
	case err == nil:
		return exitOK

	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return exitUsage

	default:
		fmt.Fprintf(stderr, "Request failed: %s\n", err)
		return exitFailure
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
