// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/medistat/webclient/api"
	"github.com/medistat/webclient/form"
)

const commandUsage = `  origin                                    print the resolved backend origin
  diseases                                  print the disease index
  lifetables countries                      print the countries with life tables
  lifetables years <country>                print the life table years of a country
  lifetables table <country> <sex> <year>   print a life table; sex is a, m or f
  series                                    print the mortality series index
  post <path> [key=value...]                POST a form to an arbitrary backend path
`

func (m *medistat) execute(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	command, args := args[0], args[1:]
	switch command {
	case "origin":
		if len(args) > 0 {
			return usageError("origin takes no arguments")
		}

		_, err := fmt.Fprintln(m.stdout, m.resolver.Resolve(m.location))
		return err

	case "diseases":
		if len(args) > 0 {
			return usageError("diseases takes no arguments")
		}

		return m.print(m.api.Diseases(ctx))

	case "lifetables":
		return m.lifetables(ctx, args)

	case "series":
		if len(args) > 0 {
			return usageError("series takes no arguments")
		}

		return m.print(m.api.SeriesIndex(ctx))

	case "post":
		if len(args) == 0 {
			return usageError("post requires a path")
		}

		data, err := parsePayload(args[1:])
		if err != nil {
			return err
		}

		return m.print(m.dispatcher.Do(ctx, args[0], data))

	default:
		return usageError("unknown command '%s'", command)
	}
}

func (m *medistat) lifetables(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("lifetables requires a subcommand")
	}

	switch sub, args := args[0], args[1:]; sub {
	case "countries":
		if len(args) > 0 {
			return usageError("lifetables countries takes no arguments")
		}

		return m.print(m.api.Countries(ctx))

	case "years":
		if len(args) != 1 {
			return usageError("lifetables years requires exactly one country")
		}

		return m.print(m.api.LifeTableYears(ctx, args[0]))

	case "table":
		if len(args) != 3 {
			return usageError("lifetables table requires a country, a sex and a year")
		}

		sex, err := api.ParseSex(args[1])
		if err != nil {
			return usageError("%s", err)
		}

		year, err := strconv.Atoi(args[2])
		if err != nil {
			return usageError("invalid year '%s'", args[2])
		}

		return m.print(m.api.LifeTable(ctx, api.LifeTableQuery{Country: args[0], Sex: sex, Year: year}))

	default:
		return usageError("unknown lifetables subcommand '%s'", sub)
	}
}

// print writes a result as indented JSON, or returns the request error.
func (m *medistat) print(v interface{}, err error) error {
	if err != nil {
		return err
	}

	e := json.NewEncoder(m.stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

// parsePayload turns key=value arguments into a form payload.  A later key replaces an earlier one.
func parsePayload(args []string) (form.Payload, error) {
	data := make(form.Payload, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || len(key) == 0 {
			return nil, usageError("invalid form field '%s', expected key=value", arg)
		}

		data[key] = value
	}

	return data, nil
}
