// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.

A viper instance is assembled from option functions, each of which may fail:

	v, err := xviper.New(
		xviper.StdOptions("medistat"),
		xviper.BindConfigFile(fs, "file"),
		xviper.ReadInConfig(false),
	)
*/
package xviper
