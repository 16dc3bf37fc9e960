// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a zap Logger from a set of options.  The options object can be nil,
// in which case a console logger that writes errors to os.Stdout is returned.  Caller
// information is always included.
func New(o *Options, zo ...zap.Option) *zap.Logger {
	return zap.New(
		zapcore.NewCore(o.encoder(), o.output(), o.level()),
		append([]zap.Option{zap.AddCaller()}, zo...)...,
	)
}
