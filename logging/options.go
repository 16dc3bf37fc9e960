// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	StdoutFile = "stdout"
	StderrFile = "stderr"
)

// Options stores the configuration of a Logger.  Lumberjack is used for rolling files.
type Options struct {
	// File is the system file path for the log file.  If unset or "stdout", this will log to os.Stdout.
	// "stderr" logs to os.Stderr.  Otherwise, a lumberjack.Logger is created.
	File string `json:"file" mapstructure:"file"`

	// MaxSize is the lumberjack MaxSize
	MaxSize int `json:"maxsize" mapstructure:"maxsize"`

	// MaxAge is the lumberjack MaxAge
	MaxAge int `json:"maxage" mapstructure:"maxage"`

	// MaxBackups is the lumberjack MaxBackups
	MaxBackups int `json:"maxbackups" mapstructure:"maxbackups"`

	// JSON is a flag indicating whether JSON logging output is used.  The default is false,
	// meaning that console output is used.
	JSON bool `json:"json" mapstructure:"json"`

	// Level is the error level to output: ERROR, INFO, WARN, or DEBUG.  Any unrecognized string,
	// including the empty string, is equivalent to passing ERROR.
	Level string `json:"level" mapstructure:"level"`
}

func (o *Options) output() zapcore.WriteSyncer {
	var file string
	if o != nil {
		file = o.File
	}

	switch file {
	case "", StdoutFile:
		return zapcore.Lock(os.Stdout)

	case StderrFile:
		return zapcore.Lock(os.Stderr)

	default:
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSize,
			MaxAge:     o.MaxAge,
			MaxBackups: o.MaxBackups,
		})
	}
}

func (o *Options) encoder() zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if o != nil && o.JSON {
		return zapcore.NewJSONEncoder(ec)
	}

	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func (o *Options) level() zapcore.Level {
	if o != nil {
		switch strings.ToUpper(o.Level) {
		case "DEBUG":
			return zapcore.DebugLevel
		case "INFO":
			return zapcore.InfoLevel
		case "WARN":
			return zapcore.WarnLevel
		}
	}

	return zapcore.ErrorLevel
}
