// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Result is the outcome of a single POST.  Exactly one of Value or Err is meaningful:
// Err is nil only when the backend answered 200 OK with a valid JSON body.
type Result struct {
	// RequestID correlates this result with the dispatcher's log entries.
	RequestID string

	// URL is the full target URL, origin plus path.
	URL string

	// StatusCode is the HTTP status, or zero if no response was received.
	StatusCode int

	// Value is the decoded JSON body.  Objects decode to map[string]interface{} and numbers to float64.
	Value interface{}

	Err error
}

// OK tests if this result carries a decoded value.
func (r Result) OK() bool {
	return r.Err == nil
}

// Callback receives the Result of a POST.  Callbacks run on a dispatcher goroutine.
type Callback func(Result)

// OnSuccess adapts a success-only continuation into a Callback.  The continuation is invoked
// only with the decoded value of a 200 OK response.  Every other outcome is logged at debug level
// and dropped.  Transport failures are additionally logged at error level by the Dispatcher.
func OnSuccess(logger *zap.Logger, f func(interface{})) Callback {
	if logger == nil {
		logger = sallust.Default()
	}

	return func(r Result) {
		if r.OK() {
			f(r.Value)
			return
		}

		logger.Debug(
			"dropping unsuccessful result",
			zap.String("requestID", r.RequestID),
			zap.String("url", r.URL),
			zap.Int("status", r.StatusCode),
			zap.Error(r.Err),
		)
	}
}
