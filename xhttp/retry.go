// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

var errNotRewindable = errors.New("request body cannot be replayed")

// temporaryError is the expected interface for a (possibly) temporary error
type temporaryError interface {
	Temporary() bool
}

// ShouldRetryFunc is a predicate for determining if the error returned from an HTTP transaction
// should be retried.
type ShouldRetryFunc func(error) bool

// ShouldRetryStatusFunc is a predicate for determining if a response status should be retried.
type ShouldRetryStatusFunc func(int) bool

// DefaultShouldRetry is the default retry predicate.  It returns true if and only if err exposes a Temporary() bool
// method and that method returns true.
func DefaultShouldRetry(err error) bool {
	var temp temporaryError
	if errors.As(err, &temp) {
		return temp.Temporary()
	}

	return false
}

// DefaultShouldRetryStatus never retries based on status alone.
func DefaultShouldRetryStatus(int) bool {
	return false
}

// RetryOptions configures RetryTransactor.
type RetryOptions struct {
	// Logger is used to report retries.  If unset, sallust.Default() is used.
	Logger *zap.Logger

	// Retries is the number of retries after the first attempt.  Nonpositive values disable retries.
	Retries int

	// Interval is the time slept between attempts.
	Interval time.Duration

	// Sleep, if set, replaces the wait between attempts.  The default wait ends early
	// when the request's context is done.
	Sleep func(time.Duration)

	// ShouldRetry decides whether a transport error is retried.  Defaults to DefaultShouldRetry.
	ShouldRetry ShouldRetryFunc

	// ShouldRetryStatus decides whether a response status is retried.  Defaults to DefaultShouldRetryStatus.
	ShouldRetryStatus ShouldRetryStatusFunc

	// Counter, if set, is incremented once per retry.
	Counter prometheus.Counter
}

// RetryTransactor returns an HTTP transactor function, of the same signature as http.Client.Do, that
// retries a certain number of times.  The request body must be replayable via GetBody, which is
// the case for requests built by http.NewRequest from an in-memory buffer.
//
// If o.Retries is nonpositive, next is returned undecorated.
func RetryTransactor(o RetryOptions, next func(*http.Request) (*http.Response, error)) func(*http.Request) (*http.Response, error) {
	if o.Retries < 1 {
		return next
	}

	if o.Logger == nil {
		o.Logger = sallust.Default()
	}

	if o.ShouldRetry == nil {
		o.ShouldRetry = DefaultShouldRetry
	}

	if o.ShouldRetryStatus == nil {
		o.ShouldRetryStatus = DefaultShouldRetryStatus
	}

	return func(request *http.Request) (*http.Response, error) {
		if request.Body != nil && request.GetBody == nil {
			return nil, errNotRewindable
		}

		var (
			response *http.Response
			err      error
		)

		for attempt := 0; attempt <= o.Retries; attempt++ {
			if attempt > 0 {
				if o.Counter != nil {
					o.Counter.Inc()
				}

				if werr := o.wait(request.Context()); werr != nil {
					o.Logger.Debug("abandoning HTTP retries", zap.String("url", request.URL.String()), zap.Error(werr), zap.Int("attempt", attempt+1))
					return nil, werr
				}

				if rerr := rewind(request); rerr != nil {
					return nil, rerr
				}
			}

			response, err = next(request)
			switch {
			case err != nil && o.ShouldRetry(err):
				o.Logger.Error("retrying HTTP transaction", zap.String("url", request.URL.String()), zap.Error(err), zap.Int("attempt", attempt+1))
				continue

			case err == nil && attempt < o.Retries && o.ShouldRetryStatus(response.StatusCode):
				o.Logger.Debug("retrying HTTP transaction", zap.String("url", request.URL.String()), zap.Int("status", response.StatusCode), zap.Int("attempt", attempt+1))
				if response.Body != nil {
					response.Body.Close()
				}

				continue
			}

			break
		}

		if err != nil {
			o.Logger.Error("all HTTP transaction retries failed", zap.String("url", request.URL.String()), zap.Error(err), zap.Int("attempts", o.Retries+1))
		}

		return response, err
	}
}

// wait pauses between attempts, returning the context's error if it is done first.
func (o RetryOptions) wait(ctx context.Context) error {
	if o.Sleep != nil {
		o.Sleep(o.Interval)
		return ctx.Err()
	}

	timer := time.NewTimer(o.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func rewind(r *http.Request) error {
	if r.GetBody == nil {
		return nil
	}

	b, err := r.GetBody()
	if err != nil {
		return err
	}

	r.Body = b
	return nil
}
