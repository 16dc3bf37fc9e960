// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is delivered to callbacks of requests posted after Close.
	ErrClosed = errors.New("dispatcher has been closed")

	// ErrQueueFull is delivered when a request cannot be queued without blocking.
	ErrQueueFull = errors.New("dispatcher queue full")
)

// EncodeError indicates that a request could not be built, typically because the payload
// could not be encoded as a multipart form.  No HTTP transaction took place.
type EncodeError struct {
	URL string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("unable to build request for %s: %s", e.URL, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// TransportError indicates a failure to complete the HTTP transaction, e.g. a DNS or connection failure.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("POST %s failed: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError indicates that the backend answered with something other than 200 OK.
type StatusError struct {
	URL    string
	Code   int
	Status string

	// Body holds the leading bytes of the response body, for diagnostics.
	Body []byte
}

func (e *StatusError) Error() string {
	if len(e.Status) > 0 {
		return fmt.Sprintf("POST %s returned %s", e.URL, e.Status)
	}

	return fmt.Sprintf("POST %s returned %d", e.URL, e.Code)
}

// StatusCode exposes the response status, in the manner of go-kit's StatusCoder.
func (e *StatusError) StatusCode() int {
	return e.Code
}

// DecodeError indicates a 200 OK response whose body was not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode response from %s: %s", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
