// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import "net/http"

// Client is an interface implemented by net/http.Client
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

var _ Client = (*http.Client)(nil)

// Transactor is the function form of Client, i.e. the signature of http.Client.Do.
type Transactor func(*http.Request) (*http.Response, error)

func (t Transactor) Do(r *http.Request) (*http.Response, error) {
	return t(r)
}

var _ Client = Transactor(nil)
