// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/medistat/webclient/dispatch"
	"github.com/medistat/webclient/form"
	"github.com/mitchellh/mapstructure"
)

// Backend paths.  The resolved origin always ends with a slash, so paths are relative.
const (
	DiseasesPath       = "diseases/"
	CountriesPath      = "lifetables_countries/"
	LifeTableYearsPath = "lifetable_years/"
	LifeTablePath      = "lifetables/"
	SeriesIndexPath    = "hmd/series_index/"
	LoginPath          = "accounts/login/"
	LogoutPath         = "accounts/logout/"
)

// Poster is the subset of *dispatch.Dispatcher used by Client.
type Poster interface {
	Do(context.Context, string, form.Payload) (interface{}, error)
}

var _ Poster = (*dispatch.Dispatcher)(nil)

// Client exposes the backend endpoints as typed methods.
type Client struct {
	poster  Poster
	encoder *schema.Encoder
}

// New creates a Client that sends its requests through the given Poster, normally a *dispatch.Dispatcher.
func New(p Poster) *Client {
	return &Client{
		poster:  p,
		encoder: schema.NewEncoder(),
	}
}

// post encodes the request struct, if any, as form fields and decodes the JSON result into out.
func (c *Client) post(ctx context.Context, path string, request, out interface{}) error {
	values := make(url.Values)
	if request != nil {
		if err := c.encoder.Encode(request, values); err != nil {
			return fmt.Errorf("unable to encode %s request: %w", path, err)
		}
	}

	v, err := c.poster.Do(ctx, path, form.FromValues(values))
	if err != nil {
		return err
	}

	return decode(path, v, out)
}

func decode(path string, v, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})

	if err != nil {
		return err
	}

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("unable to decode %s response: %w", path, err)
	}

	return nil
}

// Diseases returns the disease index.  Entries are returned as generic JSON objects.
func (c *Client) Diseases(ctx context.Context) ([]map[string]interface{}, error) {
	var diseases []map[string]interface{}
	err := c.post(ctx, DiseasesPath, nil, &diseases)
	return diseases, err
}

// Countries returns every country with life table data, ordered by name.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var countries []Country
	err := c.post(ctx, CountriesPath, nil, &countries)
	return countries, err
}

// LifeTableYears returns the years with life table data for a country, most recent first.
func (c *Client) LifeTableYears(ctx context.Context, country string) ([]int, error) {
	var years []int
	err := c.post(ctx, LifeTableYearsPath, yearsQuery{Country: country}, &years)
	return years, err
}

// LifeTable returns a life table, ordered by age.
func (c *Client) LifeTable(ctx context.Context, q LifeTableQuery) ([]LifeTableRow, error) {
	if len(q.Sex) == 0 {
		q.Sex = SexAll
	}

	var rows []LifeTableRow
	err := c.post(ctx, LifeTablePath, q, &rows)
	return rows, err
}

// SeriesIndex returns the mortality series index with tag names resolved.
func (c *Client) SeriesIndex(ctx context.Context) ([]Series, error) {
	var series []Series
	err := c.post(ctx, SeriesIndexPath, nil, &series)
	return series, err
}

// Login opens a session.  A rejected login surfaces as a *dispatch.StatusError with code 400.
func (c *Client) Login(ctx context.Context, email, password string) (Status, error) {
	var s Status
	err := c.post(ctx, LoginPath, credentials{Email: email, Password: password}, &s)
	return s, err
}

// Logout closes the current session.
func (c *Client) Logout(ctx context.Context) (Status, error) {
	var s Status
	err := c.post(ctx, LogoutPath, nil, &s)
	return s, err
}
