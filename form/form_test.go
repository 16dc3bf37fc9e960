// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package form

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	name     string
	fileName string
	value    string
}

func readParts(t *testing.T, body *bytes.Buffer, contentType string) []part {
	require := require.New(t)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(err)
	require.Equal("multipart/form-data", mediaType)

	var (
		parts  []part
		reader = multipart.NewReader(body, params["boundary"])
	)

	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			return parts
		}

		require.NoError(err)
		data, err := io.ReadAll(p)
		require.NoError(err)
		parts = append(parts, part{name: p.FormName(), fileName: p.FileName(), value: string(data)})
	}
}

func TestEncodeScalars(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	body, contentType, err := Encode(Payload{"b": "2", "a": "1"})
	require.NoError(err)

	assert.Equal(
		[]part{{name: "a", value: "1"}, {name: "b", value: "2"}},
		readParts(t, body, contentType),
	)
}

func TestEncodeStringifies(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	body, contentType, err := Encode(Payload{
		"int":      1998,
		"float":    0.5,
		"bool":     true,
		"nil":      nil,
		"duration": 2 * time.Second,
	})

	require.NoError(err)
	assert.Equal(
		[]part{
			{name: "bool", value: "true"},
			{name: "duration", value: "2s"},
			{name: "float", value: "0.5"},
			{name: "int", value: "1998"},
			{name: "nil", value: ""},
		},
		readParts(t, body, contentType),
	)
}

func TestEncodeFiles(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	body, contentType, err := Encode(Payload{
		"bytes":  []byte("raw"),
		"file":   File{Name: "table.csv", Reader: strings.NewReader("age,probability")},
		"reader": strings.NewReader("stream"),
	})

	require.NoError(err)
	assert.Equal(
		[]part{
			{name: "bytes", fileName: DefaultFileName, value: "raw"},
			{name: "file", fileName: "table.csv", value: "age,probability"},
			{name: "reader", fileName: DefaultFileName, value: "stream"},
		},
		readParts(t, body, contentType),
	)
}

func TestEncodeEmpty(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	body, contentType, err := Encode(nil)
	require.NoError(err)
	assert.Empty(readParts(t, body, contentType))
}

func TestEncodeNested(t *testing.T) {
	for name, value := range map[string]interface{}{
		"Map":    map[string]string{"a": "b"},
		"Slice":  []string{"a"},
		"Struct": struct{ A int }{1},
	} {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			body, contentType, err := Encode(Payload{"nested": value})
			assert.Nil(body)
			assert.Empty(contentType)

			var fe *FieldError
			if assert.True(errors.As(err, &fe)) {
				assert.Equal("nested", fe.Field)
			}

			assert.ErrorIs(err, ErrNested)
		})
	}
}

func TestEncodeNilFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	body, contentType, err := Encode(Payload{
		"file":    (*File)(nil),
		"noValue": File{Name: "empty.csv"},
	})

	require.NoError(err)
	assert.Equal(
		[]part{
			{name: "file", value: ""},
			{name: "noValue", value: ""},
		},
		readParts(t, body, contentType),
	)
}

func TestEncodeNilValue(t *testing.T) {
	for name, value := range map[string]interface{}{
		"Reader":     (*bytes.Reader)(nil),
		"FileReader": File{Name: "table.csv", Reader: (*strings.Reader)(nil)},
		"Stringer":   (*time.Time)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var (
				body        *bytes.Buffer
				contentType string
				err         error
			)

			assert.NotPanics(func() {
				body, contentType, err = Encode(Payload{"value": value})
			})

			assert.Nil(body)
			assert.Empty(contentType)

			var fe *FieldError
			if assert.True(errors.As(err, &fe)) {
				assert.Equal("value", fe.Field)
			}

			assert.ErrorIs(err, ErrNilValue)
		})
	}
}

func TestFromValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(
		Payload{"country": "Sweden", "year": "2000"},
		FromValues(url.Values{
			"country": {"Sweden", "Norway"},
			"year":    {"2000"},
			"empty":   {},
		}),
	)
}
