// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"reflect"

	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultFileName is the file name used for binary parts that do not carry one.
const DefaultFileName = "blob"

var (
	// ErrNested is returned when a payload value is a map, slice, or struct.  Payloads are flat.
	ErrNested = errors.New("nested payload values are not supported")

	// ErrNilValue is returned for a nil pointer that would have to be read or stringified,
	// such as a (*bytes.Reader)(nil).  A nil *File is an empty field instead.
	ErrNilValue = errors.New("nil payload value")
)

// Payload is a flat mapping of form field names onto values.  Values may be any scalar,
// which is stringified, or a File, []byte, or io.Reader, which are attached as binary parts.
type Payload map[string]interface{}

// File is a named binary value.
type File struct {
	Name   string
	Reader io.Reader
}

func (f File) name() string {
	if len(f.Name) > 0 {
		return f.Name
	}

	return DefaultFileName
}

// FieldError describes a payload field that could not be encoded.
type FieldError struct {
	Field string
	Err   error
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("unable to encode form field '%s': %s", fe.Field, fe.Err)
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}

// FromValues converts url.Values into a Payload, keeping the first value of each key.
func FromValues(values url.Values) Payload {
	p := make(Payload, len(values))
	for k, v := range values {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}

	return p
}

// Encode writes the payload as a multipart/form-data body.  One part is written per key,
// in key order.  The returned content type carries the multipart boundary.
func Encode(p Payload) (*bytes.Buffer, string, error) {
	var (
		body   = new(bytes.Buffer)
		writer = multipart.NewWriter(body)
		keys   = maps.Keys(p)
	)

	slices.Sort(keys)
	for _, k := range keys {
		if err := writeField(writer, k, p[k]); err != nil {
			return nil, "", &FieldError{Field: k, Err: err}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func writeField(writer *multipart.Writer, key string, value interface{}) error {
	switch v := value.(type) {
	case nil:
		return writer.WriteField(key, "")

	case File:
		return writeFile(writer, key, v)

	case *File:
		if v == nil {
			return writer.WriteField(key, "")
		}

		return writeFile(writer, key, *v)

	case []byte:
		return writeFile(writer, key, File{Reader: bytes.NewReader(v)})

	case io.Reader:
		return writeFile(writer, key, File{Reader: v})

	case fmt.Stringer:
		if isNil(v) {
			return ErrNilValue
		}

		return writer.WriteField(key, v.String())
	}

	switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return ErrNested
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return err
	}

	return writer.WriteField(key, s)
}

func writeFile(writer *multipart.Writer, key string, f File) error {
	if f.Reader == nil {
		return writer.WriteField(key, "")
	}

	if isNil(f.Reader) {
		return ErrNilValue
	}

	part, err := writer.CreateFormFile(key, f.name())
	if err != nil {
		return err
	}

	_, err = io.Copy(part, f.Reader)
	return err
}

// isNil tests for an interface holding a nil pointer, which == nil does not catch.
func isNil(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}

	return false
}
