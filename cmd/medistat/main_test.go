// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *httptest.Server {
	router := mux.NewRouter()
	router.HandleFunc("/lifetables_countries/", func(response http.ResponseWriter, _ *http.Request) {
		response.Header().Set("Content-Type", "application/json")
		io.WriteString(response, `[{"id":1,"name":"Poland"}]`)
	}).Methods(http.MethodPost)

	router.HandleFunc("/lifetables/", func(response http.ResponseWriter, request *http.Request) {
		if request.FormValue("country") != "POL" || request.FormValue("sex") != "m" || request.FormValue("year") != "2019" {
			response.WriteHeader(http.StatusBadRequest)
			return
		}

		io.WriteString(response, `[{"age":0,"probability":"0.00412","cumulative_probability":"0.00412"}]`)
	}).Methods(http.MethodPost)

	router.HandleFunc("/echo/", func(response http.ResponseWriter, request *http.Request) {
		io.WriteString(response, `{"name":"`+request.FormValue("name")+`"}`)
	}).Methods(http.MethodPost)

	router.HandleFunc("/broken/", func(response http.ResponseWriter, _ *http.Request) {
		response.WriteHeader(http.StatusInternalServerError)
	}).Methods(http.MethodPost)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func testRun(arguments ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(arguments, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunOrigin(t *testing.T) {
	testData := []struct {
		name      string
		arguments []string
		expected  string
	}{
		{
			name:      "Prefixed",
			arguments: []string{"--host", "app.example.com", "--protocol", "https:", "origin"},
			expected:  "https://backend-app.example.com/\n",
		},
		{
			name:      "BackendHost",
			arguments: []string{"--backend-host", "b.example.com", "--host", "app.example.com", "origin"},
			expected:  "https://b.example.com/\n",
		},
		{
			name:      "FrontendHost",
			arguments: []string{"--frontend-host", "f.example.com", "--protocol", "http", "origin"},
			expected:  "http://backend-f.example.com/\n",
		},
		{
			name:      "Fixed",
			arguments: []string{"--origin", "http://localhost:8000", "origin"},
			expected:  "http://localhost:8000/\n",
		},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			assert := assert.New(t)

			code, stdout, _ := testRun(record.arguments...)
			assert.Equal(exitOK, code)
			assert.Equal(record.expected, stdout)
		})
	}
}

func TestRunOriginEnvironment(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("VUE_APP_BACKEND_HOST", "env.example.com")
	code, stdout, _ := testRun("origin")
	assert.Equal(exitOK, code)
	assert.Equal("https://env.example.com/\n", stdout)
}

func TestRunConfigFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		file    = filepath.Join(t.TempDir(), "medistat.yaml")
	)

	require.NoError(os.WriteFile(file, []byte(`
origin:
  overrides:
    medistat.online: "https://api.medistat.online/"
location:
  host: "medistat.online"
`), 0o600))

	code, stdout, _ := testRun("-f", file, "origin")
	assert.Equal(exitOK, code)
	assert.Equal("https://api.medistat.online/\n", stdout)
}

func TestRunCountries(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		server  = newTestBackend(t)
	)

	code, stdout, _ := testRun("--origin", server.URL, "lifetables", "countries")
	require.Equal(exitOK, code)
	assert.JSONEq(`[{"id":1,"name":"Poland"}]`, stdout)
}

func TestRunLifeTable(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		server  = newTestBackend(t)
	)

	code, stdout, _ := testRun("--origin", server.URL, "lifetables", "table", "POL", "male", "2019")
	require.Equal(exitOK, code)
	assert.JSONEq(`[{"age":0,"probability":0.00412,"cumulative_probability":0.00412}]`, stdout)
}

func TestRunPost(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		server  = newTestBackend(t)
	)

	code, stdout, _ := testRun("--origin", server.URL, "post", "echo/", "name=x")
	require.Equal(exitOK, code)
	assert.JSONEq(`{"name":"x"}`, stdout)
}

func TestRunRequestFailure(t *testing.T) {
	var (
		assert = assert.New(t)
		server = newTestBackend(t)
	)

	code, stdout, stderr := testRun("--origin", server.URL, "post", "broken/")
	assert.Equal(exitFailure, code)
	assert.Empty(stdout)
	assert.Contains(stderr, "Request failed")
	assert.Contains(stderr, "500")
}

func TestRunMetricsFile(t *testing.T) {
	var (
		assert      = assert.New(t)
		require     = require.New(t)
		server      = newTestBackend(t)
		metricsFile = filepath.Join(t.TempDir(), "medistat.prom")
	)

	code, _, _ := testRun("--origin", server.URL, "--metrics-file", metricsFile, "lifetables", "countries")
	require.Equal(exitOK, code)

	contents, err := os.ReadFile(metricsFile)
	require.NoError(err)
	assert.Contains(string(contents), `outbound_requests{code="200"} 1`)
}

func TestRunUsage(t *testing.T) {
	testData := [][]string{
		{},
		{"--no-such-flag", "origin"},
		{"unknown"},
		{"origin", "extra"},
		{"lifetables"},
		{"lifetables", "years"},
		{"lifetables", "table", "POL", "x", "2019"},
		{"lifetables", "table", "POL", "m", "last"},
		{"post"},
		{"post", "echo/", "novalue"},
	}

	for _, arguments := range testData {
		t.Run(testName(arguments), func(t *testing.T) {
			code, stdout, stderr := testRun(arguments...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func testName(arguments []string) string {
	if len(arguments) == 0 {
		return "NoArguments"
	}

	return strings.Join(arguments, " ")
}
