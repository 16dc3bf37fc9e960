// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/medistat/webclient/form"
	"github.com/medistat/webclient/origin"
	"github.com/medistat/webclient/xhttp"
	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// maxErrorBody is the number of response body bytes kept on a StatusError.
const maxErrorBody = 512

// task is a fully built request waiting for a worker.
type task struct {
	id       string
	url      string
	request  *http.Request
	callback Callback
}

// workerContext holds the goroutine-local state of each pooled worker.
type workerContext struct {
	id            int
	cleanupBuffer []byte
}

// Dispatcher sends form POSTs to the backend on a pool of goroutines and delivers
// each outcome to a Callback.  A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	resolver origin.Resolver
	location origin.Location
	client   xhttp.Client
	logger   *zap.Logger
	config   Config

	lock   sync.RWMutex
	closed bool
	tasks  chan *task
	done   sync.WaitGroup
}

// New starts a Dispatcher that resolves the backend origin with the given Resolver.
func New(r origin.Resolver, options ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver: r,
		client:   http.DefaultClient,
		logger:   sallust.Default(),
	}

	for _, o := range options {
		o(d)
	}

	d.tasks = make(chan *task, d.config.queueSize())
	workers := d.config.workers()
	d.done.Add(workers)
	for workerID := 0; workerID < workers; workerID++ {
		go d.worker(&workerContext{
			id:            workerID,
			cleanupBuffer: make([]byte, 8*1024),
		})
	}

	return d
}

// URL returns the target URL for a path: the resolved origin followed by the path, verbatim.
func (d *Dispatcher) URL(path string) string {
	return d.resolver.Resolve(d.location) + path
}

// Post queues a multipart form POST of data to path.  Post does not block and never fails:
// every outcome, including failure to queue, is delivered to the callback exactly once,
// on a goroutine other than the caller's.  A nil callback discards the outcome.
func (d *Dispatcher) Post(ctx context.Context, path string, data form.Payload, callback Callback) {
	if ctx == nil {
		ctx = context.Background()
	}

	if callback == nil {
		callback = func(Result) {}
	}

	url := d.URL(path)
	t := &task{
		id:       ksuid.New().String(),
		url:      url,
		callback: callback,
	}

	logger := d.logger.With(zap.String("requestID", t.id), zap.String("url", url))
	body, contentType, err := encode(data)
	if err == nil {
		t.request, err = http.NewRequestWithContext(sallust.With(ctx, logger), http.MethodPost, url, body)
	}

	if err != nil {
		logger.Error("unable to build request", zap.Error(err))
		go d.complete(logger, t, Result{Err: &EncodeError{URL: url, Err: err}})
		return
	}

	t.request.Header.Set("Content-Type", contentType)

	d.lock.RLock()
	defer d.lock.RUnlock()
	if d.closed {
		go d.complete(logger, t, Result{Err: ErrClosed})
		return
	}

	select {
	case d.tasks <- t:
		logger.Debug("request queued")

	default:
		logger.Error("request dropped, queue full")
		go d.complete(logger, t, Result{Err: ErrQueueFull})
	}
}

// encode is form.Encode, with a panicking payload value reported as an error.
func encode(data form.Payload) (body *bytes.Buffer, contentType string, err error) {
	defer func() {
		if p := recover(); p != nil {
			body, contentType, err = nil, "", fmt.Errorf("panic while encoding payload: %v", p)
		}
	}()

	return form.Encode(data)
}

// Do is the synchronous form of Post.  It blocks until the outcome is known or the context is canceled.
func (d *Dispatcher) Do(ctx context.Context, path string, data form.Payload) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make(chan Result, 1)
	d.Post(ctx, path, data, func(r Result) {
		results <- r
	})

	select {
	case r := <-results:
		return r.Value, r.Err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting requests and waits for queued requests to finish, including their
// callbacks.  Closing more than once returns ErrClosed.
//
// Close must not be called synchronously from a Callback, since it would wait on the worker
// running that callback.  A callback that shuts down the Dispatcher uses go d.Close() instead.
func (d *Dispatcher) Close() error {
	d.lock.Lock()
	if d.closed {
		d.lock.Unlock()
		return ErrClosed
	}

	d.closed = true
	close(d.tasks)
	d.lock.Unlock()

	d.done.Wait()
	return nil
}

func (d *Dispatcher) worker(wc *workerContext) {
	defer d.done.Done()
	d.logger.Debug("worker starting", zap.Int("worker", wc.id), zap.Duration("period", d.config.Period))

	var tick <-chan time.Time
	if d.config.Period > 0 {
		ticker := time.NewTicker(d.config.Period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for t := range d.tasks {
		if tick != nil {
			<-tick
		}

		logger := sallust.Get(t.request.Context())
		d.complete(logger, t, d.transact(logger, wc, t.request))
	}
}

// complete hands a result to the task's callback.  A panicking callback is logged, and
// does not take down the worker.
func (d *Dispatcher) complete(logger *zap.Logger, t *task, r Result) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("callback panicked", zap.Any("panic", p))
		}
	}()

	r.RequestID = t.id
	r.URL = t.url
	t.callback(r)
}

func (d *Dispatcher) transact(logger *zap.Logger, wc *workerContext, request *http.Request) Result {
	url := request.URL.String()
	if err := request.Context().Err(); err != nil {
		logger.Debug("request canceled before it was sent", zap.Error(err))
		return Result{Err: &TransportError{URL: url, Err: err}}
	}

	response, err := d.client.Do(request)
	if response != nil && response.Body != nil {
		defer func() {
			// drain whatever the decoding below did not consume so the connection can be reused
			io.CopyBuffer(io.Discard, response.Body, wc.cleanupBuffer) // nolint: errcheck
			response.Body.Close()
		}()
	}

	if err != nil {
		logger.Error("HTTP transaction failed", zap.Error(err))
		return Result{Err: &TransportError{URL: url, Err: err}}
	}

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		logger.Debug("unexpected response status", zap.Int("status", response.StatusCode))
		return Result{
			StatusCode: response.StatusCode,
			Err: &StatusError{
				URL:    url,
				Code:   response.StatusCode,
				Status: response.Status,
				Body:   body,
			},
		}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		logger.Error("unable to read response body", zap.Error(err))
		return Result{StatusCode: response.StatusCode, Err: &TransportError{URL: url, Err: err}}
	}

	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		logger.Debug("response body is not JSON", zap.Error(err))
		return Result{StatusCode: response.StatusCode, Err: &DecodeError{URL: url, Err: err}}
	}

	return Result{StatusCode: response.StatusCode, Value: value}
}
