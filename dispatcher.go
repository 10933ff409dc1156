package fastjs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dumpmemory/fastjs-next/internal/debounce"
)

// Dispatcher drives the request pipeline: debounce, path/query resolution,
// lifecycle hooks, the transport call, outcome classification and callback
// dispatch. It is safe for concurrent use; its configuration is read-only
// after New.
type Dispatcher struct {
	httpClient      *http.Client
	headers         map[string]string
	okStatus        func(int) bool
	runAll          bool
	middleware      []Middleware
	logger          Logger
	metrics         *MetricsCollector
	debug           *DebugConfig
	validationError error
}

// New constructs a Dispatcher using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for errors.
func New(options ...Option) *Dispatcher {
	d := &Dispatcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:  map[string]string{},
		okStatus: DefaultSuccessCondition,
		debug:    DefaultDebugConfig(),
	}

	for _, option := range options {
		option(d)
	}

	if err := d.ValidateConfiguration(); err != nil {
		d.validationError = err
	}

	return d
}

// Send runs the request through the pipeline. When Config.Wait is set the
// execution is debounced trailing-edge: each Send cancels the previously
// scheduled one and only the last call within the window executes, with
// whatever payload the descriptor holds at fire time. Send never returns an
// error; every outcome is delivered through the failed handler and the
// registered callbacks.
func (d *Dispatcher) Send(ctx context.Context, r *Request) {
	wait := r.Config.Wait
	if wait <= 0 {
		d.dispatch(ctx, r)
		return
	}

	r.mu.Lock()
	if r.debounce == nil {
		r.debounce = debounce.New()
	}
	handle := r.debounce
	r.mu.Unlock()

	method := normalizeMethod(r.Method)
	if handle.Schedule(wait, func() { d.dispatch(ctx, r) }) {
		if d.metrics != nil {
			d.metrics.RecordDebounceCoalesced(method, r.URL)
		}
		if d.debug != nil && d.debug.Enabled && d.debug.LogDebounce && d.logger != nil {
			d.logger.Debug("Debounced send superseded", "method", method, "url", r.URL, "wait", wait)
		}
	}
}

// dispatch executes one full pipeline pass. Resolution happens only once
// per descriptor: the resolved URL and body snapshot are cached so a replay
// re-enters at the before hook with the already-consumed payload.
func (d *Dispatcher) dispatch(ctx context.Context, r *Request) {
	start := time.Now()
	method := normalizeMethod(r.Method)
	endpoint := r.URL

	var requestID string
	if d.debug != nil && d.debug.Enabled && d.debug.RequestIDGen != nil {
		requestID = d.debug.RequestIDGen()
	}

	if d.debug != nil && d.debug.Enabled && d.debug.LogRequests && d.logger != nil {
		d.logger.Debug("Starting request", "requestID", requestID, "method", method, "url", r.URL)
	}

	if d.metrics != nil {
		d.metrics.RecordRequestStart(method, endpoint)
		defer d.metrics.RecordRequestEnd(method, endpoint)
	}

	d.resolve(r, method)

	if !runHooks(r.Config.Hooks.Before, d.runAll, func(h RequestHook) bool { return h(r) }) {
		d.deliverVeto(r, method, endpoint, requestID, HookBefore, nil, start)
		return
	}

	req, err := d.build(ctx, r, method)
	if err != nil {
		d.deliverError(r, method, endpoint, requestID, err, start)
		return
	}
	r.transport = req

	if !runHooks(r.Config.Hooks.Init, d.runAll, func(h RequestHook) bool { return h(r) }) {
		d.deliverVeto(r, method, endpoint, requestID, HookInit, nil, start)
		return
	}

	resp, err := d.roundTrip(req)

	if err != nil {
		if d.debug != nil && d.debug.Enabled && d.debug.LogRequests && d.logger != nil {
			d.logger.Warn("Transport call failed", "requestID", requestID, "method", method, "url", r.resolved, "error", err.Error())
		}
		d.deliverError(r, method, endpoint, requestID, err, start)
		return
	}

	ret := d.newReturn(ctx, resp, r)
	if d.metrics != nil {
		d.metrics.RecordRequest(method, endpoint, ret.Status, time.Since(start))
	}

	if !d.okStatus(ret.Status) {
		statusErr := &StatusError{Code: ret.Status}
		if !runHooks(r.Config.Hooks.Failed, d.runAll, func(h FailureHook) bool { return h(statusErr, r) }) {
			d.deliverVeto(r, method, endpoint, requestID, HookFailed, ret, start)
			return
		}

		if d.metrics != nil {
			d.metrics.RecordError(ErrorTypeBadStatus, method, endpoint)
		}
		d.deliverFailure(r, method, &FailedParams{
			Err:      statusErr,
			Request:  r,
			Response: ret,
		})
		return
	}

	if !runHooks(r.Config.Hooks.Success, d.runAll, func(h SuccessHook) bool { return h(ret, r) }) {
		d.deliverVeto(r, method, endpoint, requestID, HookSuccess, ret, start)
		return
	}

	if d.debug != nil && d.debug.Enabled && d.debug.LogRequests && d.logger != nil {
		d.logger.Debug("Request succeeded", "requestID", requestID, "method", method, "status", ret.Status)
	}

	r.success.dispatch(ret, method)
	if d.metrics != nil {
		d.metrics.RecordCallbackDispatch("success")
	}
	r.finally.dispatch(Outcome{Return: ret, Request: r}, "")
	if d.metrics != nil {
		d.metrics.RecordCallbackDispatch("finally")
	}
}

// resolve substitutes path parameters (consuming them from the payload) and
// splits the remaining payload into query string or body depending on the
// method. The result is cached on the descriptor; replays skip this step.
func (d *Dispatcher) resolve(r *Request, method string) {
	if r.resolved != "" {
		return
	}

	u, consumed := TransformPathParams(r.URL, r.Data)
	r.consumed = consumed

	if methodForbidsBody(method) {
		if len(r.Config.Body) > 0 && d.logger != nil {
			d.logger.Warn("Request body ignored", "method", method, "url", r.URL)
		}
		r.resolved = AddQuery(u, r.Config.Query, r.Data)
		r.body = nil
		return
	}

	r.resolved = AddQuery(u, r.Config.Query, nil)
	if len(r.Config.Body) > 0 {
		r.body = r.Config.Body
		return
	}
	if len(r.Data) > 0 {
		body, err := json.Marshal(r.Data)
		if err != nil {
			if d.logger != nil {
				d.logger.Warn("Payload not JSON-serializable, sending empty body", "method", method, "url", r.URL, "error", err.Error())
			}
			return
		}
		r.body = body
	}
}

// build constructs the transport-level request from the cached resolution.
func (d *Dispatcher) build(ctx context.Context, r *Request, method string) (*http.Request, error) {
	var body io.Reader
	if len(r.body) > 0 {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.resolved, body)
	if err != nil {
		return nil, err
	}

	for k, v := range d.headers {
		req.Header.Set(k, v)
	}
	for k, v := range r.Config.Headers {
		req.Header.Set(k, v)
	}
	if len(r.body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// roundTrip issues the network call through the middleware chain. This is
// the pipeline's sole suspension point.
func (d *Dispatcher) roundTrip(req *http.Request) (*http.Response, error) {
	if len(d.middleware) == 0 {
		return d.httpClient.Do(req)
	}

	current := RoundTripperFunc(d.httpClient.Do)

	for i := len(d.middleware) - 1; i >= 0; i-- {
		middleware := d.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

// deliverVeto routes a hook interception through the failure path. ret is
// non-nil only for post-response hooks (success / failed).
func (d *Dispatcher) deliverVeto(r *Request, method, endpoint, requestID, hook string, ret *Return, start time.Time) {
	if d.metrics != nil {
		d.metrics.RecordHookVeto(hook, method)
		d.metrics.RecordError(ErrorTypeHookVeto, method, endpoint)
	}
	if d.debug != nil && d.debug.Enabled && d.debug.LogHooks && d.logger != nil {
		d.logger.Debug("Hook vetoed request", "requestID", requestID, "hook", hook, "method", method, "url", r.URL)
	}

	err := &RequestError{
		Type:      ErrorTypeHookVeto,
		Message:   "request interrupted by " + hook + " hook",
		Cause:     ErrInterrupted,
		RequestID: requestID,
		Method:    method,
		URL:       r.URL,
		Hook:      hook,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
	}
	if ret != nil {
		err.StatusCode = ret.Status
	}

	d.deliverFailure(r, method, &FailedParams{
		Err:       err,
		Request:   r,
		Intercept: true,
		Hook:      hook,
		Response:  ret,
	})
}

// deliverError routes a transport (or request-building) error through the
// failed hook set and then the failure path. A veto here is recorded
// against the failed lifecycle key with no response.
func (d *Dispatcher) deliverError(r *Request, method, endpoint, requestID string, cause error, start time.Time) {
	if !runHooks(r.Config.Hooks.Failed, d.runAll, func(h FailureHook) bool { return h(cause, r) }) {
		d.deliverVeto(r, method, endpoint, requestID, HookFailed, nil, start)
		return
	}

	if d.metrics != nil {
		d.metrics.RecordError(ErrorTypeNetwork, method, endpoint)
		d.metrics.RecordRequest(method, endpoint, 0, time.Since(start))
	}

	d.deliverFailure(r, method, &FailedParams{
		Err: &RequestError{
			Type:      ErrorTypeNetwork,
			Message:   "network request failed",
			Cause:     cause,
			RequestID: requestID,
			Method:    method,
			URL:       r.URL,
			Timestamp: time.Now(),
			Duration:  time.Since(start),
		},
		Request: r,
	})
}

// deliverFailure is the shared terminal path of all failure classes: the
// descriptor's failed handler, then the failed callbacks, then the finally
// callbacks (method-unfiltered).
func (d *Dispatcher) deliverFailure(r *Request, method string, fp *FailedParams) {
	if r.Config.Failed != nil {
		r.Config.Failed(fp)
	}

	r.failed.dispatch(fp, method)
	if d.metrics != nil {
		d.metrics.RecordCallbackDispatch("failed")
	}
	r.finally.dispatch(Outcome{Failure: fp, Request: r}, "")
	if d.metrics != nil {
		d.metrics.RecordCallbackDispatch("finally")
	}

	if d.debug != nil && d.debug.Enabled && d.debug.LogCallbacks && d.logger != nil {
		d.logger.Debug("Failure delivered", "method", method, "url", r.URL, "intercept", fp.Intercept, "hook", fp.Hook, "error", fp.Err.Error())
	}
}

// IsValid reports whether configuration validation passed at construction.
func (d *Dispatcher) IsValid() bool {
	return d.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (d *Dispatcher) ValidationError() error {
	return d.validationError
}

func normalizeMethod(method string) string {
	if method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(method)
}

// methodForbidsBody reports whether the method routes the remaining payload
// to the query string instead of the request body.
func methodForbidsBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
