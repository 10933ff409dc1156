package fastjs

import (
	"net/http"
	"sync"
	"time"

	"github.com/dumpmemory/fastjs-next/internal/debounce"
)

// Lifecycle hook keys, reported in FailedParams.Hook when a hook vetoes.
const (
	HookBefore  = "before"
	HookInit    = "init"
	HookSuccess = "success"
	HookFailed  = "failed"
)

// RequestHook runs against the request before the transport call is made
// (before and init lifecycle points). Returning false vetoes the pipeline.
type RequestHook func(*Request) bool

// SuccessHook runs against a classified successful response. Returning
// false vetoes delivery to the success callbacks.
type SuccessHook func(*Return, *Request) bool

// FailureHook runs when the transport call failed or the status predicate
// rejected the response. The error is a *StatusError for bad statuses.
// Returning false vetoes delivery to the failed callbacks.
type FailureHook func(error, *Request) bool

// Hooks groups the per-lifecycle hook sets of a request.
type Hooks struct {
	Before  HookSet[RequestHook]
	Init    HookSet[RequestHook]
	Success HookSet[SuccessHook]
	Failed  HookSet[FailureHook]
}

// RequestConfig carries the per-request knobs that are not part of the
// request identity itself.
type RequestConfig struct {
	// Headers are set on the transport request after the dispatcher's
	// default headers, so they win on conflict.
	Headers map[string]string

	// Query is an extra query source: either a raw query string (a leading
	// '?' is tolerated) or a map[string]any. Query keys take precedence
	// over payload keys when both end up in the query string.
	Query any

	// Wait enables trailing-edge debouncing: each Send within the window
	// cancels the previously scheduled one. Zero sends immediately.
	Wait time.Duration

	// Hooks are the lifecycle hook sets.
	Hooks Hooks

	// Failed is invoked with the failure artifact before the failed
	// callbacks, for every failure class (veto, bad status, network error).
	Failed func(*FailedParams)

	// Body overrides the JSON-encoded payload as the raw request body.
	// Ignored (with a warning) for methods that forbid a body.
	Body []byte
}

// Request describes one logical HTTP request. The URL may contain :name
// path segments which are substituted from Data and consumed from it on
// first resolution; the resolved URL is cached so Resend reuses it.
//
// A Request is owned by its caller: the pipeline mutates Data (path
// parameter consumption) and the resolution cache in place. Use one
// goroutine per Request; only the debounce handle is safe for concurrent
// Sends.
type Request struct {
	URL    string
	Method string
	Data   map[string]any
	Config RequestConfig

	success callbackList[*Return]
	failed  callbackList[*FailedParams]
	finally callbackList[Outcome]

	mu        sync.Mutex // guards debounce handle creation
	debounce  *debounce.Handle
	resolved  string   // URL after path/query resolution, "" until resolved
	consumed  []string // path parameter names consumed from Data
	body      []byte   // body snapshot built at resolution time
	transport *http.Request
}

// NewRequest builds a request descriptor. The data map is retained (not
// copied) and is mutated by path parameter consumption.
func NewRequest(method, url string, data map[string]any) *Request {
	return &Request{URL: url, Method: method, Data: data}
}

// Get builds a GET request descriptor.
func Get(url string, data map[string]any) *Request { return NewRequest(http.MethodGet, url, data) }

// Post builds a POST request descriptor.
func Post(url string, data map[string]any) *Request { return NewRequest(http.MethodPost, url, data) }

// Put builds a PUT request descriptor.
func Put(url string, data map[string]any) *Request { return NewRequest(http.MethodPut, url, data) }

// Patch builds a PATCH request descriptor.
func Patch(url string, data map[string]any) *Request {
	return NewRequest(http.MethodPatch, url, data)
}

// Delete builds a DELETE request descriptor.
func Delete(url string, data map[string]any) *Request {
	return NewRequest(http.MethodDelete, url, data)
}

// Transport returns the last transport-level request built by the
// dispatcher, or nil before the Building step has run.
func (r *Request) Transport() *http.Request { return r.transport }

// ResolvedURL returns the cached post-resolution URL, or "" before the
// first resolution.
func (r *Request) ResolvedURL() string { return r.resolved }

// ConsumedParams returns the path parameter names consumed from Data.
func (r *Request) ConsumedParams() []string { return r.consumed }

// HeaderPair is one response header in arrival order.
type HeaderPair struct {
	Name  string
	Value string
}

// Return is the success artifact delivered to success hooks and callbacks.
type Return struct {
	// Headers holds the response headers as an ordered list; HeaderMap is
	// the same set keyed by canonical name (first value wins).
	Headers   []HeaderPair
	HeaderMap map[string]string

	// Response is the raw transport response. Its body has been read and
	// replaced with a replayable copy.
	Response *http.Response

	// Data is the decoded JSON body, or the raw body text when the body is
	// not valid JSON.
	Data any

	// Status is the HTTP status code.
	Status int

	// Request is the originating descriptor.
	Request *Request

	resend func()
}

// Resend replays the request through the pipeline with the same method and
// the already-resolved URL (consumed path parameters are not
// re-substituted). It returns the originating descriptor.
func (ret *Return) Resend() *Request {
	if ret.resend != nil {
		ret.resend()
	}
	return ret.Request
}

// FailedParams is the failure artifact shared by all failure classes.
type FailedParams struct {
	// Err is the failure cause: a *RequestError wrapping ErrInterrupted
	// for hook vetoes, a *StatusError for rejected statuses, or a
	// *RequestError wrapping the transport error.
	Err error

	// Request is the originating descriptor.
	Request *Request

	// Intercept is true only when a lifecycle hook vetoed the pipeline.
	Intercept bool

	// Hook names the lifecycle key that intercepted, or "" when none.
	Hook string

	// Response carries the classified response when the failure occurred
	// after the transport call completed, else nil.
	Response *Return
}

// Outcome is what finally callbacks receive: exactly one of Return or
// Failure is set.
type Outcome struct {
	Return  *Return
	Failure *FailedParams
	Request *Request
}

// OK reports whether the pipeline ended on the success path.
func (o Outcome) OK() bool { return o.Failure == nil }

// Middleware wraps the transport call for cross-cutting concerns. It runs
// beneath the lifecycle hooks, against the already-built transport request.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper is the transport interface middleware chains over.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc adapts a function to RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)
