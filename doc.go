// Package fastjs provides a declarative HTTP request pipeline: describe a
// request once (URL template, method, payload, headers) and let the
// dispatcher resolve path parameters, run lifecycle hooks, perform the
// network call and deliver the classified outcome to typed callbacks.
//
//   - Path templates: any /-delimited segment starting with ':' is
//     substituted from the payload and consumed from it
//   - Lifecycle hooks (before / init / success / failed) may veto the
//     pipeline by returning false; a veto is delivered as a failure, never
//     as a panic or a returned error
//   - Trailing-edge debounce per request (only the last Send within the
//     window executes)
//   - Per-outcome callbacks (success / failed / finally) with one-shot and
//     method-filter options
//   - Middleware chain for transport-level concerns (auth, tracing, ...)
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area: functional options configure everything
//   - Failures are always delivered through callbacks and the failed
//     handler; the pipeline never returns an error to its caller
//   - Safe concurrent use of a single *Dispatcher instance; each *Request
//     is owned by one goroutine at a time (the debounce handle is the only
//     internally synchronized field)
//
// Typical usage:
//
//	d := fastjs.New(
//	    fastjs.WithHeader("Authorization", "Bearer ..."),
//	    fastjs.WithMetrics(),
//	)
//	req := fastjs.Get("/users/:id", map[string]any{"id": "7", "active": true})
//	req.OnSuccess(func(ret *fastjs.Return) {
//	    fmt.Println(ret.Status, ret.Data)
//	})
//	d.Send(ctx, req)
//
// Response bodies are decoded as JSON when possible and fall back to the
// raw text verbatim; decoding never fails the pipeline.
package fastjs
