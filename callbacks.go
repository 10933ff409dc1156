package fastjs

// CallbackEntry is one registered callback with its dispatch filters.
type CallbackEntry[T any] struct {
	fn     func(T)
	once   bool
	method string
}

type callbackOptions struct {
	once   bool
	method string
}

// CallbackOption configures a callback registration.
type CallbackOption func(*callbackOptions)

// Once removes the callback after its first matching dispatch.
func Once() CallbackOption {
	return func(o *callbackOptions) { o.once = true }
}

// ForMethod restricts the callback to dispatches of the given HTTP method.
// Finally callbacks ignore method filters.
func ForMethod(method string) CallbackOption {
	return func(o *callbackOptions) { o.method = normalizeMethod(method) }
}

type callbackList[T any] struct {
	entries []CallbackEntry[T]
}

func (l *callbackList[T]) add(fn func(T), opts ...CallbackOption) {
	var o callbackOptions
	for _, opt := range opts {
		opt(&o)
	}
	l.entries = append(l.entries, CallbackEntry[T]{fn: fn, once: o.once, method: o.method})
}

func (l *callbackList[T]) len() int { return len(l.entries) }

// dispatch invokes matching entries in registration order. An entry whose
// method filter differs from method is skipped without being consumed;
// method == "" disables filtering. Once-entries are removed in place with
// the index held back so the following entry is not skipped.
func (l *callbackList[T]) dispatch(params T, method string) {
	for i := 0; i < len(l.entries); {
		entry := l.entries[i]
		if method != "" && entry.method != "" && entry.method != method {
			i++
			continue
		}
		entry.fn(params)
		if entry.once {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			continue
		}
		i++
	}
}

// OnSuccess registers a callback for classified successful responses.
func (r *Request) OnSuccess(fn func(*Return), opts ...CallbackOption) *Request {
	r.success.add(fn, opts...)
	return r
}

// OnFailed registers a callback for all failure classes (hook veto, bad
// status, network error).
func (r *Request) OnFailed(fn func(*FailedParams), opts ...CallbackOption) *Request {
	r.failed.add(fn, opts...)
	return r
}

// OnFinally registers a callback that runs after the success or failed
// callbacks on every terminal outcome. Method filters are not applied to
// finally dispatches.
func (r *Request) OnFinally(fn func(Outcome), opts ...CallbackOption) *Request {
	r.finally.add(fn, opts...)
	return r
}
