package fastjs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
)

// ParseBody decodes a response body as JSON, falling back to the raw text
// verbatim when the body is not valid JSON. It never fails.
func ParseBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return string(body)
}

// newReturn classifies a completed transport exchange into the success
// artifact. The response body is drained and replaced with a replayable
// copy so both Data and Response.Body stay usable.
func (d *Dispatcher) newReturn(ctx context.Context, resp *http.Response, r *Request) *Return {
	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	headers, headerMap := flattenHeaders(resp.Header)

	ret := &Return{
		Headers:   headers,
		HeaderMap: headerMap,
		Response:  resp,
		Data:      ParseBody(body),
		Status:    resp.StatusCode,
		Request:   r,
	}
	ret.resend = func() {
		if d.metrics != nil {
			d.metrics.RecordResend(normalizeMethod(r.Method))
		}
		d.dispatch(ctx, r)
	}
	return ret
}

// flattenHeaders renders http.Header as an ordered pair list (sorted by
// canonical name, values in wire order) plus a first-value map.
func flattenHeaders(h http.Header) ([]HeaderPair, map[string]string) {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]HeaderPair, 0, len(h))
	m := make(map[string]string, len(h))
	for _, name := range names {
		for _, value := range h[name] {
			pairs = append(pairs, HeaderPair{Name: name, Value: value})
		}
		if _, ok := m[name]; !ok && len(h[name]) > 0 {
			m[name] = h[name][0]
		}
	}
	return pairs, m
}

// DefaultSuccessCondition accepts 2xx statuses.
func DefaultSuccessCondition(status int) bool {
	return status >= 200 && status < 300
}
