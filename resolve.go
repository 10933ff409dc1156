package fastjs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// TransformPathParams substitutes :name path segments of u with the string
// form of data[name], deleting each used key from data so it is consumed
// exactly once. Segments without a matching key keep their literal :name
// form; that is not an error. It returns the rewritten URL and the list of
// consumed keys.
func TransformPathParams(u string, data map[string]any) (string, []string) {
	if !strings.Contains(u, ":") {
		return u, nil
	}

	var consumed []string
	segments := strings.Split(u, "/")
	for i, segment := range segments {
		if len(segment) < 2 || segment[0] != ':' {
			continue
		}
		name := segment[1:]
		value, ok := data[name]
		if !ok {
			continue
		}
		segments[i] = stringValue(value)
		delete(data, name)
		consumed = append(consumed, name)
	}

	return strings.Join(segments, "/"), consumed
}

// AddQuery resolves path parameters of u against the merge of body and
// query (query keys win on conflict), then appends the remaining merged
// pairs as a canonical query string. A string query has a leading '?'
// stripped and is split on '&'/'=' pairs before merging. Empty encodings
// are not appended. AddQuery never fails; unresolvable templates and empty
// queries are accepted silently.
func AddQuery(u string, query any, body map[string]any) string {
	merged := make(map[string]any, len(body)+4)
	for k, v := range body {
		merged[k] = v
	}
	switch q := query.(type) {
	case nil:
	case string:
		for k, v := range parseQueryString(q) {
			merged[k] = v
		}
	case map[string]any:
		for k, v := range q {
			merged[k] = v
		}
	case map[string]string:
		for k, v := range q {
			merged[k] = v
		}
	}

	u, _ = TransformPathParams(u, merged)

	if len(merged) == 0 {
		return u
	}
	encoded := encodeQuery(merged)
	if encoded == "" {
		return u
	}

	if strings.Contains(u, "?") {
		return u + "&" + encoded
	}
	return u + "?" + encoded
}

// parseQueryString splits a raw query string into key/value pairs. Values
// are unescaped best-effort; undecodable values are kept verbatim.
func parseQueryString(s string) map[string]string {
	s = strings.TrimPrefix(s, "?")
	if s == "" {
		return nil
	}

	pairs := make(map[string]string)
	for _, part := range strings.Split(s, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		if key == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		pairs[key] = value
	}
	return pairs
}

// encodeQuery renders the map as a canonical (sorted, escaped) query
// string. Keys with empty names never occur here; empty values encode as
// "key=".
func encodeQuery(m map[string]any) string {
	values := url.Values{}
	for k, v := range m {
		values.Set(k, stringValue(v))
	}
	return values.Encode()
}

// stringValue renders a payload value the way it should appear in a URL
// segment or query parameter.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
