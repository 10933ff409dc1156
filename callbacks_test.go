package fastjs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackDispatchOrder(t *testing.T) {
	var order []int
	var l callbackList[int]
	l.add(func(int) { order = append(order, 1) })
	l.add(func(int) { order = append(order, 2) })

	l.dispatch(0, "GET")
	assert.Equal(t, []int{1, 2}, order)
}

func TestCallbackOnceFiresExactlyOnce(t *testing.T) {
	calls := 0
	var l callbackList[int]
	l.add(func(int) { calls++ }, Once())

	l.dispatch(0, "GET")
	l.dispatch(0, "GET")
	l.dispatch(0, "GET")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, l.len())
}

func TestCallbackOnceRemovalDoesNotSkipNextEntry(t *testing.T) {
	var order []int
	var l callbackList[int]
	l.add(func(int) { order = append(order, 1) }, Once())
	l.add(func(int) { order = append(order, 2) })
	l.add(func(int) { order = append(order, 3) }, Once())
	l.add(func(int) { order = append(order, 4) })

	l.dispatch(0, "GET")
	assert.Equal(t, []int{1, 2, 3, 4}, order, "in-place removal must not skip the following entry")
	assert.Equal(t, 2, l.len())

	order = nil
	l.dispatch(0, "GET")
	assert.Equal(t, []int{2, 4}, order)
}

func TestCallbackMethodFilter(t *testing.T) {
	calls := 0
	var l callbackList[int]
	l.add(func(int) { calls++ }, ForMethod("post"))

	l.dispatch(0, "GET")
	assert.Equal(t, 0, calls, "POST filter must not fire for GET")

	l.dispatch(0, "POST")
	assert.Equal(t, 1, calls, "filter is method-normalized")
}

func TestCallbackMethodFilterDoesNotConsumeOnce(t *testing.T) {
	calls := 0
	var l callbackList[int]
	l.add(func(int) { calls++ }, Once(), ForMethod("POST"))

	// A non-matching dispatch skips the entry without consuming it.
	l.dispatch(0, "GET")
	assert.Equal(t, 1, l.len())

	l.dispatch(0, "POST")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, l.len())
}

func TestCallbackUnfilteredDispatchIgnoresMethodFilters(t *testing.T) {
	calls := 0
	var l callbackList[int]
	l.add(func(int) { calls++ }, ForMethod("POST"))

	// The empty method disables filtering (finally semantics).
	l.dispatch(0, "")
	assert.Equal(t, 1, calls)
}

func TestRequestRegistrationChains(t *testing.T) {
	r := Get("/x", nil).
		OnSuccess(func(*Return) {}).
		OnFailed(func(*FailedParams) {}).
		OnFinally(func(Outcome) {})

	assert.Equal(t, 1, r.success.len())
	assert.Equal(t, 1, r.failed.len())
	assert.Equal(t, 1, r.finally.len())
}
