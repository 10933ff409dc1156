package fastjs

type hookKind int

const (
	hookNone hookKind = iota
	hookSingle
	hookMany
)

// HookSet is a tagged variant holding either a single hook or an ordered
// chain. The zero value is the empty set, which never vetoes.
type HookSet[F any] struct {
	kind hookKind
	fn   F
	list []F
}

func newHookSet[F any](fns []F) HookSet[F] {
	switch len(fns) {
	case 0:
		return HookSet[F]{}
	case 1:
		return HookSet[F]{kind: hookSingle, fn: fns[0]}
	default:
		return HookSet[F]{kind: hookMany, list: fns}
	}
}

// RequestHooks builds the hook set for the before and init lifecycle
// points. One function is a single hook; several form an ordered chain.
func RequestHooks(fns ...RequestHook) HookSet[RequestHook] {
	return newHookSet(fns)
}

// SuccessHooks builds the hook set for the success lifecycle point.
func SuccessHooks(fns ...SuccessHook) HookSet[SuccessHook] {
	return newHookSet(fns)
}

// FailureHooks builds the hook set for the failed lifecycle point.
func FailureHooks(fns ...FailureHook) HookSet[FailureHook] {
	return newHookSet(fns)
}

// IsZero reports whether no hook is registered.
func (h HookSet[F]) IsZero() bool { return h.kind == hookNone }

// runHooks executes a hook set through invoke. An empty set trivially
// passes. A chain stops at the first vetoing hook unless runAll is set, in
// which case every hook still runs but the aggregate result stays false.
// A false result is a veto, never an error.
func runHooks[F any](set HookSet[F], runAll bool, invoke func(F) bool) bool {
	switch set.kind {
	case hookNone:
		return true
	case hookSingle:
		return invoke(set.fn)
	default:
		ok := true
		for _, fn := range set.list {
			if !invoke(fn) {
				ok = false
				if !runAll {
					break
				}
			}
		}
		return ok
	}
}
