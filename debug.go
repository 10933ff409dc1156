package fastjs

import "github.com/google/uuid"

// DebugConfig selects which pipeline stages emit debug log lines. Logging
// only happens when Enabled is true and a Logger is configured.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogHooks     bool
	LogDebounce  bool
	LogCallbacks bool

	// RequestIDGen produces the correlation ID attached to every log line
	// of one send operation.
	RequestIDGen func() string
}

// DefaultDebugConfig enables all stage flags with UUID request IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogHooks:     true,
		LogDebounce:  true,
		LogCallbacks: true,
		RequestIDGen: DefaultRequestIDGenerator,
	}
}

// DefaultRequestIDGenerator returns a short random correlation ID.
func DefaultRequestIDGenerator() string {
	return uuid.NewString()[:8]
}
