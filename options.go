package fastjs

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WithHTTPClient sets a custom HTTP client as the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		d.httpClient = client
	}
}

// WithTimeout sets the transport timeout.
func WithTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		if d.httpClient != nil {
			d.httpClient.Timeout = t
		}
	}
}

// WithDefaultHeaders replaces the dispatcher-wide default headers. Per
// request headers win on conflict.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(d *Dispatcher) {
		d.headers = headers
	}
}

// WithHeader adds one dispatcher-wide default header.
func WithHeader(key, value string) Option {
	return func(d *Dispatcher) {
		if d.headers == nil {
			d.headers = map[string]string{}
		}
		d.headers[key] = value
	}
}

// WithSuccessCondition sets the predicate deciding whether a status code
// counts as success. Default: 2xx.
func WithSuccessCondition(fn func(status int) bool) Option {
	return func(d *Dispatcher) {
		d.okStatus = fn
	}
}

// WithRunAllHooks makes hook chains run to completion even after a veto;
// the aggregate result remains a veto.
func WithRunAllHooks() Option {
	return func(d *Dispatcher) {
		d.runAll = true
	}
}

// WithMiddleware adds transport-level middleware to the dispatcher.
func WithMiddleware(middleware ...Middleware) Option {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, middleware...)
	}
}

// WithLogger sets a custom logger for warnings and debug output.
func WithLogger(logger Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a console logger.
func WithSimpleLogger() Option {
	return func(d *Dispatcher) {
		if d.debug == nil {
			d.debug = DefaultDebugConfig()
		}
		d.debug.Enabled = true
		d.logger = NewSimpleLogger()
	}
}

// WithZapLogger routes logging to an existing zap logger.
func WithZapLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = NewZapLogger(l)
	}
}

// WithDebug enables debug logging with the default configuration.
func WithDebug() Option {
	return func(d *Dispatcher) {
		if d.debug == nil {
			d.debug = DefaultDebugConfig()
		}
		d.debug.Enabled = true
	}
}

// WithDebugConfig sets a custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(d *Dispatcher) {
		d.debug = config
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(d *Dispatcher) {
		if d.debug == nil {
			d.debug = DefaultDebugConfig()
		}
		d.debug.RequestIDGen = gen
	}
}

// WithMetrics enables Prometheus metrics collection on the default
// registerer.
func WithMetrics() Option {
	return func(d *Dispatcher) {
		d.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(d *Dispatcher) {
		d.metrics = collector
	}
}

// ValidateConfiguration validates the dispatcher configuration and returns
// an error if invalid.
func (d *Dispatcher) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, d.validateTransportConfig()...)
	errors = append(errors, d.validateDebugConfig()...)
	errors = append(errors, d.validateMiddlewareConfig()...)
	errors = append(errors, d.validateHeaderConfig()...)

	if len(errors) > 0 {
		return &RequestError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errors),
		}
	}

	return nil
}

func (d *Dispatcher) validateTransportConfig() []string {
	var errors []string

	if d.httpClient == nil {
		errors = append(errors, "HTTP client cannot be nil")
	} else if d.httpClient.Timeout < 0 {
		errors = append(errors, "timeout must be non-negative")
	}

	if d.okStatus == nil {
		errors = append(errors, "success condition cannot be nil")
	}

	return errors
}

func (d *Dispatcher) validateDebugConfig() []string {
	var errors []string

	if d.debug != nil && d.debug.Enabled {
		if d.debug.RequestIDGen == nil {
			errors = append(errors, "debug RequestIDGen must be set when debug is enabled")
		}
		if d.logger == nil {
			errors = append(errors, "logger must be set when debug is enabled")
		}
	}

	return errors
}

func (d *Dispatcher) validateMiddlewareConfig() []string {
	var errors []string

	for i, middleware := range d.middleware {
		if middleware == nil {
			errors = append(errors, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}

	return errors
}

func (d *Dispatcher) validateHeaderConfig() []string {
	var errors []string

	for k := range d.headers {
		if k == "" {
			errors = append(errors, "default header with empty name")
		}
	}

	return errors
}
