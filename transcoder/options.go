package transcoder

import "go.uber.org/zap"

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithLogger overrides the package logger for one Transcoder.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transcoder) {
		if l != nil {
			t.log = l
		}
	}
}

// WithTrace logs every instruction at debug level as it is remapped.
func WithTrace(enabled bool) Option {
	return func(t *Transcoder) {
		t.trace = enabled
	}
}
