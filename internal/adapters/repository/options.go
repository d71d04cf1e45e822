package repository

import "time"

// settings collects options shared by all backends.
type settings struct {
	now       func() time.Time
	keyPrefix string
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, keyPrefix: "duelboard:"}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option applies a configuration option to a Store backend.
type Option func(*settings)

// WithNow sets the clock used to stamp created_at.
func WithNow(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKeyPrefix sets the redis key namespace. Ignored by other backends.
func WithKeyPrefix(prefix string) Option {
	return func(s *settings) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}
