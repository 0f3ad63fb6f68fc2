package parser

import (
	"github.com/shigou0206/stepflow-test/oaserrors"
)

// Option is a function that configures a Decoder
type Option func(*decodeConfig) error

// decodeConfig holds configuration for a Decoder
type decodeConfig struct {
	logger            Logger
	observers         []Observer
	formatHint        SourceFormat
	validateStructure bool

	// 0 means unlimited
	maxInputSize int64
}

// applyOptions applies option functions over the defaults
func applyOptions(opts ...Option) (*decodeConfig, error) {
	cfg := &decodeConfig{
		formatHint:        SourceFormatUnknown,
		validateStructure: true,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets a structured logger for decode events.
// By default nothing is logged.
//
// Example:
//
//	d, err := parser.New(parser.WithLogger(parser.NewSlogAdapter(slog.Default())))
func WithLogger(l Logger) Option {
	return func(cfg *decodeConfig) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "WithLogger", Message: "logger cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithObserver registers an Observer for decode events. It may be given
// more than once; observers run in registration order.
func WithObserver(o Observer) Option {
	return func(cfg *decodeConfig) error {
		if o == nil {
			return &oaserrors.ConfigError{Option: "WithObserver", Message: "observer cannot be nil"}
		}
		cfg.observers = append(cfg.observers, o)
		return nil
	}
}

// WithFormatHint declares the format the caller believes the content has,
// usually from a file extension or Content-Type. The hinted codec is tried
// first in place of the content guess. The other codec is still tried when
// it fails. SourceFormatUnknown clears the hint.
func WithFormatHint(f SourceFormat) Option {
	return func(cfg *decodeConfig) error {
		switch f {
		case SourceFormatJSON, SourceFormatYAML, SourceFormatUnknown:
			cfg.formatHint = f
			return nil
		case "":
			cfg.formatHint = SourceFormatUnknown
			return nil
		default:
			return &oaserrors.ConfigError{
				Option:  "WithFormatHint",
				Value:   f,
				Message: "format must be json or yaml",
			}
		}
	}
}

// WithValidateStructure toggles the required-field check run after each
// successful codec. It is on by default. With it off, any input a codec can
// map onto Document is accepted.
func WithValidateStructure(enabled bool) Option {
	return func(cfg *decodeConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithMaxInputSize rejects content larger than size bytes before any codec
// runs. Zero means unlimited.
func WithMaxInputSize(size int64) Option {
	return func(cfg *decodeConfig) error {
		if size < 0 {
			return &oaserrors.ConfigError{
				Option:  "WithMaxInputSize",
				Value:   size,
				Message: "size cannot be negative",
			}
		}
		cfg.maxInputSize = size
		return nil
	}
}
