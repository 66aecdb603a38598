// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum accepted size for user-provided CUE
// files. Large inputs are rejected before compilation to bound memory use.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

type parseOptions struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    false,
	}
}

// Option configures ParseAndDecode behavior.
type Option func(*parseOptions)

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the maximum accepted input size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete requires all fields to be concrete during validation.
// Leave unset for schemas where fields are optional.
func WithConcrete() Option {
	return func(o *parseOptions) {
		o.concrete = true
	}
}
