package hl7

import "github.com/google/uuid"

// Default configuration values.
const (
	// DefaultMaxSegments is an exported segment count for WithCapacity
	// callers. WithCapacity does not clamp to it, and Parse never consults it.
	DefaultMaxSegments = 64
)

// Option configures a ParserMessage during Parse.
type Option func(*ParserMessage)

// WithKey seeds a parsed message's stable identity instead of generating
// one lazily on first observation. Useful when a caller already has a
// correlation id (from a queue envelope, say) and wants Message.Key to
// report that id rather than a fresh one.
func WithKey(key uuid.UUID) Option {
	return func(m *ParserMessage) {
		m.key = key
		m.set = true
	}
}

// BuilderOption configures a BuilderMessage during Build.
type BuilderOption func(*BuilderMessage)

// WithBuilderKey is WithKey's BuilderMessage counterpart.
func WithBuilderKey(key uuid.UUID) BuilderOption {
	return func(m *BuilderMessage) {
		m.key = key
		m.set = true
	}
}

// WithCapacity pre-sizes a new BuilderMessage's segment index for n
// segments, avoiding map growth when the caller knows roughly how large
// the message will get.
func WithCapacity(n int) BuilderOption {
	return func(m *BuilderMessage) {
		if n > 0 {
			m.capacityHint = n
		}
	}
}
