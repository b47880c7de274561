package spellcheck

import "context"

// Provider is the contract every spell check engine implements.
//
// Implementations must never panic out of these methods: initialization
// failures are reported as false, and internal errors during Check are
// swallowed into a zero-error result so a flaky engine degrades the
// feature instead of breaking the editor.
type Provider interface {
	// Name returns the engine identifier used in requests, cache
	// fingerprints, and status reports.
	Name() string

	// Initialize performs engine setup (loading models or dictionaries).
	// It reports whether the provider is usable; it is safe to call once.
	Initialize(ctx context.Context) bool

	// Check spell checks a single piece of text. Blank text returns an
	// empty result without touching the underlying engine.
	Check(ctx context.Context, text, language string) Result

	// Available reports whether Initialize succeeded and the engine
	// handle is live.
	Available() bool

	// Languages lists supported ISO language codes.
	Languages() []string

	// Close releases engine resources.
	Close() error
}
