//go:build !independent

package core

// DefaultVerticalMode is the lift configuration compiled into this build.
// Build with -tags independent for the non-mirrored variant.
const DefaultVerticalMode = VerticalSynchronized
