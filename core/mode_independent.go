//go:build independent

package core

// DefaultVerticalMode is the lift configuration compiled into this build
const DefaultVerticalMode = VerticalIndependent
