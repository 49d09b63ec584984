//go:build rp2040

package main

// debugOutput enables core debug lines on UART0. The event ring dump on
// halt is written regardless.
const debugOutput = false

// Vertical mode is core.DefaultVerticalMode: build with -tags independent
// to drive the lifts as two unrelated axes.
