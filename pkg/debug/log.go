//go:build !js || !wasm
// +build !js !wasm

// Package debug provides the console logging surface shared by the WASM
// client and the native tooling. On wasm it writes to the browser console,
// elsewhere to the standard logger.
package debug

import "log"

// Log logs a message
func Log(args ...interface{}) {
	log.Println(args...)
}

// Logf logs a formatted message
func Logf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Warnf logs a formatted warning
func Warnf(format string, args ...interface{}) {
	log.Printf("warning: "+format, args...)
}
