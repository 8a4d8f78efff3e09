//go:build !embedwasm

package runtimecode

var embeddedCode []byte
