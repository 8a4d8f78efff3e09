//go:build embedwasm

package runtimecode

import _ "embed"

// The runtime build writes its compact blob here before `go build -tags embedwasm`.
//
//go:embed artifacts/parachain_runtime.compact.wasm
var embeddedCode []byte
