// Package keys implements deterministic key derivation from human readable
// secret URIs.
//
// A secret URI has the form
//
//	[phrase][//hard | /soft]...[///password]
//
// where an empty phrase stands for DevPhrase, the well-known development
// mnemonic. `//Alice`, `//Alice//stash` and `//1` are typical development
// URIs. Derivation follows the BIP-32-like scheme of the relay network so that
// the same URI yields the same key on every node:
//
//   - the phrase is turned into a 32-byte root seed (substrate BIP-39 variant),
//   - every junction is encoded into a 32-byte chain code,
//   - each scheme (sr25519, ed25519, ecdsa) walks the path with its own
//     hard/soft derivation rules.
//
// All functions are pure: no randomness, no I/O.
package keys
