package chainspec

import "errors"

var (
	// ErrInvalidDocument is returned for input that is not a well-formed chain specification.
	ErrInvalidDocument = errors.New("chainspec: invalid document")
	// ErrParaIDMismatch is returned when the extensions name a different shard than the genesis.
	ErrParaIDMismatch = errors.New("chainspec: extensions para_id does not match genesis parachain id")
	// ErrNoExtensions is returned when a document carries no extensions block.
	ErrNoExtensions = errors.New("chainspec: no extensions")
	// ErrUnknownChainType is returned when decoding an unrecognised chain type.
	ErrUnknownChainType = errors.New("chainspec: unknown chain type")
	// ErrRawGenesis is returned when the structured genesis of a raw document is requested.
	ErrRawGenesis = errors.New("chainspec: document carries raw genesis storage only")
	// ErrInvalidBootNode is returned for boot node addresses that are not multiaddrs.
	ErrInvalidBootNode = errors.New("chainspec: invalid boot node")
)
