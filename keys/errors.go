package keys

import "errors"

var (
	// ErrInvalidJunction is returned for empty derivation junctions.
	ErrInvalidJunction = errors.New("keys: invalid junction")
	// ErrInvalidPhrase is returned when the phrase is neither a valid mnemonic nor a 32-byte hex seed.
	ErrInvalidPhrase = errors.New("keys: invalid phrase")
	// ErrSoftNotSupported is returned when a soft junction is used with a scheme that only derives hard.
	ErrSoftNotSupported = errors.New("keys: soft derivation not supported by scheme")
	// ErrUnknownScheme is returned by SchemeByName for unrecognised names.
	ErrUnknownScheme = errors.New("keys: unknown scheme")
)
