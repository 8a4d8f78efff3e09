package keys

import (
	"fmt"

	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

// Derive parses uri and derives the pair it names under scheme.
func Derive(scheme Scheme, uri string) (Pair, error) {
	parsed, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	seed, err := rootSeed(parsed.Phrase, parsed.Password)
	if err != nil {
		return nil, err
	}
	root, err := scheme.FromSeed(seed)
	if err != nil {
		return nil, err
	}
	if len(parsed.Path) == 0 {
		return root, nil
	}
	return root.Derive(parsed.Path)
}

// PairFromSeed derives the development pair for seed ("Alice" -> "//Alice").
func PairFromSeed(scheme Scheme, seed string) (Pair, error) {
	pair, err := Derive(scheme, SeedURI(seed))
	if err != nil {
		return nil, fmt.Errorf("seed %q: %w", seed, err)
	}
	return pair, nil
}

// PublicFromSeed returns the public key of the development pair for seed.
func PublicFromSeed(scheme Scheme, seed string) (sessionkey.PubKey, error) {
	pair, err := PairFromSeed(scheme, seed)
	if err != nil {
		return sessionkey.PubKey{}, err
	}
	return pair.Public(), nil
}
