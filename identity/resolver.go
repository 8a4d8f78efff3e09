// Package identity maps human-readable development seeds to on-chain
// identities: account ids and consensus keys.
package identity

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
	"github.com/rony4d/go-collator-spec/keys"
)

var log = logrus.WithField("module", "identity")

// Resolver derives identities from seeds. The zero value is not usable, use
// Default.
type Resolver struct {
	// AccountScheme signs extrinsics; its public keys become account ids.
	AccountScheme keys.Scheme
	// ConsensusScheme produces block authoring keys.
	ConsensusScheme keys.Scheme
	// Phrase replaces the development phrase when non-empty.
	Phrase string
}

// Default returns the resolver used by every preset: sr25519 accounts and
// sr25519 aura keys under the development phrase.
func Default() Resolver {
	return Resolver{
		AccountScheme:   keys.Sr25519,
		ConsensusScheme: keys.Sr25519,
	}
}

// WithDefaults fills unset schemes from Default.
func (r Resolver) WithDefaults() Resolver {
	def := Default()
	if r.AccountScheme == nil {
		r.AccountScheme = def.AccountScheme
	}
	if r.ConsensusScheme == nil {
		r.ConsensusScheme = def.ConsensusScheme
	}
	return r
}

func (r Resolver) uri(seed string) string {
	if r.Phrase == "" {
		return keys.SeedURI(seed)
	}
	return r.Phrase + keys.SeedURI(seed)
}

func (r Resolver) public(scheme keys.Scheme, seed string) (sessionkey.PubKey, error) {
	pair, err := keys.Derive(scheme, r.uri(seed))
	if err != nil {
		return sessionkey.PubKey{}, fmt.Errorf("derive %s key for seed %q: %w", scheme.Name(), seed, err)
	}
	return pair.Public(), nil
}

// DeriveAccount returns the account id owned by seed.
func (r Resolver) DeriveAccount(seed string) (account.ID, error) {
	r = r.WithDefaults()
	pub, err := r.public(r.AccountScheme, seed)
	if err != nil {
		return account.ID{}, err
	}
	id, err := AccountOf(pub)
	if err != nil {
		return account.ID{}, err
	}
	log.WithFields(logrus.Fields{"seed": seed, "account": id}).Debug("Derived account")
	return id, nil
}

// DeriveConsensusKey returns the block authoring key of seed.
func (r Resolver) DeriveConsensusKey(seed string) (sessionkey.PubKey, error) {
	r = r.WithDefaults()
	return r.public(r.ConsensusScheme, seed)
}

// MustDeriveAccount is DeriveAccount that panics on a malformed seed.
func (r Resolver) MustDeriveAccount(seed string) account.ID {
	id, err := r.DeriveAccount(seed)
	if err != nil {
		panic(fmt.Sprintf("malformed development seed %q: %v", seed, err))
	}
	return id
}

// MustDeriveConsensusKey is DeriveConsensusKey that panics on a malformed seed.
func (r Resolver) MustDeriveConsensusKey(seed string) sessionkey.PubKey {
	key, err := r.DeriveConsensusKey(seed)
	if err != nil {
		panic(fmt.Sprintf("malformed development seed %q: %v", seed, err))
	}
	return key
}

// AccountOf converts a signer public key into the account id it controls:
// 32-byte keys are used as is, secp256k1 keys are hashed with blake2b-256.
func AccountOf(pub sessionkey.PubKey) (account.ID, error) {
	if err := pub.Validate(); err != nil {
		return account.ID{}, err
	}
	if pub.Type == sessionkey.Types.Secp256k1 {
		return account.ID(blake2b.Sum256(pub.Raw)), nil
	}
	return account.FromBytes(pub.Raw)
}
