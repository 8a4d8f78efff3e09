package integration

import (
	"errors"
	"fmt"

	"github.com/rony4d/go-collator-spec/identity"
	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
	"github.com/rony4d/go-collator-spec/para/genesis"
)

// Role is a bit set of the parts an identity plays in genesis.
type Role uint8

const (
	// RoleRoot holds the privileged key.
	RoleRoot Role = 1 << iota
	// RoleInvulnerable is a permanent collator.
	RoleInvulnerable
	// RoleEndowed receives the endowment balance.
	RoleEndowed
)

// Has reports whether r includes every bit of other.
func (r Role) Has(other Role) bool {
	return r&other == other
}

// ErrMultipleRoots is returned for tables with more than one RoleRoot entry.
var ErrMultipleRoots = errors.New("integration: more than one root identity")

// Identity is one row of a preset table. Exactly one of Seed and Literal is
// set: Seed is a development seed ("Alice", "Bob//stash") run through the
// resolver, Literal is a frozen 0x-hex public key used as both account id
// and consensus key. Literal keys are taken as is and never checked against
// the curve.
type Identity struct {
	Seed    string
	Literal string
	Role    Role
}

func seed(s string, role Role) Identity {
	return Identity{Seed: s, Role: role}
}

func literal(hex string, role Role) Identity {
	return Identity{Literal: hex, Role: role}
}

// Inputs are the assembler arguments a table resolves to.
type Inputs struct {
	Root          *account.ID
	Invulnerables []genesis.Invulnerable
	Endowed       []account.ID
}

// Resolve turns a table into assembler inputs, keeping table order for
// invulnerables and endowed accounts.
func Resolve(table []Identity, r identity.Resolver) (Inputs, error) {
	r = r.WithDefaults()

	var in Inputs
	for _, id := range table {
		acc, key, err := resolveOne(id, r)
		if err != nil {
			return Inputs{}, err
		}
		if id.Role.Has(RoleRoot) {
			if in.Root != nil {
				return Inputs{}, fmt.Errorf("%w: %s and %s", ErrMultipleRoots, *in.Root, acc)
			}
			root := acc
			in.Root = &root
		}
		if id.Role.Has(RoleInvulnerable) {
			in.Invulnerables = append(in.Invulnerables, genesis.Invulnerable{Account: acc, Key: key})
		}
		if id.Role.Has(RoleEndowed) {
			in.Endowed = append(in.Endowed, acc)
		}
	}
	return in, nil
}

func resolveOne(id Identity, r identity.Resolver) (account.ID, sessionkey.PubKey, error) {
	switch {
	case id.Seed != "" && id.Literal != "":
		return account.ID{}, sessionkey.PubKey{}, fmt.Errorf("identity has both seed %q and literal %s", id.Seed, id.Literal)
	case id.Literal != "":
		acc, err := account.FromString(id.Literal)
		if err != nil {
			return account.ID{}, sessionkey.PubKey{}, fmt.Errorf("literal identity %s: %w", id.Literal, err)
		}
		return acc, sessionkey.Unchecked(r.ConsensusScheme.KeyType(), acc.Bytes()), nil
	default:
		acc, err := r.DeriveAccount(id.Seed)
		if err != nil {
			return account.ID{}, sessionkey.PubKey{}, err
		}
		if !id.Role.Has(RoleInvulnerable) {
			return acc, sessionkey.PubKey{}, nil
		}
		key, err := r.DeriveConsensusKey(id.Seed)
		if err != nil {
			return account.ID{}, sessionkey.PubKey{}, err
		}
		return acc, key, nil
	}
}

// Literal collator keys shared by the local and staging networks.
const (
	collator1 = "0x0a38d76ecfbd4b13077669bb9c9ebaaf0847723426f809d20a67c62f2bebc75a"
	collator2 = "0x7e5040d49782960b2a15e7cb4106f730ca7a997a28facff6e2978aeda32fc348"
	collator3 = "0x869f4e66b0b16f6de5f3cc217b99ada20f766a7d26868dda3020d29e9e80e97c"
	collator4 = "0x7a6a226782a4cf5712f914bbf3cc64304f3c9af58b82f1dd2a4f09c48278ae65"

	stagingRoot = "0x9ed7705e3c7da027ba0583a22a3212042f7e715d3c168ba14f1424e2bc111d00"
)

// DevSeeds are the well-known development accounts, in endowment order.
var DevSeeds = []string{
	"Alice", "Bob", "Charlie", "Dave", "Eve", "Ferdie",
	"Alice//stash", "Bob//stash", "Charlie//stash", "Dave//stash", "Eve//stash", "Ferdie//stash",
}

func devAccounts(roles map[string]Role) []Identity {
	table := make([]Identity, 0, len(DevSeeds))
	for _, s := range DevSeeds {
		table = append(table, seed(s, RoleEndowed|roles[s]))
	}
	return table
}

func literalCollators() []Identity {
	return []Identity{
		literal(collator1, RoleInvulnerable|RoleEndowed),
		literal(collator2, RoleInvulnerable|RoleEndowed),
		literal(collator3, RoleInvulnerable|RoleEndowed),
		literal(collator4, RoleInvulnerable|RoleEndowed),
	}
}

// DevelopmentIdentities: Alice is root, Alice and Bob collate, every
// development account is endowed.
func DevelopmentIdentities() []Identity {
	return devAccounts(map[string]Role{
		"Alice": RoleRoot | RoleInvulnerable,
		"Bob":   RoleInvulnerable,
	})
}

// LocalTestnetIdentities: Alice is root, the four literal collators collate,
// the development accounts and the collators are endowed.
func LocalTestnetIdentities() []Identity {
	table := devAccounts(map[string]Role{"Alice": RoleRoot})
	return append(table, literalCollators()...)
}

// StagingTestnetIdentities: a literal root, the four literal collators, and
// only those five accounts endowed.
func StagingTestnetIdentities() []Identity {
	table := []Identity{literal(stagingRoot, RoleRoot|RoleEndowed)}
	return append(table, literalCollators()...)
}
