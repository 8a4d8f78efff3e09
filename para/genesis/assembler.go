// Package genesis assembles the initial state of a parachain from a set of
// identities and a network policy.
//
// The assembler is pure: given the same runtime code, policy and inputs it
// always produces the same Record, and the Record always produces the same
// raw storage and state root.
package genesis

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
	"github.com/rony4d/go-collator-spec/runtimecode"
)

var log = logrus.WithField("module", "genesis")

var (
	// ErrNoRuntime is returned when the assembler has no runtime artifact.
	ErrNoRuntime = errors.New("genesis: no runtime artifact configured")
	// ErrInvalidParaID is returned for parachain id 0, which the relay chain
	// never assigns to a parachain.
	ErrInvalidParaID = errors.New("genesis: parachain id must be positive")
)

// Invulnerable is a permanent collator: its account and its raw consensus key.
type Invulnerable struct {
	Account account.ID
	Key     sessionkey.PubKey
}

// Assembler builds genesis records.
type Assembler struct {
	// Policy supplies the economic constants. The zero value means DefaultPolicy.
	Policy NetworkPolicy
	// Runtime supplies the runtime code. It is required.
	Runtime runtimecode.Artifact
	// Keys wraps a consensus key into a session key bundle. Nil means
	// sessionkey.AuraOnly.
	Keys sessionkey.WrapFunc
}

// Build assembles the genesis record.
//
// Every endowed account receives Policy.EndowmentBalance. An account listed
// more than once gets a single entry: the last occurrence wins and balances
// are never summed. A nil root disables the privileged origin.
//
// Invulnerables become the collator candidate set in the given order and each
// registers (account, account, Keys(key)) as its session keys. Invulnerables
// merge the same way balances do: an account listed twice keeps its first
// position and the key of its last occurrence.
func (a *Assembler) Build(root *account.ID, invulnerables []Invulnerable, endowed []account.ID, paraID uint32) (*Record, error) {
	if paraID == 0 {
		return nil, ErrInvalidParaID
	}
	policy := a.Policy
	if policy.isZero() {
		policy = DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	if a.Runtime == nil {
		return nil, ErrNoRuntime
	}
	code, err := a.Runtime.Code()
	if err != nil {
		return nil, fmt.Errorf("genesis: runtime code: %w", err)
	}

	wrap := a.Keys
	if wrap == nil {
		wrap = sessionkey.AuraOnly
	}

	rec := &Record{}
	rec.System.Code = append([]byte(nil), code...)
	rec.Balances.Balances = endow(endowed, policy.EndowmentBalance)
	if root != nil {
		key := *root
		rec.Sudo.Key = &key
	}
	rec.ParachainInfo.ParachainID = paraID

	rec.CollatorSelection.Invulnerables = make([]account.ID, 0, len(invulnerables))
	rec.CollatorSelection.CandidacyBond = policy.CandidacyBond()
	rec.CollatorSelection.DesiredCandidates = policy.DesiredCandidates
	rec.Session.Keys = make([]SessionKey, 0, len(invulnerables))
	for _, inv := range mergeInvulnerables(invulnerables) {
		bundle := wrap(inv.Key)
		if !bundle.Contains(inv.Key) {
			return nil, fmt.Errorf("%w: bundle of %s does not carry its consensus key", ErrSessionKeysMismatch, inv.Account)
		}
		rec.CollatorSelection.Invulnerables = append(rec.CollatorSelection.Invulnerables, inv.Account)
		rec.Session.Keys = append(rec.Session.Keys, SessionKey{
			Account:   inv.Account,
			Validator: inv.Account,
			Keys:      bundle,
		})
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"para":          paraID,
		"endowed":       len(rec.Balances.Balances),
		"invulnerables": len(rec.CollatorSelection.Invulnerables),
		"sudo":          root != nil,
		"code":          len(code),
	}).Debug("Assembled genesis")
	return rec, nil
}

// MustBuild is Build that panics on error.
func (a *Assembler) MustBuild(root *account.ID, invulnerables []Invulnerable, endowed []account.ID, paraID uint32) *Record {
	rec, err := a.Build(root, invulnerables, endowed, paraID)
	if err != nil {
		log.WithError(err).Error("Genesis assembly failed")
		panic(err)
	}
	return rec
}

// endow gives every account the same amount. Entries keep the position of
// the first occurrence; a later duplicate overwrites the earlier amount.
func endow(accounts []account.ID, amount *big.Int) []Balance {
	index := make(map[account.ID]int, len(accounts))
	out := make([]Balance, 0, len(accounts))
	for _, acc := range accounts {
		value := new(big.Int).Set(amount)
		if i, ok := index[acc]; ok {
			out[i].Amount = value
			continue
		}
		index[acc] = len(out)
		out = append(out, Balance{Account: acc, Amount: value})
	}
	return out
}

// mergeInvulnerables collapses repeated accounts: first position, last key.
func mergeInvulnerables(invs []Invulnerable) []Invulnerable {
	index := make(map[account.ID]int, len(invs))
	out := make([]Invulnerable, 0, len(invs))
	for _, inv := range invs {
		if i, ok := index[inv.Account]; ok {
			out[i].Key = inv.Key
			continue
		}
		index[inv.Account] = len(out)
		out = append(out, inv)
	}
	return out
}
