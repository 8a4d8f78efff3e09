package genesis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

var (
	// ErrSessionKeysMismatch is returned when the session key registrations
	// do not cover exactly the invulnerable collators.
	ErrSessionKeysMismatch = errors.New("genesis: session keys do not match invulnerables")
	// ErrDuplicateInvulnerable is returned when a record lists an account twice
	// as invulnerable. The runtime refuses such a genesis; Build merges
	// duplicates before they reach a record.
	ErrDuplicateInvulnerable = errors.New("genesis: duplicate invulnerable")
	// ErrMissingCode is returned for a record without runtime code.
	ErrMissingCode = errors.New("genesis: runtime code is missing")
)

// Record is the initial state of every runtime module. Its JSON form mirrors
// the runtime's genesis config.
type Record struct {
	System            SystemConfig            `json:"system"`
	Balances          BalancesConfig          `json:"balances"`
	Sudo              SudoConfig              `json:"sudo"`
	ParachainInfo     ParachainInfoConfig     `json:"parachainInfo"`
	CollatorSelection CollatorSelectionConfig `json:"collatorSelection"`
	Session           SessionConfig           `json:"session"`

	// Consensus modules keep their runtime defaults.
	Aura            struct{} `json:"aura"`
	AuraExt         struct{} `json:"auraExt"`
	ParachainSystem struct{} `json:"parachainSystem"`
}

// SystemConfig carries the runtime code.
type SystemConfig struct {
	Code hexutil.Bytes `json:"code"`
}

// BalancesConfig lists the initial free balances.
type BalancesConfig struct {
	Balances []Balance `json:"balances"`
}

// Balance is one endowment. It serializes as [account, amount].
type Balance struct {
	Account account.ID
	Amount  *big.Int
}

// SudoConfig holds the optional privileged key. A nil Key disables the
// privileged origin.
type SudoConfig struct {
	Key *account.ID `json:"key"`
}

// ParachainInfoConfig holds the shard id.
type ParachainInfoConfig struct {
	ParachainID uint32 `json:"parachainId"`
}

// CollatorSelectionConfig holds the permanent collator set.
type CollatorSelectionConfig struct {
	Invulnerables     []account.ID `json:"invulnerables"`
	CandidacyBond     *big.Int     `json:"candidacyBond"`
	DesiredCandidates uint32       `json:"desiredCandidates"`
}

// SessionConfig holds the initial session key registrations.
type SessionConfig struct {
	Keys []SessionKey `json:"keys"`
}

// SessionKey registers Keys for Validator, owned by Account. It serializes
// as [account, validator, keys].
type SessionKey struct {
	Account   account.ID
	Validator account.ID
	Keys      sessionkey.Keys
}

// MarshalJSON implements json.Marshaler.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{b.Account, b.Amount})
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Balance) UnmarshalJSON(input []byte) error {
	var amount big.Int
	if err := decodeTuple(input, &b.Account, &amount); err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	b.Amount = &amount
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s SessionKey) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Account, s.Validator, s.Keys})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SessionKey) UnmarshalJSON(input []byte) error {
	if err := decodeTuple(input, &s.Account, &s.Validator, &s.Keys); err != nil {
		return fmt.Errorf("session key: %w", err)
	}
	return nil
}

// decodeTuple decodes a JSON array of exactly len(dst) elements, rejecting
// unknown object fields inside the elements.
func decodeTuple(input []byte, dst ...interface{}) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(input, &raw); err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("expected %d elements, got %d", len(dst), len(raw))
	}
	for i, elem := range raw {
		if err := DecodeStrict(elem, dst[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeStrict unmarshals data into v, failing on fields v does not declare.
func DecodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON value")
	}
	return nil
}

// RootKey returns the privileged key, nil when there is none.
func (r *Record) RootKey() *account.ID {
	return r.Sudo.Key
}

// BalanceOf returns the endowment of acc, nil when acc is not endowed.
func (r *Record) BalanceOf(acc account.ID) *big.Int {
	for _, b := range r.Balances.Balances {
		if b.Account == acc {
			return b.Amount
		}
	}
	return nil
}

// Validate checks the structural invariants of the record:
//   - runtime code is present,
//   - the parachain id is positive,
//   - invulnerables are unique,
//   - session registrations cover exactly the invulnerables, in the same
//     order, each bound to its own account and carrying a well-formed bundle.
func (r *Record) Validate() error {
	if len(r.System.Code) == 0 {
		return ErrMissingCode
	}
	if r.ParachainInfo.ParachainID == 0 {
		return ErrInvalidParaID
	}

	inv := r.CollatorSelection.Invulnerables
	seen := make(map[account.ID]struct{}, len(inv))
	for _, acc := range inv {
		if _, ok := seen[acc]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateInvulnerable, acc)
		}
		seen[acc] = struct{}{}
	}

	keys := r.Session.Keys
	if len(keys) != len(inv) {
		return fmt.Errorf("%w: %d invulnerables, %d session keys", ErrSessionKeysMismatch, len(inv), len(keys))
	}
	for i, sk := range keys {
		if sk.Account != inv[i] {
			return fmt.Errorf("%w: session key %d belongs to %s, invulnerable is %s", ErrSessionKeysMismatch, i, sk.Account, inv[i])
		}
		if sk.Validator != sk.Account {
			return fmt.Errorf("%w: session key %d validator %s differs from account %s", ErrSessionKeysMismatch, i, sk.Validator, sk.Account)
		}
		if err := sk.Keys.Validate(); err != nil {
			return fmt.Errorf("%w: session key %d: %v", ErrSessionKeysMismatch, i, err)
		}
	}
	return nil
}
