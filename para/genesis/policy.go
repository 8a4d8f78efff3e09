package genesis

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/BurntSushi/toml"
)

// Denominations of the native token. One unit is 10^12 planck.
const (
	Units      uint64 = 1_000_000_000_000
	Cents      uint64 = Units / 100
	Millicents uint64 = Cents / 1000
)

// ShadowExistentialDeposit is the existential deposit of the shadow runtime.
const ShadowExistentialDeposit = 10 * Cents

// DefaultCandidacyBondMultiplier is the number of existential deposits a
// collator candidate bonds.
const DefaultCandidacyBondMultiplier = 16

// ErrInvalidPolicy is returned by NetworkPolicy.Validate.
var ErrInvalidPolicy = errors.New("genesis: invalid network policy")

// NetworkPolicy holds the economic constants that shape a genesis state.
// The zero value is not valid, start from DefaultPolicy.
type NetworkPolicy struct {
	// ExistentialDeposit is the minimum balance an account must hold.
	ExistentialDeposit *big.Int `toml:"existential_deposit" json:"existentialDeposit" split_words:"true"`
	// EndowmentBalance is credited to every endowed account.
	EndowmentBalance *big.Int `toml:"endowment_balance" json:"endowmentBalance" split_words:"true"`
	// CandidacyBondMultiplier scales ExistentialDeposit into the candidacy bond.
	CandidacyBondMultiplier uint64 `toml:"candidacy_bond_multiplier" json:"candidacyBondMultiplier" split_words:"true"`
	// DesiredCandidates is the number of non-invulnerable collators sought.
	DesiredCandidates uint32 `toml:"desired_candidates" json:"desiredCandidates" split_words:"true"`
}

// DefaultPolicy returns the policy used by every built-in preset.
func DefaultPolicy() NetworkPolicy {
	return NetworkPolicy{
		ExistentialDeposit:      new(big.Int).SetUint64(ShadowExistentialDeposit),
		EndowmentBalance:        new(big.Int).Lsh(big.NewInt(1), 60),
		CandidacyBondMultiplier: DefaultCandidacyBondMultiplier,
		DesiredCandidates:       0,
	}
}

// CandidacyBond returns ExistentialDeposit * CandidacyBondMultiplier.
func (p NetworkPolicy) CandidacyBond() *big.Int {
	return new(big.Int).Mul(p.ExistentialDeposit, new(big.Int).SetUint64(p.CandidacyBondMultiplier))
}

// Validate checks that every balance is set, positive and fits into the
// runtime's 128-bit balance type.
func (p NetworkPolicy) Validate() error {
	if err := checkBalance("existential deposit", p.ExistentialDeposit); err != nil {
		return err
	}
	if err := checkBalance("endowment balance", p.EndowmentBalance); err != nil {
		return err
	}
	if p.CandidacyBondMultiplier == 0 {
		return fmt.Errorf("%w: candidacy bond multiplier is zero", ErrInvalidPolicy)
	}
	if p.CandidacyBond().BitLen() > 128 {
		return fmt.Errorf("%w: candidacy bond overflows 128 bits", ErrInvalidPolicy)
	}
	if p.EndowmentBalance.Cmp(p.ExistentialDeposit) < 0 {
		return fmt.Errorf("%w: endowment %s below existential deposit %s", ErrInvalidPolicy, p.EndowmentBalance, p.ExistentialDeposit)
	}
	return nil
}

func checkBalance(name string, v *big.Int) error {
	switch {
	case v == nil:
		return fmt.Errorf("%w: %s is not set", ErrInvalidPolicy, name)
	case v.Sign() <= 0:
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidPolicy, name, v)
	case v.BitLen() > 128:
		return fmt.Errorf("%w: %s overflows 128 bits", ErrInvalidPolicy, name)
	}
	return nil
}

// LoadPolicy reads a TOML policy file on top of DefaultPolicy. Keys absent
// from the file keep their default; unknown keys are an error.
func LoadPolicy(path string) (NetworkPolicy, error) {
	p := DefaultPolicy()
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return NetworkPolicy{}, fmt.Errorf("load policy %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return NetworkPolicy{}, fmt.Errorf("%w: unknown keys %v in %s", ErrInvalidPolicy, undecoded, path)
	}
	return p, p.Validate()
}

// isZero reports whether p is the zero value, meaning "use the default".
func (p NetworkPolicy) isZero() bool {
	return p.ExistentialDeposit == nil && p.EndowmentBalance == nil &&
		p.CandidacyBondMultiplier == 0 && p.DesiredCandidates == 0
}
