package integration

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-collator-spec/chainspec"
	"github.com/rony4d/go-collator-spec/identity"
	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
	"github.com/rony4d/go-collator-spec/para/genesis"
	"github.com/rony4d/go-collator-spec/runtimecode"
	"github.com/rony4d/go-collator-spec/utils/lazy"
)

var testEnv = Env{Runtime: runtimecode.Static("\x00asm\x01\x00\x00\x00")}

func endowment() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), 60)
}

// TestPresets_areDeferred verifies that building a preset never touches its
// genesis: the embedded runtime is absent in tests, yet construction works.
func TestPresets_areDeferred(t *testing.T) {
	for _, name := range PresetNames {
		doc, err := GetPresetByName(name, 1000, Env{})
		if err != nil {
			t.Fatalf("GetPresetByName(%q) error = %v", name, err)
		}
		if doc.State() != lazy.Unevaluated {
			t.Fatalf("%s: state = %s, want unevaluated", name, doc.State())
		}
		if _, err := doc.Genesis(); !errorsIs(err, runtimecode.ErrRuntimeNotBuilt) {
			t.Fatalf("%s: Genesis() error = %v, want ErrRuntimeNotBuilt", name, err)
		}
	}
}

func TestPresets_rejectZeroParaID(t *testing.T) {
	for _, name := range PresetNames {
		doc, err := GetPresetByName(name, 0, testEnv)
		require.NoError(t, err)
		_, err = doc.Genesis()
		require.ErrorIs(t, err, genesis.ErrInvalidParaID, name)
		require.ErrorIs(t, doc.Validate(), genesis.ErrInvalidParaID, name)
	}
}

func TestPresets_bootNodeOverride(t *testing.T) {
	preset := LocalTestnetPreset()
	preset.BootNodes = []string{"/dns/collator-1/tcp/30333/p2p/12D3KooWEyoppNCUx8Yx66oV9fJnriXwCcXwDDUA2kj6vnc6iDEp"}
	doc := preset.Spec(2000, testEnv)
	require.Equal(t, preset.BootNodes, doc.BootNodes())
	require.Empty(t, LocalTestnetPreset().Spec(2000, testEnv).BootNodes())
}

func TestStagingTestnet(t *testing.T) {
	require := require.New(t)

	doc := StagingTestNet(2000, testEnv)
	require.Equal("Staging Testnet", doc.Name())
	require.Equal("staging_testnet", doc.ID())
	require.Equal(chainspec.Live, doc.ChainType())
	require.Empty(doc.BootNodes())
	require.Equal(chainspec.Extensions{RelayChain: WestendDev, ParaID: 2000}, doc.Extensions())

	rec, err := doc.Genesis()
	require.NoError(err)
	require.NoError(doc.Validate())

	root := account.MustFromString(stagingRoot)
	require.Equal(root, *rec.RootKey())

	collators := []account.ID{
		account.MustFromString(collator1),
		account.MustFromString(collator2),
		account.MustFromString(collator3),
		account.MustFromString(collator4),
	}
	require.Equal(collators, rec.CollatorSelection.Invulnerables)
	for i, sk := range rec.Session.Keys {
		require.Equal(collators[i], sk.Account)
		require.Equal(collators[i], sk.Validator)
		require.Equal(collators[i].Bytes(), sk.Keys.Aura.Raw)
		require.Equal(sessionkey.Types.Sr25519, sk.Keys.Aura.Type)
	}

	require.Len(rec.Balances.Balances, 5)
	require.Equal(root, rec.Balances.Balances[0].Account)
	for _, b := range rec.Balances.Balances {
		require.Zero(endowment().Cmp(b.Amount))
	}

	bond := new(big.Int).SetUint64(genesis.ShadowExistentialDeposit * 16)
	require.Zero(bond.Cmp(rec.CollatorSelection.CandidacyBond))
	require.Equal(uint32(2000), rec.ParachainInfo.ParachainID)
}

func TestLocalTestnet(t *testing.T) {
	require := require.New(t)

	doc := GetChainSpec(1000, testEnv)
	require.Equal("Local Testnet", doc.Name())
	require.Equal("local_testnet", doc.ID())
	require.Equal(chainspec.Local, doc.ChainType())

	rec, err := doc.Genesis()
	require.NoError(err)

	alice := identity.Default().MustDeriveAccount("Alice")
	require.Equal(alice, *rec.RootKey())
	require.Len(rec.Balances.Balances, 16)
	require.Len(rec.CollatorSelection.Invulnerables, 4)
	require.Equal(account.MustFromString(collator1), rec.CollatorSelection.Invulnerables[0])

	// development accounts come first, literals last
	for i, s := range DevSeeds {
		require.Equal(identity.Default().MustDeriveAccount(s), rec.Balances.Balances[i].Account, s)
	}
	require.Equal(account.MustFromString(collator4), rec.Balances.Balances[15].Account)
}

func TestDevelopment(t *testing.T) {
	require := require.New(t)

	doc := Development(1000, testEnv)
	require.Equal("dev", doc.ID())
	require.Equal(chainspec.Development, doc.ChainType())
	require.Equal(RococoLocal, doc.Extensions().RelayChain)

	rec, err := doc.Genesis()
	require.NoError(err)

	r := identity.Default()
	require.Equal([]account.ID{r.MustDeriveAccount("Alice"), r.MustDeriveAccount("Bob")}, rec.CollatorSelection.Invulnerables)
	require.True(r.MustDeriveConsensusKey("Bob").Equal(rec.Session.Keys[1].Keys.Aura))
	require.Len(rec.Balances.Balances, 12)
	require.NoError(doc.Validate())
}

func TestPresets_areDeterministic(t *testing.T) {
	for _, name := range PresetNames {
		t.Run(name, func(t *testing.T) {
			a, err := GetPresetByName(name, 7, testEnv)
			require.NoError(t, err)
			b, err := GetPresetByName(name, 7, testEnv)
			require.NoError(t, err)

			ja, err := a.Export(false)
			require.NoError(t, err)
			jb, err := b.Export(false)
			require.NoError(t, err)
			require.Equal(t, ja, jb)

			ra, err := a.StateRoot()
			require.NoError(t, err)
			rb, err := b.StateRoot()
			require.NoError(t, err)
			require.Equal(t, ra, rb)
		})
	}
}

func TestGetPresetByName(t *testing.T) {
	tests := []struct {
		name   string
		wantID string
	}{
		{"dev", "dev"},
		{"development", "dev"},
		{"local", "local_testnet"},
		{"local_testnet", "local_testnet"},
		{"", "local_testnet"},
		{"staging", "staging_testnet"},
		{"Staging_Testnet", "staging_testnet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := GetPresetByName(tt.name, 1, testEnv)
			require.NoError(t, err)
			require.Equal(t, tt.wantID, doc.ID())
			require.Equal(t, uint32(1), doc.Extensions().ParaID)
		})
	}

	_, err := GetPresetByName("mainnet", 1, testEnv)
	require.EqualError(t, err, `unknown preset: "mainnet" (valid: dev, local, staging)`)
}

func TestResolve(t *testing.T) {
	require := require.New(t)
	r := identity.Default()

	// Case 1: duplicates collapse in genesis, last write wins
	in, err := Resolve([]Identity{
		seed("Alice", RoleEndowed),
		seed("Bob", RoleEndowed),
		seed("Alice", RoleEndowed),
	}, r)
	require.NoError(err)
	require.Len(in.Endowed, 3)
	rec, err := testEnv.assembler().Build(in.Root, in.Invulnerables, in.Endowed, 1)
	require.NoError(err)
	require.Len(rec.Balances.Balances, 2)
	require.Nil(rec.RootKey())

	// Case 2: two roots
	_, err = Resolve([]Identity{seed("Alice", RoleRoot), seed("Bob", RoleRoot)}, r)
	require.ErrorIs(err, ErrMultipleRoots)

	// Case 3: seed and literal together
	_, err = Resolve([]Identity{{Seed: "Alice", Literal: collator1}}, r)
	require.Error(err)

	// Case 4: malformed literal
	_, err = Resolve([]Identity{literal("0x1234", RoleEndowed)}, r)
	require.ErrorIs(err, account.ErrInvalidLength)

	// Case 5: malformed seed
	_, err = Resolve([]Identity{seed("Alice//", RoleEndowed)}, r)
	require.Error(err)
}

func TestRole(t *testing.T) {
	r := RoleRoot | RoleEndowed
	require.True(t, r.Has(RoleRoot))
	require.True(t, r.Has(RoleRoot|RoleEndowed))
	require.False(t, r.Has(RoleInvulnerable))
}

func errorsIs(err, target error) bool {
	return errors.Is(err, target)
}
