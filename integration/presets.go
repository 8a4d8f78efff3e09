// Package integration provides the named chain specification presets a
// collator ships with. Presets bundle a network identity (name, id, chain
// type, relay chain) with a table of genesis identities, so operators can
// produce a ready chain specification with a single name:
//
//	doc, err := integration.GetPresetByName("local", 2000, integration.Env{})
//
// Building a preset never evaluates its genesis: keys are derived and the
// runtime code is loaded the first time the document's genesis is forced.
package integration

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-collator-spec/chainspec"
	"github.com/rony4d/go-collator-spec/identity"
	"github.com/rony4d/go-collator-spec/para/genesis"
	"github.com/rony4d/go-collator-spec/runtimecode"
)

var log = logrus.WithField("module", "integration")

// Relay chains the presets attach to.
const (
	RococoLocal = "rococo-local"
	WestendDev  = "westend-dev"
)

// DefaultParaID is used when no shard id is configured.
const DefaultParaID uint32 = 2000

// Env carries what a preset needs from its surroundings. Zero fields fall
// back to defaults: DefaultPolicy, the embedded runtime and the sr25519
// resolver.
type Env struct {
	Policy   genesis.NetworkPolicy
	Runtime  runtimecode.Artifact
	Resolver identity.Resolver
}

func (e Env) assembler() *genesis.Assembler {
	runtime := e.Runtime
	if runtime == nil {
		runtime = runtimecode.Embedded()
	}
	return &genesis.Assembler{Policy: e.Policy, Runtime: runtime}
}

// Preset describes a network independently of its shard id.
type Preset struct {
	Name       string
	ID         string
	ChainType  chainspec.ChainType
	RelayChain string
	Properties *chainspec.Properties
	BootNodes  []string
	Identities func() []Identity
}

// Spec builds the preset's chain specification for paraID. The genesis is
// deferred until the document is forced.
func (p Preset) Spec(paraID uint32, env Env) *chainspec.Document {
	asm := env.assembler()
	resolver := env.Resolver
	table := p.Identities
	id := p.ID
	return chainspec.New(chainspec.Options{
		Name:      p.Name,
		ID:        p.ID,
		ChainType: p.ChainType,
		Genesis: func() (*genesis.Record, error) {
			in, err := Resolve(table(), resolver)
			if err != nil {
				return nil, fmt.Errorf("preset %s: %w", id, err)
			}
			log.WithFields(logrus.Fields{
				"preset":        id,
				"para":          paraID,
				"invulnerables": len(in.Invulnerables),
				"endowed":       len(in.Endowed),
			}).Debug("Resolved preset identities")
			return asm.Build(in.Root, in.Invulnerables, in.Endowed, paraID)
		},
		BootNodes:  p.BootNodes,
		Properties: p.Properties,
		Extensions: chainspec.Extensions{RelayChain: p.RelayChain, ParaID: paraID},
	})
}

// DevelopmentPreset is a two-collator network of well-known keys on a local
// relay chain.
func DevelopmentPreset() Preset {
	return Preset{
		Name:       "Development",
		ID:         "dev",
		ChainType:  chainspec.Development,
		RelayChain: RococoLocal,
		Properties: chainspec.DefaultProperties(),
		Identities: DevelopmentIdentities,
	}
}

// LocalTestnetPreset is the local test network collated by four fixed keys.
func LocalTestnetPreset() Preset {
	return Preset{
		Name:       "Local Testnet",
		ID:         "local_testnet",
		ChainType:  chainspec.Local,
		RelayChain: WestendDev,
		Identities: LocalTestnetIdentities,
	}
}

// StagingTestnetPreset is the live staging network. It has no development
// keys at all.
func StagingTestnetPreset() Preset {
	return Preset{
		Name:       "Staging Testnet",
		ID:         "staging_testnet",
		ChainType:  chainspec.Live,
		RelayChain: WestendDev,
		Identities: StagingTestnetIdentities,
	}
}

// Development returns the development chain specification.
func Development(paraID uint32, env Env) *chainspec.Document {
	return DevelopmentPreset().Spec(paraID, env)
}

// LocalTestnet returns the local testnet chain specification.
func LocalTestnet(paraID uint32, env Env) *chainspec.Document {
	return LocalTestnetPreset().Spec(paraID, env)
}

// GetChainSpec is LocalTestnet.
func GetChainSpec(paraID uint32, env Env) *chainspec.Document {
	return LocalTestnet(paraID, env)
}

// StagingTestnet returns the staging testnet chain specification.
func StagingTestnet(paraID uint32, env Env) *chainspec.Document {
	return StagingTestnetPreset().Spec(paraID, env)
}

// StagingTestNet is StagingTestnet.
func StagingTestNet(paraID uint32, env Env) *chainspec.Document {
	return StagingTestnet(paraID, env)
}

// PresetNames lists the canonical preset names.
var PresetNames = []string{"dev", "local", "staging"}

// GetPresetByName looks a preset up by name and builds its chain
// specification for paraID. This backs the --chain flag.
//
// Example:
//
//	doc, err := integration.GetPresetByName("staging", 2000, integration.Env{})
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetPresetByName(name string, paraID uint32, env Env) (*chainspec.Document, error) {
	preset, err := PresetByName(name)
	if err != nil {
		return nil, err
	}
	return preset.Spec(paraID, env), nil
}

// PresetByName returns the preset description for name.
func PresetByName(name string) (Preset, error) {
	switch strings.ToLower(name) {
	case "dev", "development":
		return DevelopmentPreset(), nil
	case "local", "local_testnet", "":
		return LocalTestnetPreset(), nil
	case "staging", "staging_testnet":
		return StagingTestnetPreset(), nil
	default:
		return Preset{}, fmt.Errorf("unknown preset: %q (valid: %s)", name, strings.Join(PresetNames, ", "))
	}
}
