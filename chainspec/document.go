// Package chainspec implements the chain specification document: network
// metadata plus a deferred genesis state, and its JSON forms.
//
// A Document built with New holds its genesis as an unevaluated thunk. The
// first caller of Genesis (or of anything that needs the genesis, such as
// MarshalJSON or Validate) runs the thunk; every other caller, concurrent or
// later, observes the same *genesis.Record. A Document decoded with Parse is
// already evaluated.
package chainspec

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-collator-spec/para/genesis"
	"github.com/rony4d/go-collator-spec/utils/lazy"
)

var log = logrus.WithField("module", "chainspec")

// GenesisFunc builds the genesis record. It runs at most once per Document.
type GenesisFunc func() (*genesis.Record, error)

// Telemetry is a telemetry endpoint with its verbosity level.
type Telemetry struct {
	URL       string
	Verbosity uint8
}

// Options configure a new Document.
type Options struct {
	Name string
	ID   string
	// ChainType defaults to Development, the zero value, like the node's own
	// chain type.
	ChainType  ChainType
	Genesis    GenesisFunc
	BootNodes  []string
	Telemetry  []Telemetry
	ProtocolID string
	Properties *Properties
	Extensions Extensions
}

// Document is a chain specification.
type Document struct {
	name       string
	id         string
	chainType  ChainType
	bootNodes  []string
	telemetry  []Telemetry
	protocolID string
	properties *Properties
	extensions Extensions

	genesis *lazy.Value[*genesis.Record]
	// raw is set for documents decoded from the raw storage form.
	raw map[string]string
}

// New returns an unevaluated document. opts.Genesis is not called.
func New(opts Options) *Document {
	build := opts.Genesis
	id := opts.ID
	return &Document{
		name:       opts.Name,
		id:         opts.ID,
		chainType:  opts.ChainType,
		bootNodes:  append([]string(nil), opts.BootNodes...),
		telemetry:  append([]Telemetry(nil), opts.Telemetry...),
		protocolID: opts.ProtocolID,
		properties: opts.Properties,
		extensions: opts.Extensions,
		genesis: lazy.New(func() (*genesis.Record, error) {
			if build == nil {
				return nil, fmt.Errorf("chainspec %s: no genesis builder", id)
			}
			log.WithField("chain", id).Debug("Evaluating genesis")
			rec, err := build()
			if err != nil {
				return nil, fmt.Errorf("chainspec %s: build genesis: %w", id, err)
			}
			return rec, nil
		}),
	}
}

// Name is the human readable chain name.
func (d *Document) Name() string { return d.name }

// ID is the short chain identifier.
func (d *Document) ID() string { return d.id }

// ChainType returns the chain classification.
func (d *Document) ChainType() ChainType { return d.chainType }

// BootNodes returns a copy of the boot node list.
func (d *Document) BootNodes() []string { return append([]string(nil), d.bootNodes...) }

// ProtocolID returns the network protocol id, empty when unset.
func (d *Document) ProtocolID() string { return d.protocolID }

// Properties returns the token properties, nil when unset.
func (d *Document) Properties() *Properties { return d.properties }

// Extensions returns the parachain extensions.
func (d *Document) Extensions() Extensions { return d.extensions }

// State reports whether the genesis has been evaluated.
func (d *Document) State() lazy.State { return d.genesis.State() }

// IsRaw reports whether the document was decoded from raw storage.
func (d *Document) IsRaw() bool { return d.raw != nil }

// Genesis forces the genesis state. It returns ErrRawGenesis for documents
// decoded from the raw form.
func (d *Document) Genesis() (*genesis.Record, error) {
	if d.raw != nil {
		return nil, ErrRawGenesis
	}
	return d.genesis.Force()
}

// WithBootNodes returns a copy of the document with its boot node list
// replaced. The copy shares the genesis of d, so forcing either one
// evaluates it once for both.
func (d *Document) WithBootNodes(nodes []string) *Document {
	cp := *d
	cp.bootNodes = append([]string(nil), nodes...)
	return &cp
}

// RawStorage returns the raw genesis storage as hex key/value pairs.
func (d *Document) RawStorage() (map[string]string, error) {
	if d.raw != nil {
		out := make(map[string]string, len(d.raw))
		for k, v := range d.raw {
			out[k] = v
		}
		return out, nil
	}
	rec, err := d.Genesis()
	if err != nil {
		return nil, err
	}
	return rec.RawStorage()
}

// Storage returns the genesis as sorted raw storage entries.
func (d *Document) Storage() ([]genesis.KV, error) {
	if d.raw != nil {
		return rawKVs(d.raw)
	}
	rec, err := d.Genesis()
	if err != nil {
		return nil, err
	}
	return rec.Storage()
}

// StateRoot returns the genesis state root.
func (d *Document) StateRoot() (common.Hash, error) {
	kvs, err := d.Storage()
	if err != nil {
		return common.Hash{}, err
	}
	return genesis.RootOf(kvs), nil
}

// Validate checks the document as a whole and reports every problem found:
// identity fields, boot node addresses, agreement of the extensions with the
// genesis shard id, and the genesis invariants. It forces the genesis.
func (d *Document) Validate() error {
	var result *multierror.Error

	if d.name == "" {
		result = multierror.Append(result, fmt.Errorf("%w: empty name", ErrInvalidDocument))
	}
	if d.id == "" {
		result = multierror.Append(result, fmt.Errorf("%w: empty id", ErrInvalidDocument))
	}
	if _, ok := chainTypeNames[d.chainType]; !ok {
		result = multierror.Append(result, fmt.Errorf("%w: %d", ErrUnknownChainType, uint8(d.chainType)))
	}
	for _, node := range d.bootNodes {
		if err := ValidateBootNode(node); err != nil {
			result = multierror.Append(result, err)
		}
	}

	paraID, err := d.genesisParaID()
	if err != nil {
		result = multierror.Append(result, err)
	} else if paraID != d.extensions.ParaID {
		result = multierror.Append(result, fmt.Errorf("%w: extensions %d, genesis %d", ErrParaIDMismatch, d.extensions.ParaID, paraID))
	}

	if d.raw == nil {
		if rec, err := d.Genesis(); err == nil {
			if err := rec.Validate(); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}

func (d *Document) genesisParaID() (uint32, error) {
	if d.raw != nil {
		return rawParaID(d.raw)
	}
	rec, err := d.Genesis()
	if err != nil {
		return 0, err
	}
	return rec.ParachainInfo.ParachainID, nil
}

// ValidateBootNode checks that addr is a multiaddr carrying a peer id.
func ValidateBootNode(addr string) error {
	m, err := ma.NewMultiaddr(addr)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidBootNode, addr, err)
	}
	if _, err := m.ValueForProtocol(ma.P_P2P); err != nil {
		return fmt.Errorf("%w: %q has no /p2p peer id", ErrInvalidBootNode, addr)
	}
	return nil
}
