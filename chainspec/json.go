package chainspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-collator-spec/para/genesis"
	"github.com/rony4d/go-collator-spec/utils/lazy"
	"github.com/rony4d/go-collator-spec/utils/scale"
)

type documentJSON struct {
	Name               string      `json:"name"`
	ID                 string      `json:"id"`
	ChainType          ChainType   `json:"chainType"`
	BootNodes          []string    `json:"bootNodes"`
	TelemetryEndpoints []Telemetry `json:"telemetryEndpoints"`
	ProtocolID         *string     `json:"protocolId"`
	Properties         *Properties `json:"properties"`
	Extensions         *Extensions `json:"extensions"`
	Genesis            genesisJSON `json:"genesis"`
}

type genesisJSON struct {
	Runtime *genesis.Record `json:"runtime,omitempty"`
	Raw     *rawJSON        `json:"raw,omitempty"`
}

type rawJSON struct {
	Top map[string]string `json:"top"`
}

// MarshalJSON implements json.Marshaler: [url, verbosity].
func (t Telemetry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.URL, t.Verbosity})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Telemetry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("telemetry endpoint: expected [url, verbosity], got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.URL); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &t.Verbosity)
}

func (d *Document) header() documentJSON {
	doc := documentJSON{
		Name:               d.name,
		ID:                 d.id,
		ChainType:          d.chainType,
		BootNodes:          d.BootNodes(),
		TelemetryEndpoints: d.telemetry,
		Properties:         d.properties,
	}
	if doc.BootNodes == nil {
		doc.BootNodes = []string{}
	}
	if d.protocolID != "" {
		pid := d.protocolID
		doc.ProtocolID = &pid
	}
	ext := d.extensions
	doc.Extensions = &ext
	return doc
}

// MarshalJSON implements json.Marshaler. It forces the genesis and emits it
// in structured form under genesis.runtime; a raw document keeps its raw form.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.ExportRaw()
	}
	rec, err := d.Genesis()
	if err != nil {
		return nil, err
	}
	doc := d.header()
	doc.Genesis.Runtime = rec
	return json.Marshal(doc)
}

// Export renders the document as indented JSON, raw or structured.
func (d *Document) Export(raw bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if raw {
		data, err = d.ExportRaw()
	} else {
		data, err = d.MarshalJSON()
	}
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"chain": d.id, "raw": raw, "size": out.Len()}).Info("Exported chain spec")
	return out.Bytes(), nil
}

// ExportRaw renders the document with its genesis as raw storage under
// genesis.raw.top. Entries the runtime computes while building block zero
// are not part of it.
func (d *Document) ExportRaw() ([]byte, error) {
	top, err := d.RawStorage()
	if err != nil {
		return nil, err
	}
	doc := d.header()
	doc.Genesis.Raw = &rawJSON{Top: top}
	return json.Marshal(doc)
}

// Parse decodes a chain specification. The input is checked against the
// document schema, then decoded rejecting unknown fields at every level.
// The extensions must name the same shard as the genesis.
func Parse(data []byte) (*Document, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var doc documentJSON
	if err := genesis.DecodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Extensions == nil {
		return nil, ErrNoExtensions
	}

	d := &Document{
		name:       doc.Name,
		id:         doc.ID,
		chainType:  doc.ChainType,
		bootNodes:  doc.BootNodes,
		telemetry:  doc.TelemetryEndpoints,
		properties: doc.Properties,
		extensions: *doc.Extensions,
	}
	if doc.ProtocolID != nil {
		d.protocolID = *doc.ProtocolID
	}

	var paraID uint32
	switch {
	case doc.Genesis.Runtime != nil && doc.Genesis.Raw != nil:
		return nil, fmt.Errorf("%w: genesis has both runtime and raw forms", ErrInvalidDocument)
	case doc.Genesis.Runtime != nil:
		d.genesis = lazy.Ready(doc.Genesis.Runtime)
		paraID = doc.Genesis.Runtime.ParachainInfo.ParachainID
	case doc.Genesis.Raw != nil:
		if doc.Genesis.Raw.Top == nil {
			doc.Genesis.Raw.Top = map[string]string{}
		}
		d.raw = doc.Genesis.Raw.Top
		d.genesis = lazy.Ready[*genesis.Record](nil)
		id, err := rawParaID(d.raw)
		if err != nil {
			return nil, err
		}
		paraID = id
	default:
		return nil, fmt.Errorf("%w: missing genesis", ErrInvalidDocument)
	}

	if paraID != d.extensions.ParaID {
		return nil, fmt.Errorf("%w: extensions %d, genesis %d", ErrParaIDMismatch, d.extensions.ParaID, paraID)
	}
	return d, nil
}

func rawKVs(top map[string]string) ([]genesis.KV, error) {
	kvs := make([]genesis.KV, 0, len(top))
	for k, v := range top {
		key, err := hexutil.Decode(k)
		if err != nil {
			return nil, fmt.Errorf("%w: raw key %q: %v", ErrInvalidDocument, k, err)
		}
		value, err := hexutil.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: raw value of %q: %v", ErrInvalidDocument, k, err)
		}
		kvs = append(kvs, genesis.KV{Key: key, Value: value})
	}
	sort.Slice(kvs, func(i, j int) bool {
		return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0
	})
	return kvs, nil
}

func rawParaID(top map[string]string) (uint32, error) {
	key := hexutil.Encode(genesis.ValueKey("ParachainInfo", "ParachainId"))
	value, ok := top[key]
	if !ok {
		return 0, fmt.Errorf("%w: raw genesis has no parachain id", ErrInvalidDocument)
	}
	enc, err := hexutil.Decode(value)
	if err != nil {
		return 0, fmt.Errorf("%w: raw parachain id: %v", ErrInvalidDocument, err)
	}
	id, err := scale.NewReader(enc).U32()
	if err != nil {
		return 0, fmt.Errorf("%w: raw parachain id: %v", ErrInvalidDocument, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: raw parachain id is 0", ErrInvalidDocument)
	}
	return id, nil
}
