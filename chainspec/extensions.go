package chainspec

import (
	"encoding/json"
	"fmt"

	"github.com/rony4d/go-collator-spec/para/genesis"
)

// Extensions is the parachain-specific part of a chain specification: the
// relay chain the shard attaches to and the shard id.
type Extensions struct {
	RelayChain string `json:"relay_chain"`
	ParaID     uint32 `json:"para_id"`
}

// ParseExtensions decodes an extensions block. Both fields are required and
// unknown fields are rejected.
func ParseExtensions(data []byte) (Extensions, error) {
	var raw struct {
		RelayChain *string `json:"relay_chain"`
		ParaID     *uint32 `json:"para_id"`
	}
	if err := genesis.DecodeStrict(data, &raw); err != nil {
		return Extensions{}, fmt.Errorf("%w: extensions: %v", ErrInvalidDocument, err)
	}
	if raw.RelayChain == nil {
		return Extensions{}, fmt.Errorf("%w: extensions: missing field relay_chain", ErrInvalidDocument)
	}
	if raw.ParaID == nil {
		return Extensions{}, fmt.Errorf("%w: extensions: missing field para_id", ErrInvalidDocument)
	}
	return Extensions{RelayChain: *raw.RelayChain, ParaID: *raw.ParaID}, nil
}

// UnmarshalJSON implements json.Unmarshaler with the rules of ParseExtensions.
func (e *Extensions) UnmarshalJSON(data []byte) error {
	ext, err := ParseExtensions(data)
	if err != nil {
		return err
	}
	*e = ext
	return nil
}

// ExtensionsOf reads the extensions block of a serialized chain
// specification without decoding its genesis.
func ExtensionsOf(data []byte) (Extensions, error) {
	var doc struct {
		Extensions json.RawMessage `json:"extensions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Extensions{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.Extensions) == 0 || string(doc.Extensions) == "null" {
		return Extensions{}, ErrNoExtensions
	}
	return ParseExtensions(doc.Extensions)
}
