package chainspec

import "fmt"

// ChainType classifies a network.
type ChainType uint8

const (
	// Development is a single-operator chain with well-known keys.
	Development ChainType = iota
	// Local is a multi-node chain run on one machine or private network.
	Local
	// Live is a public network.
	Live
)

var chainTypeNames = map[ChainType]string{
	Development: "Development",
	Local:       "Local",
	Live:        "Live",
}

// String implements fmt.Stringer.
func (t ChainType) String() string {
	if name, ok := chainTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ChainType(%d)", uint8(t))
}

// ParseChainType is the inverse of String.
func ParseChainType(s string) (ChainType, error) {
	for t, name := range chainTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChainType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t ChainType) MarshalText() ([]byte, error) {
	name, ok := chainTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChainType, uint8(t))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ChainType) UnmarshalText(input []byte) error {
	parsed, err := ParseChainType(string(input))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
