package chainspec

// Properties describe the native token to wallets and explorers.
type Properties struct {
	TokenSymbol   string  `json:"tokenSymbol,omitempty"`
	TokenDecimals uint8   `json:"tokenDecimals,omitempty"`
	SS58Format    *uint16 `json:"ss58Format,omitempty"`
}

// DefaultProperties returns the token description shared by the presets.
func DefaultProperties() *Properties {
	format := uint16(42)
	return &Properties{
		TokenSymbol:   "CRU",
		TokenDecimals: 12,
		SS58Format:    &format,
	}
}
