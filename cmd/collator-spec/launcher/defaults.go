package launcher

import (
	"github.com/rony4d/go-collator-spec/integration"
	"github.com/rony4d/go-collator-spec/para/genesis"
)

// DefaultConfig returns the baseline configuration every other layer
// (config file, environment, flags) is applied on top of.
func DefaultConfig() Config {
	return Config{
		Node: NodeConfig{
			DataDir: "~/.collator", // seeded storage lives under <datadir>/chains/<id>/db
		},
		Chain: ChainConfig{
			Name:   "local", // same default as the node's --chain
			ParaID: integration.DefaultParaID,
			// BootNodes nil keeps the preset's own list
		},
		Policy: genesis.DefaultPolicy(),
		Keys: KeysConfig{
			AccountScheme:   "sr25519",
			ConsensusScheme: "sr25519",
		},
		Logging: LoggingConfig{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
