package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// GenesisFlags tune genesis assembly.
func GenesisFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "runtime",
			Usage: "Path to the compiled runtime blob (the embedded runtime when empty)",
		},
		cli.StringFlag{
			Name:  "existential-deposit",
			Usage: "Existential deposit in planck",
		},
		cli.StringFlag{
			Name:  "endowment",
			Usage: "Balance given to every endowed account, in planck",
		},
		cli.Uint64Flag{
			Name:  "bond-multiplier",
			Usage: "Candidacy bond in existential deposits",
		},
		cli.UintFlag{
			Name:  "desired-candidates",
			Usage: "Number of non-invulnerable collators sought",
		},
		cli.StringFlag{
			Name:  "scheme.account",
			Usage: "Signature scheme of development accounts (sr25519|ed25519|ecdsa)",
			Value: "sr25519",
		},
		cli.StringFlag{
			Name:  "scheme.consensus",
			Usage: "Signature scheme of development consensus keys (sr25519|ed25519|ecdsa)",
			Value: "sr25519",
		},
	}
}
