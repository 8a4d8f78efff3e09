package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// ChainFlags select and shape the chain specification.
func ChainFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "chain",
			Usage: "Preset name (dev|local|staging) or path to a chain spec JSON file",
			Value: "local",
		},
		cli.UintFlag{
			Name:  "para-id",
			Usage: "Parachain id written into genesis and extensions",
			Value: 2000,
		},
		cli.StringFlag{
			Name:  "bootnodes",
			Usage: "Comma-separated multiaddrs replacing the preset's boot nodes",
		},
		cli.BoolFlag{
			Name:  "raw",
			Usage: "Export genesis as raw storage",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "Output file (stdout when empty)",
		},
	}
}
