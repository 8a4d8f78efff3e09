// This file maps defaults, the TOML config file, the environment and CLI
// flags onto a single Config struct.

package launcher

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-collator-spec/para/genesis"
)

// EnvPrefix prefixes every environment variable the launcher reads,
// e.g. COLLATOR_CHAIN_PARA_ID.
const EnvPrefix = "COLLATOR"

// Config aggregates everything a command needs.
//
// Environment names follow the field path below EnvPrefix, e.g. Chain.ParaID
// reads COLLATOR_CHAIN_PARA_ID. Fields must not carry envconfig name tags:
// envconfig also reads a tag's bare name when the prefixed variable is unset.
type Config struct {
	Node    NodeConfig            `toml:"node"`
	Chain   ChainConfig           `toml:"chain"`
	Policy  genesis.NetworkPolicy `toml:"policy"`
	Keys    KeysConfig            `toml:"keys"`
	Logging LoggingConfig         `toml:"logging"`
}

// NodeConfig locates local state.
type NodeConfig struct {
	DataDir string `toml:"datadir"`
}

// ChainConfig selects the chain and the shape of the exported document.
type ChainConfig struct {
	Name      string   `toml:"name"`
	ParaID    uint32   `toml:"para_id" split_words:"true"`
	BootNodes []string `toml:"bootnodes"`
	Runtime   string   `toml:"runtime"`
	Raw       bool     `toml:"raw"`
	Output    string   `toml:"output"`
}

// KeysConfig selects the schemes development seeds are derived with.
type KeysConfig struct {
	AccountScheme   string `toml:"account_scheme" split_words:"true"`
	ConsensusScheme string `toml:"consensus_scheme" split_words:"true"`
	// Phrase replaces the development mnemonic. Never put a production
	// secret here.
	Phrase string `toml:"phrase"`
}

// LoggingConfig is applied by setupLogging.
type LoggingConfig struct {
	Verbosity int    `toml:"verbosity"`
	Format    string `toml:"format"`
	Color     bool   `toml:"color"`
	Sentry    string `toml:"sentry"`
}

// MakeAllConfigs merges defaults, the optional config file, the environment
// (after loading the dotenv file) and CLI overrides, in that order.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig()

	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if err := loadEnv(ctx.String("envfile"), &cfg); err != nil {
		return Config{}, err
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Chain.ParaID == 0 {
		return Config{}, fmt.Errorf("invalid para id: %w", genesis.ErrInvalidParaID)
	}
	if err := cfg.Policy.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys %v", undecoded)
	}
	return nil
}

// loadEnv reads the dotenv file, if present, into the process environment
// without overriding variables that are already set, then applies the
// COLLATOR_* variables.
func loadEnv(file string, cfg *Config) error {
	if file != "" {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.IsSet("datadir") {
		cfg.Node.DataDir = ctx.String("datadir")
	}

	if ctx.IsSet("chain") {
		cfg.Chain.Name = ctx.String("chain")
	}
	if ctx.IsSet("para-id") {
		v, err := parseUint32("para-id", uint64(ctx.Uint("para-id")))
		if err != nil {
			return err
		}
		cfg.Chain.ParaID = v
	}
	if ctx.IsSet("bootnodes") {
		cfg.Chain.BootNodes = splitCSV(ctx.String("bootnodes"))
		if cfg.Chain.BootNodes == nil {
			cfg.Chain.BootNodes = []string{}
		}
	}
	if ctx.IsSet("raw") {
		cfg.Chain.Raw = ctx.Bool("raw")
	}
	if ctx.IsSet("output") {
		cfg.Chain.Output = ctx.String("output")
	}
	if ctx.IsSet("runtime") {
		cfg.Chain.Runtime = ctx.String("runtime")
	}

	if ctx.IsSet("existential-deposit") {
		v, err := parseBalance("existential-deposit", ctx.String("existential-deposit"))
		if err != nil {
			return err
		}
		cfg.Policy.ExistentialDeposit = v
	}
	if ctx.IsSet("endowment") {
		v, err := parseBalance("endowment", ctx.String("endowment"))
		if err != nil {
			return err
		}
		cfg.Policy.EndowmentBalance = v
	}
	if ctx.IsSet("bond-multiplier") {
		cfg.Policy.CandidacyBondMultiplier = ctx.Uint64("bond-multiplier")
	}
	if ctx.IsSet("desired-candidates") {
		v, err := parseUint32("desired-candidates", uint64(ctx.Uint("desired-candidates")))
		if err != nil {
			return err
		}
		cfg.Policy.DesiredCandidates = v
	}

	if ctx.IsSet("scheme.account") {
		cfg.Keys.AccountScheme = ctx.String("scheme.account")
	}
	if ctx.IsSet("scheme.consensus") {
		cfg.Keys.ConsensusScheme = ctx.String("scheme.consensus")
	}

	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}
	if ctx.IsSet("log.sentry") {
		cfg.Logging.Sentry = ctx.String("log.sentry")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func parseBalance(name, raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, fmt.Errorf("invalid --%s %q: not a decimal integer", name, raw)
	}
	return v, nil
}

// parseUint32 narrows a flag value, rejecting anything that does not fit.
func parseUint32(name string, v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("invalid --%s %d: exceeds %d", name, v, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

// resolvePath expands a leading ~ to the home directory and makes relative
// paths absolute against the working directory.
func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GuessWorkDir returns the current working directory, or "." when it cannot
// be determined.
func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// GuessHomeDir returns the user's home directory, or "." when the
// environment does not define one.
func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
