package launcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-collator-spec/chainspec"
	"github.com/rony4d/go-collator-spec/flags"
	"github.com/rony4d/go-collator-spec/identity"
	"github.com/rony4d/go-collator-spec/integration"
	"github.com/rony4d/go-collator-spec/keys"
	"github.com/rony4d/go-collator-spec/para/genesis"
	"github.com/rony4d/go-collator-spec/runtimecode"
)

var log = logrus.WithField("module", "launcher")

// The commands share one flow: MakeAllConfigs merges every configuration
// layer, setupLogging points logs at stderr, and loadSpec turns --chain into
// a Document. A preset Document is still unevaluated at that point; the
// genesis is built by whichever step first needs it (validation, export or
// the state root).
var (
	buildSpecCommand = cli.Command{
		Name:   "build-spec",
		Usage:  "Build a chain specification and print it as JSON",
		Flags:  flags.Merge(flags.CommonFlags(), flags.ChainFlags(), flags.GenesisFlags()),
		Action: buildSpec,
	}
	checkSpecCommand = cli.Command{
		Name:      "check-spec",
		Usage:     "Parse and validate a chain specification file",
		ArgsUsage: "<spec.json>",
		Flags:     flags.CommonFlags(),
		Action:    checkSpec,
	}
	exportGenesisStateCommand = cli.Command{
		Name:   "export-genesis-state",
		Usage:  "Print the genesis state root",
		Flags:  flags.Merge(flags.CommonFlags(), flags.ChainFlags(), flags.GenesisFlags()),
		Action: exportGenesisState,
	}
	seedStorageCommand = cli.Command{
		Name:   "seed-storage",
		Usage:  "Write the genesis storage into <datadir>/chains/<id>/db",
		Flags:  flags.Merge(flags.CommonFlags(), flags.ChainFlags(), flags.GenesisFlags()),
		Action: seedStorage,
	}
)

// prepare builds the config and sets up logging for a command.
func prepare(ctx *cli.Context) (Config, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return Config{}, err
	}
	if err := setupLogging(cfg.Logging, ctx.App.ErrWriter); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolverOf(cfg KeysConfig) (identity.Resolver, error) {
	account, err := keys.SchemeByName(cfg.AccountScheme)
	if err != nil {
		return identity.Resolver{}, fmt.Errorf("account scheme: %w", err)
	}
	consensus, err := keys.SchemeByName(cfg.ConsensusScheme)
	if err != nil {
		return identity.Resolver{}, fmt.Errorf("consensus scheme: %w", err)
	}
	return identity.Resolver{AccountScheme: account, ConsensusScheme: consensus, Phrase: cfg.Phrase}, nil
}

// loadSpec resolves cfg.Chain.Name: a preset name builds the preset, any
// other value is read as a chain specification file.
func loadSpec(cfg Config) (*chainspec.Document, error) {
	preset, presetErr := integration.PresetByName(cfg.Chain.Name)
	if presetErr == nil {
		resolver, err := resolverOf(cfg.Keys)
		if err != nil {
			return nil, err
		}
		env := integration.Env{Policy: cfg.Policy, Resolver: resolver}
		if cfg.Chain.Runtime != "" {
			env.Runtime = runtimecode.File(resolvePath(cfg.Chain.Runtime))
		}
		if cfg.Chain.BootNodes != nil {
			preset.BootNodes = cfg.Chain.BootNodes
		}
		return preset.Spec(cfg.Chain.ParaID, env), nil
	}

	data, err := os.ReadFile(resolvePath(cfg.Chain.Name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, presetErr
		}
		return nil, err
	}
	doc, err := chainspec.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Chain.Name, err)
	}
	if cfg.Chain.BootNodes != nil {
		doc = doc.WithBootNodes(cfg.Chain.BootNodes)
	}
	return doc, nil
}

func writeOutput(ctx *cli.Context, path string, data []byte) error {
	if path == "" {
		_, err := ctx.App.Writer.Write(data)
		return err
	}
	path = resolvePath(path)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// buildSpec validates the document, exports it (raw with --raw) to --output
// or stdout, and logs the fingerprint operators compare before distributing
// the file.
func buildSpec(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	doc, err := loadSpec(cfg)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	data, err := doc.Export(cfg.Chain.Raw)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	fp, err := chainspec.Fingerprint(data)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"chain":       doc.ID(),
		"para":        doc.Extensions().ParaID,
		"fingerprint": fp,
	}).Info("Built chain spec")
	return writeOutput(ctx, cfg.Chain.Output, data)
}

// checkSpec parses a spec file strictly, validates it and prints a summary
// including the state root and fingerprint.
func checkSpec(ctx *cli.Context) error {
	if _, err := prepare(ctx); err != nil {
		return err
	}
	path := ctx.Args().First()
	if path == "" {
		return fmt.Errorf("check-spec: missing chain spec file argument")
	}
	data, err := os.ReadFile(resolvePath(path))
	if err != nil {
		return err
	}
	doc, err := chainspec.Parse(data)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	root, err := doc.StateRoot()
	if err != nil {
		return err
	}
	fp, err := chainspec.Fingerprint(data)
	if err != nil {
		return err
	}
	printSummary(ctx.App.Writer, doc, root.Hex(), fp.String())
	return nil
}

func printSummary(w io.Writer, doc *chainspec.Document, root, fingerprint string) {
	ext := doc.Extensions()
	fmt.Fprintf(w, "name:        %s\n", doc.Name())
	fmt.Fprintf(w, "id:          %s\n", doc.ID())
	fmt.Fprintf(w, "chainType:   %s\n", doc.ChainType())
	fmt.Fprintf(w, "relayChain:  %s\n", ext.RelayChain)
	fmt.Fprintf(w, "paraId:      %d\n", ext.ParaID)
	fmt.Fprintf(w, "raw:         %t\n", doc.IsRaw())
	fmt.Fprintf(w, "stateRoot:   %s\n", root)
	fmt.Fprintf(w, "fingerprint: %s\n", fingerprint)
}

// exportGenesisState prints the genesis state root of the selected chain.
func exportGenesisState(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	doc, err := loadSpec(cfg)
	if err != nil {
		return err
	}
	root, err := doc.StateRoot()
	if err != nil {
		return err
	}
	return writeOutput(ctx, cfg.Chain.Output, []byte(root.Hex()+"\n"))
}

// batchWriter collects puts into a leveldb batch so the whole genesis is
// committed in one write.
type batchWriter struct {
	batch *leveldb.Batch
}

func (w batchWriter) Put(key, value []byte) error {
	w.batch.Put(key, value)
	return nil
}

// seedStorage writes the raw genesis storage into a leveldb database under
// <datadir>/chains/<id>/db in a single batch and prints the state root.
func seedStorage(ctx *cli.Context) error {
	cfg, err := prepare(ctx)
	if err != nil {
		return err
	}
	doc, err := loadSpec(cfg)
	if err != nil {
		return err
	}
	kvs, err := doc.Storage()
	if err != nil {
		return err
	}

	dir := filepath.Join(resolvePath(cfg.Node.DataDir), "chains", doc.ID(), "db")
	if err := ensureDir(dir); err != nil {
		return err
	}
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	defer db.Close()

	w := batchWriter{batch: new(leveldb.Batch)}
	root, err := genesis.Seed(kvs, w)
	if err != nil {
		return err
	}
	if err := db.Write(w.batch, nil); err != nil {
		return fmt.Errorf("write genesis storage: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, root.Hex())
	return nil
}
