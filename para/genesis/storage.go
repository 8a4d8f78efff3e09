package genesis

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
	"github.com/rony4d/go-collator-spec/utils/scale"
)

// CodeKey is the well-known storage key of the runtime code.
var CodeKey = []byte(":code")

// KV is one raw storage entry.
type KV struct {
	Key   []byte
	Value []byte
}

// KeyValueWriter is the storage a genesis state can be seeded into.
type KeyValueWriter interface {
	Put(key []byte, value []byte) error
}

// Storage returns the raw key/value form of the record, sorted by key.
//
// Keys follow the runtime's storage layout: Twox128(module) ++ Twox128(item)
// for plain values, with the hashed map key appended for maps. Accounts are
// keyed with Blake2_128Concat, session entries with Twox64Concat. Values are
// SCALE encoded; the runtime code is stored as is under CodeKey.
//
// Only the entries the genesis config sets are produced. Values the runtime
// derives while building block zero (block hashes, the runtime upgrade
// marker, event and weight bookkeeping) are left to the node.
func (r *Record) Storage() ([]KV, error) {
	var kvs []KV
	put := func(key, value []byte) {
		kvs = append(kvs, KV{Key: key, Value: value})
	}

	put(common.CopyBytes(CodeKey), common.CopyBytes(r.System.Code))

	accs, order, err := r.accountInfos()
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, acc := range order {
		info := accs[acc]
		total.Add(total, info.free)
		v, err := info.encode()
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc, err)
		}
		put(MapKey("System", "Account", Blake2_128Concat(acc.Bytes())), v)
	}
	issuance, err := u128(total)
	if err != nil {
		return nil, fmt.Errorf("total issuance: %w", err)
	}
	put(ValueKey("Balances", "TotalIssuance"), issuance)

	if r.Sudo.Key != nil {
		put(ValueKey("Sudo", "Key"), r.Sudo.Key.Bytes())
	}

	put(ValueKey("ParachainInfo", "ParachainId"), scale.Encode(func(w *scale.Writer) {
		w.U32(r.ParachainInfo.ParachainID)
	}))

	put(ValueKey("CollatorSelection", "Invulnerables"), accounts(r.CollatorSelection.Invulnerables))
	bond, err := u128(r.CollatorSelection.CandidacyBond)
	if err != nil {
		return nil, fmt.Errorf("candidacy bond: %w", err)
	}
	put(ValueKey("CollatorSelection", "CandidacyBond"), bond)
	put(ValueKey("CollatorSelection", "DesiredCandidates"), scale.Encode(func(w *scale.Writer) {
		w.U32(r.CollatorSelection.DesiredCandidates)
	}))

	validators := make([]account.ID, 0, len(r.Session.Keys))
	queued := scale.NewWriter(nil)
	queued.Compact(uint64(len(r.Session.Keys)))
	authorities := scale.NewWriter(nil)
	authorities.Compact(uint64(len(r.Session.Keys)))
	for _, sk := range r.Session.Keys {
		validators = append(validators, sk.Validator)
		bundle := sessionBundle(sk.Keys)
		put(MapKey("Session", "NextKeys", Twox64Concat(sk.Validator.Bytes())), bundle)
		for _, f := range sk.Keys.Fields() {
			owner := scale.Encode(func(w *scale.Writer) {
				w.Fixed(f.TypeID())
				w.Vec(f.Key.Raw)
			})
			put(MapKey("Session", "KeyOwner", Twox64Concat(owner)), sk.Validator.Bytes())
		}
		queued.Fixed(sk.Validator.Bytes())
		queued.Fixed(bundle)
		authorities.Fixed(sk.Keys.Aura.Raw)
	}
	put(ValueKey("Session", "Validators"), accounts(validators))
	put(ValueKey("Session", "QueuedKeys"), queued.Bytes())
	put(ValueKey("Aura", "Authorities"), authorities.Bytes())

	sort.Slice(kvs, func(i, j int) bool {
		return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0
	})
	return kvs, nil
}

// accountInfo is the slice of frame_system's AccountInfo the genesis
// touches.
type accountInfo struct {
	consumers uint32
	providers uint32
	free      *big.Int
}

// encode writes AccountInfo{nonce, consumers, providers, sufficients,
// AccountData{free, reserved, misc_frozen, fee_frozen}}.
func (a *accountInfo) encode() ([]byte, error) {
	w := scale.NewWriter(make([]byte, 0, 80))
	w.U32(0)
	w.U32(a.consumers)
	w.U32(a.providers)
	w.U32(0)
	if err := w.U128(a.free); err != nil {
		return nil, err
	}
	for i := 0; i < 3; i++ {
		if err := w.U128(new(big.Int)); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// accountInfos replays the reference counting of the balances and session
// genesis: an endowed account gets one provider; a session key owner gets a
// consumer when it already has a provider, and a provider otherwise.
func (r *Record) accountInfos() (map[account.ID]*accountInfo, []account.ID, error) {
	infos := make(map[account.ID]*accountInfo)
	var order []account.ID
	get := func(acc account.ID) *accountInfo {
		info, ok := infos[acc]
		if !ok {
			info = &accountInfo{free: new(big.Int)}
			infos[acc] = info
			order = append(order, acc)
		}
		return info
	}

	for _, b := range r.Balances.Balances {
		if b.Amount == nil {
			return nil, nil, fmt.Errorf("balance of %s: missing amount", b.Account)
		}
		info := get(b.Account)
		if info.providers == 0 {
			info.providers = 1
		}
		info.free = new(big.Int).Set(b.Amount)
	}
	for _, sk := range r.Session.Keys {
		info := get(sk.Account)
		if info.providers > 0 {
			info.consumers++
		} else {
			info.providers++
		}
	}
	return infos, order, nil
}

func sessionBundle(keys sessionkey.Keys) []byte {
	w := scale.NewWriter(nil)
	for _, f := range keys.Fields() {
		w.Fixed(f.Key.Raw)
	}
	return w.Bytes()
}

// RawStorage returns Storage as a map of 0x-hex keys to 0x-hex values.
func (r *Record) RawStorage() (map[string]string, error) {
	kvs, err := r.Storage()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[hexutil.Encode(kv.Key)] = hexutil.Encode(kv.Value)
	}
	return out, nil
}

// StateRoot commits to the raw storage: blake2b-256 over the sorted entries,
// each written as SCALE (key, value) byte vectors. It is a flat commitment
// for comparing genesis states, not the runtime's trie root.
func (r *Record) StateRoot() (common.Hash, error) {
	kvs, err := r.Storage()
	if err != nil {
		return common.Hash{}, err
	}
	return RootOf(kvs), nil
}

// RootOf computes the state root of already sorted entries.
func RootOf(kvs []KV) common.Hash {
	h, _ := blake2b.New256(nil)
	w := scale.NewWriter(nil)
	for _, kv := range kvs {
		w.Vec(kv.Key)
		w.Vec(kv.Value)
	}
	h.Write(w.Bytes())
	return common.BytesToHash(h.Sum(nil))
}

// SeedStorage writes the raw storage of rec into db and returns the state
// root of what was written.
func SeedStorage(rec *Record, db KeyValueWriter) (common.Hash, error) {
	kvs, err := rec.Storage()
	if err != nil {
		return common.Hash{}, err
	}
	return Seed(kvs, db)
}

// Seed writes sorted raw entries into db and returns their state root.
func Seed(kvs []KV, db KeyValueWriter) (common.Hash, error) {
	for _, kv := range kvs {
		if err := db.Put(kv.Key, kv.Value); err != nil {
			return common.Hash{}, fmt.Errorf("seed storage key %s: %w", hexutil.Encode(kv.Key), err)
		}
	}
	root := RootOf(kvs)
	log.WithFields(logrus.Fields{"entries": len(kvs), "root": root}).Info("Seeded genesis storage")
	return root, nil
}

func u128(v *big.Int) ([]byte, error) {
	if v == nil {
		v = new(big.Int)
	}
	w := scale.NewWriter(nil)
	if err := w.U128(v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func accounts(ids []account.ID) []byte {
	return scale.Encode(func(w *scale.Writer) {
		w.Compact(uint64(len(ids)))
		for _, id := range ids {
			w.Fixed(id[:])
		}
	})
}
