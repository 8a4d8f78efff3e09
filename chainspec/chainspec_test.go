package chainspec

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-collator-spec/inter/account"
	"github.com/rony4d/go-collator-spec/inter/sessionkey"
	"github.com/rony4d/go-collator-spec/para/genesis"
	"github.com/rony4d/go-collator-spec/runtimecode"
	"github.com/rony4d/go-collator-spec/utils/lazy"
)

const bootNode = "/ip4/127.0.0.1/tcp/30333/p2p/12D3KooWEyoppNCUx8Yx66oV9fJnriXwCcXwDDUA2kj6vnc6iDEp"

func fill(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func testGenesis(paraID uint32) GenesisFunc {
	return func() (*genesis.Record, error) {
		var root, inv account.ID
		copy(root[:], fill(1, 32))
		copy(inv[:], fill(2, 32))
		asm := &genesis.Assembler{Runtime: runtimecode.Static("\x00asm")}
		return asm.Build(&root,
			[]genesis.Invulnerable{{Account: inv, Key: sessionkey.Unchecked(sessionkey.Types.Sr25519, fill(3, 32))}},
			[]account.ID{root, inv, root}, paraID)
	}
}

func testDocument(paraID uint32, build GenesisFunc) *Document {
	return New(Options{
		Name:       "Local Testnet",
		ID:         "local_testnet",
		ChainType:  Local,
		Genesis:    build,
		BootNodes:  []string{bootNode},
		Properties: DefaultProperties(),
		Extensions: Extensions{RelayChain: "westend-dev", ParaID: paraID},
	})
}

func TestChainType(t *testing.T) {
	require := require.New(t)

	for _, ct := range []ChainType{Development, Local, Live} {
		text, err := ct.MarshalText()
		require.NoError(err)
		var back ChainType
		require.NoError(back.UnmarshalText(text))
		require.Equal(ct, back)
	}

	var ct ChainType
	require.ErrorIs(ct.UnmarshalText([]byte("Testnet")), ErrUnknownChainType)
	require.ErrorIs(json.Unmarshal([]byte(`"development"`), &ct), ErrUnknownChainType)
	_, err := ChainType(9).MarshalText()
	require.ErrorIs(err, ErrUnknownChainType)
	require.Equal("ChainType(9)", ChainType(9).String())
}

func TestExtensions(t *testing.T) {
	require := require.New(t)

	ext := Extensions{RelayChain: "rococo-local", ParaID: 2000}
	data, err := json.Marshal(ext)
	require.NoError(err)
	require.JSONEq(`{"relay_chain":"rococo-local","para_id":2000}`, string(data))

	back, err := ParseExtensions(data)
	require.NoError(err)
	require.Equal(ext, back)

	// Case 1: unknown field
	_, err = ParseExtensions([]byte(`{"relay_chain":"x","para_id":1,"bad_field":true}`))
	require.ErrorIs(err, ErrInvalidDocument)

	// Case 2: missing field
	_, err = ParseExtensions([]byte(`{"relay_chain":"x"}`))
	require.ErrorIs(err, ErrInvalidDocument)

	// Case 3: wrong type
	_, err = ParseExtensions([]byte(`{"relay_chain":"x","para_id":"1"}`))
	require.ErrorIs(err, ErrInvalidDocument)
}

func TestGenesisEvaluatedOnce(t *testing.T) {
	require := require.New(t)

	var calls int32
	build := testGenesis(1000)
	doc := testDocument(1000, func() (*genesis.Record, error) {
		atomic.AddInt32(&calls, 1)
		return build()
	})
	require.Equal(lazy.Unevaluated, doc.State())
	require.Equal(int32(0), atomic.LoadInt32(&calls))

	const callers = 32
	results := make([]*genesis.Record, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := doc.Genesis()
			require.NoError(err)
			results[i] = rec
		}(i)
	}
	wg.Wait()

	require.Equal(int32(1), atomic.LoadInt32(&calls))
	require.Equal(lazy.Evaluated, doc.State())
	for _, rec := range results {
		require.Same(results[0], rec)
	}
}

func TestGenesisErrorIsCached(t *testing.T) {
	require := require.New(t)

	var calls int32
	doc := testDocument(1, func() (*genesis.Record, error) {
		atomic.AddInt32(&calls, 1)
		return nil, runtimecode.ErrRuntimeNotBuilt
	})
	_, err := doc.Genesis()
	require.ErrorIs(err, runtimecode.ErrRuntimeNotBuilt)
	_, err = doc.MarshalJSON()
	require.ErrorIs(err, runtimecode.ErrRuntimeNotBuilt)
	require.Equal(int32(1), atomic.LoadInt32(&calls))

	_, err = New(Options{ID: "empty"}).Genesis()
	require.ErrorContains(err, "no genesis builder")
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	doc := testDocument(1000, testGenesis(1000))
	data, err := doc.Export(false)
	require.NoError(err)

	parsed, err := Parse(data)
	require.NoError(err)
	require.Equal(lazy.Evaluated, parsed.State())
	require.Equal("Local Testnet", parsed.Name())
	require.Equal("local_testnet", parsed.ID())
	require.Equal(Local, parsed.ChainType())
	require.Equal([]string{bootNode}, parsed.BootNodes())
	require.Equal(doc.Extensions(), parsed.Extensions())
	require.Equal(doc.Properties(), parsed.Properties())
	require.NoError(parsed.Validate())

	again, err := parsed.Export(false)
	require.NoError(err)
	require.JSONEq(string(data), string(again))

	ext, err := ExtensionsOf(data)
	require.NoError(err)
	require.Equal(Extensions{RelayChain: "westend-dev", ParaID: 1000}, ext)

	var generic map[string]interface{}
	require.NoError(json.Unmarshal(data, &generic))
	require.Contains(generic, "genesis")
	require.Contains(generic["genesis"], "runtime")
}

func TestRawRoundTrip(t *testing.T) {
	require := require.New(t)

	doc := testDocument(1000, testGenesis(1000))
	want, err := doc.StateRoot()
	require.NoError(err)

	data, err := doc.Export(true)
	require.NoError(err)
	require.Contains(string(data), `"raw"`)
	require.Contains(string(data), `"0x3a636f6465": "0x0061736d"`)

	parsed, err := Parse(data)
	require.NoError(err)
	require.True(parsed.IsRaw())
	_, err = parsed.Genesis()
	require.ErrorIs(err, ErrRawGenesis)
	root, err := parsed.StateRoot()
	require.NoError(err)
	require.Equal(want, root)
	require.NoError(parsed.Validate())

	again, err := json.Marshal(parsed)
	require.NoError(err)
	compact, err := doc.ExportRaw()
	require.NoError(err)
	require.JSONEq(string(compact), string(again))
}

func TestParseStrictness(t *testing.T) {
	data, err := testDocument(7, testGenesis(7)).Export(false)
	require.NoError(t, err)

	mutate := func(fn func(m map[string]interface{})) []byte {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &m))
		fn(m)
		out, err := json.Marshal(m)
		require.NoError(t, err)
		return out
	}

	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"extra top-level field", mutate(func(m map[string]interface{}) { m["unexpected"] = 1 }), ErrInvalidDocument},
		{"extra extension field", mutate(func(m map[string]interface{}) {
			m["extensions"].(map[string]interface{})["bad_field"] = true
		}), ErrInvalidDocument},
		{"unknown chain type", mutate(func(m map[string]interface{}) { m["chainType"] = "Testnet" }), ErrInvalidDocument},
		{"missing extensions", mutate(func(m map[string]interface{}) { delete(m, "extensions") }), ErrInvalidDocument},
		{"extra genesis module", mutate(func(m map[string]interface{}) {
			m["genesis"].(map[string]interface{})["runtime"].(map[string]interface{})["staking"] = map[string]interface{}{}
		}), ErrInvalidDocument},
		{"para id mismatch", mutate(func(m map[string]interface{}) {
			m["extensions"].(map[string]interface{})["para_id"] = 8
		}), ErrParaIDMismatch},
		{"zero para id", mutate(func(m map[string]interface{}) {
			m["extensions"].(map[string]interface{})["para_id"] = 0
			m["genesis"].(map[string]interface{})["runtime"].(map[string]interface{})["parachainInfo"] = map[string]interface{}{"parachainId": 0}
		}), ErrInvalidDocument},
		{"not json", []byte("{"), ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), err)
		})
	}
}

func TestValidate(t *testing.T) {
	require := require.New(t)

	require.NoError(testDocument(5, testGenesis(5)).Validate())

	doc := testDocument(6, testGenesis(5)).WithBootNodes([]string{bootNode, "not-a-multiaddr", "/ip4/10.0.0.1/tcp/30333"})
	err := doc.Validate()
	require.ErrorIs(err, ErrParaIDMismatch)
	require.ErrorIs(err, ErrInvalidBootNode)
	require.Equal(3, strings.Count(err.Error(), "* "))
}

func TestWithBootNodes(t *testing.T) {
	require := require.New(t)

	var calls int32
	doc := testDocument(5, func() (*genesis.Record, error) {
		atomic.AddInt32(&calls, 1)
		return testGenesis(5)()
	})
	other := doc.WithBootNodes(nil)

	require.Equal([]string{bootNode}, doc.BootNodes())
	require.Empty(other.BootNodes())

	a, err := doc.Genesis()
	require.NoError(err)
	b, err := other.Genesis()
	require.NoError(err)
	require.Same(a, b)
	require.Equal(int32(1), atomic.LoadInt32(&calls))
}

func TestNewDefaultChainType(t *testing.T) {
	doc := New(Options{Name: "x", ID: "x"})
	require.Equal(t, Development, doc.ChainType())
	require.Equal(t, lazy.Unevaluated, doc.State())
}

func TestExtensionsOf(t *testing.T) {
	require := require.New(t)

	_, err := ExtensionsOf([]byte(`{"name":"x"}`))
	require.ErrorIs(err, ErrNoExtensions)

	ext, err := ExtensionsOf([]byte(`{"genesis":{"anything":1},"extensions":{"relay_chain":"r","para_id":3}}`))
	require.NoError(err)
	require.Equal(uint32(3), ext.ParaID)
}

func TestFingerprint(t *testing.T) {
	require := require.New(t)

	a, err := Fingerprint([]byte("spec"))
	require.NoError(err)
	b, err := Fingerprint([]byte("spec"))
	require.NoError(err)
	c, err := Fingerprint([]byte("spec2"))
	require.NoError(err)

	require.True(a.Equals(b))
	require.False(a.Equals(c))
	require.Equal(uint64(1), a.Version())
	require.Equal(uint64(Blake2b256), a.Prefix().MhType)
}
