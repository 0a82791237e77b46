package jsonapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mttc/sampler"
)

const chainInput = `{
  "nodes": [
    { "id": 1,   "trace data": { "start": 0 } },
    { "id": "b", "trace data": {} },
    { "id": "c", "trace data": { "end": true } }
  ],
  "edges": [
    { "id": "ab", "from": 1,   "to": "b", "trace data": { "echo": { "rate": 0 } } },
    { "id": "bc", "from": "b", "to": "c", "trace data": { "echo": { "rate": 0 } } }
  ]
}`

func TestRun_InstantChain(t *testing.T) {
	// No explicit timeframe: the quantile hunt detects the instant path
	// and derives a zero horizon, so every time lands at exactly 0.
	out, err := Run(chainInput,
		WithSeed(1),
		WithCriteria(sampler.ConvergenceCriteria{Window: 10, TTolerance: 0.01}),
		WithResolution(10),
	)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Equal(t, 0.0, got["mttc"])
	require.Equal(t, 0.0, got["mtti"])
	require.Greater(t, got["histories"], 0.0)

	nodes := got["nodes"].([]interface{})
	require.Len(t, nodes, 3)

	// Numeric id round-trips as a number, not a quoted string.
	first := nodes[0].(map[string]interface{})
	require.Equal(t, 1.0, first["id"])

	results := first["results"].(map[string]interface{})
	require.Equal(t, 0.0, results["mttc"])
	require.Contains(t, results, "mttc samples")
	require.Contains(t, results, "mtti")
}

func TestRun_MalformedInput(t *testing.T) {
	_, err := Run(`{"nodes": [`)
	require.ErrorIs(t, err, ErrBadInput)
}

func TestRun_WarningsSurfaceDanglingEdge(t *testing.T) {
	input := `{
	  "nodes": [
	    { "id": "a", "trace data": { "start": 0 } },
	    { "id": "z", "trace data": { "end": true } }
	  ],
	  "edges": [
	    { "id": "az", "from": "a", "to": "z",       "trace data": { "echo": { "rate": 0 } } },
	    { "id": "ax", "from": "a", "to": "missing", "trace data": { "echo": { "rate": 0 } } }
	  ]
	}`
	out, err := Run(input,
		WithSeed(1),
		WithTimeframe(1),
		WithCriteria(sampler.ConvergenceCriteria{Window: 10, TTolerance: 0.01}),
		WithResolution(10),
	)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got["warnings"])
}

func TestRun_WithoutInvolvementOmitsMTTI(t *testing.T) {
	out, err := Run(chainInput,
		WithSeed(1),
		WithTimeframe(1),
		WithCriteria(sampler.ConvergenceCriteria{Window: 10, TTolerance: 0.01}),
		WithResolution(10),
		WithoutInvolvement(),
	)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotContains(t, got, "mtti")

	nodes := got["nodes"].([]interface{})
	results := nodes[0].(map[string]interface{})["results"].(map[string]interface{})
	require.NotContains(t, results, "mtti")
}

func TestWire_EchoVariantsDecode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want func(t *testing.T, w wireEcho)
	}{
		{"simple", `"simple"`, func(t *testing.T, w wireEcho) {
			require.True(t, w.spec.Simple)
		}},
		{"catalog key", `"cve-2024-001"`, func(t *testing.T, w wireEcho) {
			require.Equal(t, "cve-2024-001", w.spec.CatalogKey)
		}},
		{"record", `{"rate": 12.5}`, func(t *testing.T, w wireEcho) {
			require.NotNil(t, w.spec.Record)
			require.Equal(t, 12.5, w.spec.Record.Rate)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var w wireEcho
			require.NoError(t, json.Unmarshal([]byte(tc.in), &w))
			tc.want(t, w)
		})
	}
}

func TestWire_FoxtrotRejectsUnknownString(t *testing.T) {
	var w wireFoxtrot
	require.Error(t, json.Unmarshal([]byte(`"complicated"`), &w))
}
