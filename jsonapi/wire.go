package jsonapi

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/mttc/nodenet"
)

// flexID is a node or edge id that may arrive as either a JSON string
// or a JSON number. It round-trips in its original form and exposes a
// normalized string key for internal lookups.
type flexID struct {
	raw json.RawMessage
	key string
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.raw = append(json.RawMessage(nil), data...)
		f.key = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f.raw = append(json.RawMessage(nil), data...)
		f.key = n.String()
		return nil
	}
	return fmt.Errorf("id must be a string or number, got %s", data)
}

func (f flexID) MarshalJSON() ([]byte, error) {
	if f.raw != nil {
		return f.raw, nil
	}
	return json.Marshal(f.key)
}

// wireEcho is the "echo" trace-data value: the literal "simple", a
// catalog-key string, or an inline record object.
type wireEcho struct {
	spec nodenet.EchoSpec
}

func (w *wireEcho) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "simple" {
			w.spec = nodenet.EchoSpec{Simple: true}
		} else {
			w.spec = nodenet.EchoSpec{CatalogKey: s}
		}
		return nil
	}
	var rec struct {
		Rate float64 `json:"rate"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("echo must be \"simple\", a catalog key, or a record: %w", err)
	}
	w.spec = nodenet.EchoSpec{Record: &nodenet.EchoRecord{Rate: rec.Rate}}
	return nil
}

func (w wireEcho) MarshalJSON() ([]byte, error) {
	switch {
	case w.spec.Record != nil:
		return json.Marshal(struct {
			Rate float64 `json:"rate"`
		}{w.spec.Record.Rate})
	case w.spec.CatalogKey != "":
		return json.Marshal(w.spec.CatalogKey)
	default:
		return json.Marshal("simple")
	}
}

// wireFoxtrot is the "foxtrot" trace-data value: the literal "simple"
// or an inline record object (foxtrot has no catalog variant).
type wireFoxtrot struct {
	spec nodenet.FoxtrotSpec
}

func (w *wireFoxtrot) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "simple" {
			return fmt.Errorf("foxtrot string form must be \"simple\", got %q", s)
		}
		w.spec = nodenet.FoxtrotSpec{Simple: true}
		return nil
	}
	var rec struct {
		Rate float64 `json:"rate"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("foxtrot must be \"simple\" or a record: %w", err)
	}
	w.spec = nodenet.FoxtrotSpec{Record: &nodenet.FoxtrotRecord{Rate: rec.Rate}}
	return nil
}

func (w wireFoxtrot) MarshalJSON() ([]byte, error) {
	if w.spec.Record != nil {
		return json.Marshal(struct {
			Rate float64 `json:"rate"`
		}{w.spec.Record.Rate})
	}
	return json.Marshal("simple")
}

type wireNodeTrace struct {
	Start   *float64     `json:"start,omitempty"`
	Echo    *wireEcho    `json:"echo,omitempty"`
	Foxtrot *wireFoxtrot `json:"foxtrot,omitempty"`
	End     bool         `json:"end,omitempty"`
	Common  string       `json:"common,omitempty"`
}

type wireEdgeTrace struct {
	Echo    *wireEcho    `json:"echo,omitempty"`
	Foxtrot *wireFoxtrot `json:"foxtrot,omitempty"`
}

type wireResults struct {
	MTTC        float64   `json:"mttc"`
	MTTCSamples []float64 `json:"mttc samples"`
	MTTI        *float64  `json:"mtti,omitempty"`
	MTTISamples []float64 `json:"mtti samples,omitempty"`
}

type wireNode struct {
	ID      flexID        `json:"id"`
	Trace   wireNodeTrace `json:"trace data"`
	Results *wireResults  `json:"results,omitempty"`
}

type wireEdge struct {
	ID    flexID        `json:"id"`
	From  flexID        `json:"from"`
	To    flexID        `json:"to"`
	Trace wireEdgeTrace `json:"trace data"`
}

type wireNet struct {
	Nodes []wireNode `json:"nodes"`
	Edges []wireEdge `json:"edges"`

	MTTC      *float64 `json:"mttc,omitempty"`
	MTTI      *float64 `json:"mtti,omitempty"`
	Histories *int     `json:"histories,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// toNodeNet converts the decoded wire form into the internal NodeNet.
func (wn *wireNet) toNodeNet() *nodenet.NodeNet {
	nn := &nodenet.NodeNet{
		Nodes: make([]nodenet.Node, len(wn.Nodes)),
		Edges: make([]nodenet.Edge, len(wn.Edges)),
	}
	for i, n := range wn.Nodes {
		data := nodenet.NodeData{
			End:    n.Trace.End,
			Common: n.Trace.Common,
		}
		if n.Trace.Start != nil {
			rate := *n.Trace.Start
			data.Start = &rate
		}
		if n.Trace.Echo != nil {
			spec := n.Trace.Echo.spec
			data.Echo = &spec
		}
		if n.Trace.Foxtrot != nil {
			spec := n.Trace.Foxtrot.spec
			data.Foxtrot = &spec
		}
		nn.Nodes[i] = nodenet.Node{ID: n.ID.key, Data: data}
	}
	for i, e := range wn.Edges {
		data := nodenet.EdgeData{}
		if e.Trace.Echo != nil {
			spec := e.Trace.Echo.spec
			data.Echo = &spec
		}
		if e.Trace.Foxtrot != nil {
			spec := e.Trace.Foxtrot.spec
			data.Foxtrot = &spec
		}
		nn.Edges[i] = nodenet.Edge{ID: e.ID.key, From: e.From.key, To: e.To.key, Data: data}
	}
	return nn
}

// annotate copies the projected per-node results back onto the original
// wire nodes (matched by position, since toNodeNet preserves order) so
// every input field, including the ids' original string-or-number form,
// round-trips untouched.
func (wn *wireNet) annotate(projected *nodenet.NodeNet) {
	for i := range wn.Nodes {
		if i >= len(projected.Nodes) {
			break
		}
		r := projected.Nodes[i].Result
		if r == nil {
			continue
		}
		res := &wireResults{
			MTTC:        r.MTTC,
			MTTCSamples: r.MTTCSamples,
		}
		if r.MTTI != nil {
			mtti := *r.MTTI
			res.MTTI = &mtti
			res.MTTISamples = r.MTTISamples
		}
		wn.Nodes[i].Results = res
	}
}
