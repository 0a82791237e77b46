package nodenet

import (
	"math"

	"github.com/katalvlaran/mttc/sampler"
)

// Project annotates a copy of nn with, for each node-net node, the
// minimum MTTC (and MTTI, if mr carries involvement samples) across
// every threat-graph node mapping's entry for that id, plus the
// concatenated sample lists.
//
// Project never mutates nn; it returns a new *NodeNet so the round-trip
// property (every field but Result is unchanged from the input) can be
// checked by comparing the un-annotated fields of the input against the
// output.
func Project(nn *NodeNet, mapping *Mapping, mr *sampler.MeanResult) *NodeNet {
	out := nn.Clone()
	if mr == nil || mr.NodeResults == nil {
		return out
	}

	for i := range out.Nodes {
		indices := mapping.NodeIndex[out.Nodes[i].ID]
		if len(indices) == 0 {
			continue
		}

		minMTTC := math.Inf(1)
		var mttcSamples []float64
		haveMTTI := false
		minMTTI := math.Inf(1)
		var mttiSamples []float64

		for _, idx := range indices {
			if idx < 0 || idx >= len(mr.NodeResults) {
				continue
			}
			// A threat-graph node with no samples was never reached and
			// carries no estimate; it must not drag the min to 0.
			nr := mr.NodeResults[idx]
			if len(nr.MTTCSamples) > 0 {
				if nr.MTTC < minMTTC {
					minMTTC = nr.MTTC
				}
				mttcSamples = append(mttcSamples, nr.MTTCSamples...)
			}
			if len(nr.MTTISamples) > 0 {
				haveMTTI = true
				if nr.MTTI < minMTTI {
					minMTTI = nr.MTTI
				}
				mttiSamples = append(mttiSamples, nr.MTTISamples...)
			}
		}

		if math.IsInf(minMTTC, 1) {
			continue
		}
		proj := &NodeProjection{MTTC: minMTTC, MTTCSamples: mttcSamples}
		if haveMTTI {
			mtti := minMTTI
			proj.MTTI = &mtti
			proj.MTTISamples = mttiSamples
		}
		out.Nodes[i].Result = proj
	}

	return out
}
