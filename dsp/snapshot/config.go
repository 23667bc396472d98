package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/graph"
)

// document is the JSON form of a Snapshot.
type document struct {
	Enabled       *bool             `json:"enabled"`
	Reconfiguring bool              `json:"reconfiguring,omitempty"`
	Mode          Mode              `json:"mode"`
	Limiter       bool              `json:"limiter,omitempty"`
	Automatic     []autoNode        `json:"automatic,omitempty"`
	Manual        *graph.Graph      `json:"manual,omitempty"`
	Split         *splitDocument    `json:"split,omitempty"`
	Params        effect.ParamTable `json:"params,omitempty"`
}

type autoNode struct {
	ID   string      `json:"id,omitempty"`
	Type effect.Kind `json:"type"`
}

type splitDocument struct {
	Left  *graph.Graph `json:"left,omitempty"`
	Right *graph.Graph `json:"right,omitempty"`
}

// Decode reads a snapshot document. The automatic section is a plain list
// of nodes chained from graph.InputNodeID to graph.OutputNodeID; the manual
// and split sections are full graphs. A missing "enabled" means true. The
// result is compiled; cycle diagnostics are returned alongside a usable
// snapshot, other errors with a nil one.
func Decode(r io.Reader) (*Snapshot, error) {
	var doc document

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	err := dec.Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: invalid json: %w", err)
	}

	s := &Snapshot{
		Enabled:       doc.Enabled == nil || *doc.Enabled,
		Reconfiguring: doc.Reconfiguring,
		Mode:          doc.Mode,
		Limiter:       doc.Limiter,
		Params:        doc.Params,
	}

	nodes := make([]graph.Node, len(doc.Automatic))
	for i, n := range doc.Automatic {
		nodes[i] = graph.Node{ID: n.ID, Kind: n.Type}
	}

	s.Automatic = graph.Chain(nodes...)

	if doc.Manual != nil {
		s.Manual = *doc.Manual
	}

	if doc.Split != nil {
		if doc.Split.Left != nil {
			s.SplitLeft = *doc.Split.Left
		}

		if doc.Split.Right != nil {
			s.SplitRight = *doc.Split.Right
		}
	}

	err = s.Validate()
	if err != nil {
		return nil, err
	}

	return s, s.Compile()
}

// LoadFile decodes the snapshot document at path.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
