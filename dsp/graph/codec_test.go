package graph

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-route/dsp/effect"
)

func parseGraph(raw string) (Graph, error) {
	var g Graph

	err := json.Unmarshal([]byte(raw), &g)

	return g, err
}

func TestUnmarshalGraph(t *testing.T) {
	t.Parallel()

	g, err := parseGraph(`{
		"nodes": [{"id": "dly", "type": "delay"}, {"type": "tremolo"}],
		"connections": [
			{"from": "_input", "to": "dly"},
			{"from": "dly", "to": "_output", "gain": 0.5}
		],
		"start": "_input",
		"end": "_output",
		"autoConnectEnd": true
	}`)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := Graph{
		Nodes:          []Node{{ID: "dly", Kind: effect.KindDelay}, {Kind: effect.KindTremolo}},
		Connections:    []Connection{edge(in, "dly", 1), edge("dly", out, 0.5)},
		Start:          in,
		End:            out,
		AutoConnectEnd: true,
	}
	if !reflect.DeepEqual(g, want) {
		t.Fatalf("graph=%+v want %+v", g, want)
	}
}

func TestUnmarshalGraphRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := parseGraph(`{"nodes":[{"id":"x","type":"wahwah"}],"connections":[]}`)
	if !errors.Is(err, effect.ErrUnknownKind) {
		t.Fatalf("err=%v want ErrUnknownKind", err)
	}
}

func TestUnmarshalGraphInvalidJSON(t *testing.T) {
	t.Parallel()

	if _, err := parseGraph(`{"nodes":`); err == nil {
		t.Fatal("expected error")
	}
}

func TestGraphJSONRoundTrip(t *testing.T) {
	t.Parallel()

	g := Chain(node("a"), Node{Kind: effect.KindBitcrusher})
	g.Connections[1].Gain = 0.75

	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := parseGraph(string(raw))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(back, g) {
		t.Fatalf("round trip=%+v want %+v", back, g)
	}
}
