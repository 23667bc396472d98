package engine_test

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-route/dsp/effect"
	"github.com/cwbudde/algo-route/dsp/graph"
	"github.com/cwbudde/algo-route/dsp/snapshot"
	"github.com/cwbudde/algo-route/engine"
	"github.com/sirupsen/logrus"
)

func ExampleEngine() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	eng := engine.New(engine.WithLogger(log))

	err := eng.Publish(&snapshot.Snapshot{
		Enabled:   true,
		Automatic: graph.Chain(graph.Node{ID: "width", Kind: effect.KindStereoWidth}),
		Params: effect.ParamTable{
			"width": {Num: map[string]float64{"width": 0}},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(eng.ProcessBlock([][]float64{{1, 0.5}, {0, 0.5}}, 2, 2, 48000))

	dst := make([]float64, 4)
	fmt.Println(eng.DequeueOutput(dst, len(dst)), dst)
	// Output:
	// [0.5 0.5 0.5 0.5]
	// true [0.5 0.5 0.5 0.5]
}
