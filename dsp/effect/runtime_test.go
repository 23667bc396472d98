package effect

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-route/internal/testutil"
)

func TestDelayImpulse(t *testing.T) {
	t.Parallel()

	const sr = 1000.0

	d := newDelayRuntime(sr)
	ctx := Context{SampleRate: sr, Channels: 1, Frames: 32}
	p := Params{Num: map[string]float64{"timeMs": 10, "feedback": 0, "mix": 1}}

	buf := [][]float64{make([]float64, 32)}
	buf[0][0] = 1

	d.Process(buf, ctx, p)

	for i, v := range buf[0] {
		want := 0.0
		if i == 10 {
			want = 1
		}

		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestDelayStateSpansBlocksAndResets(t *testing.T) {
	t.Parallel()

	const sr = 1000.0

	d := newDelayRuntime(sr)
	ctx := Context{SampleRate: sr, Channels: 1, Frames: 8}
	p := Params{Num: map[string]float64{"timeMs": 10, "feedback": 0, "mix": 1}}

	first := [][]float64{make([]float64, 8)}
	first[0][0] = 1
	d.Process(first, ctx, p)

	second := [][]float64{make([]float64, 8)}
	d.Process(second, ctx, p)

	if second[0][2] != 1 {
		t.Fatalf("echo missing across block boundary: %v", second[0])
	}

	d.Process([][]float64{{1, 0, 0, 0, 0, 0, 0, 0}}, ctx, p)
	d.Reset()

	after := [][]float64{make([]float64, 8)}
	d.Process(after, ctx, p)
	testutil.RequireSilent(t, after)
}

func TestTremoloDepthZeroIsTransparent(t *testing.T) {
	t.Parallel()

	tr := &tremoloRuntime{}
	buf := testutil.PlanarDC(64, 0.5, 0.5)
	tr.Process(buf, testCtx, Params{Num: map[string]float64{"depth": 0}})

	testutil.RequirePlanarNearlyEqual(t, buf, testutil.PlanarDC(64, 0.5, 0.5), 1e-15)
}

func TestTremoloStartsAtUnityAndStaysBounded(t *testing.T) {
	t.Parallel()

	tr := &tremoloRuntime{}
	buf := testutil.PlanarDC(4800, 1)
	tr.Process(buf, Context{SampleRate: 48000}, Params{Num: map[string]float64{"depth": 1, "rateHz": 5}})

	if buf[0][0] != 1 {
		t.Fatalf("first gain = %v, want 1", buf[0][0])
	}

	for i, v := range buf[0] {
		if v < -1e-12 || v > 1 {
			t.Fatalf("sample %d = %v out of [0, 1]", i, v)
		}
	}
}

func TestStereoWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width float64
		left  float64
		right float64
	}{
		{name: "mono", width: 0, left: 0.5, right: 0.5},
		{name: "unchanged", width: 1, left: 1, right: 0},
		{name: "wide", width: 2, left: 1.5, right: -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := testutil.PlanarDC(4, 1, 0)
			stereoWidthRuntime{}.Process(buf, testCtx, Params{Num: map[string]float64{"width": tt.width}})

			testutil.RequirePlanarNearlyEqual(t, buf, testutil.PlanarDC(4, tt.left, tt.right), 1e-15)
		})
	}
}

func TestStereoWidthMonoInputUntouched(t *testing.T) {
	t.Parallel()

	buf := testutil.PlanarDC(4, 0.25)
	stereoWidthRuntime{}.Process(buf, testCtx, Params{Num: map[string]float64{"width": 0}})
	testutil.RequirePlanarNearlyEqual(t, buf, testutil.PlanarDC(4, 0.25), 0)
}

func TestBitcrusherQuantises(t *testing.T) {
	t.Parallel()

	buf := [][]float64{{0.3, -0.3, 0.74}}
	bitcrusherRuntime{}.Process(buf, testCtx, Params{Num: map[string]float64{"bits": 2}})

	// 2 bits: step 0.5.
	testutil.RequireSliceNearlyEqual(t, buf[0], []float64{0.5, -0.5, 0.5}, 1e-15)
}

func TestDistortionNormalised(t *testing.T) {
	t.Parallel()

	buf := [][]float64{{1, -1, 0}}
	distortionRuntime{}.Process(buf, testCtx, Params{Num: map[string]float64{"drive": 8}})

	testutil.RequireSliceNearlyEqual(t, buf[0], []float64{1, -1, 0}, 1e-12)

	small := [][]float64{{0.1}}
	distortionRuntime{}.Process(small, testCtx, Params{Num: map[string]float64{"drive": 8}})

	if small[0][0] <= 0.1 {
		t.Fatalf("drive must raise quiet samples, got %v", small[0][0])
	}

	if math.IsNaN(small[0][0]) {
		t.Fatal("NaN output")
	}
}

func TestDistortionHardCurve(t *testing.T) {
	t.Parallel()

	buf := [][]float64{{0.25, 1, -0.8, 0}}
	distortionRuntime{}.Process(buf, testCtx, Params{
		Num: map[string]float64{"drive": 2},
		Str: map[string]string{"curve": "hard"},
	})

	testutil.RequireSliceNearlyEqual(t, buf[0], []float64{0.5, 1, -1, 0}, 1e-12)
}
