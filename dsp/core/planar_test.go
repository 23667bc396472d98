package core

import "testing"

func TestEnsurePlanarReuse(t *testing.T) {
	buf := [][]float64{make([]float64, 4, 8), make([]float64, 4, 8)}
	first := &buf[0][0]

	out := EnsurePlanar(buf, 2, 6)
	if ch, n := PlanarShape(out); ch != 2 || n != 6 {
		t.Fatalf("shape = (%d, %d), want (2, 6)", ch, n)
	}

	if &out[0][0] != first {
		t.Fatal("expected backing array to be reused")
	}
}

func TestEnsurePlanarGrowsChannels(t *testing.T) {
	out := EnsurePlanar(nil, 3, 5)
	if ch, n := PlanarShape(out); ch != 3 || n != 5 {
		t.Fatalf("shape = (%d, %d), want (3, 5)", ch, n)
	}

	out = EnsurePlanar(out, 1, 5)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
}

func TestCopyAndZeroPlanar(t *testing.T) {
	src := [][]float64{{1, 2, 3}, {4, 5, 6}}
	dst := EnsurePlanar(nil, 2, 2)

	if n := CopyPlanar(dst, src); n != 2 {
		t.Fatalf("copied %d frames, want 2", n)
	}

	if dst[1][1] != 5 {
		t.Fatalf("dst[1][1] = %v, want 5", dst[1][1])
	}

	ZeroPlanar(dst)

	for ch := range dst {
		for i, v := range dst[ch] {
			if v != 0 {
				t.Fatalf("dst[%d][%d] = %v, want 0", ch, i, v)
			}
		}
	}
}
