package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-route/dsp/buffer"
)

func ExampleManager() {
	m := buffer.NewManager()
	fmt.Println(m.Ensure(2, 2), m.Ensure(2, 2))

	in := m.Load([][]float64{{1, 2}, {3, 4}})
	n := buffer.Interleave(m.Interleaved(), in)
	fmt.Println(n, m.Interleaved())

	// Output:
	// true false
	// 4 [1 3 2 4]
}
