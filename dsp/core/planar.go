package core

// EnsurePlanar returns a channels x frames planar buffer, reusing the
// backing arrays of buf where capacity allows. Reused channels keep stale
// samples; callers that need silence must call ZeroPlanar.
func EnsurePlanar(buf [][]float64, channels, frames int) [][]float64 {
	if channels < 0 {
		channels = 0
	}

	if frames < 0 {
		frames = 0
	}

	if cap(buf) < channels {
		grown := make([][]float64, channels)
		copy(grown, buf)
		buf = grown
	}

	buf = buf[:channels]
	for ch := range buf {
		if cap(buf[ch]) < frames {
			buf[ch] = make([]float64, frames)
			continue
		}

		buf[ch] = buf[ch][:frames]
	}

	return buf
}

// ZeroPlanar sets every sample of every channel to 0.
func ZeroPlanar(buf [][]float64) {
	for _, ch := range buf {
		clear(ch)
	}
}

// CopyPlanar copies src into dst channel by channel and returns the number
// of frames copied. Channels and frames beyond the shorter side are left
// untouched.
func CopyPlanar(dst, src [][]float64) int {
	channels := min(len(dst), len(src))
	frames := 0

	for ch := range channels {
		n := copy(dst[ch], src[ch])
		if ch == 0 || n < frames {
			frames = n
		}
	}

	return frames
}

// PlanarShape reports the channel count and the length of the shortest
// channel of buf.
func PlanarShape(buf [][]float64) (channels, frames int) {
	if len(buf) == 0 {
		return 0, 0
	}

	frames = len(buf[0])
	for _, ch := range buf[1:] {
		frames = min(frames, len(ch))
	}

	return len(buf), frames
}
