package core

// Format describes the shape of one processing block.
type Format struct {
	SampleRate float64
	Channels   int
	Frames     int
}

// DefaultFormat is used before the first block has been seen.
func DefaultFormat() Format {
	return Format{
		SampleRate: 48000,
		Channels:   2,
		Frames:     512,
	}
}
