// Package record captures processed audio to disk off the processing path.
//
// The processing goroutine calls Sink.RecordIfNeeded once per block. The WAV
// implementation copies the block into a pooled buffer and hands it to a
// writer goroutine through a bounded queue; when the queue is full the block
// is dropped and counted instead of blocking.
package record

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-route/dsp/buffer"
	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
)

// Recorder errors.
var (
	ErrActive    = errors.New("record: recording already active")
	ErrNotActive = errors.New("record: no active recording")
)

const (
	// DefaultQueueSize is the number of blocks that may wait for the writer.
	DefaultQueueSize = 32
	// DefaultDither is the TPDF dither amplitude in 16-bit LSBs.
	DefaultDither = 1.0

	bitDepth      = 16
	pcmFormat     = 1
	fullScale     = 32767.0
	ditherPerLSB  = 1.0 / 32768.0
	ditherSeed    = 0x5eed
	minSampleRate = 1
)

// Sink receives every processed block. Implementations must return quickly
// and must not retain buf.
type Sink interface {
	RecordIfNeeded(buf [][]float64, frames, channels int, sampleRate float64)
}

// Option configures a WAVRecorder.
type Option func(*WAVRecorder)

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *WAVRecorder) {
		if log != nil {
			r.log = log
		}
	}
}

// WithQueueSize sets how many blocks may wait for the writer goroutine.
func WithQueueSize(n int) Option {
	return func(r *WAVRecorder) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithDither sets the TPDF dither amplitude in LSBs; 0 disables dither.
func WithDither(lsb float64) Option {
	return func(r *WAVRecorder) {
		if lsb >= 0 && !math.IsNaN(lsb) {
			r.dither = lsb
		}
	}
}

// WAVRecorder writes 16-bit PCM WAV files. The first block of a recording
// fixes the file's channel count and sample rate; later blocks with another
// format are dropped.
type WAVRecorder struct {
	log       logrus.FieldLogger
	pool      *buffer.Pool
	queueSize int
	dither    float64

	mu      sync.Mutex
	active  atomic.Pointer[session]
	dropped atomic.Uint64
	frames  atomic.Uint64
}

type session struct {
	path   string
	file   *os.File
	blocks chan *buffer.Block
	stop   chan struct{}
	done   chan error
}

// NewWAVRecorder creates an idle recorder.
func NewWAVRecorder(opts ...Option) *WAVRecorder {
	r := &WAVRecorder{
		log:       logrus.StandardLogger(),
		pool:      buffer.NewPool(),
		queueSize: DefaultQueueSize,
		dither:    DefaultDither,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Start begins recording to path, truncating an existing file.
func (r *WAVRecorder) Start(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active.Load() != nil {
		return ErrActive
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	s := &session{
		path:   path,
		file:   f,
		blocks: make(chan *buffer.Block, r.queueSize),
		stop:   make(chan struct{}),
		done:   make(chan error, 1),
	}

	r.dropped.Store(0)
	r.frames.Store(0)

	go r.run(s)

	r.active.Store(s)

	r.log.WithFields(logrus.Fields{
		"function": "Start",
		"path":     path,
	}).Info("Recording started")

	return nil
}

// Stop ends the recording, flushes queued blocks and finalises the file. A
// recording that never received a block leaves no file behind.
func (r *WAVRecorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.active.Swap(nil)
	if s == nil {
		return ErrNotActive
	}

	close(s.stop)
	err := <-s.done

	r.log.WithFields(logrus.Fields{
		"function": "Stop",
		"path":     s.path,
		"frames":   r.frames.Load(),
		"dropped":  r.dropped.Load(),
	}).Info("Recording stopped")

	return err
}

// Active reports whether a recording is running.
func (r *WAVRecorder) Active() bool {
	return r.active.Load() != nil
}

// Dropped returns the number of blocks lost in the current or last
// recording, through a full queue or a format change.
func (r *WAVRecorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Frames returns the number of frames written in the current or last
// recording.
func (r *WAVRecorder) Frames() uint64 {
	return r.frames.Load()
}

// RecordIfNeeded copies the first frames samples of the first channels
// channels of buf to the writer. It never blocks.
func (r *WAVRecorder) RecordIfNeeded(buf [][]float64, frames, channels int, sampleRate float64) {
	s := r.active.Load()
	if s == nil || frames <= 0 || channels <= 0 {
		return
	}

	blk := r.pool.Get(frames, channels, sampleRate)

	for ch := range min(channels, len(buf)) {
		src := buf[ch]
		for i := range min(frames, len(src)) {
			blk.Samples[i*channels+ch] = src[i]
		}
	}

	select {
	case s.blocks <- blk:
	default:
		r.pool.Put(blk)
		r.dropped.Add(1)
	}
}

func (r *WAVRecorder) run(s *session) {
	w := &writer{
		rec:    r,
		file:   s.file,
		buffer: &audio.IntBuffer{SourceBitDepth: bitDepth},
	}

	if r.dither > 0 {
		w.state = vecmath.NewDitherState(ditherSeed)
	}

loop:
	for {
		select {
		case blk := <-s.blocks:
			w.write(blk)
		case <-s.stop:
			break loop
		}
	}

	for {
		select {
		case blk := <-s.blocks:
			w.write(blk)
		default:
			s.done <- w.close(s.path)
			return
		}
	}
}

type writer struct {
	rec    *WAVRecorder
	file   *os.File
	enc    *wav.Encoder
	buffer *audio.IntBuffer
	state  *vecmath.DitherState
	err    error

	channels   int
	sampleRate int
}

func (w *writer) write(blk *buffer.Block) {
	defer w.rec.pool.Put(blk)

	if w.err != nil {
		w.rec.dropped.Add(1)
		return
	}

	rate := max(int(math.Round(blk.SampleRate)), minSampleRate)

	if w.enc == nil {
		w.channels = blk.Channels
		w.sampleRate = rate
		w.enc = wav.NewEncoder(w.file, rate, bitDepth, blk.Channels, pcmFormat)
		w.buffer.Format = &audio.Format{NumChannels: blk.Channels, SampleRate: rate}

		w.rec.log.WithFields(logrus.Fields{
			"function":    "write",
			"channels":    blk.Channels,
			"sample_rate": rate,
		}).Debug("Recording format fixed")
	} else if blk.Channels != w.channels || rate != w.sampleRate {
		w.rec.dropped.Add(1)
		return
	}

	if w.state != nil {
		vecmath.AddDitherTPDF(blk.Samples, w.rec.dither*ditherPerLSB, w.state)
	}

	if cap(w.buffer.Data) < len(blk.Samples) {
		w.buffer.Data = make([]int, len(blk.Samples))
	}

	w.buffer.Data = w.buffer.Data[:len(blk.Samples)]
	for i, v := range blk.Samples {
		w.buffer.Data[i] = toPCM16(v)
	}

	err := w.enc.Write(w.buffer)
	if err != nil {
		w.err = fmt.Errorf("record: write: %w", err)
		w.rec.log.WithFields(logrus.Fields{
			"function": "write",
			"error":    err,
		}).Error("Recording write failed")

		return
	}

	w.rec.frames.Add(uint64(blk.Frames))
}

func (w *writer) close(path string) error {
	var errs []error

	if w.err != nil {
		errs = append(errs, w.err)
	}

	if w.enc != nil {
		if err := w.enc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("record: finalise: %w", err))
		}
	}

	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("record: close: %w", err))
	}

	if w.enc == nil {
		if err := os.Remove(path); err != nil {
			errs = append(errs, fmt.Errorf("record: remove empty file: %w", err))
		}
	}

	return errors.Join(errs...)
}

// toPCM16 converts a float sample to a clamped 16-bit integer.
func toPCM16(v float64) int {
	v = math.Round(v * fullScale)

	switch {
	case v > fullScale:
		return int(fullScale)
	case v < -fullScale-1:
		return -int(fullScale) - 1
	case math.IsNaN(v):
		return 0
	default:
		return int(v)
	}
}
