// Package audio synthesizes the short PCM cues played when a meter escalates.
package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// DefaultSampleRate matches the host audio context.
const DefaultSampleRate = 48000

// bytesPerFrame is 16-bit signed little-endian stereo.
const bytesPerFrame = 4

// Tone describes a decaying frequency sweep.
type Tone struct {
	StartHz  float64       // Frequency at the beginning of the sweep
	EndHz    float64       // Frequency at the end of the sweep
	Duration time.Duration // Total length
	Volume   float64       // Peak amplitude, 0-1
}

// PCMStream is an in-memory 16-bit stereo PCM stream.
// It satisfies io.ReadSeeker so it can be handed to audio.Context.NewPlayer.
type PCMStream struct {
	data       []byte
	sampleRate int
	offset     int64
}

// Synthesize renders the tone at the given sample rate.
//
// Parameters:
//   - t: tone description; Volume is clamped to 0-1
//   - sampleRate: samples per second (<= 0 uses DefaultSampleRate)
//
// Returns:
//   - *PCMStream: the rendered stream, positioned at the start
//   - error: if the tone has no duration or a non-positive frequency
func Synthesize(t Tone, sampleRate int) (*PCMStream, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if t.Duration <= 0 {
		return nil, fmt.Errorf("tone duration must be positive, got %v", t.Duration)
	}
	if t.StartHz <= 0 || t.EndHz <= 0 {
		return nil, fmt.Errorf("tone frequencies must be positive, got %v→%v", t.StartHz, t.EndHz)
	}
	vol := math.Max(0, math.Min(1, t.Volume))

	frames := int(math.Round(t.Duration.Seconds() * float64(sampleRate)))
	data := make([]byte, frames*bytesPerFrame)

	phase := 0.0
	for i := 0; i < frames; i++ {
		progress := float64(i) / float64(frames)
		freq := t.StartHz + (t.EndHz-t.StartHz)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		// 5ms attack, then quadratic decay to silence
		env := (1 - progress) * (1 - progress)
		if attack := float64(i) / (0.005 * float64(sampleRate)); attack < 1 {
			env *= attack
		}

		sample := int16(math.Sin(phase) * env * vol * math.MaxInt16)
		off := i * bytesPerFrame
		// left and right channels carry the same sample
		data[off] = byte(sample)
		data[off+1] = byte(sample >> 8)
		data[off+2] = byte(sample)
		data[off+3] = byte(sample >> 8)
	}

	return &PCMStream{data: data, sampleRate: sampleRate}, nil
}

// Bytes returns the raw PCM data.
func (s *PCMStream) Bytes() []byte {
	return s.data
}

// Read implements io.Reader.
func (s *PCMStream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (s *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	s.offset = next
	return next, nil
}

// Length returns the stream length in bytes.
func (s *PCMStream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate returns the sample rate in Hz.
func (s *PCMStream) SampleRate() int {
	return s.sampleRate
}

// Duration returns the playback length.
func (s *PCMStream) Duration() time.Duration {
	frames := len(s.data) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(s.sampleRate)
}
