package waveform

import (
	"fmt"
	"time"
)

// Format describes the layout of interleaved PCM samples
type Format struct {
	SampleWidth int `json:"sample_width"` // bytes per sample
	FrameRate   int `json:"frame_rate"`   // frames per second
	Channels    int `json:"channels"`
}

// Validate checks that the format can be analyzed
func (f Format) Validate() error {
	if f.FrameRate <= 0 {
		return fmt.Errorf("invalid frame rate: %d", f.FrameRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", f.Channels)
	}
	if f.SampleWidth <= 0 {
		return fmt.Errorf("invalid sample width: %d", f.SampleWidth)
	}
	return nil
}

// Source supplies interleaved integer samples in forward-only chunks.
//
// ReadChunk returns up to frames*Channels samples. It returns fewer at the
// end of the stream and io.EOF once nothing is left.
type Source interface {
	Format() Format
	ReadChunk(frames int) ([]int, error)
	Close() error
}

// Metadata holds the properties of a WAV file as read from its header
type Metadata struct {
	Path        string        `json:"path"`
	Format      Format        `json:"format"`
	BitDepth    int           `json:"bit_depth"`
	AudioFormat int           `json:"audio_format"`
	Frames      int64         `json:"frames"`
	Duration    time.Duration `json:"duration"`
}

// Downmix averages the channels of each complete frame into one mono
// sample. A trailing incomplete frame is dropped.
func Downmix(samples []int, channels int) []float64 {
	if channels <= 1 {
		mono := make([]float64, len(samples))
		for i, s := range samples {
			mono[i] = float64(s)
		}
		return mono
	}

	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := range frames {
		sum := 0
		for _, s := range samples[i*channels : (i+1)*channels] {
			sum += s
		}
		mono[i] = float64(sum) / float64(channels)
	}
	return mono
}
