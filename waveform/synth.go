package waveform

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Tone synthesizes frames of a sine wave at freq Hz, repeated on every
// channel. amplitude is in sample units.
func Tone(freq float64, frameRate, frames int, amplitude float64, channels int) []int {
	return Mix([]float64{freq}, frameRate, frames, amplitude, channels)
}

// Mix synthesizes the sum of equal-amplitude sine waves. The sum is scaled
// so its peak stays within amplitude.
func Mix(freqs []float64, frameRate, frames int, amplitude float64, channels int) []int {
	if channels < 1 {
		channels = 1
	}
	samples := make([]int, frames*channels)
	if len(freqs) == 0 {
		return samples
	}

	scale := amplitude / float64(len(freqs))
	for n := range frames {
		t := float64(n) / float64(frameRate)
		v := 0.0
		for _, f := range freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		s := int(math.Round(v * scale))
		for c := range channels {
			samples[n*channels+c] = s
		}
	}
	return samples
}

// WriteFile writes interleaved signed samples as a PCM WAV file. 8-bit
// samples are shifted to the unsigned range the format stores.
func WriteFile(path string, samples []int, format Format) error {
	return writeWAV(path, samples, format, wavFormatPCM)
}

func writeWAV(path string, samples []int, format Format, audioFormat int) error {
	if err := format.Validate(); err != nil {
		return err
	}

	if format.SampleWidth == 1 {
		shifted := make([]int, len(samples))
		for i, s := range samples {
			shifted[i] = s + unsignedOffset8
		}
		samples = shifted
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, format.FrameRate, format.SampleWidth*8, format.Channels, audioFormat)
	buf := &audio.IntBuffer{
		Data: samples,
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.FrameRate,
		},
		SourceBitDepth: format.SampleWidth * 8,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}
