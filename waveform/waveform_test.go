package waveform

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monoFormat = Format{SampleWidth: 2, FrameRate: 8000, Channels: 1}

func TestWavRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	stereo := Format{SampleWidth: 2, FrameRate: 8000, Channels: 2}
	samples := Tone(440, stereo.FrameRate, 1000, 8000, stereo.Channels)
	require.NoError(t, WriteFile(path, samples, stereo))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, stereo, src.Format())

	var got []int
	for {
		chunk, err := src.ReadChunk(256)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Zero(t, len(chunk)%2)
		got = append(got, chunk...)
	}
	assert.Equal(t, samples, got)
}

func TestWavRoundTripSampleWidths(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		amplitude float64
	}{
		{"8-bit unsigned", 1, 100},
		{"16-bit", 2, 8000},
		{"24-bit", 3, 2000000},
		{"32-bit", 4, 500000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := Format{SampleWidth: tt.width, FrameRate: 8000, Channels: 1}
			samples := Tone(440, format.FrameRate, 600, tt.amplitude, 1)
			path := filepath.Join(t.TempDir(), "tone.wav")
			require.NoError(t, WriteFile(path, samples, format))

			src, err := Open(path)
			require.NoError(t, err)
			defer src.Close()

			assert.Equal(t, format, src.Format())

			chunk, err := src.ReadChunk(len(samples))
			require.NoError(t, err)
			assert.Equal(t, samples, chunk)

			// signed samples swing around zero
			assert.Less(t, minOf(chunk), 0)
			assert.Greater(t, maxOf(chunk), 0)
		})
	}
}

func TestEightBitSilenceReadsAsZero(t *testing.T) {
	format := Format{SampleWidth: 1, FrameRate: 8000, Channels: 2}
	path := filepath.Join(t.TempDir(), "silence.wav")
	require.NoError(t, WriteFile(path, make([]int, 200), format))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	chunk, err := src.ReadChunk(100)
	require.NoError(t, err)
	assert.Equal(t, make([]int, 200), chunk)
}

func TestOpenEncodingTags(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		audioFormat int
		ok          bool
	}{
		{"extensible 16-bit", 2, wavFormatExtensible, true},
		{"extensible 24-bit", 3, wavFormatExtensible, true},
		{"extensible 32-bit", 4, wavFormatExtensible, false},
		{"ieee float", 4, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := Format{SampleWidth: tt.width, FrameRate: 8000, Channels: 1}
			path := filepath.Join(t.TempDir(), "tagged.wav")
			require.NoError(t, writeWAV(path, Tone(440, 8000, 256, 1000, 1), format, tt.audioFormat))

			src, err := Open(path)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, src.Close())
		})
	}
}

func minOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		m = min(m, v)
	}
	return m
}

func maxOf(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		m = max(m, v)
	}
	return m
}

func TestWavReadChunkSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	require.NoError(t, WriteFile(path, Tone(100, 8000, 300, 1000, 1), monoFormat))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	chunk, err := src.ReadChunk(256)
	require.NoError(t, err)
	assert.Len(t, chunk, 256)

	chunk, err = src.ReadChunk(256)
	require.NoError(t, err)
	assert.Len(t, chunk, 44)

	_, err = src.ReadChunk(256)
	assert.ErrorIs(t, err, io.EOF)
}

func TestProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.wav")
	require.NoError(t, WriteFile(path, Tone(100, 8000, 8000, 1000, 1), monoFormat))

	meta, err := Probe(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(monoFormat, meta.Format)
	assert.Equal(16, meta.BitDepth)
	assert.Equal(1, meta.AudioFormat)
	assert.Equal(int64(8000), meta.Frames)
	assert.Equal(time.Second, meta.Duration)
}

func TestOpenRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a riff file"), 0o644))
	_, err = Open(garbage)
	assert.Error(t, err)

	_, err = Probe(garbage)
	assert.Error(t, err)
}

func TestMemorySource(t *testing.T) {
	src, err := NewMemorySource([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Format{SampleWidth: 2, FrameRate: 8000, Channels: 2})
	require.NoError(t, err)

	chunk, err := src.ReadChunk(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, chunk)

	chunk, err = src.ReadChunk(3)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8, 9, 10}, chunk)

	_, err = src.ReadChunk(3)
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, src.Close())
}

func TestMemorySourceValidation(t *testing.T) {
	_, err := NewMemorySource([]int{1, 2, 3}, Format{SampleWidth: 2, FrameRate: 8000, Channels: 2})
	assert.Error(t, err)

	_, err = NewMemorySource(nil, Format{SampleWidth: 2, Channels: 1})
	assert.Error(t, err)
}

func TestDownmix(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int
		channels int
		want     []float64
	}{
		{"mono", []int{1, -2, 3}, 1, []float64{1, -2, 3}},
		{"stereo", []int{2, 4, -3, 3}, 2, []float64{3, 0}},
		{"trailing partial frame", []int{1, 2, 3, 5, 7}, 2, []float64{1.5, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Downmix(tt.samples, tt.channels))
		})
	}
}

func TestMixStaysWithinAmplitude(t *testing.T) {
	samples := Mix([]float64{220, 330, 440}, 8000, 4000, 3000, 1)
	for _, s := range samples {
		assert.LessOrEqual(t, s, 3000)
		assert.GreaterOrEqual(t, s, -3000)
	}
	assert.Len(t, Tone(440, 8000, 10, 1, 3), 30)
}
