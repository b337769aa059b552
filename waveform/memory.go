package waveform

import (
	"fmt"
	"io"
)

// MemorySource serves interleaved samples held in memory
type MemorySource struct {
	samples []int
	format  Format
	pos     int
}

// NewMemorySource wraps samples laid out as described by format
func NewMemorySource(samples []int, format Format) (*MemorySource, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if len(samples)%format.Channels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of %d channels", len(samples), format.Channels)
	}
	return &MemorySource{samples: samples, format: format}, nil
}

func (m *MemorySource) Format() Format {
	return m.format
}

func (m *MemorySource) ReadChunk(frames int) ([]int, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %d", frames)
	}
	if m.pos >= len(m.samples) {
		return nil, io.EOF
	}

	end := min(m.pos+frames*m.format.Channels, len(m.samples))
	chunk := m.samples[m.pos:end]
	m.pos = end
	return chunk, nil
}

func (m *MemorySource) Close() error {
	return nil
}
