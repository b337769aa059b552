package waveform

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-nota/logging"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE

	// 8-bit WAV samples are unsigned and centred on this value
	unsignedOffset8 = 128
)

// WavSource reads PCM samples from a WAV file
type WavSource struct {
	file    *os.File
	decoder *wav.Decoder
	format  Format
	logger  logging.Logger
}

// Open opens a PCM WAV file for chunked reading. Compressed or float
// encodings and malformed headers are rejected.
//
// The sub-format of WAVE_FORMAT_EXTENSIBLE headers is not decoded, so
// extensible files are only accepted up to 24 bits; at 32 bits integer
// and float samples cannot be told apart.
func Open(path string) (*WavSource, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "waveform",
		"function":  "Open",
		"path":      path,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	decoder := wav.NewDecoder(f)
	format, err := readFormat(decoder)
	if err != nil {
		f.Close()
		logger.Debug("Rejected audio file", logging.Fields{"error": err.Error()})
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: PCM data not found: %w", path, err)
	}

	logger.Debug("Opened WAV file", logging.Fields{
		"frame_rate":   format.FrameRate,
		"channels":     format.Channels,
		"sample_width": format.SampleWidth,
	})

	return &WavSource{
		file:    f,
		decoder: decoder,
		format:  format,
		logger:  logger,
	}, nil
}

// Probe reads the headers of a WAV file without decoding its samples
func Probe(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	format, err := readFormat(decoder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%s: PCM data not found: %w", path, err)
	}

	frames := int64(decoder.PCMSize) / int64(format.SampleWidth*format.Channels)
	return &Metadata{
		Path:        path,
		Format:      format,
		BitDepth:    int(decoder.BitDepth),
		AudioFormat: int(decoder.WavAudioFormat),
		Frames:      frames,
		Duration:    time.Duration(frames) * time.Second / time.Duration(format.FrameRate),
	}, nil
}

func readFormat(decoder *wav.Decoder) (Format, error) {
	if !decoder.IsValidFile() {
		return Format{}, fmt.Errorf("not a valid WAV file")
	}

	switch decoder.WavAudioFormat {
	case wavFormatPCM, wavFormatExtensible:
	default:
		return Format{}, fmt.Errorf("unsupported WAV encoding %d, only PCM is supported", decoder.WavAudioFormat)
	}

	switch decoder.BitDepth {
	case 8, 16, 24, 32:
	default:
		return Format{}, fmt.Errorf("unsupported bit depth %d", decoder.BitDepth)
	}

	if decoder.WavAudioFormat == wavFormatExtensible && decoder.BitDepth == 32 {
		return Format{}, fmt.Errorf("unsupported 32-bit extensible WAV, sample type is ambiguous")
	}

	format := Format{
		SampleWidth: int(decoder.BitDepth) / 8,
		FrameRate:   int(decoder.SampleRate),
		Channels:    int(decoder.NumChans),
	}
	return format, format.Validate()
}

// Format returns the sample layout of the file
func (s *WavSource) Format() Format {
	return s.format
}

// ReadChunk reads up to frames complete frames of interleaved samples
func (s *WavSource) ReadChunk(frames int) ([]int, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %d", frames)
	}

	data := make([]int, frames*s.format.Channels)
	filled := 0
	for filled < len(data) {
		buf := &audio.IntBuffer{
			Data: data[filled:],
			Format: &audio.Format{
				NumChannels: s.format.Channels,
				SampleRate:  s.format.FrameRate,
			},
			SourceBitDepth: s.format.SampleWidth * 8,
		}
		n, err := s.decoder.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("failed to decode samples: %w", err)
		}
		if n == 0 {
			break
		}
		filled += n
	}

	// Only whole frames are handed out
	filled -= filled % s.format.Channels
	if filled == 0 {
		return nil, io.EOF
	}

	if s.format.SampleWidth == 1 {
		for i := range data[:filled] {
			data[i] -= unsignedOffset8
		}
	}
	return data[:filled], nil
}

// Close closes the underlying file
func (s *WavSource) Close() error {
	return s.file.Close()
}
