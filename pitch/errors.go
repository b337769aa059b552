package pitch

import "errors"

var (
	// ErrInputUnreadable means the audio could not be opened or decoded
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrInsufficientData means the input holds less than one full chunk
	ErrInsufficientData = errors.New("insufficient audio data")

	// ErrNoDominantFrequency means every chunk was rejected or fell outside
	// the accepted frequency range
	ErrNoDominantFrequency = errors.New("no dominant frequency")

	// ErrClassificationUnavailable means a classifier was handed a missing
	// or unusable estimate
	ErrClassificationUnavailable = errors.New("classification unavailable")
)
