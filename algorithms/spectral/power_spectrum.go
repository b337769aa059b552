package spectral

// PowerSpectrum turns complex spectra into power
type PowerSpectrum struct{}

// NewPowerSpectrum creates a new power spectrum calculator
func NewPowerSpectrum() *PowerSpectrum {
	return &PowerSpectrum{}
}

// ComputeFromComplex returns |X[k]|^2 for every bin of a complex spectrum
func (ps *PowerSpectrum) ComputeFromComplex(spectrum []complex128) []float64 {
	power := make([]float64, len(spectrum))
	for i, x := range spectrum {
		re, im := real(x), imag(x)
		power[i] = re*re + im*im
	}
	return power
}
