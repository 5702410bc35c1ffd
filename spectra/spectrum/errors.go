package spectrum

import "errors"

// Error kinds returned by this package. Test with [errors.Is].
var (
	// ErrConstruction reports invalid arguments to [New].
	ErrConstruction = errors.New("spectrum: invalid construction")
	// ErrUncalibrated reports an energy-dependent operation on an
	// uncalibrated spectrum.
	ErrUncalibrated = errors.New("spectrum: not calibrated")
	// ErrMissingLivetime reports a counts/rate conversion without a livetime.
	ErrMissingLivetime = errors.New("spectrum: unknown livetime")
	// ErrDomain reports an operation between incompatible spectra.
	ErrDomain = errors.New("spectrum: incompatible spectra")
	// ErrValidation reports an invalid argument to an operation.
	ErrValidation = errors.New("spectrum: invalid argument")
	// ErrNotImplemented reports an unsupported combination, such as
	// arithmetic between differently calibrated spectra or an unknown file
	// format.
	ErrNotImplemented = errors.New("spectrum: not implemented")
)
