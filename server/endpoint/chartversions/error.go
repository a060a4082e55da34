package chartversions

import "github.com/giantswarm/microerror"

var decodeFailedError = &microerror.Error{
	Kind: "decodeFailedError",
}

// IsDecodeFailed asserts decodeFailedError.
func IsDecodeFailed(err error) bool {
	return microerror.Cause(err) == decodeFailedError
}

var indexUnavailableError = &microerror.Error{
	Kind: "indexUnavailableError",
}

// IsIndexUnavailable asserts indexUnavailableError.
func IsIndexUnavailable(err error) bool {
	return microerror.Cause(err) == indexUnavailableError
}

var invalidConfigError = &microerror.Error{
	Kind: "invalidConfigError",
}

// IsInvalidConfig asserts invalidConfigError.
func IsInvalidConfig(err error) bool {
	return microerror.Cause(err) == invalidConfigError
}
