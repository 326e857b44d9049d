// Package errs defines the sentinel errors shared across the uncert packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...") to add context; callers
// match them with errors.Is. No error defined here is ever swallowed by the
// library itself.
package errs

import "errors"

// Configuration errors: invalid inputs detected before any computation runs.
var (
	// ErrLengthMismatch indicates that paired slices (x/y/sigma, draws/weights)
	// do not have equal lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidSigma indicates a zero, negative, or non-finite measurement
	// standard deviation. A zero sigma would contribute infinite information,
	// so it is rejected rather than silently excluded.
	ErrInvalidSigma = errors.New("invalid measurement sigma")

	// ErrNonFiniteValue indicates a NaN or Inf where a finite value is required.
	ErrNonFiniteValue = errors.New("non-finite value")

	// ErrInvalidStepSize indicates a negative or non-finite finite-difference step.
	ErrInvalidStepSize = errors.New("invalid step size")

	// ErrDimensionMismatch indicates that two objects sized by the parameter
	// count p do not agree on p.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidWeights indicates draw weights that cannot be normalized
	// (all zero, negative, or non-finite).
	ErrInvalidWeights = errors.New("invalid draw weights")

	// ErrNoDraws indicates an empty draw collection.
	ErrNoDraws = errors.New("no draws")
)

// Numerical failures: deterministic, surfaced to the caller, never retried.
var (
	// ErrSingularMatrix indicates a singular information or covariance matrix,
	// typically caused by a non-identifiable experiment design.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrIllConditioned indicates a matrix whose condition number exceeds the
	// configured limit; its inverse would be numerically meaningless.
	ErrIllConditioned = errors.New("matrix is ill-conditioned")

	// ErrNegativeVariance indicates a covariance diagonal entry below zero,
	// which has no valid standard error.
	ErrNegativeVariance = errors.New("negative variance")
)

// Archive format errors.
var (
	// ErrInvalidMagic indicates that the input does not start with the archive magic bytes.
	ErrInvalidMagic = errors.New("invalid archive magic")

	// ErrUnsupportedVersion indicates an archive format version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrPayloadTruncated indicates an archive payload shorter than its header declares.
	ErrPayloadTruncated = errors.New("archive payload truncated")

	// ErrChecksumMismatch indicates a payload whose checksum does not match
	// its header, i.e. corrupted archive data.
	ErrChecksumMismatch = errors.New("archive checksum mismatch")

	// ErrInvalidCompressionType indicates an unknown compression type byte.
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
