// Package covariance produces parameter covariance estimates from two
// independent routes and tags each with its provenance:
//
//   - FromFisher inverts a Fisher information matrix, giving the analytic
//     Gaussian-linearization approximation of the parameter covariance.
//   - FromSamples computes the empirical (optionally weighted) covariance of
//     a collection of posterior draws from an MCMC or nested-sampling run.
//
// The provenance tag lets downstream comparison attribute discrepancies to a
// particular estimation route. Estimates are value objects: computed once
// from their inputs, immutable afterwards, recomputed when the inputs change.
//
// Inversion failures are surfaced, never papered over: a singular or
// ill-conditioned information matrix means the experiment design does not
// constrain one or more parameters, and returning a default covariance would
// hide exactly the condition the analysis exists to detect.
package covariance
